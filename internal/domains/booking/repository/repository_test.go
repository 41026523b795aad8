package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"

	"roost/infras/otel/mocks"
	"roost/infras/postgres"
	"roost/internal/domains/booking/model"
	"roost/internal/domains/booking/repository"
	"roost/shared/timezone"
)

const (
	lockQuery            = "SELECT pg_advisory_xact_lock(hashtext($1))"
	roomConflictQuery    = "SELECT EXISTS(SELECT 1 FROM bookings WHERE room_id = $1 AND kind = $2 AND check_in <= $3 AND check_out >= $4)"
	instantConflictQuery = "SELECT EXISTS(SELECT 1 FROM bookings WHERE experience_id = $1 AND kind = $2 AND experience_time = $3)"
	insertPattern        = "INSERT INTO bookings"
)

func newBookingRepository(t *testing.T) (repository.Booking, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New()
	assert.NoError(t, err)

	t.Cleanup(func() { mockDB.Close() })

	db := sqlx.NewDb(mockDB, "sqlmock")
	conn := &postgres.Connection{Read: db, Write: db}

	return repository.New(conn, mocks.NewOtel()), mock
}

func existsRow(exists bool) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"exists"}).AddRow(exists)
}

func TestBookingRepository_CreateRoomBooking(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, timezone.GetLocation())
	checkIn := time.Date(2024, time.July, 1, 0, 0, 0, 0, timezone.GetLocation())
	checkOut := time.Date(2024, time.July, 5, 0, 0, 0, 0, timezone.GetLocation())
	booking := model.NewRoomBooking("guest-id", "room-id", checkIn, checkOut, 2, now)

	t.Run("free span locks, checks and inserts in one transaction", func(t *testing.T) {
		repo, mock := newBookingRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(lockQuery)).
			WithArgs("room-id").
			WillReturnResult(sqlmock.NewResult(0, 0))
		// Closed-interval overlap: the requested span is compared against
		// existing rows with check_in <= new check-out and check_out >= new
		// check-in, so spans that merely touch at an endpoint collide.
		mock.ExpectQuery(regexp.QuoteMeta(roomConflictQuery)).
			WithArgs("room-id", model.KindRoom, checkOut, checkIn).
			WillReturnRows(existsRow(false))
		mock.ExpectExec(insertPattern).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.CreateRoomBooking(context.Background(), booking)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("overlapping span rolls back with slot taken", func(t *testing.T) {
		repo, mock := newBookingRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(lockQuery)).
			WithArgs("room-id").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(roomConflictQuery)).
			WithArgs("room-id", model.KindRoom, checkOut, checkIn).
			WillReturnRows(existsRow(true))
		mock.ExpectRollback()

		err := repo.CreateRoomBooking(context.Background(), booking)
		assert.ErrorIs(t, err, repository.ErrSlotTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("exclusion violation on insert maps to slot taken", func(t *testing.T) {
		repo, mock := newBookingRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(lockQuery)).
			WithArgs("room-id").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(roomConflictQuery)).
			WithArgs("room-id", model.KindRoom, checkOut, checkIn).
			WillReturnRows(existsRow(false))
		mock.ExpectExec(insertPattern).
			WillReturnError(&pq.Error{Code: "23P01"})
		mock.ExpectRollback()

		err := repo.CreateRoomBooking(context.Background(), booking)
		assert.ErrorIs(t, err, repository.ErrSlotTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestBookingRepository_CreateExperienceBooking(t *testing.T) {
	now := time.Date(2024, time.June, 15, 12, 0, 0, 0, timezone.GetLocation())
	instant := time.Date(2024, time.July, 10, 14, 0, 0, 0, timezone.GetLocation())
	booking := model.NewExperienceBooking("guest-id", "exp-id", instant, 3, now)

	t.Run("free instant inserts", func(t *testing.T) {
		repo, mock := newBookingRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(lockQuery)).
			WithArgs("exp-id").
			WillReturnResult(sqlmock.NewResult(0, 0))
		// The slot collides only on exact instant equality.
		mock.ExpectQuery(regexp.QuoteMeta(instantConflictQuery)).
			WithArgs("exp-id", model.KindExperience, instant).
			WillReturnRows(existsRow(false))
		mock.ExpectExec(insertPattern).
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		err := repo.CreateExperienceBooking(context.Background(), booking)
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("taken instant rolls back with slot taken", func(t *testing.T) {
		repo, mock := newBookingRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(lockQuery)).
			WithArgs("exp-id").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(instantConflictQuery)).
			WithArgs("exp-id", model.KindExperience, instant).
			WillReturnRows(existsRow(true))
		mock.ExpectRollback()

		err := repo.CreateExperienceBooking(context.Background(), booking)
		assert.ErrorIs(t, err, repository.ErrSlotTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation on insert maps to slot taken", func(t *testing.T) {
		repo, mock := newBookingRepository(t)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta(lockQuery)).
			WithArgs("exp-id").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(regexp.QuoteMeta(instantConflictQuery)).
			WithArgs("exp-id", model.KindExperience, instant).
			WillReturnRows(existsRow(false))
		mock.ExpectExec(insertPattern).
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err := repo.CreateExperienceBooking(context.Background(), booking)
		assert.ErrorIs(t, err, repository.ErrSlotTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
