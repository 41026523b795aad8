package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"roost/infras/otel"
	"roost/infras/postgres"
	"roost/internal/domains/booking/model"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/logger"
	gRepo "roost/shared/repository"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// ErrSlotTaken reports that a competing booking holds the requested slot.
// When two requests race for the same slot, the first to commit wins and the
// loser receives this error.
var ErrSlotTaken = errors.New("booking slot already taken")

type Booking interface {
	CreateRoomBooking(ctx context.Context, booking model.Booking) error
	CreateExperienceBooking(ctx context.Context, booking model.Booking) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Delete(ctx context.Context, filter gDto.FilterGroup) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	db   *postgres.Connection
	otel otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

// CreateRoomBooking checks the room's calendar and inserts the booking inside
// one transaction. An advisory lock keyed on the room id serializes
// concurrent writers for the same room, so the conflict check and the insert
// behave as a single step. Spans are treated as closed intervals: a stay
// ending on a given date still blocks one beginning on it.
func (repo *repositoryImpl) CreateRoomBooking(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateRoomBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	return repo.createLocked(ctx, scope, booking.RoomID.String, booking, func(tx *sqlx.Tx) (bool, error) {
		query := fmt.Sprintf(
			"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2 AND %s <= $3 AND %s >= $4)",
			model.TableName, model.FieldRoomID, model.FieldKind, model.FieldCheckIn, model.FieldCheckOut,
		)
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)

		var conflict bool
		err := tx.GetContext(ctx, &conflict, query, booking.RoomID.String, model.KindRoom, booking.CheckOut.Time, booking.CheckIn.Time)

		return conflict, err
	})
}

// CreateExperienceBooking is the single-instant variant: the slot conflicts
// only with a booking at exactly the same instant.
func (repo *repositoryImpl) CreateExperienceBooking(ctx context.Context, booking model.Booking) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.CreateExperienceBooking")
	defer scope.End()
	defer scope.TraceIfError(err)

	return repo.createLocked(ctx, scope, booking.ExperienceID.String, booking, func(tx *sqlx.Tx) (bool, error) {
		query := fmt.Sprintf(
			"SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2 AND %s = $3)",
			model.TableName, model.FieldExperienceID, model.FieldKind, model.FieldExperienceTime,
		)
		scope.SetAttribute(constant.OtelQueryAttributeKey, query)

		var conflict bool
		err := tx.GetContext(ctx, &conflict, query, booking.ExperienceID.String, model.KindExperience, booking.ExperienceTime.Time)

		return conflict, err
	})
}

func (repo *repositoryImpl) createLocked(ctx context.Context, scope otel.Scope, resourceID string, booking model.Booking, hasConflict func(tx *sqlx.Tx) (bool, error)) error {
	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to begin transaction (booking): %w", err)
	}

	committed := false

	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	// Held until commit or rollback, so at most one writer per resource
	// runs the check-then-insert sequence at a time.
	if _, err = tx.ExecContext(ctx, "SELECT pg_advisory_xact_lock(hashtext($1))", resourceID); err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to lock resource calendar: %w", err)
	}

	conflict, err := hasConflict(tx)
	if err != nil {
		logger.ErrorWithStack(err)

		return fmt.Errorf("failed to check booking conflicts: %w", err)
	}

	if conflict {
		return ErrSlotTaken
	}

	if err = repo.InsertTx(ctx, tx, booking); err != nil {
		return asSlotTaken(err)
	}

	if err = tx.Commit(); err != nil {
		logger.ErrorWithStack(err)

		return asSlotTaken(fmt.Errorf("failed to commit booking: %w", err))
	}

	committed = true

	scope.AddEvent("booking committed")

	return nil
}

// asSlotTaken maps the schema's backstop constraints onto ErrSlotTaken. The
// unique index on experience slots and the range exclusion on room spans fire
// only if a conflicting write slipped past the in-transaction check.
func asSlotTaken(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		code := string(pqErr.Code)
		if code == constant.PqErrorCodeUniqueViolation || code == constant.PqErrorCodeExclusionViolation {
			return ErrSlotTaken
		}
	}

	return err
}
