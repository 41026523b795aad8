package dto_test

import (
	"database/sql"
	"testing"
	"time"

	"roost/internal/domains/booking/model"
	"roost/internal/domains/booking/model/dto"
	gModel "roost/shared/model"
	"roost/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateRoomBookingRequest_Dates(t *testing.T) {
	req := dto.CreateRoomBookingRequest{
		CheckIn:  "2024-07-01",
		CheckOut: "2024-07-05",
		Guests:   2,
	}

	checkIn, checkOut, err := req.Dates()

	assert.NoError(t, err)
	assert.Equal(t, 2024, checkIn.Year())
	assert.Equal(t, time.July, checkIn.Month())
	assert.Equal(t, 1, checkIn.Day())
	assert.Equal(t, 5, checkOut.Day())
	assert.Equal(t, timezone.GetLocation(), checkIn.Location())
}

func TestCreateRoomBookingRequest_Dates_Malformed(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  string
		checkOut string
	}{
		{name: "prose check-in", checkIn: "July 1st", checkOut: "2024-07-05"},
		{name: "prose check-out", checkIn: "2024-07-01", checkOut: "next friday"},
		{name: "wrong separator", checkIn: "2024/07/01", checkOut: "2024-07-05"},
		{name: "datetime instead of date", checkIn: "2024-07-01T10:00", checkOut: "2024-07-05"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := dto.CreateRoomBookingRequest{CheckIn: tc.checkIn, CheckOut: tc.checkOut, Guests: 1}

			_, _, err := req.Dates()

			assert.Error(t, err)
		})
	}
}

func TestCreateExperienceBookingRequest_Instant(t *testing.T) {
	req := dto.CreateExperienceBookingRequest{
		ExperienceTime: "2024-07-01T14:00",
		Guests:         3,
	}

	instant, err := req.Instant()

	assert.NoError(t, err)
	assert.Equal(t, 14, instant.Hour())
	assert.Equal(t, 0, instant.Minute())
	assert.Equal(t, "14:00", instant.Format("15:04"))
}

func TestCreateExperienceBookingRequest_Instant_Malformed(t *testing.T) {
	for _, raw := range []string{"7pm", "2024-07-01", "2024-07-01 14:00", "14:00"} {
		req := dto.CreateExperienceBookingRequest{ExperienceTime: raw, Guests: 1}

		_, err := req.Instant()

		assert.Error(t, err, "expected %q to be rejected", raw)
	}
}

func TestBookingResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	checkIn := time.Date(2024, time.July, 1, 0, 0, 0, 0, timezone.GetLocation())
	checkOut := time.Date(2024, time.July, 5, 0, 0, 0, 0, timezone.GetLocation())

	bookingModel := model.Booking{
		ID:       "booking-id",
		Kind:     model.KindRoom,
		UserID:   "user-id",
		RoomID:   sql.NullString{String: "room-id", Valid: true},
		Guests:   2,
		CheckIn:  sql.NullTime{Time: checkIn, Valid: true},
		CheckOut: sql.NullTime{Time: checkOut, Valid: true},
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "user-id",
			ModifiedBy: "user-id",
		},
	}

	var response dto.BookingResponse
	response.FromModel(bookingModel)

	assert.Equal(t, bookingModel.ID, response.ID)
	assert.Equal(t, model.KindRoom, response.Kind)
	assert.Equal(t, "room-id", response.RoomID)
	assert.Empty(t, response.ExperienceID)
	assert.Equal(t, "2024-07-01", response.CheckIn)
	assert.Equal(t, "2024-07-05", response.CheckOut)
	assert.Empty(t, response.ExperienceTime)
}

func TestBookingResponse_FromModel_Experience(t *testing.T) {
	instant := time.Date(2024, time.July, 1, 14, 0, 0, 0, timezone.GetLocation())

	bookingModel := model.Booking{
		ID:             "booking-id",
		Kind:           model.KindExperience,
		UserID:         "user-id",
		ExperienceID:   sql.NullString{String: "experience-id", Valid: true},
		Guests:         3,
		ExperienceTime: sql.NullTime{Time: instant, Valid: true},
	}

	var response dto.BookingResponse
	response.FromModel(bookingModel)

	assert.Equal(t, model.KindExperience, response.Kind)
	assert.Equal(t, "experience-id", response.ExperienceID)
	assert.Equal(t, "2024-07-01T14:00", response.ExperienceTime)
	assert.Empty(t, response.RoomID)
	assert.Empty(t, response.CheckIn)
	assert.Empty(t, response.CheckOut)
}

func TestCalendarResponse_FromModels(t *testing.T) {
	windowStart := time.Date(2024, time.July, 1, 0, 0, 0, 0, timezone.GetLocation())
	now := timezone.Now()

	bookings := []model.Booking{
		model.NewRoomBooking("user-1", "room-id", windowStart, windowStart.AddDate(0, 0, 3), 2, now),
		model.NewRoomBooking("user-2", "room-id", windowStart.AddDate(0, 0, 10), windowStart.AddDate(0, 0, 12), 1, now),
	}

	var response dto.CalendarResponse
	response.FromModels(bookings, windowStart, model.ScopeOwner)

	assert.Equal(t, 2024, response.Year)
	assert.Equal(t, 7, response.Month)
	assert.Equal(t, "owner", response.Scope)
	assert.Len(t, response.Bookings, 2)
	assert.Equal(t, bookings[0].ID, response.Bookings[0].ID)
}

func TestCalendarResponse_FromModels_EmptyMonth(t *testing.T) {
	windowStart := time.Date(2024, time.December, 1, 0, 0, 0, 0, timezone.GetLocation())

	var response dto.CalendarResponse
	response.FromModels(nil, windowStart, model.ScopeSelf)

	assert.Equal(t, 12, response.Month)
	assert.Equal(t, "self", response.Scope)
	assert.Len(t, response.Bookings, 0)
}

func TestGetBookingsResponse_FromModels(t *testing.T) {
	now := timezone.Now()
	bookings := []model.Booking{
		model.NewExperienceBooking("user-1", "experience-id", now.AddDate(0, 0, 7), 2, now),
	}

	var response dto.GetBookingsResponse
	response.FromModels(bookings, 11, 10)

	assert.Equal(t, 11, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Len(t, response.Bookings, 1)
}
