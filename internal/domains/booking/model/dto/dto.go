package dto

import (
	"time"

	"roost/internal/domains/booking/model"
	"roost/shared"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/failure"
	"roost/shared/timezone"
)

type CreateRoomBookingRequest struct {
	CheckIn  string `json:"check_in" validate:"required"`
	CheckOut string `json:"check_out" validate:"required"`
	Guests   int    `json:"guests" validate:"required,gt=0"`
}

// Dates parses the requested span. Syntax errors surface before any
// temporal rule is applied.
func (c *CreateRoomBookingRequest) Dates() (checkIn, checkOut time.Time, err error) {
	checkIn, err = timezone.Parse(constant.DateOnlyFormat, c.CheckIn)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_in must be a date in YYYY-MM-DD form") // nolint:wrapcheck
	}

	checkOut, err = timezone.Parse(constant.DateOnlyFormat, c.CheckOut)
	if err != nil {
		return checkIn, checkOut, failure.BadRequestFromString("check_out must be a date in YYYY-MM-DD form") // nolint:wrapcheck
	}

	return checkIn, checkOut, nil
}

type CreateExperienceBookingRequest struct {
	ExperienceTime string `json:"experience_time" validate:"required"`
	Guests         int    `json:"guests" validate:"required,gt=0"`
}

// Instant parses the requested instant, minute precision.
func (c *CreateExperienceBookingRequest) Instant() (time.Time, error) {
	instant, err := timezone.Parse(constant.DateTimeFormat, c.ExperienceTime)
	if err != nil {
		return instant, failure.BadRequestFromString("experience_time must be in YYYY-MM-DDTHH:MM form") // nolint:wrapcheck
	}

	return instant, nil
}

type BookingResponse struct {
	ID             string `json:"id"`
	Kind           string `json:"kind"`
	UserID         string `json:"user_id"`
	RoomID         string `json:"room_id,omitempty"`
	ExperienceID   string `json:"experience_id,omitempty"`
	Guests         int    `json:"guests"`
	CheckIn        string `json:"check_in,omitempty"`
	CheckOut       string `json:"check_out,omitempty"`
	ExperienceTime string `json:"experience_time,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(model model.Booking) {
	r.ID = model.ID
	r.Kind = model.Kind
	r.UserID = model.UserID
	r.Guests = model.Guests

	if model.RoomID.Valid {
		r.RoomID = model.RoomID.String
	}

	if model.ExperienceID.Valid {
		r.ExperienceID = model.ExperienceID.String
	}

	if model.CheckIn.Valid {
		r.CheckIn = timezone.Format(model.CheckIn.Time, constant.DateOnlyFormat)
	}

	if model.CheckOut.Valid {
		r.CheckOut = timezone.Format(model.CheckOut.Time, constant.DateOnlyFormat)
	}

	if model.ExperienceTime.Valid {
		r.ExperienceTime = timezone.Format(model.ExperienceTime.Time, constant.DateTimeFormat)
	}

	r.Metadata.FromModel(model.Metadata)
}

// CalendarResponse lists the bookings visible to the requester within one
// month of a resource's calendar, ordered by slot.
type CalendarResponse struct {
	Year     int               `json:"year"`
	Month    int               `json:"month"`
	Scope    string            `json:"scope"`
	Bookings []BookingResponse `json:"bookings"`
}

func (r *CalendarResponse) FromModels(models []model.Booking, windowStart time.Time, scope model.Scope) {
	r.Year = windowStart.Year()
	r.Month = int(windowStart.Month())
	r.Scope = scope.String()

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

// BookingCreatedEvent is published after a booking commits.
type BookingCreatedEvent struct {
	BookingID  string `json:"booking_id"`
	Kind       string `json:"kind"`
	ResourceID string `json:"resource_id"`
	UserID     string `json:"user_id"`
	Guests     int    `json:"guests"`
	OccurredAt string `json:"occurred_at"`
}
