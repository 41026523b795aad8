package model

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"roost/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID             = "id"
	FieldKind           = "kind"
	FieldUserID         = "user_id"
	FieldRoomID         = "room_id"
	FieldExperienceID   = "experience_id"
	FieldGuests         = "guests"
	FieldCheckIn        = "check_in"
	FieldCheckOut       = "check_out"
	FieldExperienceTime = "experience_time"

	KindRoom       = "room"
	KindExperience = "experience"
)

// Booking is a reservation of either a room for a span of nights or an
// experience at a single instant. Kind decides which of the slot columns are
// set; the schema enforces the same split with check constraints.
type Booking struct {
	ID             string         `db:"id"`
	Kind           string         `db:"kind"`
	UserID         string         `db:"user_id"`
	RoomID         sql.NullString `db:"room_id"`
	ExperienceID   sql.NullString `db:"experience_id"`
	Guests         int            `db:"guests"`
	CheckIn        sql.NullTime   `db:"check_in"`
	CheckOut       sql.NullTime   `db:"check_out"`
	ExperienceTime sql.NullTime   `db:"experience_time"`
	model.Metadata
}

func NewRoomBooking(user, roomID string, checkIn, checkOut time.Time, guests int, now time.Time) Booking {
	return Booking{
		ID:      uuid.NewString(),
		Kind:    KindRoom,
		UserID:  user,
		RoomID:  sql.NullString{String: roomID, Valid: true},
		Guests:  guests,
		CheckIn: sql.NullTime{Time: checkIn, Valid: true},
		CheckOut: sql.NullTime{
			Time:  checkOut,
			Valid: true,
		},
		Metadata: model.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

func NewExperienceBooking(user, experienceID string, experienceTime time.Time, guests int, now time.Time) Booking {
	return Booking{
		ID:           uuid.NewString(),
		Kind:         KindExperience,
		UserID:       user,
		ExperienceID: sql.NullString{String: experienceID, Valid: true},
		Guests:       guests,
		ExperienceTime: sql.NullTime{
			Time:  experienceTime,
			Valid: true,
		},
		Metadata: model.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

// Scope controls how much of a resource's calendar a requester may see.
type Scope int

const (
	// ScopeSelf limits availability listings to the requester's own bookings.
	ScopeSelf Scope = iota
	// ScopeOwner exposes every booking on the resource. Granted to the
	// room owner or experience host.
	ScopeOwner
)

func (s Scope) String() string {
	if s == ScopeOwner {
		return "owner"
	}

	return "self"
}

// ScopeFor grants owner visibility only when the requester is the resource's
// owner.
func ScopeFor(requester, resourceOwner string) Scope {
	if requester != "" && requester == resourceOwner {
		return ScopeOwner
	}

	return ScopeSelf
}
