package model

import "roost/shared/model"

const (
	TableName  = "experiences"
	EntityName = "experience"

	FieldID          = "id"
	FieldHostID      = "host_id"
	FieldName        = "name"
	FieldCountry     = "country"
	FieldCity        = "city"
	FieldAddress     = "address"
	FieldPrice       = "price"
	FieldDescription = "description"
	FieldStart       = "start_time"
	FieldEnd         = "end_time"

	JoinTableName   = "experience_tags"
	JoinEntityField = "experience_id"
	JoinTagField    = "tag_id"
)

// Start and End hold a wall-clock time of day in "15:04" form. Bookings for
// an experience must land exactly on Start.
type Experience struct {
	ID          string `db:"id"`
	HostID      string `db:"host_id"`
	Name        string `db:"name"`
	Country     string `db:"country"`
	City        string `db:"city"`
	Address     string `db:"address"`
	Price       int    `db:"price"`
	Description string `db:"description"`
	Start       string `db:"start_time"`
	End         string `db:"end_time"`
	model.Metadata
}
