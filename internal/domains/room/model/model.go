package model

import "roost/shared/model"

const (
	TableName  = "rooms"
	EntityName = "room"

	FieldID          = "id"
	FieldOwnerID     = "owner_id"
	FieldName        = "name"
	FieldCountry     = "country"
	FieldCity        = "city"
	FieldAddress     = "address"
	FieldPrice       = "price"
	FieldDescription = "description"
	FieldPetFriendly = "pet_friendly"

	JoinTableName   = "room_tags"
	JoinEntityField = "room_id"
	JoinTagField    = "tag_id"
)

type Room struct {
	ID          string `db:"id"`
	OwnerID     string `db:"owner_id"`
	Name        string `db:"name"`
	Country     string `db:"country"`
	City        string `db:"city"`
	Address     string `db:"address"`
	Price       int    `db:"price"`
	Description string `db:"description"`
	PetFriendly bool   `db:"pet_friendly"`
	model.Metadata
}
