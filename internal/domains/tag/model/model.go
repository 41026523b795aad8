package model

import "roost/shared/model"

const (
	TableName  = "tags"
	EntityName = "tag"

	FieldID      = "id"
	FieldKind    = "kind"
	FieldName    = "name"
	FieldDetails = "details"

	KindAmenity = "amenity"
	KindPerk    = "perk"
)

type Tag struct {
	ID      string `db:"id"`
	Kind    string `db:"kind"`
	Name    string `db:"name"`
	Details string `db:"details"`
	model.Metadata
}
