package dto

import (
	"github.com/google/uuid"
	"roost/internal/domains/tag/model"
	"roost/shared"
	gDto "roost/shared/dto"
	gModel "roost/shared/model"
	"roost/shared/timezone"
)

type CreateTagRequest struct {
	Kind    string `json:"kind" validate:"required,oneof=amenity perk"`
	Name    string `json:"name" validate:"required,max=150"`
	Details string `json:"details" validate:"omitempty,max=250"`
}

func (c *CreateTagRequest) ToModel(user string) model.Tag {
	return model.Tag{
		ID:      uuid.NewString(),
		Kind:    c.Kind,
		Name:    c.Name,
		Details: c.Details,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateTagRequest struct {
	Name    string `db:"name" json:"name" validate:"omitempty,max=150"`
	Details string `db:"details" json:"details" validate:"omitempty,max=250"`
}

type TagResponse struct {
	ID      string `json:"id"`
	Kind    string `json:"kind"`
	Name    string `json:"name"`
	Details string `json:"details,omitempty"`
	gDto.Metadata
}

func (r *TagResponse) FromModel(model model.Tag) {
	r.ID = model.ID
	r.Kind = model.Kind
	r.Name = model.Name
	r.Details = model.Details
	r.Metadata.FromModel(model.Metadata)
}

type GetTagsResponse struct {
	Tags      []TagResponse `json:"tags"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetTagsResponse) FromModels(models []model.Tag, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tags = make([]TagResponse, len(models))
	for i, mod := range models {
		r.Tags[i].FromModel(mod)
	}
}
