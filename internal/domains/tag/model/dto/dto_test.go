package dto_test

import (
	"testing"

	"roost/internal/domains/tag/model"
	"roost/internal/domains/tag/model/dto"
	gModel "roost/shared/model"
	"roost/shared/timezone"

	"github.com/stretchr/testify/assert"
)

func TestCreateTagRequest_ToModel(t *testing.T) {
	req := dto.CreateTagRequest{
		Kind:    model.KindAmenity,
		Name:    "Fast Wifi",
		Details: "Fiber, 500 Mbps",
	}

	userID := "test-user-id"
	tag := req.ToModel(userID)

	assert.NotEmpty(t, tag.ID, "expected ID to be generated")
	assert.Equal(t, model.KindAmenity, tag.Kind)
	assert.Equal(t, req.Name, tag.Name)
	assert.Equal(t, req.Details, tag.Details)
	assert.Equal(t, userID, tag.CreatedBy)
	assert.Equal(t, userID, tag.ModifiedBy)
	assert.False(t, tag.CreatedAt.IsZero(), "expected CreatedAt to be set")
}

func TestTagResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	tagModel := model.Tag{
		ID:      "tag-id",
		Kind:    model.KindPerk,
		Name:    "Welcome Drink",
		Details: "One per guest",
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
			CreatedBy:  "test-user",
			ModifiedBy: "test-user",
		},
	}

	var response dto.TagResponse
	response.FromModel(tagModel)

	assert.Equal(t, tagModel.ID, response.ID)
	assert.Equal(t, tagModel.Kind, response.Kind)
	assert.Equal(t, tagModel.Name, response.Name)
	assert.Equal(t, tagModel.Details, response.Details)
	assert.Equal(t, tagModel.CreatedBy, response.CreatedBy)
}

func TestGetTagsResponse_FromModels(t *testing.T) {
	tags := []model.Tag{
		{ID: "tag-id-1", Kind: model.KindAmenity, Name: "Pool"},
		{ID: "tag-id-2", Kind: model.KindAmenity, Name: "Parking"},
	}

	totalData := 15
	limit := 10

	var response dto.GetTagsResponse
	response.FromModels(tags, totalData, limit)

	assert.Equal(t, totalData, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Len(t, response.Tags, len(tags))

	for i, tag := range response.Tags {
		assert.Equal(t, tags[i].ID, tag.ID)
		assert.Equal(t, tags[i].Name, tag.Name)
	}
}

func TestGetTagsResponse_FromModels_EmptyList(t *testing.T) {
	var response dto.GetTagsResponse
	response.FromModels(nil, 0, 10)

	assert.Equal(t, 0, response.TotalData)
	assert.Equal(t, 1, response.TotalPage)
	assert.Len(t, response.Tags, 0)
}
