package dto

import (
	"github.com/google/uuid"
	"roost/internal/domains/room/model"
	"roost/shared"
	gDto "roost/shared/dto"
	gModel "roost/shared/model"
	"roost/shared/timezone"
)

type CreateRoomRequest struct {
	Name        string   `json:"name" validate:"required,max=150"`
	Country     string   `json:"country" validate:"required,max=50"`
	City        string   `json:"city" validate:"required,max=80"`
	Address     string   `json:"address" validate:"required,max=250"`
	Price       int      `json:"price" validate:"required,gt=0"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	PetFriendly *bool    `json:"pet_friendly" validate:"omitempty"`
	Amenities   []string `json:"amenities" validate:"omitempty,dive,uuid"`
}

func (c *CreateRoomRequest) ToModel(user string) model.Room {
	petFriendly := true
	if c.PetFriendly != nil {
		petFriendly = *c.PetFriendly
	}

	return model.Room{
		ID:          uuid.NewString(),
		OwnerID:     user,
		Name:        c.Name,
		Country:     c.Country,
		City:        c.City,
		Address:     c.Address,
		Price:       c.Price,
		Description: c.Description,
		PetFriendly: petFriendly,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}
}

type UpdateRoomRequest struct {
	Name        string `db:"name" json:"name" validate:"omitempty,max=150"`
	Country     string `db:"country" json:"country" validate:"omitempty,max=50"`
	City        string `db:"city" json:"city" validate:"omitempty,max=80"`
	Address     string `db:"address" json:"address" validate:"omitempty,max=250"`
	Price       *int   `db:"price" json:"price" validate:"omitempty,gt=0"`
	Description string `db:"description" json:"description" validate:"omitempty,max=500"`
	PetFriendly *bool  `db:"pet_friendly" json:"pet_friendly" validate:"omitempty"`
}

type RoomResponse struct {
	ID          string `json:"id"`
	OwnerID     string `json:"owner_id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Price       int    `json:"price"`
	Description string `json:"description,omitempty"`
	PetFriendly bool   `json:"pet_friendly"`
	gDto.Metadata
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.ID = model.ID
	r.OwnerID = model.OwnerID
	r.Name = model.Name
	r.Country = model.Country
	r.City = model.City
	r.Address = model.Address
	r.Price = model.Price
	r.Description = model.Description
	r.PetFriendly = model.PetFriendly
	r.Metadata.FromModel(model.Metadata)
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
