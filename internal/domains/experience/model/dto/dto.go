package dto

import (
	"time"

	"github.com/google/uuid"
	"roost/internal/domains/experience/model"
	"roost/shared"
	"roost/shared/constant"
	gDto "roost/shared/dto"
	"roost/shared/failure"
	gModel "roost/shared/model"
	"roost/shared/timezone"
)

type CreateExperienceRequest struct {
	Name        string   `json:"name" validate:"required,max=150"`
	Country     string   `json:"country" validate:"required,max=50"`
	City        string   `json:"city" validate:"required,max=80"`
	Address     string   `json:"address" validate:"required,max=250"`
	Price       int      `json:"price" validate:"required,gt=0"`
	Description string   `json:"description" validate:"omitempty,max=500"`
	Start       string   `json:"start" validate:"required"`
	End         string   `json:"end" validate:"required"`
	Perks       []string `json:"perks" validate:"omitempty,dive,uuid"`
}

func (c *CreateExperienceRequest) ToModel(user string) (model.Experience, error) {
	start, err := time.Parse(constant.TimeOfDayFormat, c.Start)
	if err != nil {
		return model.Experience{}, failure.BadRequestFromString("start must be in HH:MM form") // nolint:wrapcheck
	}

	end, err := time.Parse(constant.TimeOfDayFormat, c.End)
	if err != nil {
		return model.Experience{}, failure.BadRequestFromString("end must be in HH:MM form") // nolint:wrapcheck
	}

	if !end.After(start) {
		return model.Experience{}, failure.BadRequestFromString("end must be after start") // nolint:wrapcheck
	}

	return model.Experience{
		ID:          uuid.NewString(),
		HostID:      user,
		Name:        c.Name,
		Country:     c.Country,
		City:        c.City,
		Address:     c.Address,
		Price:       c.Price,
		Description: c.Description,
		Start:       start.Format(constant.TimeOfDayFormat),
		End:         end.Format(constant.TimeOfDayFormat),
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
			CreatedBy:  user,
			ModifiedBy: user,
		},
	}, nil
}

type UpdateExperienceRequest struct {
	Name        string `db:"name" json:"name" validate:"omitempty,max=150"`
	Country     string `db:"country" json:"country" validate:"omitempty,max=50"`
	City        string `db:"city" json:"city" validate:"omitempty,max=80"`
	Address     string `db:"address" json:"address" validate:"omitempty,max=250"`
	Price       *int   `db:"price" json:"price" validate:"omitempty,gt=0"`
	Description string `db:"description" json:"description" validate:"omitempty,max=500"`
}

type ExperienceResponse struct {
	ID          string `json:"id"`
	HostID      string `json:"host_id"`
	Name        string `json:"name"`
	Country     string `json:"country"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Price       int    `json:"price"`
	Description string `json:"description,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	gDto.Metadata
}

func (r *ExperienceResponse) FromModel(model model.Experience) {
	r.ID = model.ID
	r.HostID = model.HostID
	r.Name = model.Name
	r.Country = model.Country
	r.City = model.City
	r.Address = model.Address
	r.Price = model.Price
	r.Description = model.Description
	r.Start = model.Start
	r.End = model.End
	r.Metadata.FromModel(model.Metadata)
}

type GetExperiencesResponse struct {
	Experiences []ExperienceResponse `json:"experiences"`
	TotalPage   int                  `json:"total_page"`
	TotalData   int                  `json:"total_data"`
}

func (r *GetExperiencesResponse) FromModels(models []model.Experience, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Experiences = make([]ExperienceResponse, len(models))
	for i, mod := range models {
		r.Experiences[i].FromModel(mod)
	}
}
