package dto

import (
	"donmario/internal/domains/table/model"
	"donmario/shared"
	gDto "donmario/shared/dto"
	gModel "donmario/shared/model"
	"donmario/shared/timezone"
)

type CreateTableRequest struct {
	Capacity int `json:"capacity" validate:"required,min=1"`
}

func (c *CreateTableRequest) ToModel() model.Table {
	return model.Table{
		Capacity:  c.Capacity,
		Available: true,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type UpdateAvailabilityRequest struct {
	Available *bool `json:"available" validate:"required"`
}

type TableResponse struct {
	ID        int64 `json:"id"`
	Capacity  int   `json:"capacity"`
	Available bool  `json:"available"`
	gDto.Metadata
}

func (r *TableResponse) FromModel(model model.Table) {
	r.ID = model.ID
	r.Capacity = model.Capacity
	r.Available = model.Available
	r.Metadata.FromModel(model.Metadata)
}

type GetTablesResponse struct {
	Tables    []TableResponse `json:"tables"`
	TotalPage int             `json:"total_page"`
	TotalData int             `json:"total_data"`
}

func (r *GetTablesResponse) FromModels(models []model.Table, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Tables = make([]TableResponse, len(models))
	for i, mod := range models {
		r.Tables[i].FromModel(mod)
	}
}
