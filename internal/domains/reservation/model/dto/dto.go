package dto

import (
	"donmario/internal/domains/reservation/model"
	"donmario/shared"
	"donmario/shared/constant"
	gDto "donmario/shared/dto"
	gModel "donmario/shared/model"
	"donmario/shared/timezone"
)

type CreateReservationRequest struct {
	CustomerName  string `json:"customer_name"  validate:"required,max=100"`
	CustomerEmail string `json:"customer_email" validate:"omitempty,email,max=100"`
	Date          string `json:"date"           validate:"required,datetime=2006-01-02"`
	Time          string `json:"time"           validate:"required,datetime=15:04"`
	PartySize     int    `json:"party_size"     validate:"required,min=1"`
}

func (c *CreateReservationRequest) ToModel(tableID int64, reservedBy string) model.Reservation {
	return model.Reservation{
		CustomerName:  c.CustomerName,
		CustomerEmail: c.CustomerEmail,
		Date:          c.Date,
		Time:          c.Time,
		PartySize:     c.PartySize,
		TableID:       tableID,
		Status:        constant.ReservationStatusActive,
		ReservedBy:    reservedBy,
		Metadata: gModel.Metadata{
			CreatedAt:  timezone.Now(),
			ModifiedAt: timezone.Now(),
		},
	}
}

type ReservationResponse struct {
	ID            int64  `json:"id"`
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email,omitempty"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	PartySize     int    `json:"party_size"`
	TableID       int64  `json:"table_id"`
	Status        string `json:"status"`
	ReservedBy    string `json:"reserved_by"`
	gDto.Metadata
}

func (r *ReservationResponse) FromModel(model model.Reservation) {
	r.ID = model.ID
	r.CustomerName = model.CustomerName
	r.CustomerEmail = model.CustomerEmail
	r.Date = model.Date
	r.Time = model.Time
	r.PartySize = model.PartySize
	r.TableID = model.TableID
	r.Status = model.Status
	r.ReservedBy = model.ReservedBy
	r.Metadata.FromModel(model.Metadata)
}

type GetReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	TotalPage    int                   `json:"total_page"`
	TotalData    int                   `json:"total_data"`
}

func (r *GetReservationsResponse) FromModels(models []model.Reservation, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Reservations = make([]ReservationResponse, len(models))
	for i, mod := range models {
		r.Reservations[i].FromModel(mod)
	}
}

type OccupancyResponse struct {
	Date        string `json:"date"`
	TotalTables int    `json:"total_tables"`
	Occupied    int    `json:"occupied"`
	Free        int    `json:"free"`
	Percentage  string `json:"percentage"`
}
