package dto_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"donmario/internal/domains/reservation/model"
	"donmario/internal/domains/reservation/model/dto"
	"donmario/shared/constant"
	gModel "donmario/shared/model"
	"donmario/shared/timezone"
)

func TestCreateReservationRequest_ToModel(t *testing.T) {
	req := dto.CreateReservationRequest{
		CustomerName:  "Marta Diaz",
		CustomerEmail: "marta@example.com",
		Date:          "2026-09-15",
		Time:          "20:30",
		PartySize:     4,
	}

	reservation := req.ToModel(5, constant.OriginatorClient)

	assert.Equal(t, req.CustomerName, reservation.CustomerName)
	assert.Equal(t, req.CustomerEmail, reservation.CustomerEmail)
	assert.Equal(t, req.Date, reservation.Date)
	assert.Equal(t, req.Time, reservation.Time)
	assert.Equal(t, req.PartySize, reservation.PartySize)
	assert.Equal(t, int64(5), reservation.TableID)
	assert.Equal(t, constant.ReservationStatusActive, reservation.Status)
	assert.Equal(t, constant.OriginatorClient, reservation.ReservedBy)
	assert.False(t, reservation.CreatedAt.IsZero(), "expected CreatedAt to be set")
	assert.False(t, reservation.ModifiedAt.IsZero(), "expected ModifiedAt to be set")
}

func TestReservationResponse_FromModel(t *testing.T) {
	now := timezone.Now()
	reservation := model.Reservation{
		ID:            42,
		CustomerName:  "Marta Diaz",
		CustomerEmail: "marta@example.com",
		Date:          "2026-09-15",
		Time:          "20:30",
		PartySize:     4,
		TableID:       5,
		Status:        constant.ReservationStatusActive,
		ReservedBy:    constant.OriginatorAdmin,
		Metadata: gModel.Metadata{
			CreatedAt:  now,
			ModifiedAt: now,
		},
	}

	var response dto.ReservationResponse
	response.FromModel(reservation)

	assert.Equal(t, reservation.ID, response.ID)
	assert.Equal(t, reservation.CustomerName, response.CustomerName)
	assert.Equal(t, reservation.CustomerEmail, response.CustomerEmail)
	assert.Equal(t, reservation.Date, response.Date)
	assert.Equal(t, reservation.Time, response.Time)
	assert.Equal(t, reservation.PartySize, response.PartySize)
	assert.Equal(t, reservation.TableID, response.TableID)
	assert.Equal(t, reservation.Status, response.Status)
	assert.Equal(t, reservation.ReservedBy, response.ReservedBy)
}

func TestGetReservationsResponse_FromModels(t *testing.T) {
	reservations := []model.Reservation{
		{ID: 1, TableID: 5, Status: constant.ReservationStatusActive},
		{ID: 2, TableID: 6, Status: constant.ReservationStatusCancelled},
	}

	totalData := 15
	limit := 10

	var response dto.GetReservationsResponse
	response.FromModels(reservations, totalData, limit)

	assert.Equal(t, totalData, response.TotalData)
	assert.Equal(t, 2, response.TotalPage)
	assert.Len(t, response.Reservations, len(reservations))

	for i, reservation := range response.Reservations {
		assert.Equal(t, reservations[i].ID, reservation.ID)
		assert.Equal(t, reservations[i].TableID, reservation.TableID)
	}
}

func TestGetReservationsResponse_FromModels_EmptyList(t *testing.T) {
	var reservations []model.Reservation

	var response dto.GetReservationsResponse
	response.FromModels(reservations, 0, 10)

	assert.Equal(t, 0, response.TotalData)
	assert.Equal(t, 1, response.TotalPage)
	assert.Len(t, response.Reservations, 0)
}
