package model

import (
	"donmario/shared/model"
)

const (
	TableName  = "reservations"
	EntityName = "reservation"

	FieldID            = "id"
	FieldCustomerName  = "customer_name"
	FieldCustomerEmail = "customer_email"
	FieldDate          = "reservation_date"
	FieldTime          = "reservation_time"
	FieldPartySize     = "party_size"
	FieldTableID       = "table_id"
	FieldStatus        = "status"
	FieldReservedBy    = "reserved_by"
)

type Reservation struct {
	ID            int64  `db:"id"`
	CustomerName  string `db:"customer_name"`
	CustomerEmail string `db:"customer_email"`
	Date          string `db:"reservation_date"`
	Time          string `db:"reservation_time"`
	PartySize     int    `db:"party_size"`
	TableID       int64  `db:"table_id"`
	Status        string `db:"status"`
	ReservedBy    string `db:"reserved_by"`
	model.Metadata
}
