package model

import (
	"donmario/shared/model"
)

const (
	TableName  = "dining_tables"
	EntityName = "table"

	FieldID        = "id"
	FieldCapacity  = "capacity"
	FieldAvailable = "available"
)

type Table struct {
	ID        int64 `db:"id"`
	Capacity  int   `db:"capacity"`
	Available bool  `db:"available"`
	model.Metadata
}
