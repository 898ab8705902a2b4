package dto_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"donmario/shared/dto"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name: "eq with table",
			filter: dto.Filter{
				Field:    "status",
				Value:    "Active",
				Operator: dto.FilterOperatorEq,
				Table:    "reservations",
			},
			wantWhere: "reservations.status = :status",
			wantArgs:  map[string]any{"status": "Active"},
		},
		{
			name: "eq without table",
			filter: dto.Filter{
				Field:    "id",
				Value:    int64(5),
				Operator: dto.FilterOperatorEq,
			},
			wantWhere: "id = :id",
			wantArgs:  map[string]any{"id": int64(5)},
		},
		{
			name: "eq with explicit arg name",
			filter: dto.Filter{
				ArgName:  "want_available",
				Field:    "available",
				Value:    true,
				Operator: dto.FilterOperatorEq,
				Table:    "dining_tables",
			},
			wantWhere: "dining_tables.available = :want_available",
			wantArgs:  map[string]any{"want_available": true},
		},
		{
			name: "not eq",
			filter: dto.Filter{
				Field:    "status",
				Value:    "Cancelled",
				Operator: dto.FilterOperatorNotEq,
			},
			wantWhere: "status != :status",
			wantArgs:  map[string]any{"status": "Cancelled"},
		},
		{
			name: "greater eq",
			filter: dto.Filter{
				Field:    "party_size",
				Value:    2,
				Operator: dto.FilterOperatorGreaterEq,
			},
			wantWhere: "party_size >= :party_size",
			wantArgs:  map[string]any{"party_size": 2},
		},
		{
			name: "unknown operator",
			filter: dto.Filter{
				Field:    "status",
				Value:    "Active",
				Operator: "between",
			},
			wantWhere: "",
			wantArgs:  map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			where, args := tt.filter.GetWhereClause()

			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestFilter_GetWhereClauseIn(t *testing.T) {
	filter := dto.Filter{
		Field:    "status",
		Value:    []string{"Active", "Cancelled"},
		Operator: dto.FilterOperatorIn,
		Table:    "reservations",
	}

	where, args := filter.GetWhereClause()

	assert.Equal(t, "reservations.status IN (:status_0, :status_1) ", where)
	assert.Equal(t, map[string]any{"status_0": "Active", "status_1": "Cancelled"}, args)
}

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Filters: []any{
			dto.Filter{Field: "table_id", Value: int64(5), Operator: dto.FilterOperatorEq, Table: "reservations"},
			dto.Filter{Field: "reservation_date", Value: "2026-09-15", Operator: dto.FilterOperatorEq, Table: "reservations"},
			dto.Filter{Field: "status", Value: "Active", Operator: dto.FilterOperatorEq, Table: "reservations"},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(
		t,
		"(reservations.table_id = :table_id AND reservations.reservation_date = :reservation_date AND reservations.status = :status)",
		where,
	)
	assert.Equal(t, map[string]any{
		"table_id":         int64(5),
		"reservation_date": "2026-09-15",
		"status":           "Active",
	}, args)
}

func TestFilterGroup_GetWhereClauseEmpty(t *testing.T) {
	group := dto.FilterGroup{}

	where, args := group.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestFilterGroup_GetWhereClauseNested(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.Filter{Field: "status", Value: "Active", Operator: dto.FilterOperatorEq},
			dto.FilterGroup{
				Filters: []any{
					dto.Filter{Field: "table_id", Value: int64(5), Operator: dto.FilterOperatorEq},
					dto.Filter{Field: "party_size", Value: 2, Operator: dto.FilterOperatorGreaterEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(status = :status OR (table_id = :table_id AND party_size >= :party_size))", where)
	assert.Len(t, args, 3)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		defaultRequest bool
		want           dto.QueryParams
	}{
		{
			name:           "all params provided",
			url:            "/v1/reservations?page=2&limit=5&sort_by=id&sort_dir=desc",
			defaultRequest: false,
			want:           dto.QueryParams{Page: 2, Limit: 5, SortBy: "id", SortDir: "DESC"},
		},
		{
			name:           "missing params with defaults",
			url:            "/v1/reservations",
			defaultRequest: true,
			want:           dto.QueryParams{Page: 1, Limit: 10},
		},
		{
			name:           "invalid params are ignored",
			url:            "/v1/reservations?page=zero&limit=-3&sort_dir=sideways",
			defaultRequest: false,
			want:           dto.QueryParams{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tt.url, nil)

			var params dto.QueryParams
			params.FromRequest(r, tt.defaultRequest)

			assert.Equal(t, tt.want, params)
		})
	}
}
