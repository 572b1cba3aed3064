package dto_test

import (
	"chappbooking/shared/dto"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "id", Value: int64(3), Operator: dto.FilterOperatorEq, Table: "room_types"},
			wantWhere: "room_types.id = :id",
			wantArgs:  map[string]any{"id": int64(3)},
		},
		{
			name:      "greater or equal with arg name",
			filter:    dto.Filter{ArgName: "num_guest", Field: "max_guest", Value: 2, Operator: dto.FilterOperatorGreaterEq},
			wantWhere: "max_guest >= :num_guest",
			wantArgs:  map[string]any{"num_guest": 2},
		},
		{
			name:      "in with slice",
			filter:    dto.Filter{Field: "id", Value: []int{1, 2}, Operator: dto.FilterOperatorIn},
			wantWhere: "id IN (:id_0, :id_1)",
			wantArgs:  map[string]any{"id_0": 1, "id_1": 2},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "room_number", Operator: dto.FilterIsNull, Table: "bookings"},
			wantWhere: "bookings.room_number IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "id", Operator: "between"},
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

func TestFilterGroup_GetWhereClause(t *testing.T) {
	group := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{Field: "is_removed", Value: false, Operator: dto.FilterOperatorEq, Table: "room_types"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "max_guest", Value: 2, Operator: dto.FilterOperatorGreaterEq},
					dto.Filter{Field: "available_rooms", Value: 0, Operator: dto.FilterOperatorNotEq},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(room_types.is_removed = :is_removed AND (max_guest >= :max_guest OR available_rooms != :available_rooms))", where)
	assert.Equal(t, map[string]any{"is_removed": false, "max_guest": 2, "available_rooms": 0}, args)

	empty := dto.FilterGroup{}
	where, _ = empty.GetWhereClause()
	assert.Empty(t, where)
}
