package dto_test

import (
	"net/http/httptest"
	"testing"
	"time"
	"villa/shared/constant"
	"villa/shared/dto"
	"villa/shared/model"

	"github.com/stretchr/testify/assert"
)

func TestMetadata_FromModel(t *testing.T) {
	makassar := time.FixedZone("WITA", 8*60*60)
	source := model.NewMetadata("admin-1", time.Date(2025, 7, 1, 8, 0, 0, 0, makassar))

	var metadata dto.Metadata
	metadata.FromModel(source)

	assert.Equal(t, dto.Metadata{
		CreatedAt:  "2025-07-01T00:00:00.000Z",
		ModifiedAt: "2025-07-01T00:00:00.000Z",
		CreatedBy:  "admin-1",
		ModifiedBy: "admin-1",
	}, metadata)
}

func TestQueryParams_FromRequest(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		preset   dto.QueryParams
		defaults bool
		expected dto.QueryParams
	}{
		{
			name:     "explicit values",
			query:    "?page=2&limit=20&sort_by=start_date&sort_dir=asc",
			expected: dto.QueryParams{Page: 2, Limit: 20, SortBy: "start_date", SortDir: dto.SortDirAsc},
		},
		{
			name:     "global defaults",
			defaults: true,
			expected: dto.QueryParams{
				Page:    constant.DefaultValuePage,
				Limit:   constant.DefaultValueLimit,
				SortBy:  constant.DefaultValueSortBy,
				SortDir: constant.DefaultValueSortDir,
			},
		},
		{
			name:     "handler presets survive defaults",
			preset:   dto.QueryParams{SortBy: "sort_order", SortDir: dto.SortDirAsc},
			defaults: true,
			expected: dto.QueryParams{Page: 1, Limit: constant.DefaultValueLimit, SortBy: "sort_order", SortDir: dto.SortDirAsc},
		},
		{
			name:     "garbage is ignored",
			query:    "?page=-1&limit=abc&sort_by=id;DROP%20TABLE%20bookings&sort_dir=sideways",
			expected: dto.QueryParams{},
		},
		{
			name:     "limit is capped",
			query:    "?limit=5000",
			expected: dto.QueryParams{Limit: dto.MaxLimit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := tt.preset
			params.FromRequest(httptest.NewRequest("GET", "/api/bookings"+tt.query, nil), tt.defaults)

			assert.Equal(t, tt.expected, params)
		})
	}
}

func TestQueryParams_Offset(t *testing.T) {
	assert.Equal(t, 0, dto.QueryParams{}.Offset())
	assert.Equal(t, 0, dto.QueryParams{Page: 1, Limit: 10}.Offset())
	assert.Equal(t, 20, dto.QueryParams{Page: 3, Limit: 10}.Offset())
}

func TestFilter_GetWhereClause(t *testing.T) {
	tests := []struct {
		name      string
		filter    dto.Filter
		wantWhere string
		wantArgs  map[string]any
	}{
		{
			name:      "eq with table",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorEq, Value: "confirmed", Table: "bookings"},
			wantWhere: "bookings.status = :status",
			wantArgs:  map[string]any{"status": "confirmed"},
		},
		{
			name:      "named argument",
			filter:    dto.Filter{ArgName: "range_end", Field: "start_date", Operator: dto.FilterOperatorLess, Value: 5},
			wantWhere: "start_date < :range_end",
			wantArgs:  map[string]any{"range_end": 5},
		},
		{
			name:      "like escapes wildcards",
			filter:    dto.Filter{Field: "title", Operator: dto.FilterOperatorLike, Value: "50%_off"},
			wantWhere: "LOWER(title) LIKE LOWER(:title)",
			wantArgs:  map[string]any{"title": `%50\%\_off%`},
		},
		{
			name:      "in binds each element",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{"pending", "confirmed"}},
			wantWhere: "status IN (:status_0, :status_1)",
			wantArgs:  map[string]any{"status_0": "pending", "status_1": "confirmed"},
		},
		{
			name:      "empty in matches nothing",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: []string{}},
			wantWhere: "FALSE",
			wantArgs:  map[string]any{},
		},
		{
			name:      "in with a scalar is still bound",
			filter:    dto.Filter{Field: "status", Operator: dto.FilterOperatorIn, Value: "pending"},
			wantWhere: "status = :status",
			wantArgs:  map[string]any{"status": "pending"},
		},
		{
			name:      "is null",
			filter:    dto.Filter{Field: "user_id", Operator: dto.FilterIsNull, Table: "bookings"},
			wantWhere: "bookings.user_id IS NULL",
			wantArgs:  map[string]any{},
		},
		{
			name:      "unknown operator",
			filter:    dto.Filter{Field: "x", Operator: "between"},
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
			dto.Filter{Field: "published", Operator: dto.FilterOperatorEq, Value: true},
			dto.Filter{Field: "ignored", Operator: "between"},
			dto.FilterGroup{
				Operator: dto.FilterGroupOperatorOr,
				Filters: []any{
					dto.Filter{Field: "title", Operator: dto.FilterOperatorLike, Value: "pool"},
					dto.Filter{Field: "excerpt", Operator: dto.FilterOperatorLike, Value: "pool"},
				},
			},
		},
	}

	where, args := group.GetWhereClause()

	assert.Equal(t, "(published = :published AND (LOWER(title) LIKE LOWER(:title) OR LOWER(excerpt) LIKE LOWER(:excerpt)))", where)
	assert.Len(t, args, 3)

	empty := dto.FilterGroup{}
	where, args = empty.GetWhereClause()

	assert.Empty(t, where)
	assert.Empty(t, args)
}
