package shared_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"villa/shared"
	"villa/shared/cache/mocks"
	"villa/shared/constant"
	"villa/shared/dto"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestConvertStringToBool(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		input string
		want  *bool
	}{
		{input: "", want: nil},
		{input: "  ", want: nil},
		{input: "true", want: &yes},
		{input: " 1 ", want: &yes},
		{input: "F", want: &no},
		{input: "false", want: &no},
		{input: "yes", want: nil},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			assert.Equal(t, tt.want, shared.ConvertStringToBool(tt.input))
		})
	}
}

func TestConvertStringToInt(t *testing.T) {
	assert.Equal(t, 42, shared.ConvertStringToInt("42", 1))
	assert.Equal(t, 3, shared.ConvertStringToInt(" 3", 1))
	assert.Equal(t, 7, shared.ConvertStringToInt("", 7))
	assert.Equal(t, 7, shared.ConvertStringToInt("two", 7))
}

func TestCalculateTotalPage(t *testing.T) {
	tests := []struct {
		total, limit, want int
	}{
		{total: 0, limit: 10, want: 1},
		{total: 5, limit: 0, want: 1},
		{total: 10, limit: 10, want: 1},
		{total: 11, limit: 10, want: 2},
		{total: 101, limit: 20, want: 6},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/%d", tt.total, tt.limit), func(t *testing.T) {
			assert.Equal(t, tt.want, shared.CalculateTotalPage(tt.total, tt.limit))
		})
	}
}

func TestTransformFields(t *testing.T) {
	type bookingChange struct {
		Status    string  `db:"status"`
		Guests    int     `db:"guests"`
		Note      *string `db:"note"`
		Untracked string
	}

	empty := ""

	t.Run("zero values are skipped", func(t *testing.T) {
		got := shared.TransformFields(bookingChange{Status: "confirmed", Untracked: "x"}, "admin")

		assert.Equal(t, "confirmed", got["status"])
		assert.NotContains(t, got, "guests")
		assert.NotContains(t, got, "note")
		assert.Equal(t, "admin", got[constant.FieldModifiedBy])
		assert.Contains(t, got, constant.FieldModifiedAt)
		assert.Len(t, got, 3)
	})

	t.Run("pointer to empty value is kept", func(t *testing.T) {
		got := shared.TransformFields(&bookingChange{Guests: 4, Note: &empty}, "guest")

		assert.Equal(t, 4, got["guests"])
		assert.Equal(t, &empty, got["note"])
	})
}

func TestFilterByID(t *testing.T) {
	group := shared.FilterByID("v-1", "id", "bookings")

	where, args := group.GetWhereClause()
	assert.Equal(t, "(bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "v-1"}, args)
}

func TestBuildCacheKey(t *testing.T) {
	assert.Equal(t, "faq:get:abc", shared.BuildCacheKey("faq:get", "abc"))
	assert.Equal(t, "faq:get", shared.BuildCacheKey("faq:get"))
}

func TestBuildCacheKeyWithQuery(t *testing.T) {
	params := dto.QueryParams{Page: 1, Limit: 10}
	byCategory := func(value string) dto.FilterGroup {
		return dto.FilterGroup{Filters: []any{
			dto.Filter{Field: "category", Operator: dto.FilterOperatorEq, Value: value},
		}}
	}

	first := shared.BuildCacheKeyWithQuery("faq:get_all", params, byCategory("house"))

	assert.Equal(t, first, shared.BuildCacheKeyWithQuery("faq:get_all", params, byCategory("house")))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("faq:get_all", params, byCategory("pool")))
	assert.NotEqual(t, first, shared.BuildCacheKeyWithQuery("faq:get_all", dto.QueryParams{Page: 2, Limit: 10}, byCategory("house")))
	assert.True(t, strings.HasPrefix(first, "faq:get_all:1:10:"))
}

func TestInvalidateCaches(t *testing.T) {
	ctrl := gomock.NewController(t)
	redisCache := mocks.NewMockRedisCache(ctrl)

	redisCache.EXPECT().Clear(gomock.Any(), "faq:*").Return(errors.New("redis down"))

	shared.InvalidateCaches(context.Background(), redisCache, "faq:")
}

func TestPostgresViolations(t *testing.T) {
	unique := &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeUniqueViolation)}
	fk := &pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeFkViolation)}

	assert.True(t, shared.IsUniqueViolation(fmt.Errorf("insert vote: %w", unique)))
	assert.False(t, shared.IsUniqueViolation(fk))
	assert.False(t, shared.IsUniqueViolation(errors.New("plain")))

	assert.True(t, shared.IsForeignKeyViolation(fmt.Errorf("insert movement: %w", fk)))
	assert.False(t, shared.IsForeignKeyViolation(unique))
	assert.False(t, shared.IsForeignKeyViolation(nil))
}

func TestHostOnly(t *testing.T) {
	tests := []struct {
		addr, want string
	}{
		{addr: "203.0.113.7:51000", want: "203.0.113.7"},
		{addr: "[2001:db8::1]:443", want: "2001:db8::1"},
		{addr: "203.0.113.7", want: "203.0.113.7"},
		{addr: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.addr, func(t *testing.T) {
			assert.Equal(t, tt.want, shared.HostOnly(tt.addr))
		})
	}
}

func TestTextToHTML(t *testing.T) {
	assert.Equal(t, "Hi &lt;Ann&gt;,<br>see you &amp; yours", shared.TextToHTML("Hi <Ann>,\nsee you & yours"))
}
