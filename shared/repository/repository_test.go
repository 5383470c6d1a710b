package repository

import (
	"context"
	"testing"
	"villa/infras/otel/mocks"
	"villa/shared/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type audit struct {
	CreatedBy string `db:"created_by"`
}

type stay struct {
	audit
	ID        string `db:"id"`
	GuestName string `db:"guest_name"`
	Username  string `db:"username" table:"users"`
	Label     string `db:"label" column:"name"`
	Ignored   string
}

func (stay) GetJoinQuery() string {
	return "LEFT JOIN users ON users.id = bookings.user_id"
}

func newStayRepo() Repository[stay] {
	return NewRepository[stay]("booking", "bookings", "id", nil, mocks.NewOtel())
}

func byID(id string) dto.FilterGroup {
	return dto.FilterGroup{Filters: []any{
		dto.Filter{Field: "id", Value: id, Operator: dto.FilterOperatorEq, Table: "bookings"},
	}}
}

func TestNewRepository(t *testing.T) {
	repo := newStayRepo()

	assert.Equal(t, "bookings", repo.Table())
	assert.Equal(t, []string{"created_by", "id", "guest_name", "label"}, repo.InsertColumns)
	assert.Equal(t, " LEFT JOIN users ON users.id = bookings.user_id", repo.joinClause())
}

func TestSelectList(t *testing.T) {
	repo := newStayRepo()

	tests := []struct {
		name string
		only []string
		want string
	}{
		{
			name: "all columns",
			want: "bookings.created_by, bookings.id, bookings.guest_name, users.username, bookings.name AS label",
		},
		{
			name: "restricted",
			only: []string{"id", "username"},
			want: "bookings.id, users.username",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, repo.selectList(tt.only...))
		})
	}
}

func TestInsertQuery(t *testing.T) {
	repo := newStayRepo()

	assert.Equal(t,
		"INSERT INTO bookings (created_by, id, guest_name, label) VALUES (:created_by, :id, :guest_name, :label)",
		repo.insertQuery())
}

func TestBuildWhereClause(t *testing.T) {
	repo := newStayRepo()

	where, args := repo.BuildWhereClause(context.Background(), byID("b-1"))
	assert.Equal(t, " WHERE (bookings.id = :id)", where)
	assert.Equal(t, map[string]any{"id": "b-1"}, args)

	where, args = repo.BuildWhereClause(context.Background(), dto.FilterGroup{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestUpdateQuery(t *testing.T) {
	repo := newStayRepo()

	t.Run("columns are sorted", func(t *testing.T) {
		query, args, err := repo.updateQuery(context.Background(), map[string]any{
			"status":     "confirmed",
			"guest_name": "Ana",
		}, byID("b-1"))
		require.NoError(t, err)

		assert.Equal(t, "UPDATE bookings SET guest_name = :guest_name, status = :status WHERE (bookings.id = :id)", query)
		assert.Equal(t, map[string]any{"id": "b-1", "status": "confirmed", "guest_name": "Ana"}, args)
	})

	t.Run("filter is required", func(t *testing.T) {
		_, _, err := repo.updateQuery(context.Background(), map[string]any{"status": "confirmed"}, dto.FilterGroup{})
		assert.ErrorIs(t, err, errRequiredFilter)
	})

	t.Run("nothing to update", func(t *testing.T) {
		_, _, err := repo.updateQuery(context.Background(), nil, byID("b-1"))
		assert.ErrorIs(t, err, errEmptyUpdate)
	})
}

func TestDeleteAndExistRequireFilter(t *testing.T) {
	repo := newStayRepo()

	err := repo.Delete(context.Background(), dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)

	_, err = repo.Exist(context.Background(), dto.FilterGroup{})
	assert.ErrorIs(t, err, errRequiredFilter)
}

func TestSelectQuery(t *testing.T) {
	repo := newStayRepo()

	assert.Equal(t,
		"SELECT bookings.id FROM bookings LEFT JOIN users ON users.id = bookings.user_id WHERE (bookings.id = :id)",
		repo.selectQuery(" WHERE (bookings.id = :id)", "id"))
}
