package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"villa/internal/domains/booking/model"
)

func TestStatus_CanTransition(t *testing.T) {
	tests := []struct {
		from, to model.Status
		want     bool
	}{
		{model.StatusPending, model.StatusConfirmed, true},
		{model.StatusPending, model.StatusCancelled, true},
		{model.StatusPending, model.StatusCompleted, false},
		{model.StatusConfirmed, model.StatusCancelled, true},
		{model.StatusConfirmed, model.StatusCompleted, true},
		{model.StatusConfirmed, model.StatusPending, false},
		{model.StatusCancelled, model.StatusConfirmed, false},
		{model.StatusCancelled, model.StatusPending, false},
		{model.StatusCompleted, model.StatusCancelled, false},
		{model.StatusCancelled, model.StatusCancelled, true},
	}

	for _, tt := range tests {
		t.Run(tt.from.String()+"->"+tt.to.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransition(tt.to))
		})
	}
}

func TestStatus_IsValid(t *testing.T) {
	assert.True(t, model.StatusPending.IsValid())
	assert.True(t, model.StatusCompleted.IsValid())
	assert.False(t, model.Status("archived").IsValid())
	assert.False(t, model.Status("").IsValid())
}

func TestFilterOverlapping(t *testing.T) {
	start := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)

	filter := model.FilterOverlapping(start, end, "self")
	where, args := filter.GetWhereClause()

	assert.Contains(t, where, "bookings.start_date < :range_end")
	assert.Contains(t, where, "bookings.end_date > :range_start")
	assert.Contains(t, where, "bookings.id != :id")
	assert.Equal(t, end, args["range_end"])
	assert.Equal(t, start, args["range_start"])
	assert.Equal(t, model.StatusConfirmed, args[model.FieldStatus])
}

func TestBooking_OwnedBy(t *testing.T) {
	owner := "user-1"

	assert.True(t, model.Booking{UserID: &owner}.OwnedBy("user-1"))
	assert.False(t, model.Booking{UserID: &owner}.OwnedBy("user-2"))
	assert.False(t, model.Booking{}.OwnedBy("user-1"))
}
