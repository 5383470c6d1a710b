package dto_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"villa/internal/domains/booking/model"
	"villa/internal/domains/booking/model/dto"
)

func TestParseRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		wantErr    error
	}{
		{name: "iso timestamps", start: "2025-07-01T14:00:00.000Z", end: "2025-07-05T10:00:00.000Z"},
		{name: "calendar dates", start: "2025-07-01", end: "2025-07-05"},
		{name: "bad start", start: "July 1st", end: "2025-07-05", wantErr: dto.ErrInvalidStartDate},
		{name: "bad end", start: "2025-07-01", end: "soon", wantErr: dto.ErrInvalidEndDate},
		{name: "end before start", start: "2025-07-05", end: "2025-07-01", wantErr: dto.ErrInvalidRange},
		{name: "same day", start: "2025-07-05", end: "2025-07-05", wantErr: dto.ErrInvalidRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := dto.ParseRange(tt.start, tt.end)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestBookingResponse_DatesRoundTrip(t *testing.T) {
	start, end, err := dto.ParseRange("2025-07-01T14:00:00.000Z", "2025-07-05T10:00:00.000Z")
	assert.NoError(t, err)

	req := dto.CreateBookingRequest{Guests: 2, GuestName: "Ann", GuestEmail: "ann@example.com"}
	booking := req.ToModel(nil, "guest", start, end)

	var res dto.BookingResponse
	res.FromModel(booking)

	assert.Equal(t, "2025-07-01T14:00:00.000Z", res.StartDate)
	assert.Equal(t, "2025-07-05T10:00:00.000Z", res.EndDate)
	assert.Equal(t, model.StatusPending, res.Status)
}

func TestUpdateBookingRequest_ToChanges(t *testing.T) {
	current := model.Booking{
		StartDate: time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC),
	}

	t.Run("moving the end before the stored start fails", func(t *testing.T) {
		end := "2025-06-30T00:00:00Z"
		req := dto.UpdateBookingRequest{EndDate: &end}

		_, err := req.ToChanges(current)
		assert.ErrorIs(t, err, dto.ErrInvalidRange)
	})

	t.Run("only given fields are set", func(t *testing.T) {
		guests := 4
		end := "2025-07-08T00:00:00Z"
		req := dto.UpdateBookingRequest{Guests: &guests, EndDate: &end}

		changes, err := req.ToChanges(current)
		assert.NoError(t, err)
		assert.Nil(t, changes.StartDate)
		assert.Equal(t, time.Date(2025, 7, 8, 0, 0, 0, 0, time.UTC), changes.EndDate.UTC())
		assert.Equal(t, &guests, changes.Guests)
	})
}
