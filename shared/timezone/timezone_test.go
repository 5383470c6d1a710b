package timezone_test

import (
	"testing"
	"time"
	"villa/shared/timezone"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNowIsInVillaZone(t *testing.T) {
	now := timezone.Now()

	assert.False(t, now.IsZero())
	assert.Equal(t, timezone.GetLocation(), now.Location())
	assert.Equal(t, timezone.GetLocation(), timezone.ToAppTime(time.Now().UTC()).Location())
}

func TestDay(t *testing.T) {
	loc := timezone.GetLocation()
	evening := time.Date(2025, 7, 1, 22, 30, 0, 0, loc)

	from, to := timezone.Day(evening)

	assert.Equal(t, time.Date(2025, 7, 1, 0, 0, 0, 0, loc), from)
	assert.Equal(t, time.Date(2025, 7, 2, 0, 0, 0, 0, loc), to)
	assert.True(t, !evening.Before(from) && evening.Before(to))
}

func TestFormatAndParse(t *testing.T) {
	parsed, err := timezone.Parse(time.DateOnly, "2025-07-01")
	require.NoError(t, err)

	assert.Equal(t, "2025-07-01", timezone.Format(parsed, time.DateOnly))
}

func TestISO(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "2025-07-01T14:00:00.000Z", want: "2025-07-01T14:00:00.000Z"},
		{in: "2025-07-01T14:00:00Z", want: "2025-07-01T14:00:00.000Z"},
		{in: "2025-07-01T16:00:00.250+02:00", want: "2025-07-01T14:00:00.250Z"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			parsed, err := timezone.ParseISO(tt.in)
			require.NoError(t, err)

			assert.Equal(t, tt.want, timezone.FormatISO(parsed))
		})
	}

	_, err := timezone.ParseISO("not a date")
	assert.Error(t, err)

	day, err := timezone.ParseISO("2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, 2025, day.Year())
	assert.Equal(t, time.July, day.Month())
	assert.Equal(t, 1, day.Day())
}
