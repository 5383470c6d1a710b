package timezone

import (
	"time"
	"villa/config"
	"villa/shared/constant"

	"github.com/rs/zerolog/log"
)

const defaultZone = "UTC"

// villa is the zone the property runs on: check-in days, reminder runs and
// bare dates typed by guests are all read in it.
var villa = time.UTC

func init() {
	villa = load(config.Get().App.Timezone)
}

func load(name string) *time.Location {
	if name == constant.Empty {
		log.Warn().Str("timezone", defaultZone).Msg("no villa timezone configured")

		return time.UTC
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		log.Error().Err(err).Str("timezone", name).Msg("unknown villa timezone, using UTC")

		return time.UTC
	}

	log.Info().Str("timezone", loc.String()).Msg("villa timezone loaded")

	return loc
}

func Now() time.Time {
	return time.Now().In(villa)
}

func ToAppTime(t time.Time) time.Time {
	return t.In(villa)
}

func GetLocation() *time.Location {
	return villa
}

// Parse reads value in the villa timezone when the layout carries no offset.
func Parse(layout, value string) (time.Time, error) {
	return time.ParseInLocation(layout, value, villa)
}

func Format(t time.Time, layout string) string {
	return t.In(villa).Format(layout)
}

// Day returns the half-open [midnight, next midnight) window of the villa
// calendar day that contains t.
func Day(t time.Time) (from, to time.Time) {
	t = t.In(villa)
	from = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, villa)

	return from, from.AddDate(0, 0, 1)
}

// FormatISO renders t the way JavaScript's toISOString does: UTC with milliseconds.
func FormatISO(t time.Time) string {
	return t.UTC().Format(constant.ISODateFormat)
}

// ParseISO accepts RFC 3339 timestamps (with or without fractional seconds)
// and bare calendar dates.
func ParseISO(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}

	return Parse(constant.DayFormat, value)
}
