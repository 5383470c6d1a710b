package maps

//go:generate go run go.uber.org/mock/mockgen -source=./maps.go -destination=./mocks/maps_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"time"
	"villa/config"
	"villa/infras/otel"
	"villa/shared/constant"

	"github.com/rs/zerolog/log"
	googleMaps "googlemaps.github.io/maps"
)

const elementStatusOK = "OK"

var (
	ErrNotConfigured = errors.New("google maps is not configured")
	ErrNoRoute       = errors.New("no route between origin and destination")
)

// Route is one origin/destination pair of a Distance Matrix answer.
type Route struct {
	Origin          string
	Destination     string
	DistanceText    string
	DistanceMeters  int
	DurationText    string
	DurationSeconds int64
}

type Maps interface {
	Distance(ctx context.Context, origin, destination string) (Route, error)
}

type mapsImpl struct {
	client *googleMaps.Client
	otel   otel.Otel
}

func New(cfg *config.Config, otel otel.Otel) Maps {
	impl := &mapsImpl{otel: otel}

	if cfg.External.GoogleMaps.APIKey == "" {
		log.Warn().Msg("No Google Maps API key configured, distance lookups are disabled")

		return impl
	}

	client, err := googleMaps.NewClient(googleMaps.WithAPIKey(cfg.External.GoogleMaps.APIKey))
	if err != nil {
		log.Error().Err(err).Msg("Failed to create Google Maps client")

		return impl
	}

	impl.client = client

	return impl
}

func (m *mapsImpl) Distance(ctx context.Context, origin, destination string) (route Route, err error) {
	ctx, scope := m.otel.NewScope(ctx, constant.OtelExternalScopeName, constant.OtelExternalScopeName+".maps.Distance")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if m.client == nil {
		return route, ErrNotConfigured
	}

	res, err := m.client.DistanceMatrix(ctx, &googleMaps.DistanceMatrixRequest{
		Origins:      []string{origin},
		Destinations: []string{destination},
		Units:        googleMaps.UnitsMetric,
	})
	if err != nil {
		return route, fmt.Errorf("distance matrix request failed: %w", err)
	}

	return routeFromResponse(res, origin, destination)
}

func routeFromResponse(res *googleMaps.DistanceMatrixResponse, origin, destination string) (Route, error) {
	if res == nil || len(res.Rows) == 0 || len(res.Rows[0].Elements) == 0 {
		return Route{}, ErrNoRoute
	}

	element := res.Rows[0].Elements[0]
	if element == nil || element.Status != elementStatusOK {
		return Route{}, ErrNoRoute
	}

	route := Route{
		Origin:          origin,
		Destination:     destination,
		DistanceText:    element.Distance.HumanReadable,
		DistanceMeters:  element.Distance.Meters,
		DurationText:    humanDuration(element.Duration),
		DurationSeconds: int64(element.Duration.Seconds()),
	}

	if len(res.OriginAddresses) > 0 && res.OriginAddresses[0] != "" {
		route.Origin = res.OriginAddresses[0]
	}

	if len(res.DestinationAddresses) > 0 && res.DestinationAddresses[0] != "" {
		route.Destination = res.DestinationAddresses[0]
	}

	return route, nil
}

// humanDuration renders durations the way the Maps UI does ("1 hour 5 mins").
func humanDuration(d time.Duration) string {
	minutes := int(d.Round(time.Minute).Minutes())
	hours := minutes / 60
	minutes %= 60

	plural := func(n int, unit string) string {
		if n == 1 {
			return fmt.Sprintf("%d %s", n, unit)
		}

		return fmt.Sprintf("%d %ss", n, unit)
	}

	switch {
	case hours == 0:
		return plural(minutes, "min")
	case minutes == 0:
		return plural(hours, "hour")
	default:
		return plural(hours, "hour") + " " + plural(minutes, "min")
	}
}
