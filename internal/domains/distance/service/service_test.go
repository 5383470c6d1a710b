package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	"villa/infras/maps"
	mapsMocks "villa/infras/maps/mocks"
	"villa/infras/otel/mocks"
	"villa/internal/domains/distance/model/dto"
	"villa/internal/domains/distance/service"
	cacheMocks "villa/shared/cache/mocks"
	"villa/shared/failure"
)

const villaAddress = "Jl. Pantai Berawa 12, Canggu, Bali"

type fixture struct {
	svc   service.Distance
	maps  *mapsMocks.MockMaps
	cache *cacheMocks.MockRedisCache
}

func setup(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		maps:  mapsMocks.NewMockMaps(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Villa.Address = villaAddress

	f.svc = service.New(f.maps, cfg, f.cache, mocks.NewOtel())

	return f
}

func TestDistanceService_FromVilla(t *testing.T) {
	route := maps.Route{
		Origin:          "Ngurah Rai International Airport",
		Destination:     villaAddress,
		DistanceText:    "19.4 km",
		DistanceMeters:  19400,
		DurationText:    "45 mins",
		DurationSeconds: 2700,
	}

	tests := []struct {
		name     string
		origin   string
		mock     func(f fixture)
		want     dto.DistanceResponse
		wantCode int
	}{
		{
			name:     "empty origin",
			origin:   "   ",
			mock:     func(f fixture) {},
			wantCode: http.StatusBadRequest,
		},
		{
			name:   "cache hit skips maps",
			origin: "Airport",
			mock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), "distance:get:airport", gomock.Any()).Return(nil)
			},
		},
		{
			name:   "maps lookup",
			origin: "Airport",
			mock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.cache.EXPECT().Save(gomock.Any(), "distance:get:airport", gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
				f.maps.EXPECT().Distance(gomock.Any(), "Airport", villaAddress).Return(route, nil)
			},
			want: dto.DistanceResponse{
				Origin:          route.Origin,
				Destination:     villaAddress,
				DistanceText:    "19.4 km",
				DistanceMeters:  19400,
				DurationText:    "45 mins",
				DurationSeconds: 2700,
			},
		},
		{
			name:   "no route",
			origin: "Atlantis",
			mock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.maps.EXPECT().Distance(gomock.Any(), gomock.Any(), gomock.Any()).Return(maps.Route{}, maps.ErrNoRoute)
			},
			wantCode: http.StatusNotFound,
		},
		{
			name:   "maps unavailable",
			origin: "Airport",
			mock: func(f fixture) {
				f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
				f.maps.EXPECT().Distance(gomock.Any(), gomock.Any(), gomock.Any()).Return(maps.Route{}, maps.ErrNotConfigured)
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)
			tt.mock(f)

			res, err := f.svc.FromVilla(context.Background(), tt.origin)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, res)

			time.Sleep(10 * time.Millisecond)
		})
	}
}
