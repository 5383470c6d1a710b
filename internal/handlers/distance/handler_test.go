package distance_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/infras/otel/mocks"
	"villa/internal/domains/distance/model/dto"
	distanceMocks "villa/internal/domains/distance/service/mocks"
	"villa/internal/handlers/distance"
	"villa/shared/failure"
)

func TestFromVilla(t *testing.T) {
	tests := []struct {
		name   string
		origin string
		res    dto.DistanceResponse
		err    error
		code   int
	}{
		{
			name:   "found",
			origin: "Ubud",
			res:    dto.DistanceResponse{Origin: "Ubud", DistanceMeters: 12000},
			code:   http.StatusOK,
		},
		{
			name: "missing origin",
			err:  failure.BadRequestFromString("origin is required"),
			code: http.StatusBadRequest,
		},
		{
			name:   "no route",
			origin: "Atlantis",
			err:    failure.NotFound("no route found from origin"),
			code:   http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			svc := distanceMocks.NewMockDistance(ctrl)

			svc.EXPECT().FromVilla(gomock.Any(), tt.origin).Return(tt.res, tt.err)

			handler := distance.New(svc, mocks.NewOtel())

			router := chi.NewRouter()
			handler.Router(router)

			req := httptest.NewRequest(http.MethodGet, "/distance?origin="+tt.origin, nil)
			rec := httptest.NewRecorder()

			router.ServeHTTP(rec, req)

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}
