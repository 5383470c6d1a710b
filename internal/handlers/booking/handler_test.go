package booking_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/infras/otel/mocks"
	"villa/internal/domains/booking/model/dto"
	bookingMocks "villa/internal/domains/booking/service/mocks"
	"villa/internal/handlers/booking"
	gDto "villa/shared/dto"
	"villa/shared/failure"
)

func setup(t *testing.T) (*chi.Mux, *bookingMocks.MockBooking) {
	ctrl := gomock.NewController(t)
	svc := bookingMocks.NewMockBooking(ctrl)

	handler := booking.New(svc, mocks.NewOtel())

	router := chi.NewRouter()
	handler.Router(router)

	return router, svc
}

func TestCreateBooking(t *testing.T) {
	t.Run("rejects an incomplete body", func(t *testing.T) {
		router, _ := setup(t)

		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(`{"guests":2}`))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("returns 201 with the booking", func(t *testing.T) {
		router, svc := setup(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, req dto.CreateBookingRequest) (dto.BookingResponse, error) {
				assert.Equal(t, "2026-07-01", req.StartDate)
				assert.Equal(t, 2, req.Guests)

				return dto.BookingResponse{ID: "booking-1"}, nil
			})

		body := `{"start_date":"2026-07-01","end_date":"2026-07-04","guests":2,"guest_name":"Ann","guest_email":"ann@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Contains(t, rec.Body.String(), `"id":"booking-1"`)
	})

	t.Run("maps service failures to their status", func(t *testing.T) {
		router, svc := setup(t)

		svc.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(dto.BookingResponse{}, failure.Conflict("the villa is already booked for these dates"))

		body := `{"start_date":"2026-07-01","end_date":"2026-07-04","guests":2,"guest_name":"Ann","guest_email":"ann@example.com"}`
		req := httptest.NewRequest(http.MethodPost, "/bookings", strings.NewReader(body))
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestGetBookings(t *testing.T) {
	t.Run("rejects an unknown status", func(t *testing.T) {
		router, _ := setup(t)

		req := httptest.NewRequest(http.MethodGet, "/admin/bookings?status=lost", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		router, _ := setup(t)

		req := httptest.NewRequest(http.MethodGet, "/admin/bookings?from=yesterday", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("only filters on given query values", func(t *testing.T) {
		router, svc := setup(t)

		svc.EXPECT().GetAll(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ any, _ gDto.QueryParams, filter gDto.FilterGroup) (dto.GetBookingsResponse, error) {
				assert.Len(t, filter.Filters, 2)

				return dto.GetBookingsResponse{}, nil
			})

		req := httptest.NewRequest(http.MethodGet, "/admin/bookings?status=confirmed&user_id=user-1", nil)
		rec := httptest.NewRecorder()

		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}
