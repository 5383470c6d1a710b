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
	"villa/infras/otel/mocks"
	bookingMocks "villa/internal/domains/booking/mocks"
	"villa/internal/domains/booking/model"
	"villa/internal/domains/booking/model/dto"
	"villa/internal/domains/booking/service"
	promotionModel "villa/internal/domains/promotion/model"
	promotionMocks "villa/internal/domains/promotion/service/mocks"
	cacheMocks "villa/shared/cache/mocks"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/event"
	eventMocks "villa/shared/event/mocks"
	"villa/shared/failure"
)

type fixture struct {
	svc        service.Booking
	repo       *bookingMocks.MockBooking
	promotions *promotionMocks.MockPromotion
	publisher  *eventMocks.MockPublisher
	cache      *cacheMocks.MockRedisCache
}

func setup(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:       bookingMocks.NewMockBooking(ctrl),
		promotions: promotionMocks.NewMockPromotion(ctrl),
		publisher:  eventMocks.NewMockPublisher(ctrl),
		cache:      cacheMocks.NewMockRedisCache(ctrl),
	}

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Villa.MaxGuests = 6

	f.svc = service.New(f.repo, f.promotions, f.publisher, cfg, f.cache, mocks.NewOtel())

	f.cache.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	f.cache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	return f
}

func asUser(id, role string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUserRole, role)
}

func stored(status model.Status, owner string) model.Booking {
	return model.Booking{
		ID:         "booking-1",
		UserID:     &owner,
		GuestName:  "Ann",
		GuestEmail: "ann@example.com",
		StartDate:  time.Date(2025, 7, 1, 14, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 7, 5, 10, 0, 0, 0, time.UTC),
		Guests:     2,
		Status:     status,
	}
}

func validRequest() dto.CreateBookingRequest {
	return dto.CreateBookingRequest{
		StartDate:  "2025-07-01T14:00:00.000Z",
		EndDate:    "2025-07-05T10:00:00.000Z",
		Guests:     2,
		GuestName:  "Ann",
		GuestEmail: "ann@example.com",
	}
}

func TestBookingService_Create(t *testing.T) {
	t.Run("dates are stored and returned unchanged", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, booking model.Booking) error {
			assert.Equal(t, time.Date(2025, 7, 1, 14, 0, 0, 0, time.UTC), booking.StartDate.UTC())
			assert.Equal(t, model.StatusPending, booking.Status)
			assert.Equal(t, "user-1", *booking.UserID)
			assert.Equal(t, "user-1", booking.CreatedBy)
			assert.Nil(t, booking.PromotionCode)

			return nil
		})
		f.publisher.EXPECT().Publish(gomock.Any(), event.KindBookingCreated, gomock.Any(), gomock.Any()).Return(nil)

		res, err := f.svc.Create(asUser("user-1", constant.RoleUser), validRequest())

		assert.NoError(t, err)
		assert.Equal(t, "2025-07-01T14:00:00.000Z", res.StartDate)
		assert.Equal(t, "2025-07-05T10:00:00.000Z", res.EndDate)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("anonymous booking has no user and publish failure is swallowed", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, booking model.Booking) error {
			assert.Nil(t, booking.UserID)
			assert.Equal(t, constant.ContextGuest, booking.CreatedBy)

			return nil
		})
		f.publisher.EXPECT().Publish(gomock.Any(), event.KindBookingCreated, gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		_, err := f.svc.Create(context.Background(), validRequest())

		assert.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("end before start", func(t *testing.T) {
		f := setup(t)

		req := validRequest()
		req.EndDate = "2025-06-30"

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("too many guests", func(t *testing.T) {
		f := setup(t)

		req := validRequest()
		req.Guests = 7

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("promotion code is validated against the start date", func(t *testing.T) {
		f := setup(t)

		code := "summer"
		req := validRequest()
		req.PromotionCode = &code

		f.promotions.EXPECT().
			ValidateForDate(gomock.Any(), "summer", time.Date(2025, 7, 1, 14, 0, 0, 0, time.UTC)).
			Return(promotionModel.Promotion{ID: "promo-1", Code: "SUMMER"}, nil)
		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, booking model.Booking) error {
			assert.Equal(t, "SUMMER", *booking.PromotionCode)

			return nil
		})
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.Create(context.Background(), req)

		assert.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("invalid promotion code", func(t *testing.T) {
		f := setup(t)

		code := "EXPIRED"
		req := validRequest()
		req.PromotionCode = &code

		f.promotions.EXPECT().
			ValidateForDate(gomock.Any(), "EXPIRED", gomock.Any()).
			Return(promotionModel.Promotion{}, failure.BadRequestFromString("promotion code is not valid for the selected dates"))

		_, err := f.svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_CreateManual(t *testing.T) {
	t.Run("confirmed booking over a confirmed one conflicts", func(t *testing.T) {
		f := setup(t)

		req := dto.AdminCreateBookingRequest{CreateBookingRequest: validRequest(), Status: model.StatusConfirmed}

		f.repo.EXPECT().Overlaps(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := f.svc.CreateManual(asUser("admin-1", constant.RoleAdmin), req)

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("status defaults to pending", func(t *testing.T) {
		f := setup(t)

		req := dto.AdminCreateBookingRequest{CreateBookingRequest: validRequest()}

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, booking model.Booking) error {
			assert.Equal(t, model.StatusPending, booking.Status)
			assert.Equal(t, "admin-1", booking.CreatedBy)

			return nil
		})
		f.publisher.EXPECT().Publish(gomock.Any(), event.KindBookingCreated, gomock.Any(), gomock.Any()).Return(nil)

		_, err := f.svc.CreateManual(asUser("admin-1", constant.RoleAdmin), req)

		assert.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	})
}

func TestBookingService_UpdateStatus(t *testing.T) {
	tests := []struct {
		name      string
		current   model.Status
		next      model.Status
		overlap   bool
		wantCode  int
		wantWrite bool
	}{
		{name: "pending to confirmed", current: model.StatusPending, next: model.StatusConfirmed, wantWrite: true},
		{name: "pending to confirmed over another stay", current: model.StatusPending, next: model.StatusConfirmed, overlap: true, wantCode: http.StatusConflict},
		{name: "confirmed to completed", current: model.StatusConfirmed, next: model.StatusCompleted, wantWrite: true},
		{name: "confirmed to cancelled", current: model.StatusConfirmed, next: model.StatusCancelled, wantWrite: true},
		{name: "cancelled to confirmed", current: model.StatusCancelled, next: model.StatusConfirmed, wantCode: http.StatusConflict},
		{name: "completed to pending", current: model.StatusCompleted, next: model.StatusPending, wantCode: http.StatusConflict},
		{name: "same state is a no-op", current: model.StatusConfirmed, next: model.StatusConfirmed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(tt.current, "user-1"), nil)

			if tt.next == model.StatusConfirmed && tt.current != tt.next && tt.current.CanTransition(tt.next) {
				f.repo.EXPECT().Overlaps(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(tt.overlap, nil)
			}

			if tt.wantWrite {
				f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(
					func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
						assert.Equal(t, tt.next, fields[model.FieldStatus])

						return nil
					})
				f.publisher.EXPECT().
					Publish(gomock.Any(), event.KindBookingStatusChanged, "booking-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ event.Kind, _ string, payload any) error {
						p := payload.(event.BookingPayload)
						assert.Equal(t, tt.current.String(), p.PreviousStatus)
						assert.Equal(t, tt.next.String(), p.Status)

						return nil
					})
			}

			err := f.svc.UpdateStatus(asUser("admin-1", constant.RoleAdmin), dto.UpdateStatusRequest{Status: tt.next}, "booking-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
			} else {
				assert.NoError(t, err)
			}

			time.Sleep(10 * time.Millisecond)
		})
	}

	t.Run("not found", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Booking{}, nil)

		err := f.svc.UpdateStatus(context.Background(), dto.UpdateStatusRequest{Status: model.StatusConfirmed}, "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestBookingService_GetForUser(t *testing.T) {
	tests := []struct {
		name     string
		ctx      context.Context
		wantCode int
	}{
		{name: "owner", ctx: asUser("user-1", constant.RoleUser)},
		{name: "admin", ctx: asUser("admin-1", constant.RoleAdmin)},
		{name: "someone else", ctx: asUser("user-2", constant.RoleUser), wantCode: http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setup(t)

			f.cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
			f.cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusPending, "user-1"), nil)

			res, err := f.svc.GetForUser(tt.ctx, "booking-1")

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))
				assert.Empty(t, res.ID)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "booking-1", res.ID)
			}

			time.Sleep(10 * time.Millisecond)
		})
	}
}

func TestBookingService_CancelMine(t *testing.T) {
	t.Run("owner cancels", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusConfirmed, "user-1"), nil)
		f.repo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		f.publisher.EXPECT().Publish(gomock.Any(), event.KindBookingStatusChanged, gomock.Any(), gomock.Any()).Return(nil)

		err := f.svc.CancelMine(asUser("user-1", constant.RoleUser), "booking-1")

		assert.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("not the owner", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusPending, "user-1"), nil)

		err := f.svc.CancelMine(asUser("user-2", constant.RoleUser), "booking-1")

		assert.Equal(t, http.StatusForbidden, failure.GetCode(err))
	})

	t.Run("completed stays completed", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(stored(model.StatusCompleted, "user-1"), nil)

		err := f.svc.CancelMine(asUser("user-1", constant.RoleUser), "booking-1")

		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})
}

func TestBookingService_Availability(t *testing.T) {
	t.Run("reports confirmed conflicts", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), model.FieldStartDate, model.FieldEndDate).
			Return([]model.Booking{stored(model.StatusConfirmed, "user-1")}, nil)

		res, err := f.svc.Availability(context.Background(), "2025-07-03", "2025-07-08")

		assert.NoError(t, err)
		assert.False(t, res.Available)
		assert.Equal(t, []dto.DateRange{{StartDate: "2025-07-01T14:00:00.000Z", EndDate: "2025-07-05T10:00:00.000Z"}}, res.Conflicts)
	})

	t.Run("free range", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, nil)

		res, err := f.svc.Availability(context.Background(), "2025-08-01", "2025-08-03")

		assert.NoError(t, err)
		assert.True(t, res.Available)
		assert.Empty(t, res.Conflicts)
	})

	t.Run("bad range", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.Availability(context.Background(), "2025-08-03", "2025-08-01")

		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})
}

func TestBookingService_SendReminders(t *testing.T) {
	f := setup(t)

	second := stored(model.StatusConfirmed, "user-2")
	second.ID = "booking-2"

	f.repo.EXPECT().
		GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]model.Booking{stored(model.StatusConfirmed, "user-1"), second}, nil)
	f.publisher.EXPECT().Publish(gomock.Any(), event.KindBookingReminder, "booking-1", gomock.Any()).Return(nil)
	f.publisher.EXPECT().Publish(gomock.Any(), event.KindBookingReminder, "booking-2", gomock.Any()).Return(errors.New("broker down"))

	sent, err := f.svc.SendReminders(context.Background(), time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC))

	assert.NoError(t, err)
	assert.Equal(t, 1, sent)
}

func TestBookingService_Delete(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

	err := f.svc.Delete(context.Background(), "missing")

	assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
}
