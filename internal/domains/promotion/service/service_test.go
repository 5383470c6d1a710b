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
	promotionMocks "villa/internal/domains/promotion/mocks"
	"villa/internal/domains/promotion/model"
	"villa/internal/domains/promotion/model/dto"
	"villa/internal/domains/promotion/service"
	cacheMocks "villa/shared/cache/mocks"
	gDto "villa/shared/dto"
	"villa/shared/failure"
)

func setup(t *testing.T) (service.Promotion, *promotionMocks.MockPromotion, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	mockRepo := promotionMocks.NewMockPromotion(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func summer() model.Promotion {
	return model.Promotion{
		ID:              "promo-1",
		Code:            "SUMMER",
		Title:           "Summer deal",
		DiscountPercent: 15,
		ValidFrom:       time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		ValidTo:         time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC),
		Active:          true,
	}
}

func TestPromotionService_ValidateForDate(t *testing.T) {
	inactive := summer()
	inactive.Active = false

	tests := []struct {
		name     string
		stored   model.Promotion
		date     time.Time
		wantCode int
	}{
		{name: "inside the window", stored: summer(), date: time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)},
		{name: "on the last day", stored: summer(), date: time.Date(2025, 8, 31, 0, 0, 0, 0, time.UTC)},
		{name: "before the window", stored: summer(), date: time.Date(2025, 5, 31, 0, 0, 0, 0, time.UTC), wantCode: http.StatusBadRequest},
		{name: "after the window", stored: summer(), date: time.Date(2025, 9, 1, 0, 0, 0, 0, time.UTC), wantCode: http.StatusBadRequest},
		{name: "inactive", stored: inactive, date: time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), wantCode: http.StatusBadRequest},
		{name: "unknown code", stored: model.Promotion{}, date: time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC), wantCode: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, _ := setup(t)

			mockRepo.EXPECT().
				Get(gomock.Any(), gomock.Any()).
				DoAndReturn(func(_ context.Context, filter gDto.FilterGroup, _ ...string) (model.Promotion, error) {
					_, args := filter.GetWhereClause()
					assert.Equal(t, "SUMMER", args[model.FieldCode])

					return tt.stored, nil
				})

			promotion, err := svc.ValidateForDate(context.Background(), " summer ", tt.date)

			if tt.wantCode != 0 {
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, 15, promotion.DiscountPercent)
		})
	}
}

func TestPromotionService_Check(t *testing.T) {
	t.Run("unknown code", func(t *testing.T) {
		svc, mockRepo, _ := setup(t)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Promotion{}, nil)

		_, err := svc.Check(context.Background(), "NOPE")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("running promotion", func(t *testing.T) {
		svc, mockRepo, _ := setup(t)

		running := summer()
		running.ValidFrom = time.Now().Add(-24 * time.Hour)
		running.ValidTo = time.Now().Add(24 * time.Hour)

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(running, nil)

		res, err := svc.Check(context.Background(), "summer")
		assert.NoError(t, err)
		assert.Equal(t, "SUMMER", res.Code)
	})
}

func TestPromotionService_Create(t *testing.T) {
	req := dto.CreatePromotionRequest{
		Code:            "summer25",
		Title:           "Summer",
		DiscountPercent: 20,
		ValidFrom:       "2025-06-01",
		ValidTo:         "2025-08-31",
	}

	t.Run("invalid window", func(t *testing.T) {
		svc, _, _ := setup(t)

		bad := req
		bad.ValidTo = "2025-05-01"

		_, err := svc.Create(context.Background(), bad)
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("duplicate code", func(t *testing.T) {
		svc, mockRepo, _ := setup(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil)

		_, err := svc.Create(context.Background(), req)
		assert.Equal(t, http.StatusConflict, failure.GetCode(err))
	})

	t.Run("stores an upper-case code", func(t *testing.T) {
		svc, mockRepo, mockCache := setup(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, promotion model.Promotion) error {
				assert.Equal(t, "SUMMER25", promotion.Code)
				assert.True(t, promotion.Active)

				return nil
			})
		mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		res, err := svc.Create(context.Background(), req)

		time.Sleep(10 * time.Millisecond)

		assert.NoError(t, err)
		assert.Equal(t, "SUMMER25", res.Code)
	})
}

func TestPromotionService_Update(t *testing.T) {
	t.Run("window would invert", func(t *testing.T) {
		svc, mockRepo, _ := setup(t)

		validTo := "2025-05-01"

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(summer(), nil)

		err := svc.Update(context.Background(), dto.UpdatePromotionRequest{ValidTo: &validTo}, "promo-1")
		assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
	})

	t.Run("not found", func(t *testing.T) {
		svc, mockRepo, _ := setup(t)

		active := false

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Promotion{}, nil)

		err := svc.Update(context.Background(), dto.UpdatePromotionRequest{Active: &active}, "promo-1")
		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})

	t.Run("repository error", func(t *testing.T) {
		svc, mockRepo, _ := setup(t)

		active := false

		mockRepo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(summer(), nil)
		mockRepo.EXPECT().Update(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		err := svc.Update(context.Background(), dto.UpdatePromotionRequest{Active: &active}, "promo-1")
		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}
