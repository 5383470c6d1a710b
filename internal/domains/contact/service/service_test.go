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
	contactMocks "villa/internal/domains/contact/mocks"
	"villa/internal/domains/contact/model"
	"villa/internal/domains/contact/model/dto"
	"villa/internal/domains/contact/service"
	cacheMocks "villa/shared/cache/mocks"
	gDto "villa/shared/dto"
	"villa/shared/event"
	eventMocks "villa/shared/event/mocks"
	"villa/shared/failure"
)

func setup(t *testing.T) (service.Contact, *contactMocks.MockContactMessage, *eventMocks.MockPublisher) {
	ctrl := gomock.NewController(t)

	mockRepo := contactMocks.NewMockContactMessage(ctrl)
	mockPublisher := eventMocks.NewMockPublisher(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)
	mockCache.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	cfg := &config.Config{}
	cfg.Cache.TTL = 60

	return service.New(mockRepo, mockPublisher, cfg, mockCache, mocks.NewOtel()), mockRepo, mockPublisher
}

func TestContactService_Create(t *testing.T) {
	subject := "Late check-in"
	req := dto.CreateContactRequest{
		Name:    " Ann ",
		Email:   "Ann@Example.com",
		Subject: &subject,
		Message: "Can we arrive at 11pm?",
	}

	t.Run("stores and notifies", func(t *testing.T) {
		svc, mockRepo, mockPublisher := setup(t)

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, message model.ContactMessage) error {
			assert.Equal(t, "Ann", message.Name)
			assert.Equal(t, "ann@example.com", message.Email)
			assert.False(t, message.Read)

			return nil
		})
		mockPublisher.EXPECT().
			Publish(gomock.Any(), event.KindContactCreated, gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ event.Kind, _ string, payload any) error {
				assert.Equal(t, "Late check-in", payload.(event.ContactPayload).Subject)

				return nil
			})

		res, err := svc.Create(context.Background(), req)

		assert.NoError(t, err)
		assert.NotEmpty(t, res.ID)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("notification failure does not fail the request", func(t *testing.T) {
		svc, mockRepo, mockPublisher := setup(t)

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		mockPublisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		_, err := svc.Create(context.Background(), req)

		assert.NoError(t, err)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("insert failure", func(t *testing.T) {
		svc, mockRepo, _ := setup(t)

		mockRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(errors.New("db down"))

		_, err := svc.Create(context.Background(), req)

		assert.Equal(t, http.StatusInternalServerError, failure.GetCode(err))
	})
}

func TestContactService_MarkRead(t *testing.T) {
	t.Run("marking twice leaves the message read", func(t *testing.T) {
		svc, mockRepo, _ := setup(t)

		read := false

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(true, nil).Times(2)
		mockRepo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, _ gDto.FilterGroup) error {
				read = fields[model.FieldRead].(bool)

				return nil
			}).
			Times(2)

		assert.NoError(t, svc.MarkRead(context.Background(), "msg-1"))
		assert.True(t, read)
		assert.NoError(t, svc.MarkRead(context.Background(), "msg-1"))
		assert.True(t, read)
		time.Sleep(10 * time.Millisecond)
	})

	t.Run("unknown message", func(t *testing.T) {
		svc, mockRepo, _ := setup(t)

		mockRepo.EXPECT().Exist(gomock.Any(), gomock.Any()).Return(false, nil)

		err := svc.MarkRead(context.Background(), "missing")

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}
