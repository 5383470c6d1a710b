package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/infras/otel/mocks"
	"villa/infras/websocket"
	wsMocks "villa/infras/websocket/mocks"
	chatMocks "villa/internal/domains/chat/mocks"
	"villa/internal/domains/chat/model"
	"villa/internal/domains/chat/model/dto"
	"villa/internal/domains/chat/service"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/event"
	eventMocks "villa/shared/event/mocks"
	"villa/shared/failure"
)

type fixture struct {
	svc       service.Chat
	repo      *chatMocks.MockChatMessage
	hub       *wsMocks.MockHub
	publisher *eventMocks.MockPublisher
}

func setup(t *testing.T) fixture {
	ctrl := gomock.NewController(t)

	f := fixture{
		repo:      chatMocks.NewMockChatMessage(ctrl),
		hub:       wsMocks.NewMockHub(ctrl),
		publisher: eventMocks.NewMockPublisher(ctrl),
	}
	f.svc = service.New(f.repo, f.hub, f.publisher, mocks.NewOtel())

	return f
}

func asUser(id, username string) context.Context {
	ctx := context.WithValue(context.Background(), constant.ContextKeyUserID, id)

	return context.WithValue(ctx, constant.ContextKeyUsername, username)
}

func TestChatService_GuestSend(t *testing.T) {
	t.Run("stores, pushes and notifies", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, message model.ChatMessage) error {
			assert.Equal(t, "guest-1", message.UserID)
			assert.Equal(t, model.SenderGuest, message.Sender)
			assert.Equal(t, "Is the pool heated?", message.Body)
			assert.False(t, message.Read)

			return nil
		})
		f.hub.EXPECT().SendToUser("guest-1", gomock.Any()).DoAndReturn(func(_ string, envelope websocket.Envelope) error {
			assert.Equal(t, dto.EnvelopeTypeMessage, envelope.Type)

			return nil
		})
		f.hub.EXPECT().SendToAdmins(gomock.Any()).Return(nil)
		f.publisher.EXPECT().
			Publish(gomock.Any(), event.KindChatMessage, "guest-1", gomock.Any()).
			DoAndReturn(func(_ context.Context, _ event.Kind, _ string, payload any) error {
				assert.Equal(t, "ann", payload.(event.ChatPayload).Username)

				return nil
			})

		res, err := f.svc.GuestSend(asUser("guest-1", "ann"), dto.SendMessageRequest{Body: "  Is the pool heated? "})

		assert.NoError(t, err)
		assert.Equal(t, model.SenderGuest, res.Sender)
	})

	t.Run("push and publish failures are not fatal", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
		f.hub.EXPECT().SendToUser(gomock.Any(), gomock.Any()).Return(errors.New("closed"))
		f.hub.EXPECT().SendToAdmins(gomock.Any()).Return(errors.New("closed"))
		f.publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("broker down"))

		_, err := f.svc.GuestSend(asUser("guest-1", "ann"), dto.SendMessageRequest{Body: "hello"})

		assert.NoError(t, err)
	})

	t.Run("anonymous", func(t *testing.T) {
		f := setup(t)

		_, err := f.svc.GuestSend(context.Background(), dto.SendMessageRequest{Body: "hello"})

		assert.Equal(t, http.StatusUnauthorized, failure.GetCode(err))
	})
}

func TestChatService_AdminSend(t *testing.T) {
	t.Run("admin replies are stored read and not published", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, message model.ChatMessage) error {
			assert.Equal(t, model.SenderAdmin, message.Sender)
			assert.True(t, message.Read)
			assert.Equal(t, "admin-1", message.CreatedBy)

			return nil
		})
		f.hub.EXPECT().SendToUser("guest-1", gomock.Any()).Return(nil)
		f.hub.EXPECT().SendToAdmins(gomock.Any()).Return(nil)

		_, err := f.svc.AdminSend(asUser("admin-1", "admin"), "guest-1", dto.SendMessageRequest{Body: "Yes, all year."})

		assert.NoError(t, err)
	})

	t.Run("unknown guest", func(t *testing.T) {
		f := setup(t)

		f.repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
			Return(&pq.Error{Code: pq.ErrorCode(constant.PqErrorCodeFkViolation)})

		_, err := f.svc.AdminSend(asUser("admin-1", "admin"), "missing", dto.SendMessageRequest{Body: "hi"})

		assert.Equal(t, http.StatusNotFound, failure.GetCode(err))
	})
}

func TestChatService_AdminThread(t *testing.T) {
	f := setup(t)

	created := time.Date(2025, 7, 1, 8, 0, 0, 0, time.UTC)
	message := model.ChatMessage{ID: "m1", UserID: "guest-1", Sender: model.SenderGuest, Body: "hi", Read: true}
	message.CreatedAt = created

	gomock.InOrder(
		f.repo.EXPECT().
			Update(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, fields map[string]any, filter gDto.FilterGroup) error {
				assert.Equal(t, true, fields[model.FieldRead])

				_, args := filter.GetWhereClause()
				assert.Equal(t, "guest-1", args[model.FieldUserID])
				assert.Equal(t, model.SenderGuest, args[model.FieldSender])

				return nil
			}),
		f.repo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(1, nil),
		f.repo.EXPECT().
			GetAll(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, params gDto.QueryParams, _ gDto.FilterGroup, _ ...string) ([]model.ChatMessage, error) {
				assert.Equal(t, gDto.SortDirAsc, params.SortDir)

				return []model.ChatMessage{message}, nil
			}),
	)

	res, err := f.svc.AdminThread(asUser("admin-1", "admin"), "guest-1", gDto.QueryParams{Page: 1, Limit: 50})

	assert.NoError(t, err)
	assert.Equal(t, 1, res.TotalData)
	assert.Equal(t, "2025-07-01T08:00:00.000Z", res.Messages[0].CreatedAt)
}

func TestChatService_Conversations(t *testing.T) {
	f := setup(t)

	f.repo.EXPECT().Conversations(gomock.Any()).Return([]model.Conversation{
		{UserID: "guest-1", Username: "ann", LastBody: "hi", LastSender: model.SenderGuest, UnreadCount: 2},
	}, nil)

	res, err := f.svc.Conversations(context.Background())

	assert.NoError(t, err)
	assert.Len(t, res, 1)
	assert.Equal(t, 2, res[0].UnreadCount)
}
