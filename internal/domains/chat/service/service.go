package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"villa/infras/otel"
	"villa/infras/websocket"
	"villa/internal/domains/chat/model"
	"villa/internal/domains/chat/model/dto"
	"villa/internal/domains/chat/repository"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/event"
	"villa/shared/failure"

	"github.com/rs/zerolog/log"
)

type Chat interface {
	GuestMessages(ctx context.Context, params gDto.QueryParams) (dto.GetMessagesResponse, error)
	GuestSend(ctx context.Context, req dto.SendMessageRequest) (dto.MessageResponse, error)
	Conversations(ctx context.Context) ([]dto.ConversationResponse, error)
	AdminThread(ctx context.Context, userID string, params gDto.QueryParams) (dto.GetMessagesResponse, error)
	AdminSend(ctx context.Context, userID string, req dto.SendMessageRequest) (dto.MessageResponse, error)
}

type serviceImpl struct {
	repo      repository.ChatMessage
	hub       websocket.Hub
	publisher event.Publisher
	otel      otel.Otel
}

func New(repo repository.ChatMessage, hub websocket.Hub, publisher event.Publisher, otel otel.Otel) Chat {
	return &serviceImpl{
		repo:      repo,
		hub:       hub,
		publisher: publisher,
		otel:      otel,
	}
}

func (s *serviceImpl) GuestMessages(ctx context.Context, params gDto.QueryParams) (res dto.GetMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GuestMessages")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, failure.Unauthorized("authentication required")
	}

	return s.thread(ctx, userID, params)
}

// GuestSend appends a message from the caller to their own thread.
func (s *serviceImpl) GuestSend(ctx context.Context, req dto.SendMessageRequest) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GuestSend")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if userID == constant.Empty {
		return res, failure.Unauthorized("authentication required")
	}

	message := req.ToModel(userID, model.SenderGuest, userID)

	res, err = s.insert(ctx, message)
	if err != nil {
		return res, err
	}

	username, _ := ctx.Value(constant.ContextKeyUsername).(string)

	payload := event.ChatPayload{
		MessageID: message.ID,
		UserID:    userID,
		Username:  username,
		Body:      message.Body,
	}

	if err := s.publisher.Publish(ctx, event.KindChatMessage, userID, payload); err != nil {
		log.Error().Err(err).Str("messageID", message.ID).Msg("failed to publish chat event")
	}

	return res, nil
}

// Conversations lists guest threads, most recently active first.
func (s *serviceImpl) Conversations(ctx context.Context) (res []dto.ConversationResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Conversations")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	conversations, err := s.repo.Conversations(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to get conversations")

		return nil, fmt.Errorf("failed to get conversations: %w", err)
	}

	res = make([]dto.ConversationResponse, len(conversations))
	for i, conversation := range conversations {
		res[i].FromModel(conversation)
	}

	return res, nil
}

// AdminThread returns the thread of userID and marks the guest's messages read.
func (s *serviceImpl) AdminThread(ctx context.Context, userID string, params gDto.QueryParams) (res dto.GetMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdminThread")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if err = s.repo.Update(ctx, shared.TransformFields(dto.ReadChange{Read: true}, actor), model.FilterUnreadFromGuest(userID)); err != nil {
		log.Error().Err(err).Msg("failed to mark chat messages read")

		return res, fmt.Errorf("failed to mark chat messages read: %w", err)
	}

	return s.thread(ctx, userID, params)
}

func (s *serviceImpl) AdminSend(ctx context.Context, userID string, req dto.SendMessageRequest) (res dto.MessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".AdminSend")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	return s.insert(ctx, req.ToModel(userID, model.SenderAdmin, actor))
}

func (s *serviceImpl) thread(ctx context.Context, userID string, params gDto.QueryParams) (res dto.GetMessagesResponse, err error) {
	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters:  []any{model.FilterByUser(userID)},
	}

	total, err := s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count chat messages")

		return res, fmt.Errorf("failed to count chat messages: %w", err)
	}

	params.SortBy = constant.FieldCreatedAt
	params.SortDir = gDto.SortDirAsc

	messages, err := s.repo.GetAll(ctx, params, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get chat messages")

		return res, fmt.Errorf("failed to get chat messages: %w", err)
	}

	res.FromModels(messages, total, params.Limit)

	return res, nil
}

func (s *serviceImpl) insert(ctx context.Context, message model.ChatMessage) (res dto.MessageResponse, err error) {
	err = s.repo.Insert(ctx, message)
	if shared.IsForeignKeyViolation(err) {
		return res, failure.NotFound("user not found")
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create chat message")

		return res, fmt.Errorf("failed to create chat message: %w", err)
	}

	res.FromModel(message)

	envelope := websocket.Envelope{Type: dto.EnvelopeTypeMessage, Data: res}

	if err := s.hub.SendToUser(message.UserID, envelope); err != nil {
		log.Warn().Err(err).Str("userID", message.UserID).Msg("failed to push chat message to guest")
	}

	if err := s.hub.SendToAdmins(envelope); err != nil {
		log.Warn().Err(err).Msg("failed to push chat message to admins")
	}

	return res, nil
}
