package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"villa/config"
	"villa/infras/otel"
	"villa/internal/domains/contact/model"
	"villa/internal/domains/contact/model/dto"
	"villa/internal/domains/contact/repository"
	"villa/shared"
	"villa/shared/cache"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/event"
	"villa/shared/failure"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetAllContact = "contact:gets"
)

const (
	errMessageNotFound = "message not found"
)

type Contact interface {
	Create(ctx context.Context, req dto.CreateContactRequest) (dto.ContactMessageResponse, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetContactMessagesResponse, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo      repository.ContactMessage
	publisher event.Publisher
	cfg       *config.Config
	cache     cache.RedisCache
	otel      otel.Otel
}

func New(repo repository.ContactMessage, publisher event.Publisher, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Contact {
	return &serviceImpl{
		repo:      repo,
		publisher: publisher,
		cfg:       cfg,
		cache:     cache,
		otel:      otel,
	}
}

// Create stores a message from the contact form and notifies the admin.
func (s *serviceImpl) Create(ctx context.Context, req dto.CreateContactRequest) (res dto.ContactMessageResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	if actor == constant.Empty {
		actor = constant.ContextGuest
	}

	message := req.ToModel(actor)

	if err = s.repo.Insert(ctx, message); err != nil {
		log.Error().Err(err).Msg("failed to create contact message")

		return res, fmt.Errorf("failed to create contact message: %w", err)
	}

	payload := event.ContactPayload{
		MessageID: message.ID,
		Name:      message.Name,
		Email:     message.Email,
		Message:   message.Message,
	}

	if message.Phone != nil {
		payload.Phone = *message.Phone
	}

	if message.Subject != nil {
		payload.Subject = *message.Subject
	}

	if err := s.publisher.Publish(ctx, event.KindContactCreated, message.ID, payload); err != nil {
		log.Error().Err(err).Str("messageID", message.ID).Msg("failed to publish contact event")
	}

	res.FromModel(message)

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetContactMessagesResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cache.Remember(ctx, s.cache, shared.BuildCacheKeyWithQuery(cacheGetAllContact, params, filter), s.cfg.Cache.TTL, func() (page dto.GetContactMessagesResponse, err error) {
		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count contact messages")

			return page, fmt.Errorf("failed to count contact messages: %w", err)
		}

		messages, err := s.repo.GetAll(ctx, params, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get contact messages")

			return page, fmt.Errorf("failed to get contact messages: %w", err)
		}

		page.FromModels(messages, total, params.Limit)

		return page, nil
	})
}

// MarkRead sets read to true. Marking an already read message succeeds.
func (s *serviceImpl) MarkRead(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".MarkRead")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check contact message existence")

		return fmt.Errorf("failed to check contact message existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errMessageNotFound)
	}

	if err = s.repo.Update(ctx, shared.TransformFields(dto.ReadChange{Read: true}, actor), filter); err != nil {
		log.Error().Err(err).Msg("failed to mark contact message read")

		return fmt.Errorf("failed to mark contact message read: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check contact message existence")

		return fmt.Errorf("failed to check contact message existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errMessageNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete contact message")

		return fmt.Errorf("failed to delete contact message: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllContact)
	}()
}
