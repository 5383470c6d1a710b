package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"villa/config"
	"villa/infras/otel"
	"villa/internal/domains/faq/model"
	"villa/internal/domains/faq/model/dto"
	"villa/internal/domains/faq/repository"
	"villa/shared"
	"villa/shared/cache"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"

	"github.com/rs/zerolog/log"
)

const cacheGetAllFaq = "faq:gets"

const (
	errFaqNotFound  = "faq not found"
	errUnknownVoter = "voter cannot be identified"
)

const (
	voterKeyUser      = "user:"
	voterKeyAnonymous = "anon:"
)

type Faq interface {
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (dto.GetFaqsResponse, error)
	Get(ctx context.Context, id string) (dto.FaqResponse, error)
	Create(ctx context.Context, req dto.CreateFaqRequest) (dto.FaqResponse, error)
	Update(ctx context.Context, req dto.UpdateFaqRequest, id string) error
	Delete(ctx context.Context, id string) error
	Vote(ctx context.Context, req dto.VoteRequest, id, anonymousKey string) (dto.VoteResponse, error)
}

type serviceImpl struct {
	repo  repository.Faq
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Faq, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Faq {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetFaqsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cache.Remember(ctx, s.cache, shared.BuildCacheKeyWithQuery(cacheGetAllFaq, params, filter), s.cfg.Cache.TTL, func() (page dto.GetFaqsResponse, err error) {
		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count faqs")

			return page, fmt.Errorf("failed to count faqs: %w", err)
		}

		faqs, err := s.repo.GetAll(ctx, params, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get faqs")

			return page, fmt.Errorf("failed to get faqs: %w", err)
		}

		page.FromModels(faqs, total, params.Limit)

		return page, nil
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.FaqResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	faq, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	res.FromModel(faq)

	return res, nil
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreateFaqRequest) (res dto.FaqResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	faq := req.ToModel(actor)

	if err = s.repo.Insert(ctx, faq); err != nil {
		log.Error().Err(err).Msg("failed to create faq")

		return res, fmt.Errorf("failed to create faq: %w", err)
	}

	res.FromModel(faq)

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdateFaqRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateFaqRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	if _, err = s.get(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Update(ctx, shared.TransformFields(req, actor), shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update faq")

		return fmt.Errorf("failed to update faq: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if _, err = s.get(ctx, id); err != nil {
		return err
	}

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete faq")

		return fmt.Errorf("failed to delete faq: %w", err)
	}

	s.invalidate(ctx)

	return nil
}

// Vote records the caller's verdict. Signed-in users vote as themselves;
// everyone else is keyed by anonymousKey (browser session id or client IP).
func (s *serviceImpl) Vote(ctx context.Context, req dto.VoteRequest, id, anonymousKey string) (res dto.VoteResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Vote")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req.Helpful == nil {
		return res, failure.BadRequestFromString("helpful is required")
	}

	userID, _ := ctx.Value(constant.ContextKeyUserID).(string)

	var (
		voterKey string
		voter    *string
		actor    = constant.ContextGuest
	)

	switch {
	case userID != constant.Empty:
		voterKey = voterKeyUser + userID
		voter = &userID
		actor = userID
	case anonymousKey != constant.Empty:
		voterKey = voterKeyAnonymous + anonymousKey
	default:
		return res, failure.BadRequestFromString(errUnknownVoter)
	}

	faq, err := s.get(ctx, id)
	if err != nil {
		return res, err
	}

	if !faq.Published {
		return res, failure.NotFound(errFaqNotFound)
	}

	counts, err := s.repo.Vote(ctx, req.ToModel(id, voterKey, voter, actor))
	if errors.Is(err, repository.ErrFaqNotFound) {
		return res, failure.NotFound(errFaqNotFound)
	}

	if err != nil {
		log.Error().Err(err).Str("faqID", id).Msg("failed to record faq vote")

		return res, fmt.Errorf("failed to record faq vote: %w", err)
	}

	res.ID = id
	res.HelpfulVotes = counts.HelpfulVotes
	res.NotHelpfulVotes = counts.NotHelpfulVotes

	s.invalidate(ctx)

	return res, nil
}

func (s *serviceImpl) get(ctx context.Context, id string) (model.Faq, error) {
	faq, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get faq")

		return faq, fmt.Errorf("failed to get faq: %w", err)
	}

	if faq.ID == constant.Empty {
		return faq, failure.NotFound(errFaqNotFound)
	}

	return faq, nil
}

func (s *serviceImpl) invalidate(ctx context.Context) {
	go func() {
		shared.InvalidateCaches(context.WithoutCancel(ctx), s.cache, cacheGetAllFaq)
	}()
}
