package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"time"
	"villa/config"
	"villa/infras/otel"
	"villa/internal/domains/promotion/model"
	"villa/internal/domains/promotion/model/dto"
	"villa/internal/domains/promotion/repository"
	"villa/shared"
	"villa/shared/cache"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"
	"villa/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	cacheGetPromotion    = "promotion:get"
	cacheGetAllPromotion = "promotion:gets"
	cacheRunning         = "promotion:running"
)

const (
	errPromotionNotFound = "promotion not found"
	errPromotionInvalid  = "promotion code is not valid for the selected dates"
)

type Promotion interface {
	ListRunning(ctx context.Context) ([]dto.PromotionResponse, error)
	Check(ctx context.Context, code string) (dto.PromotionResponse, error)
	ValidateForDate(ctx context.Context, code string, date time.Time) (model.Promotion, error)
	GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (dto.GetPromotionsResponse, error)
	Get(ctx context.Context, id string) (dto.PromotionResponse, error)
	Create(ctx context.Context, req dto.CreatePromotionRequest) (dto.PromotionResponse, error)
	Update(ctx context.Context, req dto.UpdatePromotionRequest, id string) error
	Delete(ctx context.Context, id string) error
}

type serviceImpl struct {
	repo  repository.Promotion
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Promotion, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Promotion {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// ListRunning returns the promotions that can be used right now, newest window first.
func (s *serviceImpl) ListRunning(ctx context.Context) (res []dto.PromotionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ListRunning")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()

	return cache.Remember(ctx, s.cache, shared.BuildCacheKey(cacheRunning, now.Format(constant.DayFormat)), s.cfg.Cache.TTL, func() ([]dto.PromotionResponse, error) {
		params := gDto.QueryParams{SortBy: model.FieldValidFrom, SortDir: gDto.SortDirDesc}

		promotions, err := s.repo.GetAll(ctx, params, model.FilterRunning(now))
		if err != nil {
			log.Error().Err(err).Msg("failed to get running promotions")

			return nil, fmt.Errorf("failed to get running promotions: %w", err)
		}

		running := make([]dto.PromotionResponse, len(promotions))
		for i, promotion := range promotions {
			running[i].FromModel(promotion)
		}

		return running, nil
	})
}

// Check looks a code up and tells whether it can be used today.
func (s *serviceImpl) Check(ctx context.Context, code string) (res dto.PromotionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Check")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	promotion, err := s.getByCode(ctx, code)
	if err != nil {
		return res, err
	}

	if promotion.ID == constant.Empty {
		return res, failure.NotFound(errPromotionNotFound)
	}

	if !promotion.AppliesOn(timezone.Now()) {
		return res, failure.BadRequestFromString("promotion is not currently active")
	}

	res.FromModel(promotion)

	return res, nil
}

// ValidateForDate returns the promotion for code when it covers a stay
// starting on date. Unknown and out-of-window codes are bad requests.
func (s *serviceImpl) ValidateForDate(ctx context.Context, code string, date time.Time) (res model.Promotion, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ValidateForDate")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	res, err = s.getByCode(ctx, code)
	if err != nil {
		return res, err
	}

	if res.ID == constant.Empty || !res.AppliesOn(date) {
		return model.Promotion{}, failure.BadRequestFromString(errPromotionInvalid)
	}

	return res, nil
}

func (s *serviceImpl) getByCode(ctx context.Context, code string) (model.Promotion, error) {
	promotion, err := s.repo.Get(ctx, model.FilterByCode(dto.NormalizeCode(code)))
	if err != nil {
		log.Error().Err(err).Msg("failed to get promotion by code")

		return promotion, fmt.Errorf("failed to get promotion: %w", err)
	}

	return promotion, nil
}

func (s *serviceImpl) GetAll(ctx context.Context, req gDto.QueryParams, filter gDto.FilterGroup) (res dto.GetPromotionsResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".GetAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cache.Remember(ctx, s.cache, shared.BuildCacheKeyWithQuery(cacheGetAllPromotion, req, filter), s.cfg.Cache.TTL, func() (page dto.GetPromotionsResponse, err error) {
		total, err := s.repo.Count(ctx, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to count promotions")

			return page, fmt.Errorf("failed to count promotions: %w", err)
		}

		promotions, err := s.repo.GetAll(ctx, req, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get promotions")

			return page, fmt.Errorf("failed to get promotions: %w", err)
		}

		page.FromModels(promotions, total, req.Limit)

		return page, nil
	})
}

func (s *serviceImpl) Get(ctx context.Context, id string) (res dto.PromotionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Get")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return cache.Remember(ctx, s.cache, shared.BuildCacheKey(cacheGetPromotion, id), s.cfg.Cache.TTL, func() (found dto.PromotionResponse, err error) {
		promotion, err := s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
		if err != nil {
			log.Error().Err(err).Msg("failed to get promotion")

			return found, fmt.Errorf("failed to get promotion: %w", err)
		}

		if promotion.ID == constant.Empty {
			return found, failure.NotFound(errPromotionNotFound)
		}

		found.FromModel(promotion)

		return found, nil
	})
}

func (s *serviceImpl) Create(ctx context.Context, req dto.CreatePromotionRequest) (res dto.PromotionResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)

	promotion, err := req.ToModel(actor)
	if err != nil {
		return res, failure.BadRequest(err)
	}

	exist, err := s.repo.Exist(ctx, model.FilterByCode(promotion.Code))
	if err != nil {
		log.Error().Err(err).Msg("failed to check promotion code")

		return res, fmt.Errorf("failed to check promotion code: %w", err)
	}

	if exist {
		return res, failure.Conflict("promotion code already exists")
	}

	err = s.repo.Insert(ctx, promotion)
	if shared.IsUniqueViolation(err) {
		return res, failure.Conflict("promotion code already exists")
	}

	if err != nil {
		log.Error().Err(err).Msg("failed to create promotion")

		return res, fmt.Errorf("failed to create promotion: %w", err)
	}

	res.FromModel(promotion)

	s.invalidate(ctx, constant.Empty)

	return res, nil
}

func (s *serviceImpl) Update(ctx context.Context, req dto.UpdatePromotionRequest, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Update")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdatePromotionRequest{}) {
		return failure.BadRequestFromString("update request cannot be empty")
	}

	actor, _ := ctx.Value(constant.ContextKeyUserID).(string)
	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	current, err := s.repo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get promotion")

		return fmt.Errorf("failed to get promotion: %w", err)
	}

	if current.ID == constant.Empty {
		return failure.NotFound(errPromotionNotFound)
	}

	changes, err := req.ToChanges(current)
	if err != nil {
		return failure.BadRequest(err)
	}

	if err = s.repo.Update(ctx, shared.TransformFields(changes, actor), filter); err != nil {
		log.Error().Err(err).Msg("failed to update promotion")

		return fmt.Errorf("failed to update promotion: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) Delete(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := shared.FilterByID(id, model.FieldID, model.TableName)

	exist, err := s.repo.Exist(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to check promotion existence")

		return fmt.Errorf("failed to check promotion existence: %w", err)
	}

	if !exist {
		return failure.NotFound(errPromotionNotFound)
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to delete promotion")

		return fmt.Errorf("failed to delete promotion: %w", err)
	}

	s.invalidate(ctx, id)

	return nil
}

func (s *serviceImpl) invalidate(ctx context.Context, id string) {
	go func() {
		c := context.WithoutCancel(ctx)

		if id != constant.Empty {
			if err := s.cache.Delete(c, shared.BuildCacheKey(cacheGetPromotion, id)); err != nil {
				log.Error().Err(err).Msg("failed to delete promotion cache")
			}
		}

		shared.InvalidateCaches(c, s.cache, cacheGetAllPromotion)
		shared.InvalidateCaches(c, s.cache, cacheRunning)
	}()
}
