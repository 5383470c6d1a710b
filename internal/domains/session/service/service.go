package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"fmt"
	"villa/config"
	"villa/infras/otel"
	"villa/internal/domains/session/model"
	"villa/internal/domains/session/repository"
	"villa/shared"
	"villa/shared/cache"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"
	"villa/shared/timezone"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	errSessionInvalid = "session is invalid or has expired"
)

type Session interface {
	Create(ctx context.Context, userID, userAgent, ip string) (model.Session, error)
	Resolve(ctx context.Context, id string) (model.Session, error)
	Destroy(ctx context.Context, id string) error
	PurgeExpired(ctx context.Context) (int, error)
}

type serviceImpl struct {
	repo  repository.Session
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(repo repository.Session, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Session {
	return &serviceImpl{
		repo:  repo,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

func (s *serviceImpl) Create(ctx context.Context, userID, userAgent, ip string) (res model.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := timezone.Now()

	res = model.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.cfg.SessionTTL()),
		UserAgent: userAgent,
		IP:        ip,
		CreatedAt: now,
	}

	if err = s.repo.Insert(ctx, res); err != nil {
		log.Error().Err(err).Msg("failed to create session")

		return model.Session{}, fmt.Errorf("failed to create session: %w", err)
	}

	return res, nil
}

// Resolve returns the live session with its user. Missing, expired and
// deactivated sessions are all reported as unauthorized.
func (s *serviceImpl) Resolve(ctx context.Context, id string) (res model.Session, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Resolve")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if id == constant.Empty {
		return res, failure.Unauthorized(errSessionInvalid)
	}

	now := timezone.Now()
	cacheKey := shared.BuildCacheKey(model.CachePrefix, id)

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil && !res.Expired(now) {
		return res, nil
	}

	res, err = s.repo.Get(ctx, shared.FilterByID(id, model.FieldID, model.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get session")

		return res, fmt.Errorf("failed to get session: %w", err)
	}

	if res.ID == constant.Empty || res.Expired(now) || !res.Active {
		return model.Session{}, failure.Unauthorized(errSessionInvalid)
	}

	ttl := int(res.ExpiresAt.Sub(now).Seconds())

	go func(session model.Session) {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, session, ttl); err != nil {
			log.Error().Err(err).Msg("failed to save session to cache")
		}
	}(res)

	return res, nil
}

func (s *serviceImpl) Destroy(ctx context.Context, id string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Destroy")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = s.repo.Delete(ctx, shared.FilterByID(id, model.FieldID, model.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to delete session")

		return fmt.Errorf("failed to delete session: %w", err)
	}

	if err := s.cache.Delete(ctx, shared.BuildCacheKey(model.CachePrefix, id)); err != nil {
		log.Warn().Err(err).Msg("failed to delete session from cache")
	}

	return nil
}

// PurgeExpired removes every session past its expiry and reports how many went.
func (s *serviceImpl) PurgeExpired(ctx context.Context) (total int, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".PurgeExpired")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.FilterGroup{
		Operator: gDto.FilterGroupOperatorAnd,
		Filters: []any{
			gDto.Filter{
				Field:    model.FieldExpiresAt,
				Operator: gDto.FilterOperatorLessEq,
				Value:    timezone.Now(),
				Table:    model.TableName,
			},
		},
	}

	total, err = s.repo.Count(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to count expired sessions")

		return 0, fmt.Errorf("failed to count expired sessions: %w", err)
	}

	if total == 0 {
		return 0, nil
	}

	if err = s.repo.Delete(ctx, filter); err != nil {
		log.Error().Err(err).Msg("failed to purge expired sessions")

		return 0, fmt.Errorf("failed to purge expired sessions: %w", err)
	}

	log.Info().Int("total", total).Msg("expired sessions purged")

	return total, nil
}
