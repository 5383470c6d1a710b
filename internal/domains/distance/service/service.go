package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"villa/config"
	"villa/infras/maps"
	"villa/infras/otel"
	"villa/internal/domains/distance/model/dto"
	"villa/shared"
	"villa/shared/cache"
	"villa/shared/constant"
	"villa/shared/failure"

	"github.com/rs/zerolog/log"
)

const cacheGetDistance = "distance:get"

// routes change rarely, so answers are kept for a day regardless of Cache.TTL
const distanceTTLSeconds = 24 * 60 * 60

type Distance interface {
	FromVilla(ctx context.Context, origin string) (dto.DistanceResponse, error)
}

type serviceImpl struct {
	maps  maps.Maps
	cfg   *config.Config
	cache cache.RedisCache
	otel  otel.Otel
}

func New(maps maps.Maps, cfg *config.Config, cache cache.RedisCache, otel otel.Otel) Distance {
	return &serviceImpl{
		maps:  maps,
		cfg:   cfg,
		cache: cache,
		otel:  otel,
	}
}

// FromVilla measures the drive between origin and the villa's address.
func (s *serviceImpl) FromVilla(ctx context.Context, origin string) (res dto.DistanceResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".FromVilla")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	origin = strings.TrimSpace(origin)
	if origin == constant.Empty {
		return res, failure.BadRequestFromString("origin is required")
	}

	cacheKey := shared.BuildCacheKey(cacheGetDistance, strings.ToLower(origin))

	if err = s.cache.Get(ctx, cacheKey, &res); err == nil {
		log.Info().Str("cacheKey", cacheKey).Msg("cache hit for distance")

		return res, nil
	}

	route, err := s.maps.Distance(ctx, origin, s.cfg.Villa.Address)
	if errors.Is(err, maps.ErrNoRoute) {
		return res, failure.NotFound("no route found from origin")
	}

	if err != nil {
		log.Error().Err(err).Str("origin", origin).Msg("failed to get distance")

		return res, fmt.Errorf("failed to get distance: %w", err)
	}

	res.FromRoute(route)

	go func() {
		c := context.WithoutCancel(ctx)

		if err := s.cache.Save(c, cacheKey, res, distanceTTLSeconds); err != nil {
			log.Error().Err(err).Msg("failed to save distance to cache")
		}
	}()

	return res, nil
}
