package cache

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Remember serves key from c and falls back to load on a miss or a cache
// error. Loaded values are written back in the background with ttl seconds.
func Remember[T any](ctx context.Context, c RedisCache, key string, ttl int, load func() (T, error)) (T, error) {
	var cached T
	if err := c.Get(ctx, key, &cached); err == nil {
		log.Debug().Str("cacheKey", key).Msg("cache hit")

		return cached, nil
	}

	fresh, err := load()
	if err != nil {
		return fresh, err
	}

	go func(ctx context.Context) {
		if err := c.Save(ctx, key, fresh, ttl); err != nil {
			log.Error().Err(err).Str("cacheKey", key).Msg("failed to save to cache")
		}
	}(context.WithoutCancel(ctx))

	return fresh, nil
}
