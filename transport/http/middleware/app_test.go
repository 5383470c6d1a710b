package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	"villa/infras/otel/mocks"
	cacheMocks "villa/shared/cache/mocks"
	"villa/shared/constant"
	"villa/transport/http/middleware"
)

func limiterConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.RateLimiter.Enable = true
	cfg.App.RateLimiter.MaxRequests = 3
	cfg.App.RateLimiter.WindowSeconds = 60

	return cfg
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestRateLimit(t *testing.T) {
	t.Run("first request opens the window", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := cacheMocks.NewMockRedisCache(ctrl)

		c.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(1, nil)

		app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(), c)
		rec := serve(app.RateLimit()(okHandler()), httptest.NewRequest(http.MethodGet, "/api/blog", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "3", rec.Header().Get(constant.RequestHeaderRateLimit))
		assert.Equal(t, "2", rec.Header().Get(constant.RequestHeaderRateLimitRemaining))
	})

	t.Run("blocks once the limit is passed", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := cacheMocks.NewMockRedisCache(ctrl)

		c.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(4, nil)

		app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(), c)
		rec := serve(app.RateLimit()(okHandler()), httptest.NewRequest(http.MethodGet, "/api/blog", nil))

		assert.Equal(t, http.StatusTooManyRequests, rec.Code)
		assert.Equal(t, "60", rec.Header().Get(constant.RequestHeaderRateLimitWindow))
	})

	t.Run("cache outages let traffic through", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := cacheMocks.NewMockRedisCache(ctrl)

		c.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).Return(0, errors.New("connection refused"))

		app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(), c)
		rec := serve(app.RateLimit()(okHandler()), httptest.NewRequest(http.MethodGet, "/api/blog", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Header().Get(constant.RequestHeaderRateLimit))
	})

	t.Run("reconnecting from the same host shares one counter", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := cacheMocks.NewMockRedisCache(ctrl)

		var keys []string

		c.EXPECT().Increment(gomock.Any(), gomock.Any(), 60).
			DoAndReturn(func(_ any, key string, _ int) (int, error) {
				keys = append(keys, key)

				return len(keys), nil
			}).Times(2)

		app := middleware.NewAppMiddleware(mocks.NewOtel(), limiterConfig(), c)

		for _, addr := range []string{"203.0.113.7:51000", "203.0.113.7:51001"} {
			req := httptest.NewRequest(http.MethodPost, "/api/login", nil)
			req.RemoteAddr = addr

			serve(app.RateLimit()(okHandler()), req)
		}

		assert.Len(t, keys, 2)
		assert.Equal(t, keys[0], keys[1])
		assert.NotContains(t, keys[0], "51000")
	})

	t.Run("disabled limiter never touches the cache", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		c := cacheMocks.NewMockRedisCache(ctrl)

		app := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, c)
		rec := serve(app.RateLimit()(okHandler()), httptest.NewRequest(http.MethodGet, "/api/blog", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestTracing(t *testing.T) {
	ctrl := gomock.NewController(t)
	app := middleware.NewAppMiddleware(mocks.NewOtel(), &config.Config{}, cacheMocks.NewMockRedisCache(ctrl))

	t.Run("keeps the caller's request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/blog", nil)
		req.Header.Set(constant.RequestHeaderRequestID, "req-1")

		rec := serve(app.Tracing(okHandler()), req)

		assert.Equal(t, "req-1", rec.Header().Get(constant.RequestHeaderRequestID))
	})

	t.Run("generates a request id", func(t *testing.T) {
		rec := serve(app.Tracing(okHandler()), httptest.NewRequest(http.MethodGet, "/api/blog", nil))

		assert.NotEmpty(t, rec.Header().Get(constant.RequestHeaderRequestID))
	})

	t.Run("stores the first forwarded address", func(t *testing.T) {
		var clientIP string

		next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			clientIP, _ = r.Context().Value(constant.ContextKeyClientIP).(string)
		})

		req := httptest.NewRequest(http.MethodGet, "/api/blog", nil)
		req.Header.Set(constant.RequestHeaderForwardedFor, "203.0.113.9, 10.0.0.1")

		serve(app.Tracing(next), req)

		assert.Equal(t, "203.0.113.9", clientIP)
	})

	t.Run("drops the port of the remote address", func(t *testing.T) {
		var seen []string

		next := http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			ip, _ := r.Context().Value(constant.ContextKeyClientIP).(string)
			seen = append(seen, ip)
		})

		for _, addr := range []string{"203.0.113.7:51000", "203.0.113.7:51001"} {
			req := httptest.NewRequest(http.MethodGet, "/api/faqs", nil)
			req.RemoteAddr = addr

			serve(app.Tracing(next), req)
		}

		assert.Equal(t, []string{"203.0.113.7", "203.0.113.7"}, seen)
	})
}
