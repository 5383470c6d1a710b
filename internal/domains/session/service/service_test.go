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
	sessionMocks "villa/internal/domains/session/mocks"
	"villa/internal/domains/session/model"
	"villa/internal/domains/session/service"
	cacheMocks "villa/shared/cache/mocks"
	"villa/shared/failure"
)

func newService(t *testing.T) (service.Session, *sessionMocks.MockSession, *cacheMocks.MockRedisCache) {
	ctrl := gomock.NewController(t)

	mockRepo := sessionMocks.NewMockSession(ctrl)
	mockCache := cacheMocks.NewMockRedisCache(ctrl)

	cfg := &config.Config{}
	cfg.Session.TTLHours = 24

	return service.New(mockRepo, cfg, mockCache, mocks.NewOtel()), mockRepo, mockCache
}

func TestSessionService_Create(t *testing.T) {
	svc, mockRepo, _ := newService(t)

	t.Run("stores a session that expires after the configured ttl", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, session model.Session) error {
				assert.Equal(t, "user-1", session.UserID)
				assert.Equal(t, "curl", session.UserAgent)
				assert.Equal(t, "127.0.0.1", session.IP)
				assert.WithinDuration(t, session.CreatedAt.Add(24*time.Hour), session.ExpiresAt, time.Second)

				return nil
			})

		session, err := svc.Create(context.Background(), "user-1", "curl", "127.0.0.1")
		assert.NoError(t, err)
		assert.NotEmpty(t, session.ID)
	})

	t.Run("repository error", func(t *testing.T) {
		mockRepo.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			Return(errors.New("database error"))

		session, err := svc.Create(context.Background(), "user-1", "curl", "127.0.0.1")
		assert.Error(t, err)
		assert.Empty(t, session.ID)
	})
}

func TestSessionService_Resolve(t *testing.T) {
	live := model.Session{
		ID:        "session-1",
		UserID:    "user-1",
		Username:  "guest",
		Role:      "user",
		Active:    true,
		ExpiresAt: time.Now().Add(time.Hour),
	}

	tests := []struct {
		name      string
		id        string
		setupMock func(repo *sessionMocks.MockSession, cache *cacheMocks.MockRedisCache)
		wantCode  int
	}{
		{
			name:      "empty id",
			id:        "",
			setupMock: func(_ *sessionMocks.MockSession, _ *cacheMocks.MockRedisCache) {},
			wantCode:  http.StatusUnauthorized,
		},
		{
			name: "cache hit",
			id:   "session-1",
			setupMock: func(_ *sessionMocks.MockSession, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().
					Get(gomock.Any(), "session:get:session-1", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, value any) error {
						*value.(*model.Session) = live

						return nil
					})
			},
		},
		{
			name: "loaded from database",
			id:   "session-1",
			setupMock: func(repo *sessionMocks.MockSession, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(live, nil)
				cache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
			},
		},
		{
			name: "unknown session",
			id:   "missing",
			setupMock: func(repo *sessionMocks.MockSession, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Session{}, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "expired session",
			id:   "session-1",
			setupMock: func(repo *sessionMocks.MockSession, cache *cacheMocks.MockRedisCache) {
				expired := live
				expired.ExpiresAt = time.Now().Add(-time.Minute)

				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(expired, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "deactivated user",
			id:   "session-1",
			setupMock: func(repo *sessionMocks.MockSession, cache *cacheMocks.MockRedisCache) {
				inactive := live
				inactive.Active = false

				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(inactive, nil)
			},
			wantCode: http.StatusUnauthorized,
		},
		{
			name: "repository error",
			id:   "session-1",
			setupMock: func(repo *sessionMocks.MockSession, cache *cacheMocks.MockRedisCache) {
				cache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("cache miss"))
				repo.EXPECT().Get(gomock.Any(), gomock.Any()).Return(model.Session{}, errors.New("database error"))
			},
			wantCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mockRepo, mockCache := newService(t)
			tt.setupMock(mockRepo, mockCache)

			session, err := svc.Resolve(context.Background(), tt.id)

			time.Sleep(10 * time.Millisecond)

			if tt.wantCode != 0 {
				assert.Error(t, err)
				assert.Equal(t, tt.wantCode, failure.GetCode(err))

				return
			}

			assert.NoError(t, err)
			assert.Equal(t, live.ID, session.ID)
			assert.Equal(t, live.Username, session.Username)
		})
	}
}

func TestSessionService_Destroy(t *testing.T) {
	svc, mockRepo, mockCache := newService(t)

	mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)
	mockCache.EXPECT().Delete(gomock.Any(), "session:get:session-1").Return(nil)

	assert.NoError(t, svc.Destroy(context.Background(), "session-1"))
}

func TestSessionService_PurgeExpired(t *testing.T) {
	t.Run("nothing to purge", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(0, nil)

		total, err := svc.PurgeExpired(context.Background())
		assert.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("deletes expired sessions", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(nil)

		total, err := svc.PurgeExpired(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 3, total)
	})

	t.Run("delete error", func(t *testing.T) {
		svc, mockRepo, _ := newService(t)

		mockRepo.EXPECT().Count(gomock.Any(), gomock.Any()).Return(3, nil)
		mockRepo.EXPECT().Delete(gomock.Any(), gomock.Any()).Return(errors.New("database error"))

		_, err := svc.PurgeExpired(context.Background())
		assert.Error(t, err)
	})
}
