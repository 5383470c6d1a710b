package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"villa/config"
	"villa/infras/jwt"
	jwtMocks "villa/infras/jwt/mocks"
	"villa/infras/otel/mocks"
	sessionModel "villa/internal/domains/session/model"
	sessionMocks "villa/internal/domains/session/service/mocks"
	"villa/permissions"
	"villa/shared/constant"
	"villa/shared/failure"
	"villa/transport/http/middleware"
)

const (
	cookieName = "villa.sid"
	apiKey     = "internal-key"
)

type authFixture struct {
	router   *chi.Mux
	jwt      *jwtMocks.MockJWT
	sessions *sessionMocks.MockSession
}

func setupAuth(t *testing.T) authFixture {
	ctrl := gomock.NewController(t)

	f := authFixture{
		jwt:      jwtMocks.NewMockJWT(ctrl),
		sessions: sessionMocks.NewMockSession(ctrl),
	}

	cfg := &config.Config{}
	cfg.Session.CookieName = cookieName
	cfg.App.APIKey = apiKey

	perms := &permissions.PermissionData{
		Endpoints: []permissions.Permission{
			{Path: "/api/public", Method: http.MethodGet, Skip: true},
			{Path: "/api/bookings", Method: http.MethodPost, Optional: true},
			{Path: "/api/user", Method: http.MethodGet, Permissions: []string{constant.RoleUser, constant.RoleAdmin}},
			{Path: "/api/admin/users/{id}", Method: http.MethodGet, Permissions: []string{constant.RoleAdmin}},
		},
	}

	auth := middleware.NewAuthRoleMiddleware(f.jwt, f.sessions, mocks.NewOtel(), perms, cfg)

	whoami := func(w http.ResponseWriter, r *http.Request) {
		userID, _ := r.Context().Value(constant.ContextKeyUserID).(string)
		_, _ = w.Write([]byte(userID))
	}

	f.router = chi.NewRouter()
	f.router.Route("/api", func(r chi.Router) {
		r.Use(auth.APIKey, auth.Auth, auth.RBAC)

		r.Get("/public", whoami)
		r.Post("/bookings", whoami)
		r.Get("/user", whoami)
		r.Get("/admin/users/{id}", whoami)
		r.Get("/unlisted", whoami)
	})

	return f
}

func serve(router http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	return rec
}

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set(constant.RequestHeaderAuthorization, "Bearer "+token)

	return req
}

func TestAuthPublicRoute(t *testing.T) {
	f := setupAuth(t)

	rec := serve(f.router, httptest.NewRequest(http.MethodGet, "/api/public", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestAuthRequiresCredentials(t *testing.T) {
	f := setupAuth(t)

	for _, path := range []string{"/api/user", "/api/admin/users/user-1", "/api/unlisted"} {
		rec := serve(f.router, httptest.NewRequest(http.MethodGet, path, nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestAuthSessionCookie(t *testing.T) {
	t.Run("resolves the user from the session", func(t *testing.T) {
		f := setupAuth(t)

		f.sessions.EXPECT().Resolve(gomock.Any(), "session-1").Return(sessionModel.Session{
			ID:        "session-1",
			UserID:    "user-1",
			Role:      constant.RoleUser,
			ExpiresAt: time.Now().Add(time.Hour),
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: "session-1"})

		rec := serve(f.router, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("takes precedence over a bearer token", func(t *testing.T) {
		f := setupAuth(t)

		f.sessions.EXPECT().Resolve(gomock.Any(), "session-1").
			Return(sessionModel.Session{ID: "session-1", UserID: "user-1", Role: constant.RoleUser}, nil)

		req := withBearer(httptest.NewRequest(http.MethodGet, "/api/user", nil), "token")
		req.AddCookie(&http.Cookie{Name: cookieName, Value: "session-1"})

		rec := serve(f.router, req)

		assert.Equal(t, "user-1", rec.Body.String())
	})

	t.Run("an expired session is rejected", func(t *testing.T) {
		f := setupAuth(t)

		f.sessions.EXPECT().Resolve(gomock.Any(), "session-1").
			Return(sessionModel.Session{}, failure.Unauthorized("Session expired"))

		req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
		req.AddCookie(&http.Cookie{Name: cookieName, Value: "session-1"})

		rec := serve(f.router, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestAuthBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		claims *jwt.Claims
		err    error
		code   int
	}{
		{
			name:   "user reaches a user route",
			path:   "/api/user",
			claims: &jwt.Claims{UserID: "user-1", Role: constant.RoleUser},
			code:   http.StatusOK,
		},
		{
			name:   "user is forbidden from an admin route",
			path:   "/api/admin/users/user-2",
			claims: &jwt.Claims{UserID: "user-1", Role: constant.RoleUser},
			code:   http.StatusForbidden,
		},
		{
			name:   "admin reaches an admin route",
			path:   "/api/admin/users/user-2",
			claims: &jwt.Claims{UserID: "admin-1", Role: constant.RoleAdmin},
			code:   http.StatusOK,
		},
		{
			name:   "unlisted routes only need a login",
			path:   "/api/unlisted",
			claims: &jwt.Claims{UserID: "user-1", Role: constant.RoleUser},
			code:   http.StatusOK,
		},
		{
			name: "expired token",
			path: "/api/user",
			err:  jwt.ErrExpiredToken,
			code: http.StatusUnauthorized,
		},
		{
			name:   "claims without a user",
			path:   "/api/user",
			claims: &jwt.Claims{Role: constant.RoleUser},
			code:   http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := setupAuth(t)

			f.jwt.EXPECT().ValidateToken("token").Return(tt.claims, tt.err)

			rec := serve(f.router, withBearer(httptest.NewRequest(http.MethodGet, tt.path, nil), "token"))

			assert.Equal(t, tt.code, rec.Code)
		})
	}
}

func TestAuthOptionalRoute(t *testing.T) {
	t.Run("guests pass through", func(t *testing.T) {
		f := setupAuth(t)

		rec := serve(f.router, httptest.NewRequest(http.MethodPost, "/api/bookings", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("bad credentials fall back to guest", func(t *testing.T) {
		f := setupAuth(t)

		f.jwt.EXPECT().ValidateToken("token").Return(nil, jwt.ErrInvalidToken)

		rec := serve(f.router, withBearer(httptest.NewRequest(http.MethodPost, "/api/bookings", nil), "token"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("logged in callers are identified", func(t *testing.T) {
		f := setupAuth(t)

		f.jwt.EXPECT().ValidateToken("token").Return(&jwt.Claims{UserID: "user-1", Role: constant.RoleUser}, nil)

		rec := serve(f.router, withBearer(httptest.NewRequest(http.MethodPost, "/api/bookings", nil), "token"))

		assert.Equal(t, "user-1", rec.Body.String())
	})
}

func TestAPIKey(t *testing.T) {
	t.Run("a valid key skips authentication", func(t *testing.T) {
		f := setupAuth(t)

		req := httptest.NewRequest(http.MethodGet, "/api/admin/users/user-2", nil)
		req.Header.Set(constant.RequestHeaderAPIKey, apiKey)

		rec := serve(f.router, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("a wrong key is forbidden", func(t *testing.T) {
		f := setupAuth(t)

		req := httptest.NewRequest(http.MethodGet, "/api/public", nil)
		req.Header.Set(constant.RequestHeaderAPIKey, "guess")

		rec := serve(f.router, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}

func TestRBACWithoutPermissions(t *testing.T) {
	ctrl := gomock.NewController(t)

	cfg := &config.Config{}
	cfg.Session.CookieName = cookieName

	auth := middleware.NewAuthRoleMiddleware(jwtMocks.NewMockJWT(ctrl), sessionMocks.NewMockSession(ctrl), mocks.NewOtel(), nil, cfg)

	handler := auth.RBAC(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/user", nil)
	req = req.WithContext(context.WithValue(req.Context(), constant.ContextKeyUserRole, constant.RoleAdmin))

	rec := serve(handler, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
