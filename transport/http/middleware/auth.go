package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"villa/config"
	"villa/infras/jwt"
	"villa/infras/otel"
	sessionService "villa/internal/domains/session/service"
	"villa/permissions"
	"villa/shared/constant"
	"villa/shared/failure"
	"villa/transport/http/response"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

type SkipAuthKey string

const (
	errAuthRequired = "Authentication required"
)

// Auth defines the interface for authentication middleware
type Auth interface {
	Auth(http.Handler) http.Handler
	APIKey(http.Handler) http.Handler
}

// Role defines the interface for role-based access control middleware
type Role interface {
	RBAC(http.Handler) http.Handler
}

// AuthRole combines all middleware interfaces
type AuthRole interface {
	Auth
	Role
}

type authRoleImpl struct {
	jwtService jwt.JWT
	sessions   sessionService.Session
	otel       otel.Otel
	permission *permissions.PermissionData
	cfg        *config.Config
}

func NewAuthRoleMiddleware(
	jwtService jwt.JWT,
	sessions sessionService.Session,
	otel otel.Otel,
	permissions *permissions.PermissionData,
	cfg *config.Config,
) AuthRole {
	return &authRoleImpl{
		jwtService: jwtService,
		sessions:   sessions,
		otel:       otel,
		permission: permissions,
		cfg:        cfg,
	}
}

// Auth resolves the caller from the session cookie, falling back to a bearer
// token. Public routes pass untouched and optional routes let guests through.
func (m *authRoleImpl) Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx, scope := m.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, "auth.middleware")

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		path, permission := m.findPermission(request)

		scope.SetAttributes(map[string]any{
			"middleware.type": "auth",
			"http.path":       path,
			"http.method":     request.Method,
		})

		if permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		authCtx, err := m.identify(ctx, request)
		if err != nil {
			if permission.Optional {
				scope.AddEvent("continuing as guest")
				scope.End()
				next.ServeHTTP(writer, request)

				return
			}

			scope.TraceError(err)
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()

		next.ServeHTTP(writer, request.WithContext(authCtx))
	})
}

func (m *authRoleImpl) identify(ctx context.Context, request *http.Request) (context.Context, error) {
	var sessionErr error

	if cookie, err := request.Cookie(m.cfg.Session.CookieName); err == nil && cookie.Value != constant.Empty {
		session, err := m.sessions.Resolve(ctx, cookie.Value)
		if err == nil {
			ctx = context.WithValue(ctx, constant.ContextKeyUserID, session.UserID)
			ctx = context.WithValue(ctx, constant.ContextKeyUsername, session.Username)
			ctx = context.WithValue(ctx, constant.ContextKeyUserEmail, session.Email)
			ctx = context.WithValue(ctx, constant.ContextKeyUserRole, session.Role)
			ctx = context.WithValue(ctx, constant.ContextKeySessionID, session.ID)

			return ctx, nil
		}

		sessionErr = err
	}

	authHeader := request.Header.Get(constant.RequestHeaderAuthorization)
	if authHeader == constant.Empty {
		if sessionErr != nil {
			return ctx, sessionErr
		}

		return ctx, failure.Unauthorized(errAuthRequired)
	}

	tokenString, err := jwt.ExtractTokenFromHeader(authHeader)
	if err != nil {
		return ctx, failure.Unauthorized("Invalid authorization header format")
	}

	claims, err := m.jwtService.ValidateToken(tokenString)
	if err != nil {
		message := "Invalid token"
		if errors.Is(err, jwt.ErrExpiredToken) {
			message = "Token has expired"
		}

		return ctx, failure.Unauthorized(message)
	}

	if claims.UserID == constant.Empty {
		log.Error().Msg("JWT claims: UserID is empty")

		return ctx, failure.Unauthorized("Invalid token claims")
	}

	ctx = context.WithValue(ctx, constant.ContextKeyUserID, claims.UserID)
	ctx = context.WithValue(ctx, constant.ContextKeyUsername, claims.Username)
	ctx = context.WithValue(ctx, constant.ContextKeyUserRole, claims.Role)
	ctx = context.WithValue(ctx, constant.ContextKeyTokenID, claims.ID)

	return ctx, nil
}

// RBAC checks if user has required role
// Requires prior authentication via Auth middleware
func (m *authRoleImpl) RBAC(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "rbac.middleware")

		if skip, _ := ctx.Value(SkipAuthKey("skip")).(bool); skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		if m.permission == nil {
			scope.End()
			response.WithError(writer, failure.ForbiddenError)

			return
		}

		if m.permission.Skip {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		_, permission := m.findPermission(request)

		if permission.Skip || len(permission.Permissions) == 0 {
			scope.End()
			next.ServeHTTP(writer, request)

			return
		}

		userRole, _ := ctx.Value(constant.ContextKeyUserRole).(string)

		if !slices.Contains(permission.Permissions, userRole) {
			err := failure.ForbiddenError
			scope.TraceError(err)
			scope.SetAttributes(map[string]any{
				"user_role":     userRole,
				"allowed_roles": permission.Permissions,
				"reason":        "role_not_allowed",
			})
			scope.End()
			response.WithError(writer, err)

			return
		}

		scope.End()
		next.ServeHTTP(writer, request)
	})
}

// APIKey for internal service-to-service authentication using API key
func (m *authRoleImpl) APIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		_, scope := m.otel.NewScope(ctx, constant.OtelHandlerScopeName, "api_key.middleware")

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), false)
		apiKey := request.Header.Get(constant.RequestHeaderAPIKey)

		if apiKey == "" {
			scope.SetAttribute("http.source", "client")
			scope.End()
			next.ServeHTTP(writer, request.WithContext(ctx))

			return
		}

		scope.SetAttribute("http.source", "internal")

		if m.cfg.App.APIKey == constant.Empty || apiKey != m.cfg.App.APIKey {
			err := failure.ForbiddenError

			response.WithError(writer, err)

			scope.TraceError(err)
			scope.End()

			return
		}

		ctx = context.WithValue(ctx, SkipAuthKey("skip"), true)

		scope.End()
		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// findPermission looks the route pattern up from the root router, so it works
// before the sub-router has matched.
func (m *authRoleImpl) findPermission(request *http.Request) (string, permissions.Permission) {
	rctx := chi.RouteContext(request.Context())
	if m.permission == nil || rctx == nil || rctx.Routes == nil {
		return constant.Empty, permissions.Permission{}
	}

	path := rctx.Routes.Find(chi.NewRouteContext(), request.Method, request.URL.Path)

	return path, m.permission.FindPermissions(path, request.Method)
}
