package service

//go:generate go run go.uber.org/mock/mockgen -source=./service.go -destination=./mocks/service_mock.go -package=mocks

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"villa/config"
	"villa/infras/jwt"
	"villa/infras/otel"
	"villa/internal/domains/auth/model/dto"
	sessionService "villa/internal/domains/session/service"
	userModel "villa/internal/domains/user/model"
	userDto "villa/internal/domains/user/model/dto"
	userRepo "villa/internal/domains/user/repository"
	userService "villa/internal/domains/user/service"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	"villa/shared/failure"
	"villa/shared/password"
	"villa/shared/timezone"

	"github.com/rs/zerolog/log"
)

const (
	errInvalidCredentials = "invalid username or password"
	errAccountDeactivated = "user account is deactivated"
)

type Auth interface {
	Register(ctx context.Context, req dto.RegisterRequest, client dto.ClientInfo) (dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest, client dto.ClientInfo) (dto.AuthResponse, error)
	Logout(ctx context.Context, sessionID string) error
	Me(ctx context.Context, userID string) (userDto.UserResponse, error)
	UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest, userID string) (userDto.UserResponse, error)
	ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) error
}

type serviceImpl struct {
	userRepo   userRepo.User
	sessions   sessionService.Session
	cfg        *config.Config
	otel       otel.Otel
	jwtService jwt.JWT
}

func New(userRepo userRepo.User, sessions sessionService.Session, cfg *config.Config, otel otel.Otel, jwt jwt.JWT) Auth {
	return &serviceImpl{
		userRepo:   userRepo,
		sessions:   sessions,
		cfg:        cfg,
		otel:       otel,
		jwtService: jwt,
	}
}

func (s *serviceImpl) Register(ctx context.Context, req dto.RegisterRequest, client dto.ClientInfo) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Register")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if err = userService.EnsureAvailable(ctx, s.userRepo, req.Username, strings.ToLower(req.Email)); err != nil {
		return res, err
	}

	hashedPassword, err := password.Hash(req.Password)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return res, fmt.Errorf("failed to hash password: %w", err)
	}

	user := req.ToUserModel(hashedPassword)

	if err = userService.InsertUnique(ctx, s.userRepo, user); err != nil {
		return res, err
	}

	log.Info().Str("userID", user.ID).Msg("user registered")

	return s.openSession(ctx, user, client)
}

func (s *serviceImpl) Login(ctx context.Context, req dto.LoginRequest, client dto.ClientInfo) (res dto.AuthResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Login")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	field, value := userModel.FieldUsername, req.Username
	if strings.Contains(req.Username, "@") {
		field, value = userModel.FieldEmail, strings.ToLower(req.Username)
	}

	filter := gDto.FilterGroup{
		Filters: []any{
			gDto.Filter{
				Field:    field,
				Operator: gDto.FilterOperatorEq,
				Value:    value,
				Table:    userModel.TableName,
			},
		},
	}

	user, err := s.userRepo.Get(ctx, filter)
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return res, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return res, failure.Unauthorized(errInvalidCredentials)
	}

	if err = password.Verify(req.Password, user.Password); err != nil {
		if !errors.Is(err, password.ErrInvalidPassword) {
			log.Error().Err(err).Str("userID", user.ID).Msg("failed to verify password")
		}

		return res, failure.Unauthorized(errInvalidCredentials)
	}

	if !user.Active {
		return res, failure.Unauthorized(errAccountDeactivated)
	}

	now := timezone.Now()
	user.LastLogin = &now

	lastLogin := shared.TransformFields(dto.UpdateLastLoginRequest{LastLogin: now}, user.ID)
	if err := s.userRepo.Update(ctx, lastLogin, shared.FilterByID(user.ID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Warn().Err(err).Str("userID", user.ID).Msg("failed to update last login")
	}

	return s.openSession(ctx, user, client)
}

// openSession mints the bearer token and the cookie session for user.
func (s *serviceImpl) openSession(ctx context.Context, user userModel.User, client dto.ClientInfo) (res dto.AuthResponse, err error) {
	token, err := s.jwtService.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to generate token")

		return res, fmt.Errorf("failed to generate token: %w", err)
	}

	session, err := s.sessions.Create(ctx, user.ID, client.UserAgent, client.IP)
	if err != nil {
		return res, err
	}

	res.FromModels(user, token, session)

	return res, nil
}

func (s *serviceImpl) Logout(ctx context.Context, sessionID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Logout")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if sessionID == constant.Empty {
		return nil
	}

	return s.sessions.Destroy(ctx, sessionID)
}

func (s *serviceImpl) Me(ctx context.Context, userID string) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Me")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return res, err
	}

	res.FromModel(user)

	return res, nil
}

func (s *serviceImpl) UpdateProfile(ctx context.Context, req dto.UpdateProfileRequest, userID string) (res userDto.UserResponse, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".UpdateProfile")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	if req == (dto.UpdateProfileRequest{}) {
		return res, failure.BadRequestFromString("update request cannot be empty")
	}

	if _, err = s.getUser(ctx, userID); err != nil {
		return res, err
	}

	filter := shared.FilterByID(userID, userModel.FieldID, userModel.TableName)

	if err = s.userRepo.Update(ctx, shared.TransformFields(req, userID), filter); err != nil {
		log.Error().Err(err).Msg("failed to update profile")

		return res, fmt.Errorf("failed to update profile: %w", err)
	}

	return s.Me(ctx, userID)
}

func (s *serviceImpl) ChangePassword(ctx context.Context, req dto.ChangePasswordRequest, userID string) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".ChangePassword")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	user, err := s.getUser(ctx, userID)
	if err != nil {
		return err
	}

	if err = password.Verify(req.CurrentPassword, user.Password); err != nil {
		return failure.BadRequestFromString("current password is incorrect")
	}

	hashedPassword, err := password.Hash(req.NewPassword)
	if err != nil {
		log.Error().Err(err).Msg("failed to hash password")

		return fmt.Errorf("failed to hash password: %w", err)
	}

	updatedFields := shared.TransformFields(dto.UpdatePasswordRequest{Password: hashedPassword}, userID)

	if err = s.userRepo.Update(ctx, updatedFields, shared.FilterByID(userID, userModel.FieldID, userModel.TableName)); err != nil {
		log.Error().Err(err).Msg("failed to update password")

		return fmt.Errorf("failed to update password: %w", err)
	}

	return nil
}

func (s *serviceImpl) getUser(ctx context.Context, userID string) (userModel.User, error) {
	user, err := s.userRepo.Get(ctx, shared.FilterByID(userID, userModel.FieldID, userModel.TableName))
	if err != nil {
		log.Error().Err(err).Msg("failed to get user")

		return user, fmt.Errorf("failed to get user: %w", err)
	}

	if user.ID == constant.Empty {
		return user, failure.NotFound("user not found")
	}

	return user, nil
}
