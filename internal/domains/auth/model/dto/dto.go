package dto

import (
	"strings"
	"time"
	"villa/infras/jwt"
	sessionModel "villa/internal/domains/session/model"
	userModel "villa/internal/domains/user/model"
	userDto "villa/internal/domains/user/model/dto"
	"villa/shared/constant"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

// ClientInfo describes the caller a session is opened for.
type ClientInfo struct {
	UserAgent string
	IP        string
}

type RegisterRequest struct {
	Username       string  `json:"username"                 validate:"required,min=3,max=50,alphanum"`
	Email          string  `json:"email"                    validate:"required,email"`
	Password       string  `json:"password"                 validate:"required,min=8"`
	FullName       *string `json:"full_name,omitempty"      validate:"omitempty,max=100"`
	Phone          *string `json:"phone,omitempty"          validate:"omitempty,max=30"`
	MarketingOptIn bool    `json:"marketing_opt_in"`
}

func (r *RegisterRequest) ToUserModel(hashedPassword string) userModel.User {
	id := uuid.NewString()

	return userModel.User{
		ID:             id,
		Username:       r.Username,
		Email:          strings.ToLower(r.Email),
		Password:       hashedPassword,
		Role:           constant.RoleUser,
		FullName:       r.FullName,
		Phone:          r.Phone,
		MarketingOptIn: r.MarketingOptIn,
		Active:         true,
		Metadata:       gModel.NewMetadata(id, timezone.Now()),
	}
}

// LoginRequest accepts the username or the email in Username.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type UpdateLastLoginRequest struct {
	LastLogin time.Time `db:"last_login" json:"last_login" validate:"required"`
}

// AuthResponse is returned by register and login. The session travels in the
// cookie, never in the body.
type AuthResponse struct {
	User      userDto.UserResponse `json:"user"`
	Token     string               `json:"token"`
	TokenType string               `json:"token_type"`
	ExpiresIn int64                `json:"expires_in"`

	SessionID        string    `json:"-"`
	SessionExpiresAt time.Time `json:"-"`
}

func (r *AuthResponse) FromModels(user userModel.User, token jwt.Token, session sessionModel.Session) {
	r.User.FromModel(user)
	r.Token = token.AccessToken
	r.TokenType = token.TokenType
	r.ExpiresIn = token.ExpiresIn
	r.SessionID = session.ID
	r.SessionExpiresAt = session.ExpiresAt
}

type UpdateProfileRequest struct {
	FullName       *string `db:"full_name"        json:"full_name,omitempty"        validate:"omitempty,max=100"`
	Phone          *string `db:"phone"            json:"phone,omitempty"            validate:"omitempty,max=30"`
	MarketingOptIn *bool   `db:"marketing_opt_in" json:"marketing_opt_in,omitempty"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required,min=8,nefield=CurrentPassword"`
}

type UpdatePasswordRequest struct {
	Password string `db:"password" json:"password" validate:"required,min=8"`
}
