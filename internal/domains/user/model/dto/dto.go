package dto

import (
	"strings"
	"villa/internal/domains/user/model"
	"villa/shared"
	"villa/shared/constant"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

type CreateUserRequest struct {
	Username       string  `json:"username"                   validate:"required,min=3,max=50,alphanum"`
	Email          string  `json:"email"                      validate:"required,email"`
	Password       string  `json:"password"                   validate:"required,min=8"`
	Role           string  `json:"role"                       validate:"omitempty,oneof=admin user"`
	FullName       *string `json:"full_name,omitempty"        validate:"omitempty,max=100"`
	Phone          *string `json:"phone,omitempty"            validate:"omitempty,max=30"`
	MarketingOptIn bool    `json:"marketing_opt_in"`
}

func (r *CreateUserRequest) ToModel(actor, hashedPassword string) model.User {
	role := r.Role
	if role == constant.Empty {
		role = constant.RoleUser
	}

	return model.User{
		ID:             uuid.NewString(),
		Username:       r.Username,
		Email:          strings.ToLower(r.Email),
		Password:       hashedPassword,
		Role:           role,
		FullName:       r.FullName,
		Phone:          r.Phone,
		MarketingOptIn: r.MarketingOptIn,
		Active:         true,
		Metadata:       gModel.NewMetadata(actor, timezone.Now()),
	}
}

type UserResponse struct {
	ID             string  `json:"id"`
	Username       string  `json:"username"`
	Email          string  `json:"email"`
	Role           string  `json:"role"`
	FullName       *string `json:"full_name,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	MarketingOptIn bool    `json:"marketing_opt_in"`
	Active         bool    `json:"active"`
	LastLogin      *string `json:"last_login,omitempty"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Username = model.Username
	r.Email = model.Email
	r.Role = model.Role
	r.FullName = model.FullName
	r.Phone = model.Phone
	r.MarketingOptIn = model.MarketingOptIn
	r.Active = model.Active
	r.LastLogin = nil

	if model.LastLogin != nil {
		lastLogin := timezone.FormatISO(*model.LastLogin)
		r.LastLogin = &lastLogin
	}

	r.Metadata.FromModel(model.Metadata)
}

// UpdateUserRequest is the admin patch; nil fields are left untouched.
type UpdateUserRequest struct {
	Email          *string `db:"email"            json:"email,omitempty"            validate:"omitempty,email"`
	Role           *string `db:"role"             json:"role,omitempty"             validate:"omitempty,oneof=admin user"`
	FullName       *string `db:"full_name"        json:"full_name,omitempty"        validate:"omitempty,max=100"`
	Phone          *string `db:"phone"            json:"phone,omitempty"            validate:"omitempty,max=30"`
	MarketingOptIn *bool   `db:"marketing_opt_in" json:"marketing_opt_in,omitempty"`
	Active         *bool   `db:"active"           json:"active,omitempty"`
}

type GetUsersResponse struct {
	Users     []UserResponse `json:"users"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetUsersResponse) FromModels(models []model.User, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Users = make([]UserResponse, len(models))
	for i, mod := range models {
		r.Users[i].FromModel(mod)
	}
}
