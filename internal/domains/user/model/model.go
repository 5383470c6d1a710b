package model

import (
	"time"
	"villa/shared/constant"
	"villa/shared/dto"
	"villa/shared/model"
)

const (
	TableName  = "users"
	EntityName = "user"

	FieldID             = "id"
	FieldUsername       = "username"
	FieldEmail          = "email"
	FieldPassword       = "password"
	FieldRole           = "role"
	FieldFullName       = "full_name"
	FieldPhone          = "phone"
	FieldMarketingOptIn = "marketing_opt_in"
	FieldActive         = "active"
	FieldLastLogin      = "last_login"
)

const (
	AudienceAll       = "all"
	AudienceMarketing = "marketing"
	AudienceGuests    = "guests"
)

type User struct {
	ID             string     `db:"id"`
	Username       string     `db:"username"`
	Email          string     `db:"email"`
	Password       string     `db:"password"`
	Role           string     `db:"role"`
	FullName       *string    `db:"full_name"`
	Phone          *string    `db:"phone"`
	MarketingOptIn bool       `db:"marketing_opt_in"`
	Active         bool       `db:"active"`
	LastLogin      *time.Time `db:"last_login"`
	model.Metadata
}

func (u User) IsAdmin() bool {
	return u.Role == constant.RoleAdmin
}

// FilterByUsernameOrEmail matches a user by either identifier.
func FilterByUsernameOrEmail(username, email string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorOr,
		Filters: []any{
			dto.Filter{
				Field:    FieldUsername,
				Operator: dto.FilterOperatorEq,
				Value:    username,
				Table:    TableName,
			},
			dto.Filter{
				Field:    FieldEmail,
				Operator: dto.FilterOperatorEq,
				Value:    email,
				Table:    TableName,
			},
		},
	}
}

// FilterByAudience selects the active users a campaign is sent to.
// guests are users that hold at least one booking.
func FilterByAudience(audience string) dto.FilterGroup {
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    FieldActive,
				Operator: dto.FilterOperatorEq,
				Value:    true,
				Table:    TableName,
			},
		},
	}

	switch audience {
	case AudienceMarketing:
		filter.Filters = append(filter.Filters, dto.Filter{
			Field:    FieldMarketingOptIn,
			Operator: dto.FilterOperatorEq,
			Value:    true,
			Table:    TableName,
		})
	case AudienceGuests:
		filter.Filters = append(filter.Filters, dto.Filter{
			Operator: dto.FilterPlainQuery,
			Value:    "EXISTS (SELECT 1 FROM bookings WHERE bookings.user_id = users.id)",
		})
	}

	return filter
}
