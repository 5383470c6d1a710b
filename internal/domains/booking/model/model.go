package model

import (
	"slices"
	"time"
	"villa/shared/dto"
	"villa/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID            = "id"
	FieldUserID        = "user_id"
	FieldGuestName     = "guest_name"
	FieldGuestEmail    = "guest_email"
	FieldGuestPhone    = "guest_phone"
	FieldStartDate     = "start_date"
	FieldEndDate       = "end_date"
	FieldGuests        = "guests"
	FieldNotes         = "notes"
	FieldStatus        = "status"
	FieldPromotionCode = "promotion_code"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var transitions = map[Status][]Status{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCancelled, StatusCompleted},
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// CanTransition reports whether a booking in s may move to next.
// Staying in the same state is always allowed.
func (s Status) CanTransition(next Status) bool {
	if s == next {
		return true
	}

	return slices.Contains(transitions[s], next)
}

func (s Status) String() string {
	return string(s)
}

type Booking struct {
	ID            string    `db:"id"`
	UserID        *string   `db:"user_id"`
	GuestName     string    `db:"guest_name"`
	GuestEmail    string    `db:"guest_email"`
	GuestPhone    *string   `db:"guest_phone"`
	StartDate     time.Time `db:"start_date"`
	EndDate       time.Time `db:"end_date"`
	Guests        int       `db:"guests"`
	Notes         *string   `db:"notes"`
	Status        Status    `db:"status"`
	PromotionCode *string   `db:"promotion_code"`
	model.Metadata
}

func (b Booking) OwnedBy(userID string) bool {
	return b.UserID != nil && *b.UserID == userID
}

// FilterOverlapping matches confirmed bookings whose [start_date, end_date)
// intersects [start, end). A non-empty excludeID leaves that booking out.
func FilterOverlapping(start, end time.Time, excludeID string) dto.FilterGroup {
	filter := dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    FieldStatus,
				Operator: dto.FilterOperatorEq,
				Value:    StatusConfirmed,
				Table:    TableName,
			},
			dto.Filter{
				ArgName:  "range_end",
				Field:    FieldStartDate,
				Operator: dto.FilterOperatorLess,
				Value:    end,
				Table:    TableName,
			},
			dto.Filter{
				ArgName:  "range_start",
				Field:    FieldEndDate,
				Operator: dto.FilterOperatorGreater,
				Value:    start,
				Table:    TableName,
			},
		},
	}

	if excludeID != "" {
		filter.Filters = append(filter.Filters, dto.Filter{
			Field:    FieldID,
			Operator: dto.FilterOperatorNotEq,
			Value:    excludeID,
			Table:    TableName,
		})
	}

	return filter
}

func FilterByUser(userID string) dto.Filter {
	return dto.Filter{
		Field:    FieldUserID,
		Operator: dto.FilterOperatorEq,
		Value:    userID,
		Table:    TableName,
	}
}

func FilterByStatus(status Status) dto.Filter {
	return dto.Filter{
		Field:    FieldStatus,
		Operator: dto.FilterOperatorEq,
		Value:    status,
		Table:    TableName,
	}
}

// FilterStartingBetween matches bookings whose start_date is in [from, to).
func FilterStartingBetween(from, to time.Time) []any {
	return []any{
		dto.Filter{
			ArgName:  "start_from",
			Field:    FieldStartDate,
			Operator: dto.FilterOperatorGreaterEq,
			Value:    from,
			Table:    TableName,
		},
		dto.Filter{
			ArgName:  "start_to",
			Field:    FieldStartDate,
			Operator: dto.FilterOperatorLess,
			Value:    to,
			Table:    TableName,
		},
	}
}
