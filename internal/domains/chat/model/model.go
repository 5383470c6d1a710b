package model

import (
	"time"
	"villa/shared/dto"
	"villa/shared/model"
)

const (
	TableName  = "chat_messages"
	EntityName = "chat_message"

	FieldID     = "id"
	FieldUserID = "user_id"
	FieldSender = "sender"
	FieldBody   = "body"
	FieldRead   = "read"
)

type Sender string

const (
	SenderGuest Sender = "guest"
	SenderAdmin Sender = "admin"
)

// ChatMessage belongs to the conversation of the guest UserID,
// whichever side sent it.
type ChatMessage struct {
	ID     string `db:"id"`
	UserID string `db:"user_id"`
	Sender Sender `db:"sender"`
	Body   string `db:"body"`
	Read   bool   `db:"read"`
	model.Metadata
}

// Conversation summarises one guest thread for the admin inbox.
type Conversation struct {
	UserID      string    `db:"user_id"`
	Username    string    `db:"username"`
	LastBody    string    `db:"last_body"`
	LastSender  Sender    `db:"last_sender"`
	LastAt      time.Time `db:"last_at"`
	UnreadCount int       `db:"unread_count"`
}

func FilterByUser(userID string) dto.Filter {
	return dto.Filter{
		Field:    FieldUserID,
		Operator: dto.FilterOperatorEq,
		Value:    userID,
		Table:    TableName,
	}
}

// FilterUnreadFromGuest matches the guest messages of userID the admin has not read.
func FilterUnreadFromGuest(userID string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			FilterByUser(userID),
			dto.Filter{
				Field:    FieldSender,
				Operator: dto.FilterOperatorEq,
				Value:    SenderGuest,
				Table:    TableName,
			},
			dto.Filter{
				Field:    FieldRead,
				Operator: dto.FilterOperatorEq,
				Value:    false,
				Table:    TableName,
			},
		},
	}
}
