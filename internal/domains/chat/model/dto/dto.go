package dto

import (
	"strings"
	"villa/internal/domains/chat/model"
	"villa/shared"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

const (
	EnvelopeTypeMessage = "chat.message"
)

type SendMessageRequest struct {
	Body string `json:"body" validate:"required,max=2000"`
}

func (r *SendMessageRequest) ToModel(userID string, sender model.Sender, actor string) model.ChatMessage {
	return model.ChatMessage{
		ID:     uuid.NewString(),
		UserID: userID,
		Sender: sender,
		Body:   strings.TrimSpace(r.Body),
		// a message is never unread for the side that wrote it
		Read:     sender == model.SenderAdmin,
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}
}

type ReadChange struct {
	Read bool `db:"read"`
}

type MessageResponse struct {
	ID        string       `json:"id"`
	UserID    string       `json:"user_id"`
	Sender    model.Sender `json:"sender"`
	Body      string       `json:"body"`
	Read      bool         `json:"read"`
	CreatedAt string       `json:"created_at"`
}

func (r *MessageResponse) FromModel(model model.ChatMessage) {
	r.ID = model.ID
	r.UserID = model.UserID
	r.Sender = model.Sender
	r.Body = model.Body
	r.Read = model.Read
	r.CreatedAt = timezone.FormatISO(model.CreatedAt)
}

type GetMessagesResponse struct {
	Messages  []MessageResponse `json:"messages"`
	TotalPage int               `json:"total_page"`
	TotalData int               `json:"total_data"`
}

func (r *GetMessagesResponse) FromModels(models []model.ChatMessage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Messages = make([]MessageResponse, len(models))
	for i, m := range models {
		r.Messages[i].FromModel(m)
	}
}

type ConversationResponse struct {
	UserID      string       `json:"user_id"`
	Username    string       `json:"username"`
	LastMessage string       `json:"last_message"`
	LastSender  model.Sender `json:"last_sender"`
	LastAt      string       `json:"last_at"`
	UnreadCount int          `json:"unread_count"`
}

func (r *ConversationResponse) FromModel(model model.Conversation) {
	r.UserID = model.UserID
	r.Username = model.Username
	r.LastMessage = model.LastBody
	r.LastSender = model.LastSender
	r.LastAt = timezone.FormatISO(model.LastAt)
	r.UnreadCount = model.UnreadCount
}
