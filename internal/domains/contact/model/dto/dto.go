package dto

import (
	"strings"
	"villa/internal/domains/contact/model"
	"villa/shared"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

type CreateContactRequest struct {
	Name    string  `json:"name"              validate:"required,max=100"`
	Email   string  `json:"email"             validate:"required,email"`
	Phone   *string `json:"phone,omitempty"   validate:"omitempty,max=30"`
	Subject *string `json:"subject,omitempty" validate:"omitempty,max=200"`
	Message string  `json:"message"           validate:"required,max=5000"`
}

func (r *CreateContactRequest) ToModel(actor string) model.ContactMessage {
	return model.ContactMessage{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(r.Name),
		Email:    strings.ToLower(strings.TrimSpace(r.Email)),
		Phone:    r.Phone,
		Subject:  r.Subject,
		Message:  r.Message,
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}
}

type ReadChange struct {
	Read bool `db:"read"`
}

type ContactMessageResponse struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone,omitempty"`
	Subject *string `json:"subject,omitempty"`
	Message string  `json:"message"`
	Read    bool    `json:"read"`
	gDto.Metadata
}

func (r *ContactMessageResponse) FromModel(model model.ContactMessage) {
	r.ID = model.ID
	r.Name = model.Name
	r.Email = model.Email
	r.Phone = model.Phone
	r.Subject = model.Subject
	r.Message = model.Message
	r.Read = model.Read
	r.Metadata.FromModel(model.Metadata)
}

type GetContactMessagesResponse struct {
	Messages  []ContactMessageResponse `json:"messages"`
	TotalPage int                      `json:"total_page"`
	TotalData int                      `json:"total_data"`
}

func (r *GetContactMessagesResponse) FromModels(models []model.ContactMessage, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Messages = make([]ContactMessageResponse, len(models))
	for i, m := range models {
		r.Messages[i].FromModel(m)
	}
}
