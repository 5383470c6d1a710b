package dto

import (
	"strings"
	"villa/internal/domains/faq/model"
	"villa/shared"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

const DefaultCategory = "general"

type CreateFaqRequest struct {
	Question  string `json:"question"   validate:"required,max=500"`
	Answer    string `json:"answer"     validate:"required,max=5000"`
	Category  string `json:"category"   validate:"omitempty,max=50"`
	SortOrder int    `json:"sort_order" validate:"gte=0"`
	Published bool   `json:"published"`
}

func (r *CreateFaqRequest) ToModel(actor string) model.Faq {
	category := strings.ToLower(strings.TrimSpace(r.Category))
	if category == "" {
		category = DefaultCategory
	}

	return model.Faq{
		ID:        uuid.NewString(),
		Question:  strings.TrimSpace(r.Question),
		Answer:    r.Answer,
		Category:  category,
		SortOrder: r.SortOrder,
		Published: r.Published,
		Metadata:  gModel.NewMetadata(actor, timezone.Now()),
	}
}

type UpdateFaqRequest struct {
	Question  *string `db:"question"   json:"question,omitempty"   validate:"omitempty,max=500"`
	Answer    *string `db:"answer"     json:"answer,omitempty"     validate:"omitempty,max=5000"`
	Category  *string `db:"category"   json:"category,omitempty"   validate:"omitempty,max=50"`
	SortOrder *int    `db:"sort_order" json:"sort_order,omitempty" validate:"omitempty,gte=0"`
	Published *bool   `db:"published"  json:"published,omitempty"`
}

type VoteRequest struct {
	Helpful *bool `json:"helpful" validate:"required"`
}

func (r *VoteRequest) ToModel(faqID, voterKey string, userID *string, actor string) model.Vote {
	return model.Vote{
		ID:       uuid.NewString(),
		FaqID:    faqID,
		VoterKey: voterKey,
		UserID:   userID,
		Helpful:  *r.Helpful,
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}
}

type VoteResponse struct {
	ID              string `json:"id"`
	HelpfulVotes    int    `json:"helpful_votes"`
	NotHelpfulVotes int    `json:"not_helpful_votes"`
}

type FaqResponse struct {
	ID              string `json:"id"`
	Question        string `json:"question"`
	Answer          string `json:"answer"`
	Category        string `json:"category"`
	SortOrder       int    `json:"sort_order"`
	Published       bool   `json:"published"`
	HelpfulVotes    int    `json:"helpful_votes"`
	NotHelpfulVotes int    `json:"not_helpful_votes"`
	gDto.Metadata
}

func (r *FaqResponse) FromModel(model model.Faq) {
	r.ID = model.ID
	r.Question = model.Question
	r.Answer = model.Answer
	r.Category = model.Category
	r.SortOrder = model.SortOrder
	r.Published = model.Published
	r.HelpfulVotes = model.HelpfulVotes
	r.NotHelpfulVotes = model.NotHelpfulVotes
	r.Metadata.FromModel(model.Metadata)
}

type GetFaqsResponse struct {
	Faqs      []FaqResponse `json:"faqs"`
	TotalPage int           `json:"total_page"`
	TotalData int           `json:"total_data"`
}

func (r *GetFaqsResponse) FromModels(models []model.Faq, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Faqs = make([]FaqResponse, len(models))
	for i, m := range models {
		r.Faqs[i].FromModel(m)
	}
}
