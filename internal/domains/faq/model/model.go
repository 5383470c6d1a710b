package model

import (
	"villa/shared/dto"
	"villa/shared/model"
)

const (
	TableName  = "faqs"
	TableVote  = "faq_votes"
	EntityName = "faq"
	EntityVote = "faq_vote"

	FieldID              = "id"
	FieldCategory        = "category"
	FieldPublished       = "published"
	FieldSortOrder       = "sort_order"
	FieldHelpfulVotes    = "helpful_votes"
	FieldNotHelpfulVotes = "not_helpful_votes"

	FieldFaqID    = "faq_id"
	FieldVoterKey = "voter_key"
	FieldHelpful  = "helpful"
)

type Faq struct {
	ID              string `db:"id"`
	Question        string `db:"question"`
	Answer          string `db:"answer"`
	Category        string `db:"category"`
	SortOrder       int    `db:"sort_order"`
	Published       bool   `db:"published"`
	HelpfulVotes    int    `db:"helpful_votes"`
	NotHelpfulVotes int    `db:"not_helpful_votes"`
	model.Metadata
}

// Vote is one visitor's verdict on a FAQ. A voter has at most one per FAQ.
type Vote struct {
	ID       string  `db:"id"`
	FaqID    string  `db:"faq_id"`
	VoterKey string  `db:"voter_key"`
	UserID   *string `db:"user_id"`
	Helpful  bool    `db:"helpful"`
	model.Metadata
}

type VoteCounts struct {
	HelpfulVotes    int `db:"helpful_votes"`
	NotHelpfulVotes int `db:"not_helpful_votes"`
}

func FilterPublished() dto.Filter {
	return dto.Filter{
		Field:    FieldPublished,
		Operator: dto.FilterOperatorEq,
		Value:    true,
		Table:    TableName,
	}
}

func FilterByCategory(category string) dto.Filter {
	return dto.Filter{
		Field:    FieldCategory,
		Operator: dto.FilterOperatorEq,
		Value:    category,
		Table:    TableName,
	}
}
