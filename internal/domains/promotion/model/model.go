package model

import (
	"time"
	"villa/shared/dto"
	"villa/shared/model"
)

const (
	TableName  = "promotions"
	EntityName = "promotion"

	FieldID              = "id"
	FieldCode            = "code"
	FieldTitle           = "title"
	FieldDescription     = "description"
	FieldDiscountPercent = "discount_percent"
	FieldValidFrom       = "valid_from"
	FieldValidTo         = "valid_to"
	FieldActive          = "active"
)

type Promotion struct {
	ID              string    `db:"id"`
	Code            string    `db:"code"`
	Title           string    `db:"title"`
	Description     *string   `db:"description"`
	DiscountPercent int       `db:"discount_percent"`
	ValidFrom       time.Time `db:"valid_from"`
	ValidTo         time.Time `db:"valid_to"`
	Active          bool      `db:"active"`
	model.Metadata
}

// AppliesOn reports whether the promotion can be used for a stay starting at t.
// Both ends of the validity window are inclusive.
func (p Promotion) AppliesOn(t time.Time) bool {
	return p.Active && !t.Before(p.ValidFrom) && !t.After(p.ValidTo)
}

// FilterRunning matches active promotions whose window contains at.
func FilterRunning(at time.Time) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    FieldActive,
				Operator: dto.FilterOperatorEq,
				Value:    true,
				Table:    TableName,
			},
			dto.Filter{
				ArgName:  "running_at_from",
				Field:    FieldValidFrom,
				Operator: dto.FilterOperatorLessEq,
				Value:    at,
				Table:    TableName,
			},
			dto.Filter{
				ArgName:  "running_at_to",
				Field:    FieldValidTo,
				Operator: dto.FilterOperatorGreaterEq,
				Value:    at,
				Table:    TableName,
			},
		},
	}
}

func FilterByCode(code string) dto.FilterGroup {
	return dto.FilterGroup{
		Filters: []any{
			dto.Filter{
				Field:    FieldCode,
				Operator: dto.FilterOperatorEq,
				Value:    code,
				Table:    TableName,
			},
		},
	}
}
