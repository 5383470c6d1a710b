package dto

import (
	"errors"
	"strings"
	"time"
	"villa/internal/domains/promotion/model"
	"villa/shared"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

var (
	ErrInvalidValidFrom = errors.New("valid_from must be an ISO 8601 date")
	ErrInvalidValidTo   = errors.New("valid_to must be an ISO 8601 date")
	ErrInvalidWindow    = errors.New("valid_to must not be before valid_from")
)

type CreatePromotionRequest struct {
	Code            string  `json:"code"                  validate:"required,alphanum,max=32"`
	Title           string  `json:"title"                 validate:"required,max=100"`
	Description     *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	DiscountPercent int     `json:"discount_percent"      validate:"required,min=1,max=100"`
	ValidFrom       string  `json:"valid_from"            validate:"required"`
	ValidTo         string  `json:"valid_to"              validate:"required"`
	Active          *bool   `json:"active,omitempty"`
}

func (r *CreatePromotionRequest) ToModel(actor string) (model.Promotion, error) {
	from, to, err := parseWindow(r.ValidFrom, r.ValidTo)
	if err != nil {
		return model.Promotion{}, err
	}

	active := true
	if r.Active != nil {
		active = *r.Active
	}

	return model.Promotion{
		ID:              uuid.NewString(),
		Code:            NormalizeCode(r.Code),
		Title:           r.Title,
		Description:     r.Description,
		DiscountPercent: r.DiscountPercent,
		ValidFrom:       from,
		ValidTo:         to,
		Active:          active,
		Metadata:        gModel.NewMetadata(actor, timezone.Now()),
	}, nil
}

type UpdatePromotionRequest struct {
	Title           *string `json:"title,omitempty"            validate:"omitempty,max=100"`
	Description     *string `json:"description,omitempty"      validate:"omitempty,max=1000"`
	DiscountPercent *int    `json:"discount_percent,omitempty" validate:"omitempty,min=1,max=100"`
	ValidFrom       *string `json:"valid_from,omitempty"`
	ValidTo         *string `json:"valid_to,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}

// PromotionChanges is the column set an update writes.
type PromotionChanges struct {
	Title           *string    `db:"title"`
	Description     *string    `db:"description"`
	DiscountPercent *int       `db:"discount_percent"`
	ValidFrom       *time.Time `db:"valid_from"`
	ValidTo         *time.Time `db:"valid_to"`
	Active          *bool      `db:"active"`
}

// ToChanges merges the request over current and checks the resulting window.
func (r *UpdatePromotionRequest) ToChanges(current model.Promotion) (PromotionChanges, error) {
	changes := PromotionChanges{
		Title:           r.Title,
		Description:     r.Description,
		DiscountPercent: r.DiscountPercent,
		Active:          r.Active,
	}

	from, to := current.ValidFrom, current.ValidTo

	if r.ValidFrom != nil {
		parsed, err := timezone.ParseISO(*r.ValidFrom)
		if err != nil {
			return changes, ErrInvalidValidFrom
		}

		from = parsed
		changes.ValidFrom = &from
	}

	if r.ValidTo != nil {
		parsed, err := timezone.ParseISO(*r.ValidTo)
		if err != nil {
			return changes, ErrInvalidValidTo
		}

		to = parsed
		changes.ValidTo = &to
	}

	if to.Before(from) {
		return changes, ErrInvalidWindow
	}

	return changes, nil
}

type PromotionResponse struct {
	ID              string  `json:"id"`
	Code            string  `json:"code"`
	Title           string  `json:"title"`
	Description     *string `json:"description,omitempty"`
	DiscountPercent int     `json:"discount_percent"`
	ValidFrom       string  `json:"valid_from"`
	ValidTo         string  `json:"valid_to"`
	Active          bool    `json:"active"`
	gDto.Metadata
}

func (r *PromotionResponse) FromModel(model model.Promotion) {
	r.ID = model.ID
	r.Code = model.Code
	r.Title = model.Title
	r.Description = model.Description
	r.DiscountPercent = model.DiscountPercent
	r.ValidFrom = timezone.FormatISO(model.ValidFrom)
	r.ValidTo = timezone.FormatISO(model.ValidTo)
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)
}

type GetPromotionsResponse struct {
	Promotions []PromotionResponse `json:"promotions"`
	TotalPage  int                 `json:"total_page"`
	TotalData  int                 `json:"total_data"`
}

func (r *GetPromotionsResponse) FromModels(models []model.Promotion, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Promotions = make([]PromotionResponse, len(models))
	for i, m := range models {
		r.Promotions[i].FromModel(m)
	}
}

// NormalizeCode upper-cases a code so lookups are case-insensitive.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func parseWindow(fromValue, toValue string) (from, to time.Time, err error) {
	from, err = timezone.ParseISO(fromValue)
	if err != nil {
		return from, to, ErrInvalidValidFrom
	}

	to, err = timezone.ParseISO(toValue)
	if err != nil {
		return from, to, ErrInvalidValidTo
	}

	if to.Before(from) {
		return from, to, ErrInvalidWindow
	}

	return from, to, nil
}
