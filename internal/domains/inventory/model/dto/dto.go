package dto

import (
	"strings"
	"villa/internal/domains/inventory/model"
	"villa/shared"
	gDto "villa/shared/dto"
	gModel "villa/shared/model"
	"villa/shared/timezone"

	"github.com/google/uuid"
)

type CreateItemRequest struct {
	Name            string  `json:"name"                validate:"required,max=100"`
	Category        string  `json:"category"            validate:"required,max=50"`
	Unit            string  `json:"unit"                validate:"required,max=20"`
	CurrentQuantity int     `json:"current_quantity"    validate:"gte=0"`
	MinQuantity     int     `json:"min_quantity"        validate:"gte=0"`
	Location        *string `json:"location,omitempty"  validate:"omitempty,max=100"`
	Notes           *string `json:"notes,omitempty"     validate:"omitempty,max=1000"`
}

func (r *CreateItemRequest) ToModel(actor string) model.Item {
	return model.Item{
		ID:              uuid.NewString(),
		Name:            strings.TrimSpace(r.Name),
		Category:        strings.ToLower(strings.TrimSpace(r.Category)),
		Unit:            r.Unit,
		CurrentQuantity: r.CurrentQuantity,
		MinQuantity:     r.MinQuantity,
		Location:        r.Location,
		Notes:           r.Notes,
		Metadata:        gModel.NewMetadata(actor, timezone.Now()),
	}
}

// UpdateItemRequest never touches current_quantity; stock only moves through movements.
type UpdateItemRequest struct {
	Name        *string `db:"name"         json:"name,omitempty"         validate:"omitempty,max=100"`
	Category    *string `db:"category"     json:"category,omitempty"     validate:"omitempty,max=50"`
	Unit        *string `db:"unit"         json:"unit,omitempty"         validate:"omitempty,max=20"`
	MinQuantity *int    `db:"min_quantity" json:"min_quantity,omitempty" validate:"omitempty,gte=0"`
	Location    *string `db:"location"     json:"location,omitempty"     validate:"omitempty,max=100"`
	Notes       *string `db:"notes"        json:"notes,omitempty"        validate:"omitempty,max=1000"`
}

type CreateMovementRequest struct {
	Type     model.MovementType `json:"type"             validate:"required,enum"`
	Quantity int                `json:"quantity"         validate:"required,gt=0"`
	Reason   *string            `json:"reason,omitempty" validate:"omitempty,max=500"`
}

func (r *CreateMovementRequest) ToModel(itemID string, userID *string, actor string) model.Movement {
	return model.Movement{
		ID:       uuid.NewString(),
		ItemID:   itemID,
		Type:     r.Type,
		Quantity: r.Quantity,
		Reason:   r.Reason,
		UserID:   userID,
		Metadata: gModel.NewMetadata(actor, timezone.Now()),
	}
}

type ItemResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Unit            string  `json:"unit"`
	CurrentQuantity int     `json:"current_quantity"`
	MinQuantity     int     `json:"min_quantity"`
	LowStock        bool    `json:"low_stock"`
	Location        *string `json:"location,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	gDto.Metadata
}

func (r *ItemResponse) FromModel(model model.Item) {
	r.ID = model.ID
	r.Name = model.Name
	r.Category = model.Category
	r.Unit = model.Unit
	r.CurrentQuantity = model.CurrentQuantity
	r.MinQuantity = model.MinQuantity
	r.LowStock = model.LowStock()
	r.Location = model.Location
	r.Notes = model.Notes
	r.Metadata.FromModel(model.Metadata)
}

type GetItemsResponse struct {
	Items     []ItemResponse `json:"items"`
	TotalPage int            `json:"total_page"`
	TotalData int            `json:"total_data"`
}

func (r *GetItemsResponse) FromModels(models []model.Item, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Items = make([]ItemResponse, len(models))
	for i, m := range models {
		r.Items[i].FromModel(m)
	}
}

type MovementResponse struct {
	ID              string             `json:"id"`
	ItemID          string             `json:"item_id"`
	Type            model.MovementType `json:"type"`
	Quantity        int                `json:"quantity"`
	Reason          *string            `json:"reason,omitempty"`
	UserID          *string            `json:"user_id,omitempty"`
	CurrentQuantity *int               `json:"current_quantity,omitempty"`
	gDto.Metadata
}

func (r *MovementResponse) FromModel(model model.Movement) {
	r.ID = model.ID
	r.ItemID = model.ItemID
	r.Type = model.Type
	r.Quantity = model.Quantity
	r.Reason = model.Reason
	r.UserID = model.UserID
	r.Metadata.FromModel(model.Metadata)
}

type GetMovementsResponse struct {
	Movements []MovementResponse `json:"movements"`
	TotalPage int                `json:"total_page"`
	TotalData int                `json:"total_data"`
}

func (r *GetMovementsResponse) FromModels(models []model.Movement, totalData, limit int) {
	r.TotalData = totalData
	r.TotalPage = shared.CalculateTotalPage(totalData, limit)

	r.Movements = make([]MovementResponse, len(models))
	for i, m := range models {
		r.Movements[i].FromModel(m)
	}
}
