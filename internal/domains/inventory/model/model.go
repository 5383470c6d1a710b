package model

import (
	"fmt"
	"villa/shared/dto"
	"villa/shared/model"
)

const (
	TableItem      = "inventory_items"
	TableMovement  = "inventory_movements"
	EntityItem     = "inventory_item"
	EntityMovement = "inventory_movement"

	FieldID              = "id"
	FieldName            = "name"
	FieldCategory        = "category"
	FieldUnit            = "unit"
	FieldCurrentQuantity = "current_quantity"
	FieldMinQuantity     = "min_quantity"
	FieldLocation        = "location"
	FieldNotes           = "notes"

	FieldItemID   = "item_id"
	FieldType     = "type"
	FieldQuantity = "quantity"
	FieldReason   = "reason"
	FieldUserID   = "user_id"
)

type MovementType string

const (
	MovementIn          MovementType = "in"
	MovementOut         MovementType = "out"
	MovementDamaged     MovementType = "damaged"
	MovementMaintenance MovementType = "maintenance"
)

func (t MovementType) IsValid() bool {
	switch t {
	case MovementIn, MovementOut, MovementDamaged, MovementMaintenance:
		return true
	default:
		return false
	}
}

// Delta is the signed change a movement of quantity applies to stock.
// Only deliveries add; everything else takes items off the shelf.
func (t MovementType) Delta(quantity int) int {
	if t == MovementIn {
		return quantity
	}

	return -quantity
}

type Item struct {
	ID              string  `db:"id"`
	Name            string  `db:"name"`
	Category        string  `db:"category"`
	Unit            string  `db:"unit"`
	CurrentQuantity int     `db:"current_quantity"`
	MinQuantity     int     `db:"min_quantity"`
	Location        *string `db:"location"`
	Notes           *string `db:"notes"`
	model.Metadata
}

func (i Item) LowStock() bool {
	return i.CurrentQuantity <= i.MinQuantity
}

type Movement struct {
	ID       string       `db:"id"`
	ItemID   string       `db:"item_id"`
	Type     MovementType `db:"type"`
	Quantity int          `db:"quantity"`
	Reason   *string      `db:"reason"`
	UserID   *string      `db:"user_id"`
	model.Metadata
}

func FilterLowStock() dto.Filter {
	return dto.Filter{
		Operator: dto.FilterPlainQuery,
		Value:    fmt.Sprintf("%[1]s.%[2]s <= %[1]s.%[3]s", TableItem, FieldCurrentQuantity, FieldMinQuantity),
	}
}

func FilterByCategory(category string) dto.Filter {
	return dto.Filter{
		Field:    FieldCategory,
		Operator: dto.FilterOperatorEq,
		Value:    category,
		Table:    TableItem,
	}
}

func FilterSearch(q string) dto.Filter {
	return dto.Filter{
		Field:    FieldName,
		Operator: dto.FilterOperatorLike,
		Value:    q,
		Table:    TableItem,
	}
}

func FilterMovementsByItem(itemID string) dto.FilterGroup {
	return dto.FilterGroup{
		Operator: dto.FilterGroupOperatorAnd,
		Filters: []any{
			dto.Filter{
				Field:    FieldItemID,
				Operator: dto.FilterOperatorEq,
				Value:    itemID,
				Table:    TableMovement,
			},
		},
	}
}
