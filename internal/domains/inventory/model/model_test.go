package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"villa/internal/domains/inventory/model"
)

func TestMovementType_Delta(t *testing.T) {
	tests := []struct {
		movement model.MovementType
		quantity int
		want     int
	}{
		{movement: model.MovementIn, quantity: 5, want: 5},
		{movement: model.MovementOut, quantity: 5, want: -5},
		{movement: model.MovementDamaged, quantity: 2, want: -2},
		{movement: model.MovementMaintenance, quantity: 1, want: -1},
	}

	for _, tt := range tests {
		t.Run(string(tt.movement), func(t *testing.T) {
			assert.True(t, tt.movement.IsValid())
			assert.Equal(t, tt.want, tt.movement.Delta(tt.quantity))
		})
	}

	assert.False(t, model.MovementType("lost").IsValid())
}

func TestItem_LowStock(t *testing.T) {
	assert.True(t, model.Item{CurrentQuantity: 2, MinQuantity: 2}.LowStock())
	assert.True(t, model.Item{CurrentQuantity: 0, MinQuantity: 1}.LowStock())
	assert.False(t, model.Item{CurrentQuantity: 3, MinQuantity: 2}.LowStock())
}

func TestFilterLowStock(t *testing.T) {
	filter := model.FilterLowStock()

	where, args := filter.GetWhereClause()

	assert.Equal(t, "(inventory_items.current_quantity <= inventory_items.min_quantity)", where)
	assert.Empty(t, args)
}
