package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemType_Flags(t *testing.T) {
	stackable := []ItemType{ItemTypeCurrency, ItemTypeConsumable, ItemTypeReagent, ItemTypeOre}
	for _, it := range stackable {
		assert.True(t, it.IsStackable(), it.String())
	}
	assert.False(t, ItemTypeWeapon.IsStackable())

	assert.True(t, ItemTypeBag.UniquePerDrop())
	assert.True(t, ItemTypeContainer.UniquePerDrop())
	assert.True(t, ItemTypeKey.UniquePerDrop())
	assert.False(t, ItemTypeNone.UniquePerDrop())
}

func TestItem_Value(t *testing.T) {
	tests := []struct {
		name string
		item Item
		want int64
	}{
		{"trash", Item{Type: ItemTypeTrash, BaseValue: 5, Material: MaterialWood}, 5},
		{"iron bag", Item{Type: ItemTypeBag, BaseValue: 10, Material: MaterialIron}, 40},
		{"half worn weapon", Item{Type: ItemTypeWeapon, BaseValue: 10, Material: MaterialStone, Uses: 5, UsesMax: 10}, 10},
		{"ore stack", Item{Type: ItemTypeOre, BaseValue: 3, Material: MaterialCopper, Uses: 4}, 36},
		{"none", Item{Type: ItemTypeNone, BaseValue: 100}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.item.Value())
		})
	}
}

func TestTier_Next(t *testing.T) {
	assert.Equal(t, TierUncommon, TierCommon.Next())
	assert.Equal(t, TierMythical, TierLegendary.Next())
	assert.Equal(t, TierMythical, TierMythical.Next())
}

func TestItem_Consume(t *testing.T) {
	item := &Item{Type: ItemTypeConsumable, Uses: 2}
	assert.False(t, item.Consume(1))
	assert.True(t, item.Consume(5))
	assert.Equal(t, int64(0), item.Uses)
}

func TestItem_DisplayName(t *testing.T) {
	assert.Equal(t, "Iron Sword", (&Item{Type: ItemTypeWeapon, Name: "Sword", Material: MaterialIron}).DisplayName())
	assert.Equal(t, "Herb x3", (&Item{Type: ItemTypeReagent, Name: "Herb", Uses: 3}).DisplayName())
	assert.Equal(t, "Caves Key", (&Item{Type: ItemTypeKey, Name: "caves"}).DisplayName())
}
