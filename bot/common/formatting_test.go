package common

import (
	"testing"
	"time"

	"dungeonbot/models"
	"dungeonbot/service"

	"github.com/stretchr/testify/assert"
)

func TestFormatGold(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4500, "-4,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatGold(tt.in))
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "9s", FormatDuration(9*time.Second))
	assert.Equal(t, "2m 5s", FormatDuration(2*time.Minute+5*time.Second))
	assert.Equal(t, "1h 30m", FormatDuration(90*time.Minute))
}

func TestFormatInventory(t *testing.T) {
	inv := models.NewInventory(models.InventoryKey{UserID: 1, ID: models.BackpackID})
	assert.Equal(t, "**Backpack** (0/8)\n*empty*", FormatInventory(inv, nil, 8))

	sword := &models.Item{ID: "0123456789abcdef", Type: models.ItemTypeWeapon, Name: "Sword",
		Material: models.MaterialIron, BaseValue: 10, Uses: 5, UsesMax: 10}
	inv.Items = []string{sword.ID}
	assert.Equal(t, "**Backpack** (1/8)\n`01234567` Iron Sword (5/10) · 20 gold",
		FormatInventory(inv, []*models.Item{sword}, 8))
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "abc", ShortID("abc"))
	assert.Equal(t, "abcdefgh", ShortID("abcdefghijk"))
}

func TestFormatGrant(t *testing.T) {
	assert.Equal(t, "nothing", FormatGrant(&service.GrantResult{}))

	chest := &models.Item{ID: "c", Type: models.ItemTypeContainer, Name: "Uncommon Chest"}
	ore := &models.Item{ID: "o", Type: models.ItemTypeOre, Name: "Ore", Uses: 3}
	rock := &models.Item{ID: "r", Type: models.ItemTypeTrash, Name: "Rock"}
	g := &service.GrantResult{
		Gold:     1500,
		Placed:   []service.Placement{{Item: chest, InventoryID: models.BackpackID}},
		Merged:   []*models.Item{ore},
		Overflow: []*models.Item{rock},
	}
	assert.Equal(t, "1,500 gold, Uncommon Chest → backpack, Ore x3, ~~Rock~~ (no room)", FormatGrant(g))
}
