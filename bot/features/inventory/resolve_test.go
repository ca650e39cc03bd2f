package inventory

import (
	"context"
	"testing"

	"dungeonbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeHoldings struct {
	invs  map[string]*models.Inventory
	items map[string]*models.Item
}

func newFakeHoldings(t *testing.T) *fakeHoldings {
	t.Helper()
	h := &fakeHoldings{invs: map[string]*models.Inventory{}, items: map[string]*models.Item{}}
	for _, id := range []string{models.BackpackID, models.BankID, models.ResourcesID} {
		h.invs[id] = models.NewInventory(models.InventoryKey{UserID: 1, ID: id})
	}
	return h
}

func (h *fakeHoldings) put(invID string, item *models.Item) {
	h.items[item.ID] = item
	h.invs[invID].Items = append(h.invs[invID].Items, item.ID)
}

func (h *fakeHoldings) Backpack(context.Context, int64) *models.Inventory    { return h.invs[models.BackpackID] }
func (h *fakeHoldings) Bank(context.Context, int64) *models.Inventory        { return h.invs[models.BankID] }
func (h *fakeHoldings) ResourceBag(context.Context, int64) *models.Inventory { return h.invs[models.ResourcesID] }

func (h *fakeHoldings) Bags(int64) []*models.Inventory {
	var bags []*models.Inventory
	for _, inv := range h.invs {
		if inv.Type == models.InventoryBag {
			bags = append(bags, inv)
		}
	}
	return bags
}

func (h *fakeHoldings) Contents(inv *models.Inventory) []*models.Item {
	var out []*models.Item
	for _, id := range inv.Items {
		out = append(out, h.items[id])
	}
	return out
}

func TestResolveItem(t *testing.T) {
	ctx := context.Background()
	h := newFakeHoldings(t)
	sword := &models.Item{ID: "aaaa1111", Type: models.ItemTypeWeapon, Name: "Sword", Material: models.MaterialIron}
	ore := &models.Item{ID: "bbbb2222", Type: models.ItemTypeOre, Name: "Ore", Uses: 3}
	spare := &models.Item{ID: "aaaa9999", Type: models.ItemTypeWeapon, Name: "Axe"}
	h.put(models.BackpackID, sword)
	h.put(models.ResourcesID, ore)
	h.put(models.BankID, spare)

	item, inv, err := resolveItem(ctx, h, 1, "bbbb")
	require.NoError(t, err)
	assert.Equal(t, ore, item)
	assert.Equal(t, models.ResourcesID, inv.ID)

	item, _, err = resolveItem(ctx, h, 1, "iron sword")
	require.NoError(t, err)
	assert.Equal(t, sword, item)

	item, inv, err = resolveItem(ctx, h, 1, "AXE")
	require.NoError(t, err)
	assert.Equal(t, spare, item)
	assert.Equal(t, models.BankID, inv.ID)

	_, _, err = resolveItem(ctx, h, 1, "aaaa")
	assert.ErrorContains(t, err, "matches 2 items")

	_, _, err = resolveItem(ctx, h, 1, "shield")
	var ue *userError
	assert.ErrorAs(t, err, &ue)

	_, _, err = resolveItem(ctx, h, 1, "  ")
	assert.ErrorIs(t, err, errNoQuery)
}

func TestResolveInventory(t *testing.T) {
	ctx := context.Background()
	h := newFakeHoldings(t)
	bag := models.NewInventory(models.InventoryKey{UserID: 1, ID: "f00dcafe"})
	bag.Name = "Iron Pouch"
	h.invs[bag.ID] = bag

	inv, err := resolveInventory(ctx, h, 1, "")
	require.NoError(t, err)
	assert.Equal(t, models.BackpackID, inv.ID)

	inv, err = resolveInventory(ctx, h, 1, "Bank")
	require.NoError(t, err)
	assert.Equal(t, models.BankID, inv.ID)

	inv, err = resolveInventory(ctx, h, 1, "f00d")
	require.NoError(t, err)
	assert.Equal(t, bag, inv)

	inv, err = resolveInventory(ctx, h, 1, "iron pouch")
	require.NoError(t, err)
	assert.Equal(t, bag, inv)

	_, err = resolveInventory(ctx, h, 1, "attic")
	assert.Error(t, err)
}
