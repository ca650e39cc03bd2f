package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type itemMap map[string]*Item

func (m itemMap) Lookup(id string) (*Item, bool) {
	item, ok := m[id]
	return item, ok
}

func (m itemMap) put(items ...*Item) {
	for _, item := range items {
		m[item.ID] = item
	}
}

func trash(id string) *Item {
	return &Item{ID: id, Type: ItemTypeTrash, Name: "Bone", BaseValue: 1}
}

func TestInventory_BagRaisesCapacity(t *testing.T) {
	items := itemMap{}
	backpack := NewInventory(InventoryKey{UserID: 1, ID: BackpackID})
	assert.Equal(t, int64(8), backpack.MaxCapacity(items))

	bag := &Item{ID: "bag-1", Type: ItemTypeBag, Name: "Satchel", UsesMax: 4}
	items.put(bag)

	_, ok := backpack.AddItem(bag, items, false)
	require.True(t, ok)
	assert.Equal(t, int64(12), backpack.MaxCapacity(items))
	assert.Len(t, backpack.Items, 1)
}

func TestInventory_RefusesWhenFull(t *testing.T) {
	items := itemMap{}
	inv := &Inventory{UserID: 1, ID: "x", Type: InventoryBank, Capacity: 2, Items: []string{}}

	for _, id := range []string{"a", "b", "c"} {
		items.put(trash(id))
	}

	_, ok := inv.AddItem(items["a"], items, false)
	assert.True(t, ok)
	_, ok = inv.AddItem(items["b"], items, false)
	assert.True(t, ok)
	_, ok = inv.AddItem(items["c"], items, false)
	assert.False(t, ok)
	assert.Len(t, inv.Items, 2)

	_, ok = inv.AddItem(items["c"], items, true)
	assert.True(t, ok)
	assert.Len(t, inv.Items, 3)
}

func TestInventory_StackablesMergeWhenFull(t *testing.T) {
	items := itemMap{}
	inv := &Inventory{UserID: 1, ID: "x", Type: InventoryBank, Capacity: 1, Items: []string{}}

	first := &Item{ID: "p1", Type: ItemTypeConsumable, Name: "Potion", Uses: 2, UsesMax: 2}
	second := &Item{ID: "p2", Type: ItemTypeConsumable, Name: "Potion", Uses: 3, UsesMax: 3}
	items.put(first, second)

	_, ok := inv.AddItem(first, items, false)
	require.True(t, ok)

	stack, ok := inv.AddItem(second, items, false)
	require.True(t, ok)
	assert.Same(t, first, stack)
	assert.Equal(t, int64(5), first.Uses)
	assert.Equal(t, []string{"p1"}, inv.Items)
}

func TestInventory_ResourceBagAcceptsOnlyResources(t *testing.T) {
	items := itemMap{}
	res := NewInventory(InventoryKey{UserID: 1, ID: ResourcesID})

	ore := &Item{ID: "o1", Type: ItemTypeOre, Name: "Ore", Material: MaterialIron, Uses: 1}
	sword := &Item{ID: "w1", Type: ItemTypeWeapon, Name: "Sword", Uses: 10, UsesMax: 10}
	items.put(ore, sword)

	_, ok := res.AddItem(ore, items, false)
	assert.True(t, ok)
	_, ok = res.AddItem(sword, items, false)
	assert.False(t, ok)
}

func TestInventory_BagsNestOneLevel(t *testing.T) {
	items := itemMap{}
	bagInv := NewInventory(InventoryKey{UserID: 1, ID: "some-uuid"})
	assert.Equal(t, InventoryBag, bagInv.Type)
	assert.Equal(t, BackpackID, bagInv.ParentID)

	bag := &Item{ID: "bag-2", Type: ItemTypeBag, Name: "Pouch", UsesMax: 2}
	items.put(bag)

	_, ok := bagInv.AddItem(bag, items, true)
	assert.False(t, ok)
}

func TestInventory_RemoveItem(t *testing.T) {
	inv := &Inventory{Items: []string{"a", "b", "c"}}

	assert.True(t, inv.RemoveItem("b"))
	assert.False(t, inv.RemoveItem("b"))
	assert.Equal(t, []string{"a", "c"}, inv.Items)
}
