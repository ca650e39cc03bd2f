package models

import "slices"

// InventoryType distinguishes the containers a user owns
type InventoryType string

const (
	InventoryBackpack  InventoryType = "backpack"
	InventoryBank      InventoryType = "bank"
	InventoryResources InventoryType = "resources"
	InventoryBag       InventoryType = "bag"
)

// Fixed inventory ids; bag inventories use generated ids
const (
	BackpackID  = "backpack"
	BankID      = "bank"
	ResourcesID = "resources"
)

// Base capacities of the fixed inventories. The resource bag holds one stack per
// resource and has no slot limit.
const (
	BackpackCapacity  = 8
	BankCapacity      = 20
	ResourcesCapacity = 0
)

// InventoryKey identifies one inventory of one user
type InventoryKey struct {
	UserID int64
	ID     string
}

// Inventory is an ordered set of item ids owned by a user
type Inventory struct {
	UserID   int64
	ID       string
	Type     InventoryType
	Capacity int64
	Name     string
	ParentID string // "" when top level
	Items    []string
}

// ItemLookup resolves item ids to items
type ItemLookup interface {
	Lookup(id string) (*Item, bool)
}

// NewInventory creates the default inventory for a key
func NewInventory(key InventoryKey) *Inventory {
	inv := &Inventory{
		UserID: key.UserID,
		ID:     key.ID,
		Items:  []string{},
	}
	switch key.ID {
	case BackpackID:
		inv.Type, inv.Capacity, inv.Name = InventoryBackpack, BackpackCapacity, "Backpack"
	case BankID:
		inv.Type, inv.Capacity, inv.Name = InventoryBank, BankCapacity, "Bank"
	case ResourcesID:
		inv.Type, inv.Capacity, inv.Name = InventoryResources, ResourcesCapacity, "Resources"
	default:
		inv.Type, inv.Name, inv.ParentID = InventoryBag, "Bag", BackpackID
	}
	return inv
}

// Key returns the inventory's key
func (inv *Inventory) Key() InventoryKey {
	return InventoryKey{UserID: inv.UserID, ID: inv.ID}
}

// HasParent reports whether the inventory is nested in another
func (inv *Inventory) HasParent() bool {
	return inv.ParentID != ""
}

// IsUnbounded reports whether the inventory ignores slot limits
func (inv *Inventory) IsUnbounded() bool {
	return inv.Type == InventoryResources
}

// MaxCapacity is the base capacity plus the uses_max of every bag item inside
func (inv *Inventory) MaxCapacity(items ItemLookup) int64 {
	capacity := inv.Capacity
	for _, id := range inv.Items {
		if item, ok := items.Lookup(id); ok && item.Type == ItemTypeBag {
			capacity += item.UsesMax
		}
	}
	return capacity
}

// IsFull reports whether another slot can be taken
func (inv *Inventory) IsFull(items ItemLookup) bool {
	if inv.IsUnbounded() {
		return false
	}
	return int64(len(inv.Items)) >= inv.MaxCapacity(items)
}

// Contains reports whether the item id is in the inventory
func (inv *Inventory) Contains(id string) bool {
	return slices.Contains(inv.Items, id)
}

// Accepts reports whether the item type may live in this inventory at all
func (inv *Inventory) Accepts(item *Item) bool {
	switch inv.Type {
	case InventoryResources:
		return item.Type.IsResource()
	case InventoryBag:
		return item.Type != ItemTypeBag
	}
	return item.Type != ItemTypeNone
}

// AddItem places item in the inventory. A stackable item merges into an existing
// stack, which is returned so the caller can persist it and discard the incoming
// record. Otherwise the item takes a slot, which fails when the inventory is full
// unless override is set. The returned bool reports whether anything changed.
func (inv *Inventory) AddItem(item *Item, items ItemLookup, override bool) (*Item, bool) {
	if !inv.Accepts(item) || inv.Contains(item.ID) {
		return nil, false
	}

	if item.IsStackable() {
		for _, id := range inv.Items {
			existing, ok := items.Lookup(id)
			if ok && existing.SameStack(item) {
				existing.Uses += item.Uses
				existing.UsesMax = max(existing.UsesMax, existing.Uses)
				return existing, true
			}
		}
	}

	if !override && inv.IsFull(items) {
		return nil, false
	}

	inv.Items = append(inv.Items, item.ID)
	return item, true
}

// RemoveItem drops the item id, reporting whether it was present
func (inv *Inventory) RemoveItem(id string) bool {
	i := slices.Index(inv.Items, id)
	if i < 0 {
		return false
	}
	inv.Items = slices.Delete(inv.Items, i, i+1)
	return true
}

// Clone returns a copy with its own item list
func (inv *Inventory) Clone() *Inventory {
	c := *inv
	c.Items = slices.Clone(inv.Items)
	if c.Items == nil {
		c.Items = []string{}
	}
	return &c
}
