package models

import "fmt"

// ItemType classifies items. The ordinal order is the display order of loot.
type ItemType int

const (
	ItemTypeNone ItemType = iota // empty slot sentinel
	ItemTypeCurrency
	ItemTypeConsumable
	ItemTypeWeapon
	ItemTypeReagent
	ItemTypeOre
	ItemTypeBag
	ItemTypeContainer
	ItemTypeTrash
	ItemTypeKey // unlocks a location
)

var itemTypeNames = map[ItemType]string{
	ItemTypeNone:       "none",
	ItemTypeCurrency:   "currency",
	ItemTypeConsumable: "consumable",
	ItemTypeWeapon:     "weapon",
	ItemTypeReagent:    "reagent",
	ItemTypeOre:        "ore",
	ItemTypeBag:        "bag",
	ItemTypeContainer:  "container",
	ItemTypeTrash:      "trash",
	ItemTypeKey:        "key",
}

func (t ItemType) String() string {
	if name, ok := itemTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("itemtype(%d)", int(t))
}

// IsStackable reports whether quantity lives in the uses counter of a single record
func (t ItemType) IsStackable() bool {
	switch t {
	case ItemTypeCurrency, ItemTypeConsumable, ItemTypeReagent, ItemTypeOre:
		return true
	}
	return false
}

// IsResource reports whether the item belongs in a resource bag
func (t ItemType) IsResource() bool {
	return t == ItemTypeReagent || t == ItemTypeOre
}

// UniquePerDrop reports whether at most one item of this type may drop per loot resolution
func (t ItemType) UniquePerDrop() bool {
	switch t {
	case ItemTypeBag, ItemTypeContainer, ItemTypeKey:
		return true
	}
	return false
}

// Tier is a loot rarity, ordered from common to mythical
type Tier int

const (
	TierCommon Tier = iota
	TierUncommon
	TierRare
	TierEpic
	TierLegendary
	TierMythical
)

var tierNames = []string{"common", "uncommon", "rare", "epic", "legendary", "mythical"}

func (t Tier) String() string {
	if t < 0 || int(t) >= len(tierNames) {
		return fmt.Sprintf("tier(%d)", int(t))
	}
	return tierNames[t]
}

// Next returns the tier one step rarer, capped at mythical
func (t Tier) Next() Tier {
	if t >= TierMythical {
		return TierMythical
	}
	return t + 1
}

// Material is the crafting tier of an item
type Material int

const (
	MaterialWood Material = iota
	MaterialStone
	MaterialCopper
	MaterialIron
	MaterialSilver
	MaterialGold
	MaterialMithril
	MaterialAdamantite
)

var materialNames = []string{"wood", "stone", "copper", "iron", "silver", "gold", "mithril", "adamantite"}

func (m Material) String() string {
	if m < 0 || int(m) >= len(materialNames) {
		return fmt.Sprintf("material(%d)", int(m))
	}
	return materialNames[m]
}

// Multiplier scales the base value of an item by its material
func (m Material) Multiplier() int64 {
	return int64(m) + 1
}

// Item is a single owned thing. Stackable items carry their quantity in Uses.
type Item struct {
	ID        string
	Type      ItemType
	Name      string
	Rarity    Tier
	Material  Material
	BaseValue int64
	Uses      int64
	UsesMax   int64
}

// IsStackable reports whether the item stacks
func (i *Item) IsStackable() bool {
	return i.Type.IsStackable()
}

// SameStack reports whether other can merge into this item's stack
func (i *Item) SameStack(other *Item) bool {
	return i.IsStackable() && i.Type == other.Type && i.Name == other.Name && i.Material == other.Material
}

// Value is the current worth: base by material, scaled by remaining durability
// for weapons and by quantity for stackables
func (i *Item) Value() int64 {
	v := i.BaseValue * i.Material.Multiplier()
	switch {
	case i.Type == ItemTypeNone:
		return 0
	case i.Type == ItemTypeWeapon:
		if i.UsesMax <= 0 {
			return v
		}
		return v * i.Uses / i.UsesMax
	case i.IsStackable():
		return v * i.Uses
	default:
		return v
	}
}

// Consume uses up n charges and reports whether the item is depleted
func (i *Item) Consume(n int64) bool {
	i.Uses -= n
	if i.Uses < 0 {
		i.Uses = 0
	}
	return i.Uses == 0
}

// KeyLocation returns the location a key item unlocks
func (i *Item) KeyLocation() (Location, bool) {
	if i.Type != ItemTypeKey {
		return "", false
	}
	return ParseLocation(i.Name)
}

// DisplayName renders the item for chat output
func (i *Item) DisplayName() string {
	switch i.Type {
	case ItemTypeNone:
		return "nothing"
	case ItemTypeKey:
		return Location(i.Name).DisplayName() + " Key"
	}
	name := i.Name
	if i.Type == ItemTypeWeapon || i.Type == ItemTypeBag {
		name = capitalize(i.Material.String()) + " " + name
	}
	if i.IsStackable() && i.Uses > 1 {
		return fmt.Sprintf("%s x%d", name, i.Uses)
	}
	return name
}

// Clone returns a copy of the item
func (i *Item) Clone() *Item {
	c := *i
	return &c
}
