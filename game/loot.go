package game

import (
	"fmt"
	"slices"
	"strings"

	"dungeonbot/models"

	"github.com/google/uuid"
)

// MaxLootAttempts bounds the sampling loop of one resolution
const MaxLootAttempts = 20

// Chest pre-roll weights, chest versus nothing
const (
	chestWeight        = 5
	noChestWeight      = 105
	paragonChestWeight = 105
	paragonNoChest     = 5
)

// ItemCreator stamps out zero or more fresh items
type ItemCreator interface {
	Create(r Roller) []*models.Item
}

// LootEntry is one weighted row of a loot table
type LootEntry struct {
	Weight  int
	Creator ItemCreator
}

// LootTable is sampled with replacement until MaxLoot items are accepted
type LootTable struct {
	MaxLoot int
	Entries []LootEntry
}

func newItem(t models.ItemType, name string) *models.Item {
	return &models.Item{ID: uuid.NewString(), Type: t, Name: name}
}

// Nothing stamps the empty-slot sentinel
type Nothing struct{}

func (Nothing) Create(Roller) []*models.Item {
	return []*models.Item{newItem(models.ItemTypeNone, "nothing")}
}

// Gold stamps a currency stack
type Gold struct{ Min, Max int64 }

func (g Gold) Create(r Roller) []*models.Item {
	item := newItem(models.ItemTypeCurrency, "Gold")
	item.BaseValue = 1
	item.Uses = RollBetween(r, g.Min, g.Max)
	item.UsesMax = item.Uses
	return []*models.Item{item}
}

// Trash stamps one worthless-ish trinket picked from Names
type Trash struct {
	Names []string
	Value int64
}

func (t Trash) Create(r Roller) []*models.Item {
	item := newItem(models.ItemTypeTrash, t.Names[r.IntN(len(t.Names))])
	item.BaseValue = t.Value
	return []*models.Item{item}
}

// Resource stamps a reagent or ore stack
type Resource struct {
	Type     models.ItemType
	Name     string
	Material models.Material
	Value    int64
	Min, Max int64
}

func (res Resource) Create(r Roller) []*models.Item {
	item := newItem(res.Type, res.Name)
	item.Material = res.Material
	item.BaseValue = res.Value
	item.Uses = RollBetween(r, res.Min, res.Max)
	item.UsesMax = item.Uses
	return []*models.Item{item}
}

// Consumable stamps a single-use item
type Consumable struct {
	Name  string
	Value int64
}

func (c Consumable) Create(Roller) []*models.Item {
	item := newItem(models.ItemTypeConsumable, c.Name)
	item.BaseValue = c.Value
	item.Uses = 1
	item.UsesMax = 1
	return []*models.Item{item}
}

// Weapon stamps a weapon of a random material in [Low, High] with full durability
type Weapon struct {
	Name       string
	Low, High  models.Material
	Durability int64
	Value      int64
}

func (w Weapon) Create(r Roller) []*models.Item {
	item := newItem(models.ItemTypeWeapon, w.Name)
	item.Material = models.Material(RollBetween(r, int64(w.Low), int64(w.High)))
	item.BaseValue = w.Value
	item.Uses = w.Durability
	item.UsesMax = w.Durability
	return []*models.Item{item}
}

// Bag stamps a bag item adding Slots capacity to the inventory holding it
type Bag struct {
	Name     string
	Material models.Material
	Slots    int64
	Value    int64
}

func (b Bag) Create(Roller) []*models.Item {
	item := newItem(models.ItemTypeBag, b.Name)
	item.Material = b.Material
	item.BaseValue = b.Value
	item.UsesMax = b.Slots
	return []*models.Item{item}
}

// Key stamps a token unlocking a location
type Key struct{ Location models.Location }

func (k Key) Create(Roller) []*models.Item {
	item := newItem(models.ItemTypeKey, string(k.Location))
	item.BaseValue = 25
	return []*models.Item{item}
}

// Chest stamps a container whose opening resolves the chest table of its tier
type Chest struct{ Tier models.Tier }

func (c Chest) Create(Roller) []*models.Item {
	item := newItem(models.ItemTypeContainer, fmt.Sprintf("%s Chest", capitalize(c.Tier.String())))
	item.Rarity = c.Tier
	item.BaseValue = 10 * (int64(c.Tier) + 1)
	return []*models.Item{item}
}

// Sample resolves the table: weighted sampling with replacement until MaxLoot
// items are accepted or MaxLootAttempts draws were made. A second item of a
// unique-per-drop type is skipped without taking a slot. The result is sorted
// by item type.
func (t *LootTable) Sample(r Roller, accepted []*models.Item) []*models.Item {
	weights := make([]int, len(t.Entries))
	for i, e := range t.Entries {
		weights[i] = e.Weight
	}

	seen := make(map[models.ItemType]bool)
	for _, item := range accepted {
		seen[item.Type] = true
	}

	for attempt := 0; attempt < MaxLootAttempts && len(accepted) < t.MaxLoot; attempt++ {
		idx := WeightedIndex(r, weights)
		if idx < 0 {
			break
		}
		for _, item := range t.Entries[idx].Creator.Create(r) {
			if len(accepted) >= t.MaxLoot {
				break
			}
			if item.Type.UniquePerDrop() && seen[item.Type] {
				continue
			}
			seen[item.Type] = true
			accepted = append(accepted, item)
		}
	}

	slices.SortStableFunc(accepted, func(a, b *models.Item) int {
		return int(a.Type) - int(b.Type)
	})
	return accepted
}

// ResolveLoot rolls the drop for a creature of the given tier. Paragons roll
// one tier higher and almost always drop a chest.
func ResolveLoot(r Roller, tier models.Tier, paragon bool) []*models.Item {
	chest, none := chestWeight, noChestWeight
	if paragon {
		tier = tier.Next()
		chest, none = paragonChestWeight, paragonNoChest
	}

	var accepted []*models.Item
	if WeightedIndex(r, []int{chest, none}) == 0 {
		accepted = append(accepted, Chest{Tier: tier}.Create(r)...)
	}

	table := CreatureLoot(tier)
	return table.Sample(r, accepted)
}

// OpenContainer resolves the contents of a container item. The chest roll is
// skipped so containers never nest.
func OpenContainer(r Roller, item *models.Item) ([]*models.Item, error) {
	if item.Type != models.ItemTypeContainer {
		return nil, fmt.Errorf("%s is not a container", item.DisplayName())
	}
	table := ChestLoot(item.Rarity)
	return table.Sample(r, nil), nil
}

// WithoutNothing drops empty-slot sentinels before items are granted
func WithoutNothing(items []*models.Item) []*models.Item {
	out := make([]*models.Item, 0, len(items))
	for _, item := range items {
		if item.Type != models.ItemTypeNone {
			out = append(out, item)
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
