package game

import "dungeonbot/models"

var (
	junk = Trash{Names: []string{"Bone", "Broken Tooth", "Torn Cloth", "Rusty Nail", "Pebble"}, Value: 1}

	herbs     = Resource{Type: models.ItemTypeReagent, Name: "Herb", Value: 2, Min: 1, Max: 3}
	mushrooms = Resource{Type: models.ItemTypeReagent, Name: "Glowcap", Value: 4, Min: 1, Max: 2}
	ember     = Resource{Type: models.ItemTypeReagent, Name: "Ember Dust", Value: 12, Min: 1, Max: 2}
)

func ore(m models.Material, lo, hi int64) Resource {
	return Resource{Type: models.ItemTypeOre, Name: "Ore", Material: m, Value: 3, Min: lo, Max: hi}
}

// creatureLoot holds the drop table per creature tier
var creatureLoot = map[models.Tier]*LootTable{
	models.TierCommon: {
		MaxLoot: 1,
		Entries: []LootEntry{
			{Weight: 40, Creator: Nothing{}},
			{Weight: 30, Creator: junk},
			{Weight: 20, Creator: Gold{Min: 1, Max: 10}},
			{Weight: 10, Creator: herbs},
		},
	},
	models.TierUncommon: {
		MaxLoot: 2,
		Entries: []LootEntry{
			{Weight: 30, Creator: Nothing{}},
			{Weight: 20, Creator: junk},
			{Weight: 25, Creator: Gold{Min: 5, Max: 25}},
			{Weight: 10, Creator: herbs},
			{Weight: 10, Creator: ore(models.MaterialCopper, 1, 3)},
			{Weight: 4, Creator: Consumable{Name: "Ration", Value: 5}},
			{Weight: 1, Creator: Bag{Name: "Pouch", Material: models.MaterialWood, Slots: 2, Value: 10}},
		},
	},
	models.TierRare: {
		MaxLoot: 2,
		Entries: []LootEntry{
			{Weight: 20, Creator: Nothing{}},
			{Weight: 25, Creator: Gold{Min: 20, Max: 60}},
			{Weight: 15, Creator: mushrooms},
			{Weight: 15, Creator: ore(models.MaterialIron, 1, 3)},
			{Weight: 10, Creator: Consumable{Name: "Ration", Value: 5}},
			{Weight: 8, Creator: Weapon{Name: "Sword", Low: models.MaterialCopper, High: models.MaterialIron, Durability: 20, Value: 15}},
			{Weight: 4, Creator: Bag{Name: "Satchel", Material: models.MaterialCopper, Slots: 4, Value: 20}},
			{Weight: 3, Creator: Key{Location: models.LocationCrypt}},
		},
	},
	models.TierEpic: {
		MaxLoot: 3,
		Entries: []LootEntry{
			{Weight: 15, Creator: Nothing{}},
			{Weight: 25, Creator: Gold{Min: 50, Max: 150}},
			{Weight: 15, Creator: ore(models.MaterialSilver, 2, 4)},
			{Weight: 15, Creator: mushrooms},
			{Weight: 12, Creator: Weapon{Name: "Sword", Low: models.MaterialIron, High: models.MaterialSilver, Durability: 30, Value: 20}},
			{Weight: 8, Creator: Consumable{Name: "Elixir", Value: 25}},
			{Weight: 6, Creator: Bag{Name: "Satchel", Material: models.MaterialSilver, Slots: 4, Value: 25}},
			{Weight: 4, Creator: Key{Location: models.LocationVolcano}},
		},
	},
	models.TierLegendary: {
		MaxLoot: 3,
		Entries: []LootEntry{
			{Weight: 10, Creator: Nothing{}},
			{Weight: 25, Creator: Gold{Min: 150, Max: 400}},
			{Weight: 20, Creator: ore(models.MaterialGold, 2, 5)},
			{Weight: 15, Creator: ember},
			{Weight: 15, Creator: Weapon{Name: "Greatsword", Low: models.MaterialSilver, High: models.MaterialMithril, Durability: 40, Value: 30}},
			{Weight: 8, Creator: Consumable{Name: "Elixir", Value: 25}},
			{Weight: 7, Creator: Bag{Name: "Pack", Material: models.MaterialGold, Slots: 6, Value: 40}},
		},
	},
	models.TierMythical: {
		MaxLoot: 4,
		Entries: []LootEntry{
			{Weight: 5, Creator: Nothing{}},
			{Weight: 25, Creator: Gold{Min: 400, Max: 1000}},
			{Weight: 20, Creator: ore(models.MaterialAdamantite, 2, 5)},
			{Weight: 20, Creator: ember},
			{Weight: 15, Creator: Weapon{Name: "Greatsword", Low: models.MaterialMithril, High: models.MaterialAdamantite, Durability: 60, Value: 40}},
			{Weight: 15, Creator: Bag{Name: "Pack", Material: models.MaterialMithril, Slots: 8, Value: 60}},
		},
	},
}

// chestLoot holds what a chest of each tier contains; there is no empty roll
var chestLoot = map[models.Tier]*LootTable{
	models.TierCommon: {
		MaxLoot: 2,
		Entries: []LootEntry{
			{Weight: 50, Creator: Gold{Min: 10, Max: 30}},
			{Weight: 30, Creator: herbs},
			{Weight: 20, Creator: Consumable{Name: "Ration", Value: 5}},
		},
	},
	models.TierUncommon: {
		MaxLoot: 2,
		Entries: []LootEntry{
			{Weight: 45, Creator: Gold{Min: 25, Max: 60}},
			{Weight: 25, Creator: ore(models.MaterialCopper, 2, 4)},
			{Weight: 20, Creator: Consumable{Name: "Ration", Value: 5}},
			{Weight: 10, Creator: Key{Location: models.LocationCaves}},
		},
	},
	models.TierRare: {
		MaxLoot: 3,
		Entries: []LootEntry{
			{Weight: 40, Creator: Gold{Min: 60, Max: 150}},
			{Weight: 25, Creator: ore(models.MaterialIron, 2, 5)},
			{Weight: 20, Creator: Weapon{Name: "Sword", Low: models.MaterialIron, High: models.MaterialSilver, Durability: 25, Value: 15}},
			{Weight: 15, Creator: Key{Location: models.LocationMines}},
		},
	},
	models.TierEpic: {
		MaxLoot: 3,
		Entries: []LootEntry{
			{Weight: 40, Creator: Gold{Min: 150, Max: 300}},
			{Weight: 25, Creator: ore(models.MaterialGold, 2, 5)},
			{Weight: 20, Creator: Bag{Name: "Satchel", Material: models.MaterialGold, Slots: 5, Value: 30}},
			{Weight: 15, Creator: Key{Location: models.LocationCrypt}},
		},
	},
	models.TierLegendary: {
		MaxLoot: 4,
		Entries: []LootEntry{
			{Weight: 40, Creator: Gold{Min: 300, Max: 700}},
			{Weight: 25, Creator: ember},
			{Weight: 20, Creator: Weapon{Name: "Greatsword", Low: models.MaterialMithril, High: models.MaterialMithril, Durability: 50, Value: 30}},
			{Weight: 15, Creator: Key{Location: models.LocationVolcano}},
		},
	},
	models.TierMythical: {
		MaxLoot: 4,
		Entries: []LootEntry{
			{Weight: 40, Creator: Gold{Min: 700, Max: 1500}},
			{Weight: 30, Creator: ore(models.MaterialAdamantite, 3, 6)},
			{Weight: 30, Creator: Weapon{Name: "Greatsword", Low: models.MaterialAdamantite, High: models.MaterialAdamantite, Durability: 80, Value: 40}},
		},
	},
}

// CreatureLoot returns the drop table for a tier
func CreatureLoot(tier models.Tier) *LootTable {
	if t, ok := creatureLoot[tier]; ok {
		return t
	}
	return creatureLoot[models.TierCommon]
}

// ChestLoot returns the contents table of a chest tier
func ChestLoot(tier models.Tier) *LootTable {
	if t, ok := chestLoot[tier]; ok {
		return t
	}
	return chestLoot[models.TierCommon]
}
