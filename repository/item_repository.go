package repository

import (
	"dungeonbot/database"
	"dungeonbot/models"
	"dungeonbot/store"
)

// ItemCodec maps items to the items table
type ItemCodec struct{}

var itemSchema = store.NewSchema("items", []string{"item_id"},
	store.Text("item_id"),
	store.Int("type"),
	store.Text("name"),
	store.Int("rarity"),
	store.Int("material"),
	store.Int("value"),
	store.Int("uses"),
	store.Int("uses_max"),
)

func (ItemCodec) Schema() store.Schema { return itemSchema }

func (ItemCodec) Encode(i *models.Item) store.Record {
	return store.Record{
		i.ID,
		int64(i.Type),
		i.Name,
		int64(i.Rarity),
		int64(i.Material),
		i.BaseValue,
		i.Uses,
		i.UsesMax,
	}
}

func (ItemCodec) Decode(r store.Record) *models.Item {
	itemSchema.Check(r)
	return &models.Item{
		ID:        r.String(0),
		Type:      models.ItemType(r.Int(1)),
		Name:      r.String(2),
		Rarity:    models.Tier(r.Int(3)),
		Material:  models.Material(r.Int(4)),
		BaseValue: r.Int(5),
		Uses:      r.Int(6),
		UsesMax:   r.Int(7),
	}
}

// NewItemTable creates the items table adapter
func NewItemTable(db *database.DB) *store.Table[*models.Item] {
	return store.NewTable[*models.Item](db, ItemCodec{})
}
