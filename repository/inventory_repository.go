package repository

import (
	"dungeonbot/database"
	"dungeonbot/models"
	"dungeonbot/store"
)

// InventoryCodec maps inventories to the inventories table
type InventoryCodec struct{}

var inventorySchema = store.NewSchema("inventories", []string{"user_id", "inventory_id"},
	store.Int("user_id"),
	store.Text("inventory_id"),
	store.Text("type"),
	store.Int("capacity"),
	store.Text("name"),
	store.Text("parent_id"),
	store.JSON("items", "[]"),
)

func (InventoryCodec) Schema() store.Schema { return inventorySchema }

func (InventoryCodec) Encode(inv *models.Inventory) store.Record {
	return store.Record{
		inv.UserID,
		inv.ID,
		string(inv.Type),
		inv.Capacity,
		inv.Name,
		inv.ParentID,
		store.EncodeList(inv.Items),
	}
}

func (InventoryCodec) Decode(r store.Record) *models.Inventory {
	inventorySchema.Check(r)
	return &models.Inventory{
		UserID:   r.Int(0),
		ID:       r.String(1),
		Type:     models.InventoryType(r.String(2)),
		Capacity: r.Int(3),
		Name:     r.String(4),
		ParentID: r.String(5),
		Items:    store.DecodeList[string](r.String(6)),
	}
}

// NewInventoryTable creates the inventories table adapter
func NewInventoryTable(db *database.DB) *store.Table[*models.Inventory] {
	return store.NewTable[*models.Inventory](db, InventoryCodec{})
}
