package service

import (
	"context"
	"fmt"

	"dungeonbot/events"
	"dungeonbot/models"
)

// writeSet stages copies of cached entities for one operation. Nothing is
// visible in the caches until commit has written every copy in a single
// transaction; a failed commit leaves the caches untouched.
//
// Every manager Get must happen before commit: on SQLite the pool has one
// connection, which the transaction holds.
type writeSet struct {
	m *Managers

	users       map[int64]*models.User
	userOrder   []int64
	items       map[string]*models.Item
	dirtyItems  []string
	inventories map[models.InventoryKey]*models.Inventory
	invOrder    []models.InventoryKey
	deleted     map[string]bool
	events      []events.Event
}

func newWriteSet(m *Managers) *writeSet {
	return &writeSet{
		m:           m,
		users:       make(map[int64]*models.User),
		items:       make(map[string]*models.Item),
		inventories: make(map[models.InventoryKey]*models.Inventory),
		deleted:     make(map[string]bool),
	}
}

// user returns the staged copy of the user, loading it on first use
func (w *writeSet) user(ctx context.Context, id int64) *models.User {
	if u, ok := w.users[id]; ok {
		return u
	}
	u := w.m.Users.Get(ctx, id).Clone()
	w.users[id] = u
	w.userOrder = append(w.userOrder, id)
	return u
}

// inventory returns the staged copy of the inventory, creating it on first use
func (w *writeSet) inventory(ctx context.Context, key models.InventoryKey) *models.Inventory {
	if inv, ok := w.inventories[key]; ok {
		return inv
	}
	inv := w.m.Inventories.Get(ctx, key).Clone()
	w.inventories[key] = inv
	w.invOrder = append(w.invOrder, key)
	return inv
}

// existingInventory stages an inventory only if it is already known
func (w *writeSet) existingInventory(key models.InventoryKey) (*models.Inventory, bool) {
	if inv, ok := w.inventories[key]; ok {
		return inv, true
	}
	cached, ok := w.m.Inventories.Peek(key)
	if !ok {
		return nil, false
	}
	inv := cached.Clone()
	w.inventories[key] = inv
	w.invOrder = append(w.invOrder, key)
	return inv, true
}

// addInventory stages a brand new inventory
func (w *writeSet) addInventory(inv *models.Inventory) {
	key := inv.Key()
	if _, ok := w.inventories[key]; !ok {
		w.invOrder = append(w.invOrder, key)
	}
	w.inventories[key] = inv
}

// Lookup implements models.ItemLookup over staged copies and the item cache.
// Copies handed out here are only written when passed to putItem.
func (w *writeSet) Lookup(id string) (*models.Item, bool) {
	if w.deleted[id] {
		return nil, false
	}
	if item, ok := w.items[id]; ok {
		return item, true
	}
	cached, ok := w.m.Items.Peek(id)
	if !ok {
		return nil, false
	}
	item := cached.Clone()
	w.items[id] = item
	return item, true
}

// putItem marks an item as changed
func (w *writeSet) putItem(item *models.Item) {
	w.items[item.ID] = item
	delete(w.deleted, item.ID)
	for _, id := range w.dirtyItems {
		if id == item.ID {
			return
		}
	}
	w.dirtyItems = append(w.dirtyItems, item.ID)
}

// deleteItem schedules the item for removal
func (w *writeSet) deleteItem(id string) {
	w.deleted[id] = true
}

func (w *writeSet) publish(e events.Event) {
	w.events = append(w.events, e)
}

// commit writes every staged entity and queued event through one unit of work,
// then publishes the copies to the caches
func (w *writeSet) commit(ctx context.Context, factory UnitOfWorkFactory) error {
	uow := factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback() // No-op if already committed

	for _, id := range w.userOrder {
		if err := uow.UserRepository().Update(ctx, w.users[id]); err != nil {
			return fmt.Errorf("failed to save user %d: %w", id, err)
		}
	}
	for _, id := range w.dirtyItems {
		if w.deleted[id] {
			continue
		}
		if err := uow.ItemRepository().Update(ctx, w.items[id]); err != nil {
			return fmt.Errorf("failed to save item %s: %w", id, err)
		}
	}
	for _, key := range w.invOrder {
		if err := uow.InventoryRepository().Update(ctx, w.inventories[key]); err != nil {
			return fmt.Errorf("failed to save inventory %s: %w", key.ID, err)
		}
	}
	for id := range w.deleted {
		if err := uow.ItemRepository().DeleteOne(ctx, id); err != nil {
			return fmt.Errorf("failed to delete item %s: %w", id, err)
		}
	}

	bus := uow.EventBus()
	for _, e := range w.events {
		bus.Publish(e)
	}

	if err := uow.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	for _, id := range w.userOrder {
		w.m.Users.Add(w.users[id])
	}
	for _, id := range w.dirtyItems {
		if !w.deleted[id] {
			w.m.Items.Add(w.items[id])
		}
	}
	for _, key := range w.invOrder {
		w.m.Inventories.Add(w.inventories[key])
	}
	for id := range w.deleted {
		w.m.Items.Forget(id)
	}
	return nil
}
