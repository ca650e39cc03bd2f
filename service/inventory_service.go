package service

import (
	"cmp"
	"context"
	"slices"

	"dungeonbot/events"
	"dungeonbot/game"
	"dungeonbot/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// GrantResult reports where granted items ended up
type GrantResult struct {
	Gold     int64
	Placed   []Placement
	Merged   []*models.Item // existing stacks that absorbed an incoming item
	Overflow []*models.Item // nothing had room; these were dropped
}

// Placement is an item that took a slot in an inventory
type Placement struct {
	Item        *models.Item
	InventoryID string
}

// UseResult describes the effect of using an item
type UseResult struct {
	Item     *models.Item
	Consumed bool
	Unlocked models.Location
	Equipped bool
	Bag      *models.Inventory
	Opened   *GrantResult
}

type inventoryService struct {
	m          *Managers
	uowFactory UnitOfWorkFactory
	pending    *PendingActions
	roller     game.Roller
}

// NewInventoryService creates a new inventory service
func NewInventoryService(m *Managers, uowFactory UnitOfWorkFactory, pending *PendingActions, roller game.Roller) InventoryService {
	return &inventoryService{
		m:          m,
		uowFactory: uowFactory,
		pending:    pending,
		roller:     roller,
	}
}

func (s *inventoryService) Backpack(ctx context.Context, userID int64) *models.Inventory {
	return s.m.Inventories.Get(ctx, models.InventoryKey{UserID: userID, ID: models.BackpackID})
}

func (s *inventoryService) Bank(ctx context.Context, userID int64) *models.Inventory {
	return s.m.Inventories.Get(ctx, models.InventoryKey{UserID: userID, ID: models.BankID})
}

func (s *inventoryService) ResourceBag(ctx context.Context, userID int64) *models.Inventory {
	return s.m.Inventories.Get(ctx, models.InventoryKey{UserID: userID, ID: models.ResourcesID})
}

// Bag returns an unpacked bag; bags only exist once a bag item was used
func (s *inventoryService) Bag(userID int64, bagID string) (*models.Inventory, error) {
	inv, ok := s.m.Inventories.Peek(models.InventoryKey{UserID: userID, ID: bagID})
	if !ok || inv.Type != models.InventoryBag {
		return nil, invalid("you have no bag %q", bagID)
	}
	return inv, nil
}

func (s *inventoryService) Bags(userID int64) []*models.Inventory {
	bags := s.m.Inventories.Find(func(inv *models.Inventory) bool {
		return inv.UserID == userID && inv.Type == models.InventoryBag
	})
	slices.SortFunc(bags, func(a, b *models.Inventory) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.ID, b.ID))
	})
	return bags
}

func (s *inventoryService) Contents(inv *models.Inventory) []*models.Item {
	items := make([]*models.Item, 0, len(inv.Items))
	for _, id := range inv.Items {
		if item, ok := s.m.Items.Peek(id); ok {
			items = append(items, item)
		}
	}
	return items
}

func (s *inventoryService) Grant(ctx context.Context, userID int64, items []*models.Item) (*GrantResult, error) {
	unlock := s.m.Users.Lock(userID)
	defer unlock()

	w := newWriteSet(s.m)
	u := w.user(ctx, userID)
	old := u.Gold
	res := grantInto(ctx, w, u, items)
	if res.Gold > 0 {
		w.publish(events.BalanceChangeEvent{
			UserID:          userID,
			OldBalance:      old,
			NewBalance:      u.Gold,
			TransactionType: events.TransactionTypeCombat,
			ChangeAmount:    res.Gold,
		})
	}

	if err := w.commit(ctx, s.uowFactory); err != nil {
		return nil, err
	}
	return res, nil
}

// grantInto places new items for u: currency becomes gold, resources go to
// the resource bag, anything else to the backpack and then the bank
func grantInto(ctx context.Context, w *writeSet, u *models.User, items []*models.Item) *GrantResult {
	res := &GrantResult{}
	key := func(id string) models.InventoryKey {
		return models.InventoryKey{UserID: u.ID, ID: id}
	}

	for _, item := range game.WithoutNothing(items) {
		if item.Type == models.ItemTypeCurrency {
			u.AddGold(item.Uses)
			res.Gold += item.Uses
			continue
		}

		targets := []string{models.BackpackID, models.BankID}
		if item.Type.IsResource() {
			targets = []string{models.ResourcesID}
		}

		placed := false
		for _, id := range targets {
			inv := w.inventory(ctx, key(id))
			got, ok := inv.AddItem(item, w, false)
			if !ok {
				continue
			}
			w.putItem(got)
			if got == item {
				res.Placed = append(res.Placed, Placement{Item: item, InventoryID: id})
			} else {
				res.Merged = append(res.Merged, got)
			}
			placed = true
			break
		}
		if !placed {
			res.Overflow = append(res.Overflow, item)
		}
	}
	return res
}

// resolve stages one of the user's inventories; the fixed ones are created on demand
func resolve(ctx context.Context, w *writeSet, userID int64, id string) (*models.Inventory, error) {
	key := models.InventoryKey{UserID: userID, ID: id}
	switch id {
	case models.BackpackID, models.BankID, models.ResourcesID:
		return w.inventory(ctx, key), nil
	}
	if inv, ok := w.existingInventory(key); ok {
		return inv, nil
	}
	return nil, invalid("you have no inventory %q", id)
}

// locate finds which of the user's inventories holds the item
func locate(w *writeSet, userID int64, itemID string) (*models.Inventory, *models.Item, error) {
	for _, inv := range w.inventories {
		if inv.UserID == userID && inv.Contains(itemID) {
			return withItem(w, inv, itemID)
		}
	}
	cached, ok := w.m.Inventories.FindFirst(func(inv *models.Inventory) bool {
		return inv.UserID == userID && inv.Contains(itemID)
	})
	if !ok {
		return nil, nil, invalid("you do not have that item")
	}
	inv, _ := w.existingInventory(cached.Key())
	if !inv.Contains(itemID) {
		return nil, nil, invalid("you do not have that item")
	}
	return withItem(w, inv, itemID)
}

func withItem(w *writeSet, inv *models.Inventory, itemID string) (*models.Inventory, *models.Item, error) {
	item, ok := w.Lookup(itemID)
	if !ok {
		return nil, nil, invalid("you do not have that item")
	}
	return inv, item, nil
}

// takeOut removes the item, refusing when losing a bag would overfill the inventory
func takeOut(w *writeSet, inv *models.Inventory, item *models.Item) error {
	if !inv.RemoveItem(item.ID) {
		return invalid("%s is not in %s", item.DisplayName(), inv.Name)
	}
	if item.Type == models.ItemTypeBag && !inv.IsUnbounded() && int64(len(inv.Items)) > inv.MaxCapacity(w) {
		return invalid("empty some space in %s before removing %s", inv.Name, item.DisplayName())
	}
	return nil
}

// putIn adds the item, discarding the incoming record when it merged into a stack
func putIn(w *writeSet, inv *models.Inventory, item *models.Item, override bool) error {
	if !inv.Accepts(item) {
		return invalid("%s cannot hold %s", inv.Name, item.DisplayName())
	}
	got, ok := inv.AddItem(item, w, override)
	if !ok {
		return invalid("%s is full", inv.Name)
	}
	w.putItem(got)
	if got != item {
		w.deleteItem(item.ID)
	}
	return nil
}

func (s *inventoryService) Move(ctx context.Context, userID int64, itemID, fromID, toID string, override bool) error {
	if fromID == toID {
		return invalid("the item is already there")
	}

	unlock := s.m.Users.Lock(userID)
	defer unlock()

	w := newWriteSet(s.m)
	if err := move(ctx, w, userID, itemID, fromID, toID, override); err != nil {
		return err
	}
	return w.commit(ctx, s.uowFactory)
}

func move(ctx context.Context, w *writeSet, userID int64, itemID, fromID, toID string, override bool) error {
	from, err := resolve(ctx, w, userID, fromID)
	if err != nil {
		return err
	}
	to, err := resolve(ctx, w, userID, toID)
	if err != nil {
		return err
	}
	item, ok := w.Lookup(itemID)
	if !ok || !from.Contains(itemID) {
		return invalid("that item is not in %s", from.Name)
	}
	if err := takeOut(w, from, item); err != nil {
		return err
	}
	return putIn(w, to, item, override)
}

func (s *inventoryService) Deposit(ctx context.Context, userID int64, itemID string, override bool) error {
	return s.Move(ctx, userID, itemID, models.BackpackID, models.BankID, override)
}

func (s *inventoryService) Sell(ctx context.Context, userID int64, itemID string) (int64, error) {
	unlock := s.m.Users.Lock(userID)
	defer unlock()

	w := newWriteSet(s.m)
	u := w.user(ctx, userID)
	inv, item, err := locate(w, userID, itemID)
	if err != nil {
		return 0, err
	}
	if err := takeOut(w, inv, item); err != nil {
		return 0, err
	}

	value := item.Value()
	old := u.Gold
	u.AddGold(value)
	if u.WeaponID == item.ID {
		u.WeaponID = ""
	}
	w.deleteItem(item.ID)
	w.publish(events.BalanceChangeEvent{
		UserID:          userID,
		OldBalance:      old,
		NewBalance:      u.Gold,
		TransactionType: events.TransactionTypeSale,
		ChangeAmount:    value,
	})

	if err := w.commit(ctx, s.uowFactory); err != nil {
		return 0, err
	}
	return value, nil
}

func (s *inventoryService) Use(ctx context.Context, userID int64, itemID string) (*UseResult, error) {
	unlock := s.m.Users.Lock(userID)
	defer unlock()

	w := newWriteSet(s.m)
	u := w.user(ctx, userID)
	inv, item, err := locate(w, userID, itemID)
	if err != nil {
		return nil, err
	}
	res := &UseResult{Item: item}

	switch item.Type {
	case models.ItemTypeConsumable:
		switch item.Name {
		case "Elixir":
			clear(u.Cooldowns)
		default:
			delete(u.Cooldowns, models.CooldownFight)
		}
		res.Consumed = item.Consume(1)
		if res.Consumed {
			inv.RemoveItem(item.ID)
			w.deleteItem(item.ID)
		} else {
			w.putItem(item)
		}

	case models.ItemTypeKey:
		loc, ok := item.KeyLocation()
		if !ok {
			return nil, invalid("%s does not open anything", item.DisplayName())
		}
		if !u.Unlock(loc) {
			return nil, invalid("you can already travel to %s", loc.DisplayName())
		}
		inv.RemoveItem(item.ID)
		w.deleteItem(item.ID)
		res.Consumed, res.Unlocked = true, loc

	case models.ItemTypeContainer:
		contents, err := game.OpenContainer(s.roller, item)
		if err != nil {
			return nil, invalidErr(err)
		}
		inv.RemoveItem(item.ID)
		w.deleteItem(item.ID)
		res.Consumed = true
		res.Opened = grantInto(ctx, w, u, contents)

	case models.ItemTypeWeapon:
		u.WeaponID = item.ID
		res.Equipped = true

	case models.ItemTypeBag:
		if err := takeOut(w, inv, item); err != nil {
			return nil, err
		}
		bag := models.NewInventory(models.InventoryKey{UserID: userID, ID: uuid.NewString()})
		bag.Capacity = item.UsesMax
		bag.Name = item.DisplayName()
		w.addInventory(bag)
		w.deleteItem(item.ID)
		res.Consumed, res.Bag = true, bag

	default:
		return nil, invalid("%s cannot be used", item.DisplayName())
	}

	if err := w.commit(ctx, s.uowFactory); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"user": userID,
		"item": item.ID,
		"type": item.Type.String(),
	}).Debug("Item used")
	return res, nil
}

func (s *inventoryService) Equip(ctx context.Context, userID int64, itemID string) error {
	_, err := s.m.Users.Update(ctx, userID, func(u *models.User) error {
		item, ok := s.m.Items.Peek(itemID)
		if !ok || item.Type != models.ItemTypeWeapon || !s.owns(userID, itemID) {
			return invalid("you have no such weapon")
		}
		u.WeaponID = itemID
		return nil
	})
	return err
}

// owns reports whether any of the user's cached inventories holds the item
func (s *inventoryService) owns(userID int64, itemID string) bool {
	_, ok := s.m.Inventories.FindFirst(func(inv *models.Inventory) bool {
		return inv.UserID == userID && inv.Contains(itemID)
	})
	return ok
}

func (s *inventoryService) StartMove(userID int64, itemID, fromID string) error {
	inv, ok := s.m.Inventories.Peek(models.InventoryKey{UserID: userID, ID: fromID})
	if !ok || !inv.Contains(itemID) {
		return invalid("that item is not in %s", fromID)
	}
	if blocking, ok := s.pending.Offer(userID, ItemMove{ItemID: itemID, FromID: fromID}); !ok {
		return invalid("you have a %s waiting; settle it first", describePending(blocking))
	}
	return nil
}

func (s *inventoryService) CompleteMove(ctx context.Context, userID int64, toID string, override bool) error {
	mv, ok := TakeAs[ItemMove](s.pending, userID)
	if !ok {
		return invalid("pick an item to move first")
	}
	return s.Move(ctx, userID, mv.ItemID, mv.FromID, toID, override)
}

func (s *inventoryService) OfferTrade(ctx context.Context, guildID, fromID, toID int64, itemIDs []string, price int64) (*TradeOffer, error) {
	if fromID == toID {
		return nil, invalid("cannot trade with yourself")
	}
	if len(itemIDs) == 0 {
		return nil, invalid("offer at least one item")
	}
	if price < 0 {
		return nil, invalid("price must not be negative")
	}

	ids := slices.Clone(itemIDs)
	slices.Sort(ids)
	if len(slices.Compact(slices.Clone(ids))) != len(ids) {
		return nil, invalid("an item is listed twice")
	}
	for _, id := range itemIDs {
		if !s.owns(fromID, id) {
			return nil, invalid("you do not have every item you offered")
		}
	}

	offer := TradeOffer{
		GuildID: guildID,
		FromID:  fromID,
		ToID:    toID,
		ItemIDs: slices.Clone(itemIDs),
		Price:   price,
	}
	if blocking, ok := s.pending.Offer(toID, offer); !ok {
		return nil, invalid("that player has a %s waiting; try again later", describePending(blocking))
	}
	return &offer, nil
}

// AcceptTrade moves the offered items to the recipient, overriding capacity,
// and pays the price to the seller
func (s *inventoryService) AcceptTrade(ctx context.Context, toID int64) (*TradeOffer, error) {
	offer, ok := TakeAs[TradeOffer](s.pending, toID)
	if !ok {
		return nil, invalid("nobody offered you a trade")
	}

	unlock := lockUsers(s.m.Users, offer.FromID, offer.ToID)
	defer unlock()

	w := newWriteSet(s.m)
	from := w.user(ctx, offer.FromID)
	to := w.user(ctx, offer.ToID)
	if !to.CanAfford(offer.Price) {
		return nil, invalid("you need %d gold for this trade", offer.Price)
	}

	for _, id := range offer.ItemIDs {
		inv, item, err := locate(w, offer.FromID, id)
		if err != nil {
			return nil, invalid("the offer is no longer valid")
		}
		if err := takeOut(w, inv, item); err != nil {
			return nil, err
		}
		if from.WeaponID == id {
			from.WeaponID = ""
		}

		target := models.BackpackID
		if item.Type.IsResource() {
			target = models.ResourcesID
		}
		dest := w.inventory(ctx, models.InventoryKey{UserID: offer.ToID, ID: target})
		if err := putIn(w, dest, item, true); err != nil {
			return nil, err
		}
	}

	if offer.Price > 0 {
		fromOld, toOld := from.Gold, to.Gold
		to.Gold -= offer.Price
		from.AddGold(offer.Price)
		w.publish(events.BalanceChangeEvent{
			UserID: offer.ToID, GuildID: offer.GuildID, OldBalance: toOld, NewBalance: to.Gold,
			TransactionType: events.TransactionTypeTrade, ChangeAmount: -offer.Price,
		})
		w.publish(events.BalanceChangeEvent{
			UserID: offer.FromID, GuildID: offer.GuildID, OldBalance: fromOld, NewBalance: from.Gold,
			TransactionType: events.TransactionTypeTrade, ChangeAmount: offer.Price,
		})
	}
	w.publish(events.TradeCompletedEvent{
		GuildID: offer.GuildID,
		FromID:  offer.FromID,
		ToID:    offer.ToID,
		ItemIDs: offer.ItemIDs,
		Gold:    offer.Price,
	})

	if err := w.commit(ctx, s.uowFactory); err != nil {
		return nil, err
	}
	return &offer, nil
}
