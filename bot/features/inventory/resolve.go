package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dungeonbot/models"
)

var errNoQuery = errors.New("tell me which item")

// holdings is the read side of the inventory service the resolver needs
type holdings interface {
	Backpack(ctx context.Context, userID int64) *models.Inventory
	Bank(ctx context.Context, userID int64) *models.Inventory
	ResourceBag(ctx context.Context, userID int64) *models.Inventory
	Bags(userID int64) []*models.Inventory
	Contents(inv *models.Inventory) []*models.Item
}

// userError is shown to the user verbatim
type userError struct{ msg string }

func (e *userError) Error() string { return e.msg }

func userErrorf(format string, args ...any) error {
	return &userError{msg: fmt.Sprintf(format, args...)}
}

func inventories(ctx context.Context, h holdings, userID int64) []*models.Inventory {
	invs := []*models.Inventory{
		h.Backpack(ctx, userID),
		h.Bank(ctx, userID),
		h.ResourceBag(ctx, userID),
	}
	return append(invs, h.Bags(userID)...)
}

// resolveInventory matches a fixed inventory id, or a bag by id prefix or name
func resolveInventory(ctx context.Context, h holdings, userID int64, query string) (*models.Inventory, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return h.Backpack(ctx, userID), nil
	}

	var found []*models.Inventory
	for _, inv := range inventories(ctx, h, userID) {
		if inv.ID == q || strings.ToLower(inv.Name) == q {
			return inv, nil
		}
		if strings.HasPrefix(inv.ID, q) {
			found = append(found, inv)
		}
	}
	switch len(found) {
	case 0:
		return nil, userErrorf("you have no inventory called %q", query)
	case 1:
		return found[0], nil
	default:
		return nil, userErrorf("%q matches %d inventories; use more of the id", query, len(found))
	}
}

// resolveItem finds an item by exact id, id prefix or name across every inventory of the user
func resolveItem(ctx context.Context, h holdings, userID int64, query string) (*models.Item, *models.Inventory, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil, errNoQuery
	}

	type hit struct {
		item *models.Item
		inv  *models.Inventory
	}
	var hits []hit
	for _, inv := range inventories(ctx, h, userID) {
		for _, item := range h.Contents(inv) {
			if item.ID == q {
				return item, inv, nil
			}
			if strings.HasPrefix(item.ID, q) ||
				strings.ToLower(item.Name) == q ||
				strings.ToLower(item.DisplayName()) == q {
				hits = append(hits, hit{item, inv})
			}
		}
	}
	switch len(hits) {
	case 0:
		return nil, nil, userErrorf("you have no item matching %q", query)
	case 1:
		return hits[0].item, hits[0].inv, nil
	default:
		return nil, nil, userErrorf("%q matches %d items; use the id shown in /inventory", query, len(hits))
	}
}
