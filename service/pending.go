package service

import (
	"reflect"
	"sync"
	"time"

	"dungeonbot/game"
)

// PendingAction is a follow-up a user may confirm with a later command
type PendingAction interface {
	pendingAction()
}

// DoubleOrNothingOffer lets a winner re-roll their winnings on the same side
type DoubleOrNothingOffer struct {
	Side     game.Side
	Winnings int64
}

// ItemMove is the first half of a two step item move
type ItemMove struct {
	ItemID string
	FromID string
}

// TradeOffer waits for the recipient to accept; it is keyed on ToID
type TradeOffer struct {
	GuildID int64
	FromID  int64
	ToID    int64
	ItemIDs []string
	Price   int64
}

func (DoubleOrNothingOffer) pendingAction() {}
func (ItemMove) pendingAction()             {}
func (TradeOffer) pendingAction()           {}

// describePending names an action for chat replies
func describePending(action PendingAction) string {
	switch action.(type) {
	case DoubleOrNothingOffer:
		return "double or nothing offer"
	case ItemMove:
		return "item move"
	case TradeOffer:
		return "trade offer"
	}
	return "pending action"
}

// replaceable reports whether next may take the slot held by cur. A double
// or nothing offer costs nothing to lose; anything else only gives way to an
// action of its own kind.
func replaceable(cur, next PendingAction) bool {
	if _, ok := cur.(DoubleOrNothingOffer); ok {
		return true
	}
	return reflect.TypeOf(cur) == reflect.TypeOf(next)
}

type pendingSlot struct {
	action  PendingAction
	expires time.Time
}

// PendingActions holds at most one pending action per user. A new action
// replaces the old one; an expired action is never returned.
type PendingActions struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	slots map[int64]pendingSlot
}

// NewPendingActions creates an empty slot table whose entries live for ttl
func NewPendingActions(ttl time.Duration) *PendingActions {
	return &PendingActions{
		ttl:   ttl,
		now:   time.Now,
		slots: make(map[int64]pendingSlot),
	}
}

// Set replaces the user's pending action
func (p *PendingActions) Set(userID int64, action PendingAction) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.slots[userID] = pendingSlot{action: action, expires: p.now().Add(p.ttl)}
}

// Offer sets the action unless a live action of another kind holds the slot.
// On refusal the blocking action is returned and the slot is left alone.
func (p *PendingActions) Offer(userID int64, action PendingAction) (PendingAction, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if cur, ok := p.live(userID); ok && !replaceable(cur, action) {
		return cur, false
	}
	p.slots[userID] = pendingSlot{action: action, expires: p.now().Add(p.ttl)}
	return nil, true
}

// Peek returns the live pending action without consuming it
func (p *PendingActions) Peek(userID int64) (PendingAction, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.live(userID)
}

// Take consumes the live pending action
func (p *PendingActions) Take(userID int64) (PendingAction, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	action, ok := p.live(userID)
	delete(p.slots, userID)
	return action, ok
}

// Clear drops whatever the user had pending
func (p *PendingActions) Clear(userID int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.slots, userID)
}

// Len counts live entries and drops expired ones
func (p *PendingActions) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for id := range p.slots {
		if _, ok := p.live(id); ok {
			n++
		}
	}
	return n
}

// live must be called with mu held
func (p *PendingActions) live(userID int64) (PendingAction, bool) {
	slot, ok := p.slots[userID]
	if !ok {
		return nil, false
	}
	if !p.now().Before(slot.expires) {
		delete(p.slots, userID)
		return nil, false
	}
	return slot.action, true
}

// TakeAs consumes the user's pending action only when it has type A
func TakeAs[A PendingAction](p *PendingActions, userID int64) (A, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var zero A
	action, ok := p.live(userID)
	if !ok {
		return zero, false
	}
	typed, ok := action.(A)
	if !ok {
		return zero, false
	}
	delete(p.slots, userID)
	return typed, true
}

// PeekAs returns the user's pending action when it has type A
func PeekAs[A PendingAction](p *PendingActions, userID int64) (A, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var zero A
	action, ok := p.live(userID)
	if !ok {
		return zero, false
	}
	typed, ok := action.(A)
	return typed, ok
}
