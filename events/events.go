package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange     EventType = "balance_change"
	EventTypeUserCreated       EventType = "user_created"
	EventTypeGambleResolved    EventType = "gamble_resolved"
	EventTypeLevelUp           EventType = "level_up"
	EventTypeCreatureDefeated  EventType = "creature_defeated"
	EventTypeTradeCompleted    EventType = "trade_completed"
	EventTypeTicketStateChange EventType = "ticket_state_change"
	EventTypeSubGuildChange    EventType = "subguild_change"
)

// TransactionType labels why a balance changed
type TransactionType string

const (
	TransactionTypeGambleWin    TransactionType = "gamble_win"
	TransactionTypeGambleLoss   TransactionType = "gamble_loss"
	TransactionTypeTransferIn   TransactionType = "transfer_in"
	TransactionTypeTransferOut  TransactionType = "transfer_out"
	TransactionTypeSpawn        TransactionType = "spawn"
	TransactionTypeCombat       TransactionType = "combat"
	TransactionTypeSale         TransactionType = "sale"
	TransactionTypeTrade        TransactionType = "trade"
	TransactionTypeButtonReward TransactionType = "button_reward"
	TransactionTypeDaily        TransactionType = "daily"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	UserID          int64
	GuildID         int64 // 0 when the change did not happen in a guild context
	OldBalance      int64
	NewBalance      int64
	TransactionType TransactionType
	ChangeAmount    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// UserCreatedEvent represents a new user record being defaulted
type UserCreatedEvent struct {
	UserID         int64
	InitialBalance int64
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// GambleResolvedEvent represents a dice gamble that was settled
type GambleResolvedEvent struct {
	UserID int64
	Side   string
	Roll   int
	Wager  int64
	Won    bool
	Payout int64
	Double bool // true for a double or nothing follow-up
}

func (e GambleResolvedEvent) Type() EventType {
	return EventTypeGambleResolved
}

// LevelUpEvent represents a user reaching a new level
type LevelUpEvent struct {
	UserID int64
	Level  int64
}

func (e LevelUpEvent) Type() EventType {
	return EventTypeLevelUp
}

// CreatureDefeatedEvent represents a creature killed by a party
type CreatureDefeatedEvent struct {
	LeaderID     int64
	CreatureID   string
	CreatureName string
	Paragon      bool
	Contributors []int64
	LootCount    int
}

func (e CreatureDefeatedEvent) Type() EventType {
	return EventTypeCreatureDefeated
}

// TradeCompletedEvent represents items and gold swapped between two users
type TradeCompletedEvent struct {
	GuildID int64
	FromID  int64
	ToID    int64
	ItemIDs []string
	Gold    int64
}

func (e TradeCompletedEvent) Type() EventType {
	return EventTypeTradeCompleted
}

// TicketStateChangeEvent represents a ticket state transition
type TicketStateChangeEvent struct {
	GuildID  int64
	TicketID int64
	ActorID  int64
	OldState string
	NewState string
	ThreadID int64
}

func (e TicketStateChangeEvent) Type() EventType {
	return EventTypeTicketStateChange
}

// SubGuildChangeEvent represents a moderation change on a sub-guild
type SubGuildChangeEvent struct {
	GuildID    int64
	SubGuildID int64
	ActorID    int64
	Action     string
	TargetID   int64
}

func (e SubGuildChangeEvent) Type() EventType {
	return EventTypeSubGuildChange
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers.
// Handlers run on their own goroutines; a panicking handler is logged and dropped.
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers")

	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// Publish emits immediately; it lets the bus stand in wherever a publisher is expected
func (b *Bus) Publish(e Event) {
	b.Emit(context.Background(), e)
}

// TransactionalBus holds events raised inside a transaction until it commits
type TransactionalBus struct {
	real    *Bus
	mu      sync.Mutex
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.pending = append(b.pending, e)
	log.WithFields(log.Fields{
		"eventType":    e.Type(),
		"pendingCount": len(b.pending),
	}).Debug("Queued event until commit")
}

// Flush is called after a successful commit
func (b *TransactionalBus) Flush(ctx context.Context) {
	b.mu.Lock()
	pending := b.pending
	b.pending = nil
	b.mu.Unlock()

	// handlers outlive the request, so they get a detached context
	eventCtx := context.WithoutCancel(ctx)
	for _, ev := range pending {
		b.real.Emit(eventCtx, ev)
	}
	log.WithField("flushed", len(pending)).Debug("Flushed pending events")
}

// Discard drops pending events after a rollback
func (b *TransactionalBus) Discard() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.pending = nil
}

// Pending returns how many events are waiting for a commit
func (b *TransactionalBus) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
