package service

import (
	"context"
	"time"

	"dungeonbot/events"
	"dungeonbot/game"
	"dungeonbot/models"
)

// EntityWriter is the write side of a table bound to a transaction
type EntityWriter[T any] interface {
	// Update upserts the entity
	Update(ctx context.Context, v T) error

	// DeleteOne removes the row with the given primary key values
	DeleteOne(ctx context.Context, key ...any) error
}

// EventPublisher defines the interface for publishing events
type EventPublisher interface {
	Publish(event events.Event)
}

// UnitOfWork groups writes to several tables into one transaction
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() EntityWriter[*models.User]
	ItemRepository() EntityWriter[*models.Item]
	InventoryRepository() EntityWriter[*models.Inventory]

	// EventBus queues events until Commit
	EventBus() EventPublisher
}

// UnitOfWorkFactory creates a fresh unit of work per operation
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UserService defines the interface for user operations
type UserService interface {
	// Get returns the user, creating the default record on first sight
	Get(ctx context.Context, userID int64) *models.User

	// Find returns the user only if it already exists
	Find(userID int64) (*models.User, bool)

	// GetAll returns every known user
	GetAll() []*models.User

	// Save persists changes made to a user obtained from Get
	Save(ctx context.Context, u *models.User) error

	// Leaderboard returns the n richest users, gold descending then id ascending
	Leaderboard(n int) []*models.User

	// RecordMessage bumps the user's message counter
	RecordMessage(ctx context.Context, userID int64) (*models.User, error)

	// PressButton bumps the button counter and pays a one gold reward
	PressButton(ctx context.Context, userID int64) (*models.User, error)

	// Give moves gold between two users atomically
	Give(ctx context.Context, guildID, fromID, toID, amount int64) (*TransferResult, error)

	// Spawn mints or burns gold; only configured admins may call it
	Spawn(ctx context.Context, adminID, userID, amount int64) (*models.User, error)

	// CooldownRemaining reports how long until the activity is available
	CooldownRemaining(ctx context.Context, userID int64, kind string) time.Duration

	// Daily pays the daily reward once per DailyCooldown
	Daily(ctx context.Context, userID int64) (*DailyResult, error)

	// Travel moves the user to a location and floor they have unlocked
	Travel(ctx context.Context, userID int64, location string, floor int64) (*models.User, error)
}

// GamblingService defines the interface for dice gambling
type GamblingService interface {
	// Gamble settles a bet on high, low or seven
	Gamble(ctx context.Context, guildID, userID, wager int64, side string) (*GambleOutcome, error)

	// DoubleOrNothing consumes the pending offer left by a winning gamble
	DoubleOrNothing(ctx context.Context, guildID, userID int64) (*game.DoubleResult, error)
}

// InventoryService defines the interface for items and inventories
type InventoryService interface {
	Backpack(ctx context.Context, userID int64) *models.Inventory
	Bank(ctx context.Context, userID int64) *models.Inventory
	ResourceBag(ctx context.Context, userID int64) *models.Inventory
	Bag(userID int64, bagID string) (*models.Inventory, error)

	// Bags lists the user's unpacked bags ordered by name
	Bags(userID int64) []*models.Inventory

	// Contents resolves the items of an inventory in slot order
	Contents(inv *models.Inventory) []*models.Item

	// Grant gives new items to a user, reporting where each one went
	Grant(ctx context.Context, userID int64, items []*models.Item) (*GrantResult, error)

	// Move transfers an item between two of the user's inventories
	Move(ctx context.Context, userID int64, itemID, fromID, toID string, override bool) error

	// Deposit moves an item from the backpack into the bank
	Deposit(ctx context.Context, userID int64, itemID string, override bool) error

	// Sell destroys an item for its value in gold
	Sell(ctx context.Context, userID int64, itemID string) (int64, error)

	// Use applies an item's effect
	Use(ctx context.Context, userID int64, itemID string) (*UseResult, error)

	// Equip makes a weapon the active one
	Equip(ctx context.Context, userID int64, itemID string) error

	// StartMove remembers an item picked for a two step move
	StartMove(userID int64, itemID, fromID string) error

	// CompleteMove finishes the pending move into the target inventory
	CompleteMove(ctx context.Context, userID int64, toID string, override bool) error

	// OfferTrade proposes items for gold to another user
	OfferTrade(ctx context.Context, guildID, fromID, toID int64, itemIDs []string, price int64) (*TradeOffer, error)

	// AcceptTrade completes the offer waiting for the recipient
	AcceptTrade(ctx context.Context, toID int64) (*TradeOffer, error)
}

// CombatService defines the interface for creature encounters
type CombatService interface {
	// Encounter spawns a creature at the leader's location, or returns the live one
	Encounter(ctx context.Context, leaderID int64) (*game.Creature, error)

	// Attack resolves one round of party damage against the leader's creature
	Attack(ctx context.Context, guildID, leaderID int64, attacks []AttackRequest) (*AttackResult, error)

	// Flee abandons the leader's encounter
	Flee(leaderID int64) bool
}

// TicketService defines the interface for support tickets and suggestions
type TicketService interface {
	Open(ctx context.Context, guildID, ownerID, threadID int64, kind models.TicketKind, title string) (*models.Ticket, error)
	Transition(ctx context.Context, key models.TicketKey, actorID int64, to models.TicketState) (*models.Ticket, error)
	Get(key models.TicketKey) (*models.Ticket, bool)
	ListOpen(guildID int64) []*models.Ticket
	FindByThread(threadID int64) (*models.Ticket, bool)
}

// SubGuildService defines the interface for player run groups
type SubGuildService interface {
	Create(ctx context.Context, guildID, ownerID int64, name string, threadID, msgID int64) (*models.SubGuild, error)
	Get(id int64) (*models.SubGuild, bool)
	FindByName(guildID int64, name string) (*models.SubGuild, bool)
	FindByThread(threadID int64) (*models.SubGuild, bool)
	Ban(ctx context.Context, id, actorID, targetID int64) error
	Unban(ctx context.Context, id, actorID, targetID int64) error
	SetDisabled(ctx context.Context, id, actorID int64, disabled bool) error
	List(guildID int64) []*models.SubGuild
}

// SettingsService defines the interface for guild settings
type SettingsService interface {
	Get(ctx context.Context, guildID int64) *models.GuildSettings
	Update(ctx context.Context, guildID int64, fn func(gs *models.GuildSettings) error) (*models.GuildSettings, error)
	SetLogChannel(ctx context.Context, guildID int64, channelID *int64) (*models.GuildSettings, error)
	SetExpirationDays(ctx context.Context, guildID int64, days int64) (*models.GuildSettings, error)
	Apply(ctx context.Context, guildID int64, feature string) (*models.GuildSettings, error)
}

// ReactRoleService defines the interface for emoji role assignment
type ReactRoleService interface {
	Add(ctx context.Context, guildID int64, emoji string, roleID int64, description string) (*models.ReactRole, error)
	Remove(ctx context.Context, guildID int64, emoji string) error
	RoleFor(guildID int64, emoji string) (int64, bool)
	List(guildID int64) []*models.ReactRole
}

// AliasService defines the interface for guild command aliases
type AliasService interface {
	Set(ctx context.Context, guildID int64, name, command string) (*models.Alias, error)
	Remove(ctx context.Context, guildID int64, name string) error
	Resolve(guildID int64, name string) (string, bool)
	List(guildID int64) []*models.Alias
}

// LogService defines the interface for the guild audit log
type LogService interface {
	Record(ctx context.Context, guildID, userID int64, action, message string) (*models.LogEntry, error)
	Recent(guildID int64, n int) []*models.LogEntry
	Subscribe(bus *events.Bus)
}
