package service

import (
	"context"

	"dungeonbot/events"
	"dungeonbot/manager"
	"dungeonbot/models"
)

// Cache types for every entity kind
type (
	UserManager      = manager.Manager[int64, *models.User]
	ItemManager      = manager.Manager[string, *models.Item]
	InventoryManager = manager.Manager[models.InventoryKey, *models.Inventory]
	SettingsManager  = manager.Manager[int64, *models.GuildSettings]
	TicketManager    = manager.Manager[models.TicketKey, *models.Ticket]
	SubGuildManager  = manager.Manager[int64, *models.SubGuild]
	ReactRoleManager = manager.Manager[models.ReactRoleKey, *models.ReactRole]
	AliasManager     = manager.Manager[models.AliasKey, *models.Alias]
	LogManager       = manager.Manager[models.LogKey, *models.LogEntry]
)

// Stores is the persistence behind each manager
type Stores struct {
	Users         manager.Store[*models.User]
	Items         manager.Store[*models.Item]
	Inventories   manager.Store[*models.Inventory]
	GuildSettings manager.Store[*models.GuildSettings]
	Tickets       manager.Store[*models.Ticket]
	SubGuilds     manager.Store[*models.SubGuild]
	ReactRoles    manager.Store[*models.ReactRole]
	Aliases       manager.Store[*models.Alias]
	Logs          manager.Store[*models.LogEntry]
}

// Managers holds one cache per entity kind
type Managers struct {
	Users         *UserManager
	Items         *ItemManager
	Inventories   *InventoryManager
	GuildSettings *SettingsManager
	Tickets       *TicketManager
	SubGuilds     *SubGuildManager
	ReactRoles    *ReactRoleManager
	Aliases       *AliasManager
	Logs          *LogManager
}

// NewManagers wires a manager over each store. New users start with
// startingGold and announce themselves on bus.
func NewManagers(st Stores, startingGold int64, bus EventPublisher) *Managers {
	return &Managers{
		Users: manager.New(st.Users, manager.Descriptor[int64, *models.User]{
			Name:    "user",
			Key:     func(u *models.User) int64 { return u.ID },
			KeyArgs: func(id int64) []any { return []any{id} },
			Default: func(id int64) *models.User { return models.NewUser(id, startingGold) },
			Clone:   (*models.User).Clone,
			OnCreate: func(ctx context.Context, u *models.User) {
				if bus != nil {
					bus.Publish(events.UserCreatedEvent{UserID: u.ID, InitialBalance: u.Gold})
				}
			},
		}),
		Items: manager.New(st.Items, manager.Descriptor[string, *models.Item]{
			Name:    "item",
			Key:     func(i *models.Item) string { return i.ID },
			KeyArgs: func(id string) []any { return []any{id} },
			Default: func(id string) *models.Item { return &models.Item{ID: id, Type: models.ItemTypeNone, Name: "nothing"} },
			Clone:   (*models.Item).Clone,
		}),
		Inventories: manager.New(st.Inventories, manager.Descriptor[models.InventoryKey, *models.Inventory]{
			Name:    "inventory",
			Key:     (*models.Inventory).Key,
			KeyArgs: func(k models.InventoryKey) []any { return []any{k.UserID, k.ID} },
			Default: models.NewInventory,
			Clone:   (*models.Inventory).Clone,
		}),
		GuildSettings: manager.New(st.GuildSettings, manager.Descriptor[int64, *models.GuildSettings]{
			Name:    "guild_settings",
			Key:     func(gs *models.GuildSettings) int64 { return gs.GuildID },
			KeyArgs: func(id int64) []any { return []any{id} },
			Default: models.NewGuildSettings,
			Clone:   (*models.GuildSettings).Clone,
		}),
		Tickets: manager.New(st.Tickets, manager.Descriptor[models.TicketKey, *models.Ticket]{
			Name:    "ticket",
			Key:     (*models.Ticket).Key,
			KeyArgs: func(k models.TicketKey) []any { return []any{k.GuildID, k.ID} },
			Default: models.NewTicket,
			Clone:   (*models.Ticket).Clone,
		}),
		SubGuilds: manager.New(st.SubGuilds, manager.Descriptor[int64, *models.SubGuild]{
			Name:    "subguild",
			Key:     func(sg *models.SubGuild) int64 { return sg.ID },
			KeyArgs: func(id int64) []any { return []any{id} },
			Default: models.NewSubGuild,
			Clone:   (*models.SubGuild).Clone,
		}),
		ReactRoles: manager.New(st.ReactRoles, manager.Descriptor[models.ReactRoleKey, *models.ReactRole]{
			Name:    "react_role",
			Key:     (*models.ReactRole).Key,
			KeyArgs: func(k models.ReactRoleKey) []any { return []any{k.GuildID, k.ID} },
			Default: func(k models.ReactRoleKey) *models.ReactRole { return &models.ReactRole{GuildID: k.GuildID, ID: k.ID} },
			Clone:   func(r *models.ReactRole) *models.ReactRole { c := *r; return &c },
		}),
		Aliases: manager.New(st.Aliases, manager.Descriptor[models.AliasKey, *models.Alias]{
			Name:    "alias",
			Key:     (*models.Alias).Key,
			KeyArgs: func(k models.AliasKey) []any { return []any{k.GuildID, k.Name} },
			Default: func(k models.AliasKey) *models.Alias { return &models.Alias{GuildID: k.GuildID, Name: k.Name} },
			Clone:   (*models.Alias).Clone,
		}),
		Logs: manager.New(st.Logs, manager.Descriptor[models.LogKey, *models.LogEntry]{
			Name:    "log",
			Key:     (*models.LogEntry).Key,
			KeyArgs: func(k models.LogKey) []any { return []any{k.GuildID, k.ID} },
			Default: func(k models.LogKey) *models.LogEntry { return &models.LogEntry{GuildID: k.GuildID, ID: k.ID} },
			Clone:   func(e *models.LogEntry) *models.LogEntry { c := *e; return &c },
		}),
	}
}

// Init loads every cache from its table
func (m *Managers) Init(ctx context.Context) error {
	inits := []func(context.Context) error{
		m.Users.Init,
		m.Items.Init,
		m.Inventories.Init,
		m.GuildSettings.Init,
		m.Tickets.Init,
		m.SubGuilds.Init,
		m.ReactRoles.Init,
		m.Aliases.Init,
		m.Logs.Init,
	}
	for _, load := range inits {
		if err := load(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Lookup resolves an item id against the item cache
func (m *Managers) Lookup(id string) (*models.Item, bool) {
	return m.Items.Peek(id)
}
