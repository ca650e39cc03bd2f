package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"dungeonbot/database"
	"dungeonbot/events"
	"dungeonbot/models"
	"dungeonbot/service"
	"dungeonbot/store"
)

// unitOfWork implements the UnitOfWork interface
type unitOfWork struct {
	tables           *Tables
	tx               *sql.Tx
	ctx              context.Context
	transactionalBus *events.TransactionalBus
	userRepo         *store.Table[*models.User]
	itemRepo         *store.Table[*models.Item]
	inventoryRepo    *store.Table[*models.Inventory]
}

// Tables holds one adapter per entity kind over a shared connection
type Tables struct {
	db            *database.DB
	Users         *store.Table[*models.User]
	Items         *store.Table[*models.Item]
	Inventories   *store.Table[*models.Inventory]
	GuildSettings *store.Table[*models.GuildSettings]
	Tickets       *store.Table[*models.Ticket]
	SubGuilds     *store.Table[*models.SubGuild]
	ReactRoles    *store.Table[*models.ReactRole]
	Aliases       *store.Table[*models.Alias]
	Logs          *store.Table[*models.LogEntry]
}

// NewTables builds every table adapter
func NewTables(db *database.DB) *Tables {
	return &Tables{
		db:            db,
		Users:         NewUserTable(db),
		Items:         NewItemTable(db),
		Inventories:   NewInventoryTable(db),
		GuildSettings: NewGuildSettingsTable(db),
		Tickets:       NewTicketTable(db),
		SubGuilds:     NewSubGuildTable(db),
		ReactRoles:    NewReactRoleTable(db),
		Aliases:       NewAliasTable(db),
		Logs:          NewLogTable(db),
	}
}

// Stores exposes the tables as the persistence behind the managers
func (t *Tables) Stores() service.Stores {
	return service.Stores{
		Users:         t.Users,
		Items:         t.Items,
		Inventories:   t.Inventories,
		GuildSettings: t.GuildSettings,
		Tickets:       t.Tickets,
		SubGuilds:     t.SubGuilds,
		ReactRoles:    t.ReactRoles,
		Aliases:       t.Aliases,
		Logs:          t.Logs,
	}
}

// NewUnitOfWorkFactory creates a new UnitOfWork factory
func NewUnitOfWorkFactory(tables *Tables, eventBus *events.Bus) service.UnitOfWorkFactory {
	return &unitOfWorkFactory{
		tables:   tables,
		eventBus: eventBus,
	}
}

type unitOfWorkFactory struct {
	tables   *Tables
	eventBus *events.Bus
}

func (f *unitOfWorkFactory) Create() service.UnitOfWork {
	return &unitOfWork{
		tables:           f.tables,
		transactionalBus: events.NewTransactionalBus(f.eventBus),
	}
}

// Begin starts a new transaction
func (u *unitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}

	tx, err := u.tables.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	u.tx = tx
	u.ctx = ctx

	// Bind the table adapters to the transaction
	u.userRepo = u.tables.Users.WithTx(tx)
	u.itemRepo = u.tables.Items.WithTx(tx)
	u.inventoryRepo = u.tables.Inventories.WithTx(tx)

	return nil
}

// Commit commits the transaction
func (u *unitOfWork) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}

	if err := u.tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	u.tx = nil

	// Flush pending events after successful commit
	u.transactionalBus.Flush(u.ctx)
	return nil
}

// Rollback rolls back the transaction
func (u *unitOfWork) Rollback() error {
	if u.tx == nil {
		return nil // Nothing to rollback
	}

	err := u.tx.Rollback()
	u.tx = nil
	u.transactionalBus.Discard()

	if err != nil && !errors.Is(err, sql.ErrTxDone) {
		return fmt.Errorf("failed to rollback transaction: %w", err)
	}
	return nil
}

// UserRepository returns the user writer for this unit of work
func (u *unitOfWork) UserRepository() service.EntityWriter[*models.User] {
	if u.userRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.userRepo
}

// ItemRepository returns the item writer for this unit of work
func (u *unitOfWork) ItemRepository() service.EntityWriter[*models.Item] {
	if u.itemRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.itemRepo
}

// InventoryRepository returns the inventory writer for this unit of work
func (u *unitOfWork) InventoryRepository() service.EntityWriter[*models.Inventory] {
	if u.inventoryRepo == nil {
		panic("unit of work not started - call Begin() first")
	}
	return u.inventoryRepo
}

// EventBus returns the transactional event bus for this unit of work
func (u *unitOfWork) EventBus() service.EventPublisher {
	return u.transactionalBus
}
