package repository

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"dungeonbot/database"
	"dungeonbot/events"
	"dungeonbot/models"
	"dungeonbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countBalanceEvents(bus *events.Bus) *atomic.Int32 {
	var n atomic.Int32
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, e events.Event) {
		n.Add(1)
	})
	return &n
}

func TestUnitOfWork_CommitPersistsAndFlushes(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.SetupSQLiteDatabase(t)
	tables := NewTables(testDB.DB)
	bus := events.NewBus()
	emitted := countBalanceEvents(bus)

	uow := NewUnitOfWorkFactory(tables, bus).Create()
	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	u := models.NewUser(1, 100)
	item := testutil.CreateTestItem(models.ItemTypeWeapon, "Sword")
	inv := models.NewInventory(models.InventoryKey{UserID: 1, ID: models.BackpackID})
	inv.Items = append(inv.Items, item.ID)

	require.NoError(t, uow.UserRepository().Update(ctx, u))
	require.NoError(t, uow.ItemRepository().Update(ctx, item))
	require.NoError(t, uow.InventoryRepository().Update(ctx, inv))
	uow.EventBus().Publish(events.BalanceChangeEvent{UserID: 1, NewBalance: 100})

	assert.Equal(t, int32(0), emitted.Load(), "events wait for the commit")
	require.NoError(t, uow.Commit())

	assert.Eventually(t, func() bool { return emitted.Load() == 1 }, time.Second, 10*time.Millisecond)

	got, ok, err := tables.Inventories.FindOne(ctx, int64(1), models.BackpackID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{item.ID}, got.Items)

	_, ok, err = tables.Items.FindOne(ctx, item.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUnitOfWork_RollbackDiscards(t *testing.T) {
	ctx := context.Background()
	testDB := testutil.SetupSQLiteDatabase(t)
	tables := NewTables(testDB.DB)
	bus := events.NewBus()
	emitted := countBalanceEvents(bus)

	uow := NewUnitOfWorkFactory(tables, bus).Create()
	require.NoError(t, uow.Begin(ctx))

	require.NoError(t, uow.UserRepository().Update(ctx, models.NewUser(1, 100)))
	uow.EventBus().Publish(events.BalanceChangeEvent{UserID: 1})
	require.NoError(t, uow.Rollback())

	_, ok, err := tables.Users.FindOne(ctx, int64(1))
	require.NoError(t, err)
	assert.False(t, ok)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), emitted.Load())

	assert.Error(t, uow.Commit(), "nothing left to commit")
	assert.NoError(t, uow.Rollback(), "a second rollback is a no-op")
}

func TestUnitOfWork_WritersRequireBegin(t *testing.T) {
	db, err := database.NewInMemory(context.Background())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	uow := NewUnitOfWorkFactory(NewTables(db), events.NewBus()).Create()
	assert.Panics(t, func() { uow.UserRepository() })
}
