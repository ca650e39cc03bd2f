package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dungeonbot/config"
	"dungeonbot/events"
	"dungeonbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_Give(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t)
	factory, uow := acceptingFactory()
	svc := NewUserService(m, factory, config.NewTestConfig())

	before := m.Users.Get(ctx, 1)
	m.Users.Get(ctx, 2)

	res, err := svc.Give(ctx, 77, 1, 2, 30)
	require.NoError(t, err)

	assert.Equal(t, int64(70), res.FromBalance)
	assert.Equal(t, int64(130), res.ToBalance)
	assert.Equal(t, int64(70), m.Users.Get(ctx, 1).Gold)
	assert.Equal(t, int64(130), m.Users.Get(ctx, 2).Gold)
	assert.Equal(t, int64(100), before.Gold, "the cached copy is replaced, not mutated")

	uow.Events.AssertCalled(t, "Publish", events.BalanceChangeEvent{
		UserID: 1, GuildID: 77, OldBalance: 100, NewBalance: 70,
		TransactionType: events.TransactionTypeTransferOut, ChangeAmount: -30,
	})
	uow.Events.AssertCalled(t, "Publish", events.BalanceChangeEvent{
		UserID: 2, GuildID: 77, OldBalance: 100, NewBalance: 130,
		TransactionType: events.TransactionTypeTransferIn, ChangeAmount: 30,
	})
	uow.AssertCalled(t, "Commit")
}

func TestUserService_GiveRejections(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t)
	factory, _ := acceptingFactory()
	svc := NewUserService(m, factory, config.NewTestConfig())

	tests := []struct {
		name   string
		from   int64
		to     int64
		amount int64
	}{
		{"zero amount", 1, 2, 0},
		{"negative amount", 1, 2, -5},
		{"self transfer", 1, 1, 10},
		{"insufficient gold", 1, 2, 101},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Give(ctx, 0, tt.from, tt.to, tt.amount)
			assert.True(t, IsValidationError(err))
		})
	}

	assert.Equal(t, int64(100), m.Users.Get(ctx, 1).Gold)
	factory.AssertNotCalled(t, "Create")
}

func TestUserService_GiveCommitFailureLeavesCache(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t)

	uow := NewMockUnitOfWork()
	uow.On("Begin", ctx).Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Users.On("Update", ctx, mock.Anything).Return(errors.New("disk full"))
	factory := new(MockUnitOfWorkFactory)
	factory.On("Create").Return(uow)

	svc := NewUserService(m, factory, config.NewTestConfig())
	_, err := svc.Give(ctx, 0, 1, 2, 30)

	require.Error(t, err)
	assert.False(t, IsValidationError(err))
	assert.Equal(t, int64(100), m.Users.Get(ctx, 1).Gold)
	assert.Equal(t, int64(100), m.Users.Get(ctx, 2).Gold)
	uow.AssertNotCalled(t, "Commit")
	uow.AssertCalled(t, "Rollback")
	uow.Events.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestUserService_Spawn(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t)
	factory, _ := acceptingFactory()
	svc := NewUserService(m, factory, config.NewTestConfig())

	_, err := svc.Spawn(ctx, 5, 1, 50)
	assert.True(t, IsValidationError(err), "non admins cannot mint")

	u, err := svc.Spawn(ctx, 999, 1, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(150), u.Gold)

	u, err = svc.Spawn(ctx, 999, 1, -1000)
	require.NoError(t, err)
	assert.Equal(t, int64(0), u.Gold)
}

func TestUserService_Leaderboard(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t)
	factory, _ := acceptingFactory()
	svc := NewUserService(m, factory, config.NewTestConfig())

	for id, gold := range map[int64]int64{1: 50, 2: 300, 3: 300, 4: 10} {
		u := m.Users.Get(ctx, id)
		u.Gold = gold
	}

	top := svc.Leaderboard(3)
	require.Len(t, top, 3)
	assert.Equal(t, []int64{2, 3, 1}, []int64{top[0].ID, top[1].ID, top[2].ID})
	assert.Empty(t, svc.Leaderboard(0))
	assert.Len(t, svc.Leaderboard(10), 4)
}

func TestUserService_CountersAndCooldowns(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t)
	factory, _ := acceptingFactory()
	svc := NewUserService(m, factory, config.NewTestConfig()).(*userService)

	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	u, err := svc.RecordMessage(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.MsgCount)

	u, err = svc.PressButton(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), u.ButtonPress)
	assert.Equal(t, int64(101), u.Gold)

	assert.Zero(t, svc.CooldownRemaining(ctx, 1, models.CooldownDaily))
	daily, err := svc.Daily(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(50), daily.Reward)
	assert.Equal(t, int64(151), daily.Balance)
	assert.Equal(t, now.Add(24*time.Hour), daily.NextClaim)
	assert.Equal(t, 24*time.Hour, svc.CooldownRemaining(ctx, 1, models.CooldownDaily))

	_, err = svc.Daily(ctx, 1)
	assert.True(t, IsValidationError(err), "second claim is on cooldown")
	assert.Equal(t, int64(151), m.Users.Get(ctx, 1).Gold)

	now = now.Add(25 * time.Hour)
	assert.Zero(t, svc.CooldownRemaining(ctx, 1, models.CooldownDaily))
	daily, err = svc.Daily(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(201), daily.Balance)
}

func TestUserService_Travel(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t)
	factory, _ := acceptingFactory()
	svc := NewUserService(m, factory, config.NewTestConfig())

	u, err := svc.Travel(ctx, 1, "Forest", 0)
	require.NoError(t, err)
	assert.Equal(t, models.LocationForest, u.Location)

	_, err = svc.Travel(ctx, 1, "caves", 1)
	assert.True(t, IsValidationError(err), "caves need a key")

	m.Users.Get(ctx, 1).Unlock(models.LocationCaves)
	u, err = svc.Travel(ctx, 1, "caves", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), u.Floor)

	_, err = svc.Travel(ctx, 1, "caves", 6)
	assert.True(t, IsValidationError(err))
	_, err = svc.Travel(ctx, 1, "moon", 0)
	assert.True(t, IsValidationError(err))
}

func TestUserService_MutationsWithConcurrentReaders(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t)
	factory, _ := acceptingFactory()
	svc := NewUserService(m, factory, config.NewTestConfig())
	m.Users.Get(ctx, 1)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 50; i++ {
			_, err := svc.Travel(ctx, 1, "forest", 0)
			assert.NoError(t, err)
			_, err = svc.RecordMessage(ctx, 1)
			assert.NoError(t, err)
			_, _ = svc.Daily(ctx, 1)
		}
	}()

	for running := true; running; {
		select {
		case <-done:
			running = false
		default:
		}
		if u, ok := svc.Find(1); ok {
			_ = u.Location
			_ = u.Floor
			_ = u.MsgCount
			_ = u.CooldownRemaining(models.CooldownDaily, time.Now())
		}
	}

	u, ok := svc.Find(1)
	require.True(t, ok)
	assert.Equal(t, int64(50), u.MsgCount)
	assert.Equal(t, models.LocationForest, u.Location)
}
