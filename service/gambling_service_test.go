package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"dungeonbot/config"
	"dungeonbot/game"
	"dungeonbot/game/gametest"
	"dungeonbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestGambling(t *testing.T, dice ...int) (*gamblingService, *Managers, *PendingActions, *gametest.Roller) {
	m := newTestManagers(t)
	factory, _ := acceptingFactory()
	pending := NewPendingActions(time.Minute)
	roller := &gametest.Roller{Ints: gametest.Dice(dice...)}
	svc := NewGamblingService(m, factory, pending, roller, config.NewTestConfig()).(*gamblingService)
	return svc, m, pending, roller
}

func TestGamblingService_Gamble(t *testing.T) {
	tests := []struct {
		name     string
		side     string
		dice     []int
		wantWon  bool
		wantGold int64
	}{
		{"low wins on 3", "low", []int{1, 2}, true, 120},
		{"seven pays four to one", "seven", []int{3, 4}, true, 180},
		{"high loses on 7", "high", []int{3, 4}, false, 80},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			svc, m, pending, _ := newTestGambling(t, tt.dice...)

			res, err := svc.Gamble(ctx, 1, 42, 20, tt.side)
			require.NoError(t, err)

			assert.Equal(t, tt.wantWon, res.Won)
			assert.Equal(t, tt.wantGold, res.NewGold)
			assert.Equal(t, tt.wantGold, m.Users.Get(ctx, 42).Gold)
			assert.Equal(t, int64(1), m.Users.Get(ctx, 42).Gambles)

			_, offered := PeekAs[DoubleOrNothingOffer](pending, 42)
			assert.Equal(t, tt.wantWon, offered)
			assert.Equal(t, tt.wantWon, res.DoubleOffered)
		})
	}
}

func TestGamblingService_GambleRejections(t *testing.T) {
	ctx := context.Background()
	svc, m, _, _ := newTestGambling(t)

	_, err := svc.Gamble(ctx, 1, 42, 20, "sideways")
	assert.ErrorIs(t, err, game.ErrInvalidSide)
	assert.True(t, IsValidationError(err))

	_, err = svc.Gamble(ctx, 1, 42, 5, "low")
	var below *game.BelowMinimumError
	require.ErrorAs(t, err, &below)
	assert.Equal(t, int64(10), below.Minimum)

	m.Users.Get(ctx, 42).Gold = 0
	_, err = svc.Gamble(ctx, 1, 42, 20, "low")
	assert.ErrorIs(t, err, game.ErrNonPositiveBet)
}

func TestGamblingService_GambleClampsWagerToHoldings(t *testing.T) {
	ctx := context.Background()
	svc, m, _, _ := newTestGambling(t, 6, 6)

	res, err := svc.Gamble(ctx, 1, 42, 5000, "low")
	require.NoError(t, err)
	assert.Equal(t, int64(100), res.Wager)
	assert.Equal(t, int64(0), m.Users.Get(ctx, 42).Gold)
}

func TestGamblingService_Cooldown(t *testing.T) {
	ctx := context.Background()
	svc, _, _, roller := newTestGambling(t, 1, 2)
	svc.cfg = &config.Config{GambleCooldown: 3 * time.Second}
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	_, err := svc.Gamble(ctx, 1, 42, 20, "low")
	require.NoError(t, err)

	roller.Push(gametest.Dice(1, 2)...)
	_, err = svc.Gamble(ctx, 1, 42, 20, "low")
	assert.True(t, IsValidationError(err))

	now = now.Add(3 * time.Second)
	_, err = svc.Gamble(ctx, 1, 42, 20, "low")
	assert.NoError(t, err)
}

func TestGamblingService_DoubleOrNothing(t *testing.T) {
	ctx := context.Background()
	svc, m, pending, roller := newTestGambling(t, 1, 2)

	_, err := svc.Gamble(ctx, 1, 42, 20, "low")
	require.NoError(t, err)

	roller.Push(gametest.Dice(2, 2)...)
	res, err := svc.DoubleOrNothing(ctx, 1, 42)
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.Equal(t, int64(20), res.Stake)
	assert.Equal(t, int64(140), m.Users.Get(ctx, 42).Gold)

	offer, ok := PeekAs[DoubleOrNothingOffer](pending, 42)
	require.True(t, ok)
	assert.Equal(t, int64(40), offer.Winnings)
	assert.Equal(t, game.SideLow, offer.Side)

	roller.Push(gametest.Dice(6, 6)...)
	res, err = svc.DoubleOrNothing(ctx, 1, 42)
	require.NoError(t, err)
	assert.False(t, res.Won)
	assert.Equal(t, int64(100), m.Users.Get(ctx, 42).Gold)

	_, err = svc.DoubleOrNothing(ctx, 1, 42)
	assert.ErrorIs(t, err, game.ErrNothingToDouble)
}

func TestGamblingService_LossClearsOffer(t *testing.T) {
	ctx := context.Background()
	svc, _, pending, roller := newTestGambling(t, 1, 2)

	_, err := svc.Gamble(ctx, 1, 42, 20, "low")
	require.NoError(t, err)

	roller.Push(gametest.Dice(6, 6)...)
	_, err = svc.Gamble(ctx, 1, 42, 20, "low")
	require.NoError(t, err)

	_, ok := pending.Peek(42)
	assert.False(t, ok)
}

func TestGamblingService_DoubleOrNothingRestoresOfferOnCommitFailure(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t)
	pending := NewPendingActions(time.Minute)
	pending.Set(42, DoubleOrNothingOffer{Side: game.SideHigh, Winnings: 30})

	uow := NewMockUnitOfWork()
	uow.On("Begin", mock.Anything).Return(nil)
	uow.On("Rollback").Return(nil)
	uow.Users.On("Update", mock.Anything, mock.Anything).Return(nil)
	uow.Events.On("Publish", mock.Anything).Return()
	uow.On("Commit").Return(errors.New("connection reset"))
	factory := new(MockUnitOfWorkFactory)
	factory.On("Create").Return(uow)

	roller := &gametest.Roller{Ints: gametest.Dice(6, 6)}
	svc := NewGamblingService(m, factory, pending, roller, config.NewTestConfig())

	_, err := svc.DoubleOrNothing(ctx, 1, 42)
	require.Error(t, err)

	assert.Equal(t, models.DefaultGold, m.Users.Get(ctx, 42).Gold)
	offer, ok := PeekAs[DoubleOrNothingOffer](pending, 42)
	require.True(t, ok)
	assert.Equal(t, int64(30), offer.Winnings)
}

func TestGamblingService_WinKeepsPendingTrade(t *testing.T) {
	ctx := context.Background()
	svc, m, pending, _ := newTestGambling(t, 1, 2)
	trade := TradeOffer{GuildID: 1, FromID: 7, ToID: 42, ItemIDs: []string{"x"}, Price: 10}
	pending.Set(42, trade)

	res, err := svc.Gamble(ctx, 1, 42, 20, "low")
	require.NoError(t, err)
	assert.True(t, res.Won)
	assert.False(t, res.DoubleOffered)
	assert.Equal(t, "trade offer", res.Kept)
	assert.Equal(t, int64(120), m.Users.Get(ctx, 42).Gold)

	kept, ok := PeekAs[TradeOffer](pending, 42)
	require.True(t, ok)
	assert.Equal(t, trade, kept)
}
