package service

import (
	"context"
	"testing"

	"dungeonbot/config"
	"dungeonbot/events"
	"dungeonbot/game/gametest"
	"dungeonbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMergeAttacks(t *testing.T) {
	got := mergeAttacks([]AttackRequest{
		{UserID: 1, Damage: 5},
		{UserID: 2, Damage: 3},
		{UserID: 1, Damage: 4},
	})
	assert.Equal(t, []AttackRequest{{UserID: 1, Damage: 9}, {UserID: 2, Damage: 3}}, got)
}

func TestCombatService_RepeatedAttackerIsOneHit(t *testing.T) {
	ctx := context.Background()
	m := newTestManagers(t)
	factory, uow := acceptingFactory()
	svc := NewCombatService(m, factory, &gametest.Roller{}, config.NewTestConfig())

	_, err := m.Users.Update(ctx, 1, func(u *models.User) error {
		u.Location = models.LocationForest
		return nil
	})
	require.NoError(t, err)
	_, err = svc.Encounter(ctx, 1)
	require.NoError(t, err)

	res, err := svc.Attack(ctx, 9, 1, []AttackRequest{
		{UserID: 1, Damage: 5},
		{UserID: 2, Damage: 3},
		{UserID: 1, Damage: 4},
	})
	require.NoError(t, err)
	require.Len(t, res.Outcome.Hits, 2)
	assert.Equal(t, int64(9), res.Outcome.Hits[0].Applied)
	assert.Equal(t, int64(3), res.Outcome.Hits[1].Applied)

	var changes []events.BalanceChangeEvent
	for _, call := range uow.Events.Calls {
		if e, ok := call.Arguments.Get(0).(events.BalanceChangeEvent); ok {
			changes = append(changes, e)
		}
	}
	require.Len(t, changes, 2)
	assert.Equal(t, events.BalanceChangeEvent{
		UserID: 1, GuildID: 9, OldBalance: 100, NewBalance: 91,
		TransactionType: events.TransactionTypeCombat, ChangeAmount: -9,
	}, changes[0])
	assert.Equal(t, int64(100), changes[1].OldBalance)
	assert.Equal(t, int64(97), changes[1].NewBalance)
	assert.Equal(t, int64(91), m.Users.Get(ctx, 1).Gold)
}
