package game

import (
	"testing"

	"dungeonbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func creature(health, xp int64) *Creature {
	return &Creature{
		ID:         "rat",
		Name:       "Giant Rat",
		Health:     health,
		MaxHealth:  health,
		Tier:       models.TierCommon,
		Experience: xp,
		Damage:     map[int64]int64{},
	}
}

func TestResolveCombat_DamageCaps(t *testing.T) {
	leader := models.NewUser(1, 100)
	poor := models.NewUser(2, 5)
	late := models.NewUser(3, 100)
	c := creature(30, 0)

	out := ResolveCombat(NewSeededRoller(1), []Contribution{
		{User: leader, Damage: 20},
		{User: poor, Damage: 20},
		{User: late, Damage: 20},
	}, c)

	require.Len(t, out.Hits, 3)
	assert.Equal(t, int64(20), out.Hits[0].Applied)
	assert.Equal(t, int64(5), out.Hits[1].Applied)
	assert.Equal(t, int64(5), out.Hits[2].Applied)
	assert.LessOrEqual(t, out.TotalApplied(), c.MaxHealth)

	assert.Equal(t, int64(80), leader.Gold)
	assert.Equal(t, int64(0), poor.Gold)
	assert.Equal(t, int64(95), late.Gold)
	assert.True(t, out.Killed)
}

func TestResolveCombat_ZeroGoldIsDeath(t *testing.T) {
	u := models.NewUser(1, 10)
	c := creature(50, 10)

	out := ResolveCombat(NewSeededRoller(1), []Contribution{{User: u, Damage: 10}}, c)

	assert.True(t, out.Hits[0].Died)
	assert.Equal(t, int64(1), u.Deaths)
	assert.False(t, out.Killed)
	assert.Equal(t, int64(40), out.RemainingHealth)
	assert.Empty(t, out.Loot)
}

func TestResolveCombat_BrokeAttackerDoesNotDieAgain(t *testing.T) {
	u := models.NewUser(1, 0)
	c := creature(50, 10)

	out := ResolveCombat(NewSeededRoller(1), []Contribution{{User: u, Damage: 10}}, c)

	assert.Equal(t, int64(0), out.Hits[0].Applied)
	assert.False(t, out.Hits[0].Died)
	assert.Equal(t, int64(0), u.Deaths)
}

func TestResolveCombat_ExperienceSplitByDamage(t *testing.T) {
	a := models.NewUser(1, 1000)
	b := models.NewUser(2, 1000)
	c := creature(100, 200)

	first := ResolveCombat(NewSeededRoller(1), []Contribution{{User: a, Damage: 25}}, c)
	assert.False(t, first.Killed)

	out := ResolveCombat(NewSeededRoller(1), []Contribution{{User: b, Damage: 500}}, c)
	require.True(t, out.Killed)
	assert.Equal(t, int64(75), out.Hits[0].Applied)

	require.Len(t, out.Rewards, 2)
	assert.Equal(t, Reward{UserID: 1, Damage: 25, Experience: 50}, out.Rewards[0])
	assert.Equal(t, int64(150), out.Rewards[1].Experience)
	assert.True(t, out.Rewards[1].Applied)
	assert.True(t, out.Rewards[1].LeveledUp)

	assert.Equal(t, int64(1), b.Kills)
	assert.Equal(t, int64(150), b.Experience)
	assert.Equal(t, int64(2), b.Level)

	// a was not in the killing round; the caller applies their reward
	assert.Equal(t, int64(0), a.Kills)
	ApplyReward(a, out.Rewards[0])
	assert.Equal(t, int64(1), a.Kills)
	assert.Equal(t, int64(50), a.Experience)
}

func TestResolveCombat_NegativeRequestDoesNothing(t *testing.T) {
	u := models.NewUser(1, 100)
	c := creature(10, 10)

	out := ResolveCombat(NewSeededRoller(1), []Contribution{{User: u, Damage: -50}}, c)

	assert.Equal(t, int64(0), out.Hits[0].Applied)
	assert.Equal(t, int64(100), u.Gold)
	assert.Equal(t, int64(10), c.Health)
}

func TestSpawn(t *testing.T) {
	_, err := Spawn(NewSeededRoller(1), models.LocationTown, 0)
	assert.Error(t, err)

	r := NewSeededRoller(11)
	for i := 0; i < 100; i++ {
		c, err := Spawn(r, models.LocationCaves, 2)
		require.NoError(t, err)

		spec, ok := LookupCreature(c.ID)
		require.True(t, ok)
		assert.Equal(t, 2.0, c.Difficulty)

		lo := int64(float64(spec.MinHealth) * c.Difficulty)
		hi := int64(float64(spec.MaxHealth) * c.Difficulty)
		if c.Paragon {
			lo, hi = lo*2, hi*2
		}
		assert.GreaterOrEqual(t, c.Health, lo)
		assert.LessOrEqual(t, c.Health, hi)
		assert.Equal(t, c.Health, c.MaxHealth)
	}
}

func TestSpawn_ParagonDoublesHealth(t *testing.T) {
	spec, ok := LookupCreature("wolf")
	require.True(t, ok)

	normal := spec.Spawn(&scriptedRoller{ints: []int{0}, floats: []float64{0.99}}, models.LocationForest, 1)
	paragon := spec.Spawn(&scriptedRoller{ints: []int{0}, floats: []float64{0.0}}, models.LocationForest, 1)

	assert.False(t, normal.Paragon)
	assert.True(t, paragon.Paragon)
	assert.Equal(t, spec.MinHealth, normal.Health)
	assert.Equal(t, 2*spec.MinHealth, paragon.Health)
	assert.Equal(t, "Paragon Wolf", paragon.DisplayName())
}

func TestParagonChance(t *testing.T) {
	assert.InDelta(t, 0.02, ParagonChance(1), 1e-9)
	assert.InDelta(t, 0.06, ParagonChance(3), 1e-9)
	assert.InDelta(t, 0.1, ParagonChance(10), 1e-9)
}

func TestCreaturesAt(t *testing.T) {
	for _, loc := range models.Locations {
		if loc.IsSafe() {
			assert.Empty(t, CreaturesAt(loc))
			continue
		}
		assert.NotEmpty(t, CreaturesAt(loc), loc)
	}
	assert.Panics(t, func() { Register(CreatureSpec{ID: "rat"}) })
}
