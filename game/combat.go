package game

import (
	"slices"

	"dungeonbot/models"
)

// Contribution is one party member's attack. The first contribution is the leader's.
type Contribution struct {
	User   *models.User
	Damage int64
}

// Hit is what one contribution did
type Hit struct {
	UserID    int64
	Requested int64
	Applied   int64
	Died      bool
}

// CombatOutcome is the result of one round of attacks
type CombatOutcome struct {
	Hits            []Hit
	Killed          bool
	RemainingHealth int64
	Rewards         []Reward       // one per attacker on a kill, by user id
	Loot            []*models.Item // rolled for the leader on a kill
}

// TotalApplied sums the damage applied this round
func (o CombatOutcome) TotalApplied() int64 {
	var total int64
	for _, h := range o.Hits {
		total += h.Applied
	}
	return total
}

// ResolveCombat applies each contribution in order. Damage is capped by the
// request, the creature's remaining health and the attacker's gold, which is
// spent one for one; dropping to exactly zero gold counts as a death. When the
// creature dies every attacker who ever damaged it earns a kill and experience
// in proportion to their share of its max health, and loot is rolled.
func ResolveCombat(r Roller, party []Contribution, c *Creature) CombatOutcome {
	var out CombatOutcome
	if c.Damage == nil {
		c.Damage = map[int64]int64{}
	}

	for _, p := range party {
		if c.IsDead() {
			break
		}

		applied := min(max(p.Damage, 0), c.Health, p.User.Gold)
		hit := Hit{UserID: p.User.ID, Requested: p.Damage, Applied: applied}
		if applied > 0 {
			p.User.Gold -= applied
			c.Health -= applied
			c.Damage[p.User.ID] += applied
			if p.User.Gold == 0 {
				p.User.Deaths++
				hit.Died = true
			}
		}
		out.Hits = append(out.Hits, hit)
	}

	out.RemainingHealth = c.Health
	if !c.IsDead() {
		return out
	}
	out.Killed = true

	users := make(map[int64]*models.User, len(party))
	for _, p := range party {
		users[p.User.ID] = p.User
	}

	for _, id := range sortedKeys(c.Damage) {
		dealt := c.Damage[id]
		if dealt <= 0 {
			continue
		}
		reward := Reward{UserID: id, Damage: dealt, Experience: c.Experience * dealt / c.MaxHealth}
		if u, ok := users[id]; ok {
			reward.LeveledUp = ApplyReward(u, reward)
			reward.Applied = true
		}
		out.Rewards = append(out.Rewards, reward)
	}

	out.Loot = ResolveLoot(r, c.Tier, c.Paragon)
	return out
}

// Reward is the kill credit of one attacker
type Reward struct {
	UserID     int64
	Damage     int64 // over the whole encounter
	Experience int64
	LeveledUp  bool
	Applied    bool // false when the attacker was not in the final round
}

// ApplyReward credits the kill and experience, reporting a level up
func ApplyReward(u *models.User, reward Reward) bool {
	u.Kills++
	return u.AddExperience(reward.Experience)
}

func sortedKeys(m map[int64]int64) []int64 {
	keys := make([]int64, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
