package service

import (
	"context"
	"sync"
	"time"

	"dungeonbot/config"
	"dungeonbot/events"
	"dungeonbot/game"
	"dungeonbot/models"

	log "github.com/sirupsen/logrus"
)

// encounterTTL is how long an untouched creature waits for its party
const encounterTTL = 10 * time.Minute

// AttackRequest is one party member's damage for a round; damage costs gold
type AttackRequest struct {
	UserID int64
	Damage int64
}

// AttackResult is the settled round
type AttackResult struct {
	Creature *game.Creature
	Outcome  game.CombatOutcome
	Loot     *GrantResult // leader's share when the creature died
}

type encounter struct {
	creature *game.Creature
	version  int
	expires  time.Time
}

type combatService struct {
	m          *Managers
	uowFactory UnitOfWorkFactory
	roller     game.Roller
	cfg        *config.Config
	now        func() time.Time

	mu         sync.Mutex
	encounters map[int64]*encounter // keyed by party leader
}

// NewCombatService creates a new combat service
func NewCombatService(m *Managers, uowFactory UnitOfWorkFactory, roller game.Roller, cfg *config.Config) CombatService {
	return &combatService{
		m:          m,
		uowFactory: uowFactory,
		roller:     roller,
		cfg:        cfg,
		now:        time.Now,
		encounters: make(map[int64]*encounter),
	}
}

// current returns the leader's live encounter with its version
func (s *combatService) current(leaderID int64) (*encounter, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	enc, ok := s.encounters[leaderID]
	if !ok {
		return nil, 0, false
	}
	if !s.now().Before(enc.expires) {
		delete(s.encounters, leaderID)
		return nil, 0, false
	}
	return enc, enc.version, true
}

func (s *combatService) Encounter(ctx context.Context, leaderID int64) (*game.Creature, error) {
	if enc, _, ok := s.current(leaderID); ok {
		return enc.creature.Clone(), nil
	}

	var creature *game.Creature
	_, err := s.m.Users.Update(ctx, leaderID, func(u *models.User) error {
		if u.Location.IsSafe() {
			return invalid("nothing to fight in %s; travel somewhere first", u.Location.DisplayName())
		}
		now := s.now()
		if err := requireCooldown(u, models.CooldownFight, now); err != nil {
			return err
		}

		c, err := game.Spawn(s.roller, u.Location, u.Floor)
		if err != nil {
			return invalidErr(err)
		}
		creature = c
		if s.cfg.FightCooldown > 0 {
			u.SetCooldown(models.CooldownFight, now, s.cfg.FightCooldown)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.encounters[leaderID] = &encounter{creature: creature, expires: s.now().Add(encounterTTL)}
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"leader":   leaderID,
		"creature": creature.ID,
		"health":   creature.Health,
		"paragon":  creature.Paragon,
	}).Debug("Creature spawned")
	return creature.Clone(), nil
}

// mergeAttacks sums the damage of repeated attackers into their first entry,
// so each user resolves as one hit against one balance
func mergeAttacks(attacks []AttackRequest) []AttackRequest {
	merged := make([]AttackRequest, 0, len(attacks))
	at := make(map[int64]int, len(attacks))
	for _, a := range attacks {
		if i, ok := at[a.UserID]; ok {
			merged[i].Damage += a.Damage
			continue
		}
		at[a.UserID] = len(merged)
		merged = append(merged, a)
	}
	return merged
}

// lockFight locks the leader, the attackers and everyone who already damaged
// the creature, retrying when the encounter changed while waiting
func (s *combatService) lockFight(leaderID int64, attacks []AttackRequest) (*encounter, func(), error) {
	for {
		enc, version, ok := s.current(leaderID)
		if !ok {
			return nil, nil, invalid("there is nothing to attack")
		}

		s.mu.Lock()
		ids := []int64{leaderID}
		for id := range enc.creature.Damage {
			ids = append(ids, id)
		}
		s.mu.Unlock()
		for _, a := range attacks {
			ids = append(ids, a.UserID)
		}

		unlock := lockUsers(s.m.Users, ids...)
		again, v, ok := s.current(leaderID)
		if ok && again == enc && v == version {
			return enc, unlock, nil
		}
		unlock()
	}
}

func (s *combatService) Attack(ctx context.Context, guildID, leaderID int64, attacks []AttackRequest) (*AttackResult, error) {
	if len(attacks) == 0 {
		return nil, invalid("nobody attacked")
	}
	attacks = mergeAttacks(attacks)

	enc, unlock, err := s.lockFight(leaderID, attacks)
	if err != nil {
		return nil, err
	}
	defer unlock()

	s.mu.Lock()
	c := enc.creature.Clone()
	s.mu.Unlock()

	w := newWriteSet(s.m)
	party := make([]game.Contribution, 0, len(attacks))
	for _, a := range attacks {
		party = append(party, game.Contribution{User: w.user(ctx, a.UserID), Damage: a.Damage})
	}

	outcome := game.ResolveCombat(s.roller, party, c)
	for _, hit := range outcome.Hits {
		if hit.Applied <= 0 {
			continue
		}
		u := w.user(ctx, hit.UserID)
		w.publish(events.BalanceChangeEvent{
			UserID:          hit.UserID,
			GuildID:         guildID,
			OldBalance:      u.Gold + hit.Applied,
			NewBalance:      u.Gold,
			TransactionType: events.TransactionTypeCombat,
			ChangeAmount:    -hit.Applied,
		})
	}

	res := &AttackResult{Creature: c, Outcome: outcome}
	if outcome.Killed {
		for i, reward := range outcome.Rewards {
			u := w.user(ctx, reward.UserID)
			if !reward.Applied {
				outcome.Rewards[i].LeveledUp = game.ApplyReward(u, reward)
				outcome.Rewards[i].Applied = true
			}
			if outcome.Rewards[i].LeveledUp {
				w.publish(events.LevelUpEvent{UserID: u.ID, Level: u.Level})
			}
		}

		leader := w.user(ctx, leaderID)
		old := leader.Gold
		res.Loot = grantInto(ctx, w, leader, outcome.Loot)
		if res.Loot.Gold > 0 {
			w.publish(events.BalanceChangeEvent{
				UserID:          leaderID,
				GuildID:         guildID,
				OldBalance:      old,
				NewBalance:      leader.Gold,
				TransactionType: events.TransactionTypeCombat,
				ChangeAmount:    res.Loot.Gold,
			})
		}

		contributors := make([]int64, 0, len(outcome.Rewards))
		for _, r := range outcome.Rewards {
			contributors = append(contributors, r.UserID)
		}
		w.publish(events.CreatureDefeatedEvent{
			LeaderID:     leaderID,
			CreatureID:   c.ID,
			CreatureName: c.DisplayName(),
			Paragon:      c.Paragon,
			Contributors: contributors,
			LootCount:    len(game.WithoutNothing(outcome.Loot)),
		})
		res.Outcome = outcome
	}

	if err := w.commit(ctx, s.uowFactory); err != nil {
		return nil, err
	}

	s.mu.Lock()
	if outcome.Killed {
		delete(s.encounters, leaderID)
	} else {
		enc.creature = c
		enc.version++
		enc.expires = s.now().Add(encounterTTL)
	}
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"leader":    leaderID,
		"creature":  c.ID,
		"remaining": outcome.RemainingHealth,
		"killed":    outcome.Killed,
	}).Debug("Attack resolved")
	return res, nil
}

func (s *combatService) Flee(leaderID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.encounters[leaderID]
	delete(s.encounters, leaderID)
	return ok
}
