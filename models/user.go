package models

import (
	"errors"
	"maps"
	"slices"
	"time"
)

const (
	// DefaultGold is the balance of a freshly created user
	DefaultGold int64 = 100

	// MinimumBetFloor is the smallest wager accepted regardless of holdings
	MinimumBetFloor int64 = 10
)

// Activity kinds that carry a cooldown
const (
	CooldownGamble = "gamble"
	CooldownFight  = "fight"
	CooldownDaily  = "daily"
)

// User represents a Discord user's persistent game state
type User struct {
	ID          int64
	Gold        int64
	MsgCount    int64
	Gambles     int64
	GamblesWon  int64
	ButtonPress int64
	Experience  int64
	Level       int64
	Kills       int64
	Deaths      int64
	WeaponID    string // "" when nothing is equipped
	Location    Location
	Floor       int64
	Unlocked    []Location
	Cooldowns   map[string]int64 // activity kind -> unix millis when it becomes available
}

// NewUser creates the default record for a user seen for the first time
func NewUser(id int64, gold int64) *User {
	return &User{
		ID:        id,
		Gold:      gold,
		Level:     1,
		Location:  LocationTown,
		Unlocked:  []Location{LocationTown},
		Cooldowns: map[string]int64{},
	}
}

// MinimumBet is 10% of the user's gold, never below MinimumBetFloor
func (u *User) MinimumBet() int64 {
	return max(MinimumBetFloor, u.Gold/10)
}

// CanAfford checks if the user has at least amount gold
func (u *User) CanAfford(amount int64) bool {
	return u.Gold >= amount
}

// AddGold credits the user's balance
func (u *User) AddGold(amount int64) {
	u.Gold += amount
}

// SpendGold debits the user's balance, refusing to go negative
func (u *User) SpendGold(amount int64) error {
	if amount < 0 {
		return errors.New("amount must not be negative")
	}
	if !u.CanAfford(amount) {
		return errors.New("insufficient gold")
	}
	u.Gold -= amount
	return nil
}

// HasWeapon reports whether a weapon is equipped
func (u *User) HasWeapon() bool {
	return u.WeaponID != ""
}

// CooldownRemaining returns how long until the activity is available again
func (u *User) CooldownRemaining(kind string, now time.Time) time.Duration {
	until, ok := u.Cooldowns[kind]
	if !ok {
		return 0
	}
	remaining := time.UnixMilli(until).Sub(now)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SetCooldown blocks the activity until now+d
func (u *User) SetCooldown(kind string, now time.Time, d time.Duration) {
	if u.Cooldowns == nil {
		u.Cooldowns = map[string]int64{}
	}
	u.Cooldowns[kind] = now.Add(d).UnixMilli()
}

// HasUnlocked reports whether the user may travel to loc
func (u *User) HasUnlocked(loc Location) bool {
	return slices.Contains(u.Unlocked, loc)
}

// Unlock grants access to a location, returning false if it was already unlocked
func (u *User) Unlock(loc Location) bool {
	if u.HasUnlocked(loc) {
		return false
	}
	u.Unlocked = append(u.Unlocked, loc)
	return true
}

// AddExperience adds experience and recomputes the level, returning true on level up
func (u *User) AddExperience(xp int64) bool {
	u.Experience += xp
	level := LevelForExperience(u.Experience)
	if level > u.Level {
		u.Level = level
		return true
	}
	return false
}

// LevelForExperience maps total experience to a level: each level costs 100 more than the last
func LevelForExperience(xp int64) int64 {
	level := int64(1)
	cost := int64(100)
	for xp >= cost {
		xp -= cost
		level++
		cost += 100
	}
	return level
}

// CanTravel reports whether the user may go to loc
func (u *User) CanTravel(loc Location) bool {
	return !loc.RequiresKey() || u.HasUnlocked(loc)
}

// Clone returns a deep copy for mutation outside the cache
func (u *User) Clone() *User {
	c := *u
	c.Unlocked = slices.Clone(u.Unlocked)
	c.Cooldowns = maps.Clone(u.Cooldowns)
	if c.Cooldowns == nil {
		c.Cooldowns = map[string]int64{}
	}
	return &c
}
