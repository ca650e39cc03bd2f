package game

import (
	"errors"
	"fmt"
	"strings"

	"dungeonbot/models"
)

// Side is the outcome a gambler bets on
type Side string

const (
	SideHigh  Side = "high"  // 8 to 12
	SideLow   Side = "low"   // 2 to 6
	SideSeven Side = "seven" // exactly 7
)

// ParseSide resolves user input to a side
func ParseSide(s string) (Side, bool) {
	switch Side(strings.ToLower(strings.TrimSpace(s))) {
	case SideHigh:
		return SideHigh, true
	case SideLow:
		return SideLow, true
	case SideSeven, "7":
		return SideSeven, true
	}
	return "", false
}

// Multiplier is the winnings per unit wagered on a correct call
func (s Side) Multiplier() int64 {
	if s == SideSeven {
		return 4
	}
	return 1
}

// Wins reports whether the dice total satisfies the side
func (s Side) Wins(total int) bool {
	switch s {
	case SideHigh:
		return total >= 8
	case SideLow:
		return total <= 6
	case SideSeven:
		return total == 7
	}
	return false
}

var (
	ErrInvalidSide     = errors.New("pick high, low or seven")
	ErrNonPositiveBet  = errors.New("you need to bet something")
	ErrNothingToDouble = errors.New("there are no winnings to double")
)

// BelowMinimumError rejects a wager under the user's minimum bet
type BelowMinimumError struct {
	Wager   int64
	Minimum int64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("minimum bet is %d gold, you bet %d", e.Minimum, e.Wager)
}

// GambleResult describes a settled gamble
type GambleResult struct {
	Side     Side
	Dice     [2]int
	Total    int
	Wager    int64 // after clamping to holdings
	Won      bool
	Winnings int64 // profit on a win, 0 on a loss
	Payout   int64 // gold returned to the gambler: wager plus winnings, 0 on a loss
	OldGold  int64
	NewGold  int64
}

// ResolveGamble settles a dice gamble against the user's balance. The wager is
// clamped to the user's gold before validation. A rejected gamble leaves the
// user untouched.
func ResolveGamble(r Roller, u *models.User, wager int64, side string) (GambleResult, error) {
	s, ok := ParseSide(side)
	if !ok {
		return GambleResult{}, ErrInvalidSide
	}

	wager = min(wager, u.Gold)
	if wager <= 0 {
		return GambleResult{}, ErrNonPositiveBet
	}
	if minimum := u.MinimumBet(); wager < minimum {
		return GambleResult{}, &BelowMinimumError{Wager: wager, Minimum: minimum}
	}

	res := GambleResult{Side: s, Wager: wager, OldGold: u.Gold}
	res.Dice = [2]int{RollD6(r), RollD6(r)}
	res.Total = res.Dice[0] + res.Dice[1]
	res.Won = s.Wins(res.Total)

	u.Gambles++
	if res.Won {
		res.Winnings = wager * s.Multiplier()
		res.Payout = wager + res.Winnings
		u.GamblesWon++
		u.AddGold(res.Winnings)
	} else {
		u.Gold -= wager
	}
	res.NewGold = u.Gold
	return res, nil
}

// DoubleResult describes a settled double or nothing
type DoubleResult struct {
	Side    Side
	Dice    [2]int
	Total   int
	Stake   int64
	Won     bool
	OldGold int64
	NewGold int64
}

// ResolveDoubleOrNothing re-rolls a won gamble with the winnings at stake. A
// win adds the stake again; a loss takes the winnings back, returning the user
// to where the original bet started and never below zero.
func ResolveDoubleOrNothing(r Roller, u *models.User, side Side, winnings int64) (DoubleResult, error) {
	if winnings <= 0 {
		return DoubleResult{}, ErrNothingToDouble
	}

	res := DoubleResult{Side: side, Stake: winnings, OldGold: u.Gold}
	res.Dice = [2]int{RollD6(r), RollD6(r)}
	res.Total = res.Dice[0] + res.Dice[1]
	res.Won = side.Wins(res.Total)

	u.Gambles++
	if res.Won {
		u.GamblesWon++
		u.AddGold(winnings)
	} else {
		u.Gold = max(0, u.Gold-winnings)
	}
	res.NewGold = u.Gold
	return res, nil
}
