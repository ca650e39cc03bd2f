package service

import (
	"context"
	"time"

	"dungeonbot/config"
	"dungeonbot/events"
	"dungeonbot/game"
	"dungeonbot/models"

	log "github.com/sirupsen/logrus"
)

type gamblingService struct {
	m          *Managers
	uowFactory UnitOfWorkFactory
	pending    *PendingActions
	roller     game.Roller
	cfg        *config.Config
	now        func() time.Time
}

// GambleOutcome is a settled gamble plus what happened to the follow-up offer
type GambleOutcome struct {
	game.GambleResult
	// DoubleOffered is set when a win left a double or nothing offer pending
	DoubleOffered bool
	// Kept names the pending action that stopped the offer, if any
	Kept string
}

// NewGamblingService creates a new gambling service
func NewGamblingService(m *Managers, uowFactory UnitOfWorkFactory, pending *PendingActions, roller game.Roller, cfg *config.Config) GamblingService {
	return &gamblingService{
		m:          m,
		uowFactory: uowFactory,
		pending:    pending,
		roller:     roller,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *gamblingService) Gamble(ctx context.Context, guildID, userID, wager int64, side string) (*game.GambleResult, error) {
	unlock := s.m.Users.Lock(userID)
	defer unlock()

	now := s.now()
	w := newWriteSet(s.m)
	u := w.user(ctx, userID)

	if err := requireCooldown(u, models.CooldownGamble, now); err != nil {
		return nil, err
	}

	res, err := game.ResolveGamble(s.roller, u, wager, side)
	if err != nil {
		return nil, invalidErr(err)
	}
	if s.cfg.GambleCooldown > 0 {
		u.SetCooldown(models.CooldownGamble, now, s.cfg.GambleCooldown)
	}

	w.publish(events.GambleResolvedEvent{
		UserID: userID,
		Side:   string(res.Side),
		Roll:   res.Total,
		Wager:  res.Wager,
		Won:    res.Won,
		Payout: res.Payout,
	})
	w.publish(balanceChange(guildID, userID, res.OldGold, res.NewGold, res.Won))

	if err := w.commit(ctx, s.uowFactory); err != nil {
		return nil, err
	}

	out := &GambleOutcome{GambleResult: res}
	if res.Won {
		blocking, ok := s.pending.Offer(userID, DoubleOrNothingOffer{Side: res.Side, Winnings: res.Winnings})
		out.DoubleOffered = ok
		if !ok {
			out.Kept = describePending(blocking)
		}
	} else {
		TakeAs[DoubleOrNothingOffer](s.pending, userID)
	}

	log.WithFields(log.Fields{
		"user":  userID,
		"side":  res.Side,
		"wager": res.Wager,
		"roll":  res.Total,
		"won":   res.Won,
	}).Debug("Gamble resolved")
	return out, nil
}

func (s *gamblingService) DoubleOrNothing(ctx context.Context, guildID, userID int64) (*game.DoubleResult, error) {
	unlock := s.m.Users.Lock(userID)
	defer unlock()

	offer, ok := TakeAs[DoubleOrNothingOffer](s.pending, userID)
	if !ok {
		return nil, invalidErr(game.ErrNothingToDouble)
	}

	w := newWriteSet(s.m)
	u := w.user(ctx, userID)

	res, err := game.ResolveDoubleOrNothing(s.roller, u, offer.Side, offer.Winnings)
	if err != nil {
		return nil, invalidErr(err)
	}

	var payout int64
	if res.Won {
		payout = 2 * res.Stake
	}
	w.publish(events.GambleResolvedEvent{
		UserID: userID,
		Side:   string(res.Side),
		Roll:   res.Total,
		Wager:  res.Stake,
		Won:    res.Won,
		Payout: payout,
		Double: true,
	})
	w.publish(balanceChange(guildID, userID, res.OldGold, res.NewGold, res.Won))

	if err := w.commit(ctx, s.uowFactory); err != nil {
		s.pending.Offer(userID, offer)
		return nil, err
	}

	if res.Won {
		s.pending.Offer(userID, DoubleOrNothingOffer{Side: res.Side, Winnings: res.Stake * 2})
	}
	return &res, nil
}

func balanceChange(guildID, userID, oldGold, newGold int64, won bool) events.BalanceChangeEvent {
	kind := events.TransactionTypeGambleLoss
	if won {
		kind = events.TransactionTypeGambleWin
	}
	return events.BalanceChangeEvent{
		UserID:          userID,
		GuildID:         guildID,
		OldBalance:      oldGold,
		NewBalance:      newGold,
		TransactionType: kind,
		ChangeAmount:    newGold - oldGold,
	}
}
