package service

import (
	"cmp"
	"context"
	"slices"
	"time"

	"dungeonbot/config"
	"dungeonbot/events"
	"dungeonbot/models"

	log "github.com/sirupsen/logrus"
)

// TransferResult describes a completed gold transfer
type TransferResult struct {
	FromID      int64
	ToID        int64
	Amount      int64
	FromBalance int64
	ToBalance   int64
}

// DailyResult describes a claimed daily reward
type DailyResult struct {
	Reward    int64
	Balance   int64
	NextClaim time.Time
}

// userService implements the UserService interface
type userService struct {
	m          *Managers
	uowFactory UnitOfWorkFactory
	cfg        *config.Config
	now        func() time.Time
}

// NewUserService creates a new user service
func NewUserService(m *Managers, uowFactory UnitOfWorkFactory, cfg *config.Config) UserService {
	return &userService{
		m:          m,
		uowFactory: uowFactory,
		cfg:        cfg,
		now:        time.Now,
	}
}

func (s *userService) Get(ctx context.Context, userID int64) *models.User {
	return s.m.Users.Get(ctx, userID)
}

func (s *userService) Find(userID int64) (*models.User, bool) {
	return s.m.Users.Peek(userID)
}

func (s *userService) GetAll() []*models.User {
	return s.m.Users.GetAll()
}

func (s *userService) Save(ctx context.Context, u *models.User) error {
	unlock := s.m.Users.Lock(u.ID)
	defer unlock()
	return s.m.Users.Save(ctx, u)
}

// Leaderboard returns the n richest users, gold descending then id ascending
func (s *userService) Leaderboard(n int) []*models.User {
	if n <= 0 {
		return []*models.User{}
	}
	users := s.m.Users.GetAll()
	slices.SortFunc(users, func(a, b *models.User) int {
		if c := cmp.Compare(b.Gold, a.Gold); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(users) > n {
		users = users[:n]
	}
	return users
}

func (s *userService) RecordMessage(ctx context.Context, userID int64) (*models.User, error) {
	return s.m.Users.Update(ctx, userID, func(u *models.User) error {
		u.MsgCount++
		return nil
	})
}

func (s *userService) PressButton(ctx context.Context, userID int64) (*models.User, error) {
	unlock := s.m.Users.Lock(userID)
	defer unlock()

	w := newWriteSet(s.m)
	u := w.user(ctx, userID)
	old := u.Gold
	u.ButtonPress++
	u.AddGold(1)
	w.publish(events.BalanceChangeEvent{
		UserID:          userID,
		OldBalance:      old,
		NewBalance:      u.Gold,
		TransactionType: events.TransactionTypeButtonReward,
		ChangeAmount:    1,
	})

	if err := w.commit(ctx, s.uowFactory); err != nil {
		return nil, err
	}
	return u, nil
}

// Give moves gold from one user to another in a single transaction
func (s *userService) Give(ctx context.Context, guildID, fromID, toID, amount int64) (*TransferResult, error) {
	if amount <= 0 {
		return nil, invalid("transfer amount must be positive")
	}
	if fromID == toID {
		return nil, invalid("cannot transfer to yourself")
	}

	unlock := lockUsers(s.m.Users, fromID, toID)
	defer unlock()

	w := newWriteSet(s.m)
	from := w.user(ctx, fromID)
	to := w.user(ctx, toID)

	if !from.CanAfford(amount) {
		return nil, invalid("insufficient gold: have %d, need %d", from.Gold, amount)
	}

	fromOld, toOld := from.Gold, to.Gold
	from.Gold -= amount
	to.AddGold(amount)

	w.publish(events.BalanceChangeEvent{
		UserID:          fromID,
		GuildID:         guildID,
		OldBalance:      fromOld,
		NewBalance:      from.Gold,
		TransactionType: events.TransactionTypeTransferOut,
		ChangeAmount:    -amount,
	})
	w.publish(events.BalanceChangeEvent{
		UserID:          toID,
		GuildID:         guildID,
		OldBalance:      toOld,
		NewBalance:      to.Gold,
		TransactionType: events.TransactionTypeTransferIn,
		ChangeAmount:    amount,
	})

	if err := w.commit(ctx, s.uowFactory); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"from":   fromID,
		"to":     toID,
		"amount": amount,
	}).Info("Gold transferred")

	return &TransferResult{
		FromID:      fromID,
		ToID:        toID,
		Amount:      amount,
		FromBalance: from.Gold,
		ToBalance:   to.Gold,
	}, nil
}

// Spawn adjusts a balance by amount, clamping at zero
func (s *userService) Spawn(ctx context.Context, adminID, userID, amount int64) (*models.User, error) {
	if !s.cfg.IsAdmin(adminID) {
		return nil, invalid("you are not allowed to spawn gold")
	}

	unlock := s.m.Users.Lock(userID)
	defer unlock()

	w := newWriteSet(s.m)
	u := w.user(ctx, userID)
	old := u.Gold
	u.Gold = max(0, u.Gold+amount)
	w.publish(events.BalanceChangeEvent{
		UserID:          userID,
		OldBalance:      old,
		NewBalance:      u.Gold,
		TransactionType: events.TransactionTypeSpawn,
		ChangeAmount:    u.Gold - old,
	})

	if err := w.commit(ctx, s.uowFactory); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"admin":  adminID,
		"user":   userID,
		"amount": amount,
	}).Info("Gold spawned")
	return u, nil
}

func (s *userService) CooldownRemaining(ctx context.Context, userID int64, kind string) time.Duration {
	return s.m.Users.Get(ctx, userID).CooldownRemaining(kind, s.now())
}

// Daily pays the configured reward and blocks the next claim for DailyCooldown
func (s *userService) Daily(ctx context.Context, userID int64) (*DailyResult, error) {
	unlock := s.m.Users.Lock(userID)
	defer unlock()

	now := s.now()
	w := newWriteSet(s.m)
	u := w.user(ctx, userID)
	if err := requireCooldown(u, models.CooldownDaily, now); err != nil {
		return nil, err
	}

	old := u.Gold
	u.AddGold(s.cfg.DailyReward)
	u.SetCooldown(models.CooldownDaily, now, s.cfg.DailyCooldown)
	w.publish(events.BalanceChangeEvent{
		UserID:          userID,
		OldBalance:      old,
		NewBalance:      u.Gold,
		TransactionType: events.TransactionTypeDaily,
		ChangeAmount:    s.cfg.DailyReward,
	})

	if err := w.commit(ctx, s.uowFactory); err != nil {
		return nil, err
	}
	return &DailyResult{
		Reward:    s.cfg.DailyReward,
		Balance:   u.Gold,
		NextClaim: now.Add(s.cfg.DailyCooldown),
	}, nil
}

// Travel moves the user, requiring the location to be unlocked and the floor in range
func (s *userService) Travel(ctx context.Context, userID int64, location string, floor int64) (*models.User, error) {
	loc, ok := models.ParseLocation(location)
	if !ok {
		return nil, invalid("unknown location %q", location)
	}
	if floor < 0 || floor > loc.MaxFloor() {
		return nil, invalid("%s has floors 0 to %d", loc.DisplayName(), loc.MaxFloor())
	}

	return s.m.Users.Update(ctx, userID, func(u *models.User) error {
		if !u.CanTravel(loc) {
			return invalid("you need the %s key first", loc.DisplayName())
		}
		u.Location = loc
		u.Floor = floor
		return nil
	})
}

// lockUsers takes the locks of every distinct user in id order and returns
// their release
func lockUsers(m *UserManager, ids ...int64) func() {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)

	unlocks := make([]func(), 0, len(sorted))
	for _, id := range sorted {
		unlocks = append(unlocks, m.Lock(id))
	}
	return func() {
		for i := len(unlocks) - 1; i >= 0; i-- {
			unlocks[i]()
		}
	}
}

// requireCooldown rejects the activity while its cooldown runs
func requireCooldown(u *models.User, kind string, now time.Time) error {
	if remaining := u.CooldownRemaining(kind, now); remaining > 0 {
		return invalid("you can %s again in %s", kind, remaining.Round(time.Second))
	}
	return nil
}
