package service

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"dungeonbot/events"
	"dungeonbot/models"

	log "github.com/sirupsen/logrus"
)

// Audit log actions
const (
	LogActionBalance  = "balance"
	LogActionTrade    = "trade"
	LogActionTicket   = "ticket"
	LogActionSubGuild = "subguild"
)

type logService struct {
	m   *Managers
	now func() time.Time

	mu sync.Mutex // serializes id allocation
}

// NewLogService creates a new audit log service
func NewLogService(m *Managers) LogService {
	return &logService{m: m, now: time.Now}
}

func (s *logService) Record(ctx context.Context, guildID, userID int64, action, message string) (*models.LogEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next int64 = 1
	for _, e := range s.m.Logs.Find(func(e *models.LogEntry) bool { return e.GuildID == guildID }) {
		next = max(next, e.ID+1)
	}

	entry := &models.LogEntry{
		GuildID:   guildID,
		ID:        next,
		UserID:    userID,
		Action:    action,
		Message:   message,
		CreatedAt: s.now().UTC(),
	}
	if err := s.m.Logs.Save(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// Recent returns the guild's newest n entries, newest first
func (s *logService) Recent(guildID int64, n int) []*models.LogEntry {
	entries := s.m.Logs.Find(func(e *models.LogEntry) bool { return e.GuildID == guildID })
	slices.SortFunc(entries, func(a, b *models.LogEntry) int { return cmp.Compare(b.ID, a.ID) })
	if n >= 0 && len(entries) > n {
		entries = entries[:n]
	}
	return entries
}

// Subscribe records guild scoped events for guilds with logging enabled
func (s *logService) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.EventTypeBalanceChange, func(ctx context.Context, e events.Event) {
		ev, ok := e.(events.BalanceChangeEvent)
		if !ok || ev.GuildID == 0 {
			return
		}
		s.recordEvent(ctx, ev.GuildID, ev.UserID, LogActionBalance,
			fmt.Sprintf("%s: %+d gold (%d → %d)", ev.TransactionType, ev.ChangeAmount, ev.OldBalance, ev.NewBalance))
	})

	bus.Subscribe(events.EventTypeTradeCompleted, func(ctx context.Context, e events.Event) {
		ev, ok := e.(events.TradeCompletedEvent)
		if !ok {
			return
		}
		s.recordEvent(ctx, ev.GuildID, ev.FromID, LogActionTrade,
			fmt.Sprintf("traded %d item(s) to %d for %d gold", len(ev.ItemIDs), ev.ToID, ev.Gold))
	})

	bus.Subscribe(events.EventTypeTicketStateChange, func(ctx context.Context, e events.Event) {
		ev, ok := e.(events.TicketStateChangeEvent)
		if !ok {
			return
		}
		s.recordEvent(ctx, ev.GuildID, ev.ActorID, LogActionTicket,
			fmt.Sprintf("ticket #%d moved from %s to %s", ev.TicketID, ev.OldState, ev.NewState))
	})

	bus.Subscribe(events.EventTypeSubGuildChange, func(ctx context.Context, e events.Event) {
		ev, ok := e.(events.SubGuildChangeEvent)
		if !ok {
			return
		}
		msg := fmt.Sprintf("guild %d: %s", ev.SubGuildID, ev.Action)
		if ev.TargetID != 0 {
			msg = fmt.Sprintf("%s %d", msg, ev.TargetID)
		}
		s.recordEvent(ctx, ev.GuildID, ev.ActorID, LogActionSubGuild, msg)
	})
}

func (s *logService) recordEvent(ctx context.Context, guildID, userID int64, action, message string) {
	settings, ok := s.m.GuildSettings.Peek(guildID)
	if !ok || !settings.HasLogChannel() {
		return
	}
	if _, err := s.Record(ctx, guildID, userID, action, message); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild":  guildID,
			"action": action,
		}).Error("Failed to record audit log entry")
	}
}
