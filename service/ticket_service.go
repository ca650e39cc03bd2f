package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"dungeonbot/models"

	log "github.com/sirupsen/logrus"
)

type ticketService struct {
	m   *Managers
	bus EventPublisher
	now func() time.Time

	mu sync.Mutex // serializes id allocation
}

// NewTicketService creates a new ticket service
func NewTicketService(m *Managers, bus EventPublisher) TicketService {
	return &ticketService{m: m, bus: bus, now: time.Now}
}

// Open creates a ticket or suggestion in a guild that configured the matching channel
func (s *ticketService) Open(ctx context.Context, guildID, ownerID, threadID int64, kind models.TicketKind, title string) (*models.Ticket, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, invalid("give your %s a title", kind)
	}

	settings := s.m.GuildSettings.Get(ctx, guildID)
	switch kind {
	case models.TicketKindTicket:
		if !settings.HasSupport() {
			return nil, invalid("support tickets are not set up in this server")
		}
	case models.TicketKindSuggestion:
		if !settings.HasSuggestions() {
			return nil, invalid("suggestions are not set up in this server")
		}
	default:
		return nil, invalid("unknown ticket kind %q", kind)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var next int64 = 1
	for _, t := range s.m.Tickets.Find(func(t *models.Ticket) bool { return t.GuildID == guildID }) {
		next = max(next, t.ID+1)
	}

	ticket := models.NewTicket(models.TicketKey{GuildID: guildID, ID: next})
	ticket.Kind = kind
	ticket.Title = title
	ticket.OwnerID = ownerID
	ticket.ThreadID = threadID
	ticket.CreatedAt = s.now().UTC()

	if err := s.m.Tickets.Save(ctx, ticket); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"guild":  guildID,
		"ticket": ticket.ID,
		"kind":   kind,
	}).Info("Ticket opened")
	return ticket, nil
}

func (s *ticketService) Transition(ctx context.Context, key models.TicketKey, actorID int64, to models.TicketState) (*models.Ticket, error) {
	if _, ok := s.m.Tickets.Peek(key); !ok {
		return nil, invalid("ticket #%d does not exist", key.ID)
	}

	var from models.TicketState
	ticket, err := s.m.Tickets.Update(ctx, key, func(t *models.Ticket) error {
		from = t.State
		if err := t.Transition(to); err != nil {
			return invalidErr(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ticketStateChange(ticket, actorID, from))
	return ticket, nil
}

func (s *ticketService) Get(key models.TicketKey) (*models.Ticket, bool) {
	return s.m.Tickets.Peek(key)
}

// ListOpen returns the guild's tickets that are not closed, oldest first
func (s *ticketService) ListOpen(guildID int64) []*models.Ticket {
	tickets := s.m.Tickets.Find(func(t *models.Ticket) bool {
		return t.GuildID == guildID && t.IsActive()
	})
	sortByID(tickets, func(t *models.Ticket) int64 { return t.ID })
	return tickets
}

func (s *ticketService) FindByThread(threadID int64) (*models.Ticket, bool) {
	return s.m.Tickets.FindFirst(func(t *models.Ticket) bool { return t.ThreadID == threadID })
}
