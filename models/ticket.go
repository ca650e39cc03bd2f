package models

import (
	"fmt"
	"time"
)

// TicketKind distinguishes support tickets from suggestions
type TicketKind string

const (
	TicketKindTicket     TicketKind = "ticket"
	TicketKindSuggestion TicketKind = "suggestion"
)

// TicketState represents the lifecycle state of a ticket thread
type TicketState string

const (
	TicketStateOpen       TicketState = "open"
	TicketStateInProgress TicketState = "in_progress"
	TicketStateApproved   TicketState = "approved"
	TicketStateDenied     TicketState = "denied"
	TicketStateClosed     TicketState = "closed"
)

// TicketKey identifies a ticket within a guild
type TicketKey struct {
	GuildID int64
	ID      int64
}

// Ticket is a staff-handled thread
type Ticket struct {
	GuildID   int64
	ID        int64
	Title     string
	Kind      TicketKind
	State     TicketState
	OwnerID   int64
	ThreadID  int64
	Done      bool
	CreatedAt time.Time
}

// NewTicket creates an open ticket
func NewTicket(key TicketKey) *Ticket {
	return &Ticket{
		GuildID: key.GuildID,
		ID:      key.ID,
		Kind:    TicketKindTicket,
		State:   TicketStateOpen,
	}
}

// Key returns the ticket's key
func (t *Ticket) Key() TicketKey {
	return TicketKey{GuildID: t.GuildID, ID: t.ID}
}

var ticketTransitions = map[TicketState][]TicketState{
	TicketStateOpen:       {TicketStateInProgress, TicketStateClosed},
	TicketStateInProgress: {TicketStateClosed},
	TicketStateApproved:   {TicketStateClosed},
	TicketStateDenied:     {TicketStateClosed},
}

// CanTransition reports whether the ticket may move to the target state
func (t *Ticket) CanTransition(to TicketState) bool {
	if t.Kind == TicketKindSuggestion && (to == TicketStateApproved || to == TicketStateDenied) {
		return t.State == TicketStateOpen || t.State == TicketStateInProgress
	}
	for _, s := range ticketTransitions[t.State] {
		if s == to {
			return true
		}
	}
	return false
}

// Transition moves the ticket to the target state
func (t *Ticket) Transition(to TicketState) error {
	if !t.CanTransition(to) {
		return fmt.Errorf("cannot move %s from %s to %s", t.Kind, t.State, to)
	}
	t.State = to
	t.Done = to == TicketStateClosed
	return nil
}

// IsActive reports whether staff still need to act on the ticket
func (t *Ticket) IsActive() bool {
	return t.State != TicketStateClosed
}

// Clone returns a copy of the ticket
func (t *Ticket) Clone() *Ticket {
	c := *t
	return &c
}
