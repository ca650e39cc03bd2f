package service

import (
	"cmp"
	"slices"

	"dungeonbot/events"
	"dungeonbot/models"
)

func ticketStateChange(t *models.Ticket, actorID int64, from models.TicketState) events.TicketStateChangeEvent {
	return events.TicketStateChangeEvent{
		GuildID:  t.GuildID,
		TicketID: t.ID,
		ActorID:  actorID,
		OldState: string(from),
		NewState: string(t.State),
		ThreadID: t.ThreadID,
	}
}

func sortByID[T any](vs []T, id func(T) int64) {
	slices.SortFunc(vs, func(a, b T) int { return cmp.Compare(id(a), id(b)) })
}
