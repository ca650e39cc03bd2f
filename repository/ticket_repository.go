package repository

import (
	"time"

	"dungeonbot/database"
	"dungeonbot/models"
	"dungeonbot/store"
)

// TicketCodec maps tickets to the tickets table
type TicketCodec struct{}

var ticketSchema = store.NewSchema("tickets", []string{"guild_id", "id"},
	store.Int("guild_id"),
	store.Int("id"),
	store.Text("title"),
	store.Text("kind"),
	store.Text("state"),
	store.Int("owner_id"),
	store.Int("thread_id"),
	store.Bool("done"),
	store.Int("created_at"),
)

func (TicketCodec) Schema() store.Schema { return ticketSchema }

func (TicketCodec) Encode(t *models.Ticket) store.Record {
	return store.Record{
		t.GuildID,
		t.ID,
		t.Title,
		string(t.Kind),
		string(t.State),
		t.OwnerID,
		t.ThreadID,
		t.Done,
		encodeTime(t.CreatedAt),
	}
}

func (TicketCodec) Decode(r store.Record) *models.Ticket {
	ticketSchema.Check(r)
	return &models.Ticket{
		GuildID:   r.Int(0),
		ID:        r.Int(1),
		Title:     r.String(2),
		Kind:      models.TicketKind(r.String(3)),
		State:     models.TicketState(r.String(4)),
		OwnerID:   r.Int(5),
		ThreadID:  r.Int(6),
		Done:      r.Bool(7),
		CreatedAt: decodeTime(r.Int(8)),
	}
}

// NewTicketTable creates the tickets table adapter
func NewTicketTable(db *database.DB) *store.Table[*models.Ticket] {
	return store.NewTable[*models.Ticket](db, TicketCodec{})
}

// timestamps are stored as unix milliseconds; 0 is the unset sentinel
func encodeTime(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func decodeTime(ms int64) time.Time {
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms).UTC()
}
