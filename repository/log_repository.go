package repository

import (
	"dungeonbot/database"
	"dungeonbot/models"
	"dungeonbot/store"
)

// LogCodec maps audit log entries to the logs table
type LogCodec struct{}

var logSchema = store.NewSchema("logs", []string{"guild_id", "id"},
	store.Int("guild_id"),
	store.Int("id"),
	store.Int("user_id"),
	store.Text("action"),
	store.Text("message"),
	store.Int("created_at"),
)

func (LogCodec) Schema() store.Schema { return logSchema }

func (LogCodec) Encode(l *models.LogEntry) store.Record {
	return store.Record{l.GuildID, l.ID, l.UserID, l.Action, l.Message, encodeTime(l.CreatedAt)}
}

func (LogCodec) Decode(r store.Record) *models.LogEntry {
	logSchema.Check(r)
	return &models.LogEntry{
		GuildID:   r.Int(0),
		ID:        r.Int(1),
		UserID:    r.Int(2),
		Action:    r.String(3),
		Message:   r.String(4),
		CreatedAt: decodeTime(r.Int(5)),
	}
}

// NewLogTable creates the logs table adapter
func NewLogTable(db *database.DB) *store.Table[*models.LogEntry] {
	return store.NewTable[*models.LogEntry](db, LogCodec{})
}
