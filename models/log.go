package models

import "time"

// LogKey identifies an audit log entry within a guild
type LogKey struct {
	GuildID int64
	ID      int64
}

// LogEntry is one audit log line
type LogEntry struct {
	GuildID   int64
	ID        int64
	UserID    int64
	Action    string
	Message   string
	CreatedAt time.Time
}

// Key returns the entry's key
func (l *LogEntry) Key() LogKey {
	return LogKey{GuildID: l.GuildID, ID: l.ID}
}
