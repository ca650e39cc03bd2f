package models

// ReactRoleKey identifies a react role within a guild
type ReactRoleKey struct {
	GuildID int64
	ID      int64
}

// ReactRole maps an emoji reaction to a role
type ReactRole struct {
	GuildID     int64
	ID          int64
	Emoji       string
	RoleID      int64
	Description string
}

// Key returns the react role's key
func (rr *ReactRole) Key() ReactRoleKey {
	return ReactRoleKey{GuildID: rr.GuildID, ID: rr.ID}
}
