package models

import "slices"

// SubGuild is a player-run group living in its own thread
type SubGuild struct {
	ID       int64
	GuildID  int64
	Name     string
	OwnerID  int64
	ThreadID int64
	MsgID    int64
	Disabled bool
	Banned   []int64
}

// NewSubGuild creates an empty sub-guild record
func NewSubGuild(id int64) *SubGuild {
	return &SubGuild{ID: id, Banned: []int64{}}
}

// IsBanned checks if the user may not join
func (sg *SubGuild) IsBanned(userID int64) bool {
	return slices.Contains(sg.Banned, userID)
}

// Ban adds the user to the ban list, returning false if already banned
func (sg *SubGuild) Ban(userID int64) bool {
	if sg.IsBanned(userID) {
		return false
	}
	sg.Banned = append(sg.Banned, userID)
	return true
}

// Unban removes the user from the ban list, returning false if they were not banned
func (sg *SubGuild) Unban(userID int64) bool {
	i := slices.Index(sg.Banned, userID)
	if i < 0 {
		return false
	}
	sg.Banned = slices.Delete(sg.Banned, i, i+1)
	return true
}

// Clone returns a copy with its own ban list
func (sg *SubGuild) Clone() *SubGuild {
	c := *sg
	c.Banned = slices.Clone(sg.Banned)
	if c.Banned == nil {
		c.Banned = []int64{}
	}
	return &c
}
