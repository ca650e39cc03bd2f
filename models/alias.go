package models

// AliasKey identifies an alias within a guild
type AliasKey struct {
	GuildID int64
	Name    string
}

// Alias is a guild-defined shortcut for a command
type Alias struct {
	GuildID int64
	Name    string
	Command string
}

// Key returns the alias's key
func (a *Alias) Key() AliasKey {
	return AliasKey{GuildID: a.GuildID, Name: a.Name}
}

// Clone returns a copy of the alias
func (a *Alias) Clone() *Alias {
	c := *a
	return &c
}
