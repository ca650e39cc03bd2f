package repository

import (
	"dungeonbot/database"
	"dungeonbot/models"
	"dungeonbot/store"
)

// ReactRoleCodec maps react roles to the react_roles table
type ReactRoleCodec struct{}

var reactRoleSchema = store.NewSchema("react_roles", []string{"guild_id", "id"},
	store.Int("guild_id"),
	store.Int("id"),
	store.Text("emoji"),
	store.Int("role_id"),
	store.Text("description"),
)

func (ReactRoleCodec) Schema() store.Schema { return reactRoleSchema }

func (ReactRoleCodec) Encode(rr *models.ReactRole) store.Record {
	return store.Record{rr.GuildID, rr.ID, rr.Emoji, rr.RoleID, rr.Description}
}

func (ReactRoleCodec) Decode(r store.Record) *models.ReactRole {
	reactRoleSchema.Check(r)
	return &models.ReactRole{
		GuildID:     r.Int(0),
		ID:          r.Int(1),
		Emoji:       r.String(2),
		RoleID:      r.Int(3),
		Description: r.String(4),
	}
}

// NewReactRoleTable creates the react_roles table adapter
func NewReactRoleTable(db *database.DB) *store.Table[*models.ReactRole] {
	return store.NewTable[*models.ReactRole](db, ReactRoleCodec{})
}
