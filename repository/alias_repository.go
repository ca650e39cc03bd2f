package repository

import (
	"dungeonbot/database"
	"dungeonbot/models"
	"dungeonbot/store"
)

// AliasCodec maps aliases to the aliases table
type AliasCodec struct{}

var aliasSchema = store.NewSchema("aliases", []string{"guild_id", "name"},
	store.Int("guild_id"),
	store.Text("name"),
	store.Text("command"),
)

func (AliasCodec) Schema() store.Schema { return aliasSchema }

func (AliasCodec) Encode(a *models.Alias) store.Record {
	return store.Record{a.GuildID, a.Name, a.Command}
}

func (AliasCodec) Decode(r store.Record) *models.Alias {
	aliasSchema.Check(r)
	return &models.Alias{GuildID: r.Int(0), Name: r.String(1), Command: r.String(2)}
}

// NewAliasTable creates the aliases table adapter
func NewAliasTable(db *database.DB) *store.Table[*models.Alias] {
	return store.NewTable[*models.Alias](db, AliasCodec{})
}
