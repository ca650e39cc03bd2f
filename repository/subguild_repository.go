package repository

import (
	"dungeonbot/database"
	"dungeonbot/models"
	"dungeonbot/store"
)

// SubGuildCodec maps sub-guilds to the subguilds table
type SubGuildCodec struct{}

var subGuildSchema = store.NewSchema("subguilds", []string{"id"},
	store.Int("id"),
	store.Int("guild_id"),
	store.Text("name"),
	store.Int("owner_id"),
	store.Int("thread_id"),
	store.Int("msg_id"),
	store.Bool("disabled"),
	store.JSON("banned", "[]"),
)

func (SubGuildCodec) Schema() store.Schema { return subGuildSchema }

func (SubGuildCodec) Encode(sg *models.SubGuild) store.Record {
	return store.Record{
		sg.ID,
		sg.GuildID,
		sg.Name,
		sg.OwnerID,
		sg.ThreadID,
		sg.MsgID,
		sg.Disabled,
		store.EncodeList(sg.Banned),
	}
}

func (SubGuildCodec) Decode(r store.Record) *models.SubGuild {
	subGuildSchema.Check(r)
	return &models.SubGuild{
		ID:       r.Int(0),
		GuildID:  r.Int(1),
		Name:     r.String(2),
		OwnerID:  r.Int(3),
		ThreadID: r.Int(4),
		MsgID:    r.Int(5),
		Disabled: r.Bool(6),
		Banned:   store.DecodeList[int64](r.String(7)),
	}
}

// NewSubGuildTable creates the subguilds table adapter
func NewSubGuildTable(db *database.DB) *store.Table[*models.SubGuild] {
	return store.NewTable[*models.SubGuild](db, SubGuildCodec{})
}
