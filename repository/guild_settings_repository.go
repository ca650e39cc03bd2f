package repository

import (
	"dungeonbot/database"
	"dungeonbot/models"
	"dungeonbot/store"
)

// GuildSettingsCodec maps settings to the guild_settings table
type GuildSettingsCodec struct{}

var guildSettingsSchema = store.NewSchema("guild_settings", []string{"guild_id"},
	store.Int("guild_id"),
	store.Int("market_channel_id"),
	store.Int("react_role_channel_id"),
	store.Int("react_role_msg_id"),
	store.Int("expiration_days"),
	store.Int("support_channel_id"),
	store.Int("support_role_id"),
	store.Int("suggestion_channel_id"),
	store.Int("suggestion_reviewer_role_id"),
	store.Int("log_channel_id"),
	store.JSON("applied", "[]"),
)

func (GuildSettingsCodec) Schema() store.Schema { return guildSettingsSchema }

func (GuildSettingsCodec) Encode(gs *models.GuildSettings) store.Record {
	return store.Record{
		gs.GuildID,
		store.OptionalID(gs.MarketChannelID),
		store.OptionalID(gs.ReactRoleChannelID),
		store.OptionalID(gs.ReactRoleMsgID),
		gs.ExpirationDays,
		store.OptionalID(gs.SupportChannelID),
		store.OptionalID(gs.SupportRoleID),
		store.OptionalID(gs.SuggestionChannelID),
		store.OptionalID(gs.SuggestionReviewerRoleID),
		store.OptionalID(gs.LogChannelID),
		store.EncodeList(gs.Applied),
	}
}

func (GuildSettingsCodec) Decode(r store.Record) *models.GuildSettings {
	guildSettingsSchema.Check(r)
	return &models.GuildSettings{
		GuildID:                  r.Int(0),
		MarketChannelID:          store.DecodeOptionalID(r.Int(1)),
		ReactRoleChannelID:       store.DecodeOptionalID(r.Int(2)),
		ReactRoleMsgID:           store.DecodeOptionalID(r.Int(3)),
		ExpirationDays:           r.Int(4),
		SupportChannelID:         store.DecodeOptionalID(r.Int(5)),
		SupportRoleID:            store.DecodeOptionalID(r.Int(6)),
		SuggestionChannelID:      store.DecodeOptionalID(r.Int(7)),
		SuggestionReviewerRoleID: store.DecodeOptionalID(r.Int(8)),
		LogChannelID:             store.DecodeOptionalID(r.Int(9)),
		Applied:                  store.DecodeList[string](r.String(10)),
	}
}

// NewGuildSettingsTable creates the guild_settings table adapter
func NewGuildSettingsTable(db *database.DB) *store.Table[*models.GuildSettings] {
	return store.NewTable[*models.GuildSettings](db, GuildSettingsCodec{})
}
