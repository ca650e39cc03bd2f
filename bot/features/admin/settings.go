package admin

import (
	"context"
	"fmt"
	"strings"

	"dungeonbot/bot/common"
	"dungeonbot/models"

	"github.com/bwmarrin/discordgo"
)

// channelField returns the settings field a channel kind is stored in
func channelField(gs *models.GuildSettings, kind string) (**int64, bool) {
	switch kind {
	case keyMarket:
		return &gs.MarketChannelID, true
	case keyReactRoles:
		return &gs.ReactRoleChannelID, true
	case keySupport:
		return &gs.SupportChannelID, true
	case keySuggestions:
		return &gs.SuggestionChannelID, true
	case keyLog:
		return &gs.LogChannelID, true
	}
	return nil, false
}

func roleField(gs *models.GuildSettings, kind string) (**int64, bool) {
	switch kind {
	case keySupport:
		return &gs.SupportRoleID, true
	case keySuggestions:
		return &gs.SuggestionReviewerRoleID, true
	}
	return nil, false
}

func (f *Feature) handleSettings(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	guildID := common.GuildID(i)

	var (
		gs  *models.GuildSettings
		err error
	)
	switch opts.Sub {
	case "show":
		gs = f.settingsService.Get(ctx, guildID)
	case "channel", "role":
		gs, err = f.settingsService.Update(ctx, guildID, func(gs *models.GuildSettings) error {
			lookup, name := channelField, "channel"
			if opts.Sub == "role" {
				lookup, name = roleField, "role"
			}
			field, ok := lookup(gs, opts.String("kind"))
			if !ok {
				return fmt.Errorf("unknown %s kind %q", name, opts.String("kind"))
			}
			*field = nil
			if id, ok := opts.Snowflake(name); ok {
				*field = &id
			}
			if opts.Sub == "channel" && opts.String("kind") == keyReactRoles {
				gs.ReactRoleMsgID = nil
			}
			return nil
		})
	case "expiration":
		gs, err = f.settingsService.SetExpirationDays(ctx, guildID, opts.Int("days", 0))
	case "apply":
		gs, err = f.settingsService.Apply(ctx, guildID, opts.String("feature"))
	}
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Could not update settings")
		return
	}
	common.RespondWithEmbed(s, i, settingsEmbed(gs), nil, true)
}

func channelMention(id *int64) string {
	if id == nil || *id == 0 {
		return "not set"
	}
	return fmt.Sprintf("<#%d>", *id)
}

func roleMention(id *int64) string {
	if id == nil || *id == 0 {
		return "not set"
	}
	return fmt.Sprintf("<@&%d>", *id)
}

func settingsEmbed(gs *models.GuildSettings) *discordgo.MessageEmbed {
	applied := "none"
	if len(gs.Applied) > 0 {
		applied = strings.Join(gs.Applied, ", ")
	}
	return &discordgo.MessageEmbed{
		Title: "Server settings",
		Color: 0x95A5A6,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Market", Value: channelMention(gs.MarketChannelID), Inline: true},
			{Name: "Listing expiry", Value: fmt.Sprintf("%d days", gs.ExpirationDays), Inline: true},
			{Name: "React roles", Value: channelMention(gs.ReactRoleChannelID), Inline: true},
			{Name: "Support", Value: channelMention(gs.SupportChannelID) + " / " + roleMention(gs.SupportRoleID), Inline: true},
			{Name: "Suggestions", Value: channelMention(gs.SuggestionChannelID) + " / " + roleMention(gs.SuggestionReviewerRoleID), Inline: true},
			{Name: "Audit log", Value: channelMention(gs.LogChannelID), Inline: true},
			{Name: "Applied", Value: applied},
		},
	}
}
