package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"dungeonbot/bot/common"
	"dungeonbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleReactRole(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	guildID := common.GuildID(i)

	switch opts.Sub {
	case "add":
		roleID, ok := opts.Snowflake("role")
		if !ok {
			common.RespondWithError(s, i, "Invalid role.")
			return
		}
		rr, err := f.reactRoleService.Add(ctx, guildID, opts.String("emoji"), roleID, opts.String("description"))
		if err != nil {
			common.RespondWithServiceError(s, i, err, "Could not add the react role")
			return
		}
		common.RespondWithSuccess(s, i, fmt.Sprintf("%s now gives <@&%d>. Run `/reactrole post` to refresh the message.", rr.Emoji, rr.RoleID), true)

	case "remove":
		if err := f.reactRoleService.Remove(ctx, guildID, opts.String("emoji")); err != nil {
			common.RespondWithServiceError(s, i, err, "Could not remove the react role")
			return
		}
		common.RespondWithSuccess(s, i, "Removed.", true)

	case "list":
		roles := f.reactRoleService.List(guildID)
		if len(roles) == 0 {
			common.RespondWithMessage(s, i, "No react roles yet.", nil, true)
			return
		}
		common.RespondWithMessage(s, i, FormatReactRoles(roles), nil, true)

	case "post":
		f.postReactRoles(s, i)
	}
}

// postReactRoles posts the role message, seeds its reactions and remembers its id
func (f *Feature) postReactRoles(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	guildID := common.GuildID(i)

	gs := f.settingsService.Get(ctx, guildID)
	if gs.ReactRoleChannelID == nil || *gs.ReactRoleChannelID == 0 {
		common.RespondWithError(s, i, "Set the react role channel first with `/settings channel`.")
		return
	}
	roles := f.reactRoleService.List(guildID)
	if len(roles) == 0 {
		common.RespondWithError(s, i, "Add a react role first.")
		return
	}

	channel := strconv.FormatInt(*gs.ReactRoleChannelID, 10)
	msg, err := s.ChannelMessageSendEmbed(channel, &discordgo.MessageEmbed{
		Title:       "Pick your roles",
		Description: FormatReactRoles(roles),
		Color:       0x3498DB,
	})
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Could not post the role message")
		return
	}
	for _, rr := range roles {
		if err := s.MessageReactionAdd(channel, msg.ID, rr.Emoji); err != nil {
			log.WithError(err).WithField("emoji", rr.Emoji).Warn("Failed to seed reaction")
		}
	}

	msgID, _ := strconv.ParseInt(msg.ID, 10, 64)
	if _, err := f.settingsService.Update(ctx, guildID, func(gs *models.GuildSettings) error {
		gs.ReactRoleMsgID = &msgID
		return nil
	}); err != nil {
		common.RespondWithServiceError(s, i, err, "Could not save the role message")
		return
	}
	common.RespondWithSuccess(s, i, fmt.Sprintf("Posted in <#%s>", channel), true)
}

// FormatReactRoles renders one line per binding
func FormatReactRoles(roles []*models.ReactRole) string {
	var b strings.Builder
	for _, rr := range roles {
		fmt.Fprintf(&b, "%s <@&%d>", rr.Emoji, rr.RoleID)
		if rr.Description != "" {
			b.WriteString(" · " + rr.Description)
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

func (f *Feature) handleAlias(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	guildID := common.GuildID(i)

	switch opts.Sub {
	case "set":
		a, err := f.aliasService.Set(ctx, guildID, opts.String("name"), opts.String("text"))
		if err != nil {
			common.RespondWithServiceError(s, i, err, "Could not save the alias")
			return
		}
		common.RespondWithSuccess(s, i, fmt.Sprintf("`!%s` is ready", a.Name), true)

	case "remove":
		if err := f.aliasService.Remove(ctx, guildID, opts.String("name")); err != nil {
			common.RespondWithServiceError(s, i, err, "Could not remove the alias")
			return
		}
		common.RespondWithSuccess(s, i, "Removed.", true)

	case "list":
		aliases := f.aliasService.List(guildID)
		if len(aliases) == 0 {
			common.RespondWithMessage(s, i, "No aliases yet.", nil, true)
			return
		}
		var b strings.Builder
		for _, a := range aliases {
			fmt.Fprintf(&b, "`!%s` → %s\n", a.Name, a.Command)
		}
		common.RespondWithMessage(s, i, b.String(), nil, true)
	}
}

func (f *Feature) handleAuditLog(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	entries := f.logService.Recent(common.GuildID(i), int(opts.Int("count", 10)))
	if len(entries) == 0 {
		common.RespondWithMessage(s, i, "The audit log is empty. Set a log channel to start recording.", nil, true)
		return
	}
	var b strings.Builder
	for _, e := range entries {
		fmt.Fprintf(&b, "%s `%s` %s %s\n", common.FormatDiscordTimestamp(e.CreatedAt, "f"), e.Action, common.Mention(e.UserID), e.Message)
	}
	common.RespondWithMessage(s, i, b.String(), nil, true)
}
