package community

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

func (f *Feature) handleSubGuild(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	switch opts.Sub {
	case "create":
		f.createSubGuild(s, i, opts.String("name"))
	case "list":
		f.listSubGuilds(s, i)
	default:
		f.manageSubGuild(s, i, opts)
	}
}

// createSubGuild posts an anchor message in the current channel and hangs the guild thread off it
func (f *Feature) createSubGuild(s *discordgo.Session, i *discordgo.InteractionCreate, name string) {
	ctx := context.Background()
	userID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}
	guildID := common.GuildID(i)
	if _, taken := f.subGuildService.FindByName(guildID, name); taken {
		common.RespondWithError(s, i, fmt.Sprintf("A guild called %q already exists.", name))
		return
	}

	msg, err := s.ChannelMessageSend(i.ChannelID, fmt.Sprintf("🏰 **%s**, founded by %s", name, common.Mention(userID)))
	if err != nil {
		log.WithError(err).Error("Failed to post guild anchor message")
		common.RespondWithError(s, i, "Could not create the guild. Please try again.")
		return
	}
	thread, err := s.MessageThreadStart(i.ChannelID, msg.ID, name, threadArchiveMinutes)
	if err != nil {
		log.WithError(err).Error("Failed to start guild thread")
		common.RespondWithError(s, i, "Could not create the guild thread. Please try again.")
		return
	}
	threadID, _ := strconv.ParseInt(thread.ID, 10, 64)
	msgID, _ := strconv.ParseInt(msg.ID, 10, 64)

	sg, err := f.subGuildService.Create(ctx, guildID, userID, name, threadID, msgID)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Could not create the guild")
		return
	}
	common.RespondWithSuccess(s, i, fmt.Sprintf("Founded **%s** in <#%d>", sg.Name, sg.ThreadID), true)
}

// manageSubGuild runs owner actions on the guild whose thread the command was used in
func (f *Feature) manageSubGuild(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	userID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}
	sg, ok := f.subGuildService.FindByThread(common.ChannelID(i))
	if !ok {
		common.RespondWithError(s, i, "Use this inside a guild thread.")
		return
	}

	var msg string
	switch opts.Sub {
	case "ban", "unban":
		targetID, ok := opts.Snowflake("user")
		if !ok {
			common.RespondWithError(s, i, "Invalid user.")
			return
		}
		if opts.Sub == "ban" {
			err = f.subGuildService.Ban(ctx, sg.ID, userID, targetID)
			if err == nil {
				f.removeFromThread(s, sg, targetID)
			}
			msg = fmt.Sprintf("%s is banned from %s", common.Mention(targetID), sg.Name)
		} else {
			err = f.subGuildService.Unban(ctx, sg.ID, userID, targetID)
			msg = fmt.Sprintf("%s may rejoin %s", common.Mention(targetID), sg.Name)
		}
	case "disable", "enable":
		disabled := opts.Sub == "disable"
		err = f.subGuildService.SetDisabled(ctx, sg.ID, userID, disabled)
		msg = fmt.Sprintf("%s is now %sd", sg.Name, opts.Sub)
		if err == nil {
			locked := disabled
			if _, lerr := s.ChannelEdit(i.ChannelID, &discordgo.ChannelEdit{Locked: &locked}); lerr != nil {
				log.WithError(lerr).WithField("thread", i.ChannelID).Warn("Failed to lock guild thread")
			}
		}
	}
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Could not update the guild")
		return
	}
	common.RespondWithSuccess(s, i, msg, false)
}

func (f *Feature) removeFromThread(s *discordgo.Session, sg *models.SubGuild, userID int64) {
	thread := strconv.FormatInt(sg.ThreadID, 10)
	if err := s.ThreadMemberRemove(thread, strconv.FormatInt(userID, 10)); err != nil {
		log.WithError(err).WithFields(log.Fields{"thread": thread, "user": userID}).Warn("Failed to remove banned member")
	}
}

func (f *Feature) listSubGuilds(s *discordgo.Session, i *discordgo.InteractionCreate) {
	guilds := f.subGuildService.List(common.GuildID(i))
	if len(guilds) == 0 {
		common.RespondWithMessage(s, i, "No guilds yet. Found one with `/subguild create`.", nil, true)
		return
	}
	var b strings.Builder
	for _, sg := range guilds {
		status := ""
		if sg.Disabled {
			status = " (closed)"
		}
		fmt.Fprintf(&b, "**%s**%s · %s · <#%d>\n", sg.Name, status, common.Mention(sg.OwnerID), sg.ThreadID)
	}
	common.RespondWithMessage(s, i, b.String(), nil, true)
}
