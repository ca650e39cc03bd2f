package community

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"dungeonbot/bot/common"
	"dungeonbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// threadArchiveMinutes is how long an idle ticket thread stays visible
const threadArchiveMinutes = 4320

// hasRole reports whether the member holds the role or is an administrator
func hasRole(i *discordgo.InteractionCreate, roleID *int64) bool {
	if common.IsAdmin(i) {
		return true
	}
	if roleID == nil || i.Member == nil {
		return false
	}
	return slices.Contains(i.Member.Roles, strconv.FormatInt(*roleID, 10))
}

func (f *Feature) handleTicket(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	switch opts.Sub {
	case "open":
		f.openThread(s, i, models.TicketKindTicket, opts.String("title"))
	case "progress":
		f.transition(s, i, models.TicketKindTicket, models.TicketStateInProgress)
	case "close":
		f.transition(s, i, models.TicketKindTicket, models.TicketStateClosed)
	case "list":
		f.listTickets(s, i)
	}
}

func (f *Feature) handleSuggest(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	f.openThread(s, i, models.TicketKindSuggestion, opts.String("title"))
}

func (f *Feature) handleSuggestion(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	switch opts.Sub {
	case "approve":
		f.transition(s, i, models.TicketKindSuggestion, models.TicketStateApproved)
	case "deny":
		f.transition(s, i, models.TicketKindSuggestion, models.TicketStateDenied)
	case "close":
		f.transition(s, i, models.TicketKindSuggestion, models.TicketStateClosed)
	}
}

// openThread starts the thread in the configured channel and records the ticket against it
func (f *Feature) openThread(s *discordgo.Session, i *discordgo.InteractionCreate, kind models.TicketKind, title string) {
	ctx := context.Background()
	userID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}
	guildID := common.GuildID(i)
	settings := f.settingsService.Get(ctx, guildID)

	var channelID, pingRole *int64
	threadType := discordgo.ChannelTypeGuildPrivateThread
	switch kind {
	case models.TicketKindTicket:
		if !settings.HasSupport() {
			common.RespondWithError(s, i, "Support tickets are not set up in this server.")
			return
		}
		channelID, pingRole = settings.SupportChannelID, settings.SupportRoleID
	case models.TicketKindSuggestion:
		if !settings.HasSuggestions() {
			common.RespondWithError(s, i, "Suggestions are not set up in this server.")
			return
		}
		channelID, pingRole = settings.SuggestionChannelID, settings.SuggestionReviewerRoleID
		threadType = discordgo.ChannelTypeGuildPublicThread
	}
	if strings.TrimSpace(title) == "" {
		common.RespondWithError(s, i, "Give it a title.")
		return
	}

	thread, err := s.ThreadStart(strconv.FormatInt(*channelID, 10), title, threadType, threadArchiveMinutes)
	if err != nil {
		log.WithError(err).WithField("guild", guildID).Error("Failed to start ticket thread")
		common.RespondWithError(s, i, "Could not create the thread. Please try again.")
		return
	}
	threadID, _ := strconv.ParseInt(thread.ID, 10, 64)

	ticket, err := f.ticketService.Open(ctx, guildID, userID, threadID, kind, title)
	if err != nil {
		if _, derr := s.ChannelDelete(thread.ID); derr != nil {
			log.WithError(derr).WithField("thread", thread.ID).Warn("Failed to remove orphaned thread")
		}
		common.RespondWithServiceError(s, i, err, "Could not open the ticket")
		return
	}

	intro := fmt.Sprintf("%s opened %s #%d: **%s**", common.Mention(userID), kind, ticket.ID, ticket.Title)
	if pingRole != nil && *pingRole != 0 {
		intro += fmt.Sprintf("\n<@&%d>", *pingRole)
	}
	if _, err := s.ChannelMessageSend(thread.ID, intro); err != nil {
		log.WithError(err).WithField("thread", thread.ID).Warn("Failed to post ticket intro")
	}
	common.RespondWithSuccess(s, i, fmt.Sprintf("Opened <#%s>", thread.ID), true)
}

// transition moves the ticket bound to the current thread to a new state
func (f *Feature) transition(s *discordgo.Session, i *discordgo.InteractionCreate, kind models.TicketKind, to models.TicketState) {
	ctx := context.Background()
	userID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}

	ticket, ok := f.ticketService.FindByThread(common.ChannelID(i))
	if !ok || ticket.Kind != kind {
		common.RespondWithError(s, i, fmt.Sprintf("This thread is not a %s.", kind))
		return
	}

	settings := f.settingsService.Get(ctx, ticket.GuildID)
	staffRole := settings.SupportRoleID
	if kind == models.TicketKindSuggestion {
		staffRole = settings.SuggestionReviewerRoleID
	}
	ownerClosing := to == models.TicketStateClosed && ticket.OwnerID == userID
	if !ownerClosing && !hasRole(i, staffRole) {
		common.RespondWithError(s, i, "Only staff can do that.")
		return
	}

	ticket, err = f.ticketService.Transition(ctx, ticket.Key(), userID, to)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Could not update the ticket")
		return
	}
	common.RespondWithMessage(s, i, fmt.Sprintf("%s #%d is now **%s**", kind, ticket.ID, ticket.State), nil, false)

	if to == models.TicketStateClosed {
		archived, locked := true, true
		if _, err := s.ChannelEdit(i.ChannelID, &discordgo.ChannelEdit{Archived: &archived, Locked: &locked}); err != nil {
			log.WithError(err).WithField("thread", i.ChannelID).Warn("Failed to archive ticket thread")
		}
	}
}

func (f *Feature) listTickets(s *discordgo.Session, i *discordgo.InteractionCreate) {
	tickets := f.ticketService.ListOpen(common.GuildID(i))
	if len(tickets) == 0 {
		common.RespondWithMessage(s, i, "No open tickets.", nil, true)
		return
	}
	var b strings.Builder
	for _, t := range tickets {
		fmt.Fprintf(&b, "#%d %s · %s · <#%d> opened %s\n", t.ID, t.Title, t.State, t.ThreadID, common.FormatDiscordTimestamp(t.CreatedAt, "R"))
	}
	common.RespondWithMessage(s, i, b.String(), nil, true)
}
