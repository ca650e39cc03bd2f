package community

import (
	"github.com/bwmarrin/discordgo"

	"dungeonbot/bot/common"
	"dungeonbot/service"
)

type Feature struct {
	ticketService   service.TicketService
	subGuildService service.SubGuildService
	settingsService service.SettingsService
}

func New(ticketService service.TicketService, subGuildService service.SubGuildService, settingsService service.SettingsService) *Feature {
	return &Feature{
		ticketService:   ticketService,
		subGuildService: subGuildService,
		settingsService: settingsService,
	}
}

func titleOption() *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "title",
		Description: "What it is about",
		Required:    true,
		MaxLength:   100,
	}
}

func userOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionUser,
		Name:        "user",
		Description: description,
		Required:    true,
	}
}

func sub(name, description string, options ...*discordgo.ApplicationCommandOption) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionSubCommand,
		Name:        name,
		Description: description,
		Options:     options,
	}
}

func (f *Feature) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "ticket",
			Description: "Support tickets",
			Options: []*discordgo.ApplicationCommandOption{
				sub("open", "Open a private support thread", titleOption()),
				sub("progress", "Mark this ticket as being worked on"),
				sub("close", "Close this ticket"),
				sub("list", "List open tickets"),
			},
		},
		{
			Name:        "suggest",
			Description: "Post a suggestion",
			Options:     []*discordgo.ApplicationCommandOption{titleOption()},
		},
		{
			Name:        "suggestion",
			Description: "Review the suggestion in this thread",
			Options: []*discordgo.ApplicationCommandOption{
				sub("approve", "Approve it"),
				sub("deny", "Deny it"),
				sub("close", "Close it"),
			},
		},
		{
			Name:        "subguild",
			Description: "Player run guilds",
			Options: []*discordgo.ApplicationCommandOption{
				sub("create", "Found a guild with its own thread", &discordgo.ApplicationCommandOption{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "name",
					Description: "Guild name",
					Required:    true,
					MaxLength:   32,
				}),
				sub("ban", "Ban someone from this guild", userOption("Who to ban")),
				sub("unban", "Lift a ban", userOption("Who to unban")),
				sub("disable", "Close this guild"),
				sub("enable", "Reopen this guild"),
				sub("list", "List the guilds in this server"),
			},
		},
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := common.ParseOptions(i)
	switch i.ApplicationCommandData().Name {
	case "ticket":
		f.handleTicket(s, i, opts)
	case "suggest":
		f.handleSuggest(s, i, opts)
	case "suggestion":
		f.handleSuggestion(s, i, opts)
	case "subguild":
		f.handleSubGuild(s, i, opts)
	}
}
