package admin

import (
	"github.com/bwmarrin/discordgo"

	"dungeonbot/bot/common"
	"dungeonbot/models"
	"dungeonbot/service"
)

// Settings keys accepted by /settings channel and /settings role
const (
	keyMarket      = "market"
	keyReactRoles  = "reactroles"
	keySupport     = "support"
	keySuggestions = "suggestions"
	keyLog         = "log"
)

var (
	adminPermission int64 = discordgo.PermissionAdministrator
	minCount              = float64(1)
)

type Feature struct {
	settingsService  service.SettingsService
	reactRoleService service.ReactRoleService
	aliasService     service.AliasService
	logService       service.LogService
}

func New(settingsService service.SettingsService, reactRoleService service.ReactRoleService, aliasService service.AliasService, logService service.LogService) *Feature {
	return &Feature{
		settingsService:  settingsService,
		reactRoleService: reactRoleService,
		aliasService:     aliasService,
		logService:       logService,
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

func choices(values ...string) []*discordgo.ApplicationCommandOptionChoice {
	out := make([]*discordgo.ApplicationCommandOptionChoice, len(values))
	for n, v := range values {
		out[n] = &discordgo.ApplicationCommandOptionChoice{Name: v, Value: v}
	}
	return out
}

func stringOption(name, description string, required bool) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        name,
		Description: description,
		Required:    required,
	}
}

func (f *Feature) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:                     "settings",
			Description:              "Configure the bot for this server",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				sub("show", "Show the current settings"),
				sub("channel", "Set or clear a channel",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "kind",
						Description: "Which channel",
						Required:    true,
						Choices:     choices(keyMarket, keyReactRoles, keySupport, keySuggestions, keyLog),
					},
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionChannel,
						Name:        "channel",
						Description: "Leave empty to clear",
					},
				),
				sub("role", "Set or clear a staff role",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "kind",
						Description: "Which role",
						Required:    true,
						Choices:     choices(keySupport, keySuggestions),
					},
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "Leave empty to clear",
					},
				),
				sub("expiration", "Days market listings stay up",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionInteger,
						Name:        "days",
						Description: "Number of days",
						Required:    true,
						MinValue:    &minCount,
					},
				),
				sub("apply", "Finish setting up a feature",
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionString,
						Name:        "feature",
						Description: "Which feature",
						Required:    true,
						Choices: choices(models.FeatureMarket, models.FeatureReactRoles, models.FeatureSupport,
							models.FeatureSuggestions, models.FeatureLogging),
					},
				),
			},
		},
		{
			Name:                     "reactrole",
			Description:              "Roles handed out by reacting",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				sub("add", "Bind an emoji to a role",
					stringOption("emoji", "The emoji", true),
					&discordgo.ApplicationCommandOption{
						Type:        discordgo.ApplicationCommandOptionRole,
						Name:        "role",
						Description: "Role to give",
						Required:    true,
					},
					stringOption("description", "Shown next to the emoji", false),
				),
				sub("remove", "Unbind an emoji", stringOption("emoji", "The emoji", true)),
				sub("list", "List the bindings"),
				sub("post", "Post the role message in the react role channel"),
			},
		},
		{
			Name:                     "alias",
			Description:              "Shortcuts answered with !name",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				sub("set", "Create or replace an alias",
					stringOption("name", "Typed after !", true),
					stringOption("text", "What the bot replies", true),
				),
				sub("remove", "Delete an alias", stringOption("name", "Alias name", true)),
				sub("list", "List aliases"),
			},
		},
		{
			Name:                     "auditlog",
			Description:              "Show recent audit log entries",
			DefaultMemberPermissions: &adminPermission,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "How many entries",
					MinValue:    &minCount,
					MaxValue:    50,
				},
			},
		},
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if !common.IsAdmin(i) {
		common.RespondWithError(s, i, "Only administrators can do that.")
		return
	}
	opts := common.ParseOptions(i)
	switch i.ApplicationCommandData().Name {
	case "settings":
		f.handleSettings(s, i, opts)
	case "reactrole":
		f.handleReactRole(s, i, opts)
	case "alias":
		f.handleAlias(s, i, opts)
	case "auditlog":
		f.handleAuditLog(s, i, opts)
	}
}
