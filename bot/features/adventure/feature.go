package adventure

import (
	"github.com/bwmarrin/discordgo"

	"dungeonbot/bot/common"
	"dungeonbot/models"
	"dungeonbot/service"
)

var (
	minDamage = float64(1)
	minFloor  = float64(0)
)

type Feature struct {
	userService   service.UserService
	combatService service.CombatService
}

func New(userService service.UserService, combatService service.CombatService) *Feature {
	return &Feature{userService: userService, combatService: combatService}
}

func locationChoices() []*discordgo.ApplicationCommandOptionChoice {
	choices := make([]*discordgo.ApplicationCommandOptionChoice, len(models.Locations))
	for n, loc := range models.Locations {
		choices[n] = &discordgo.ApplicationCommandOptionChoice{Name: loc.DisplayName(), Value: string(loc)}
	}
	return choices
}

func (f *Feature) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "travel",
			Description: "Go somewhere",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "location",
					Description: "Where to go",
					Required:    true,
					Choices:     locationChoices(),
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "floor",
					Description: "Which floor",
					MinValue:    &minFloor,
				},
			},
		},
		{
			Name:        "fight",
			Description: "Look for a creature where you are",
		},
		{
			Name:        "attack",
			Description: "Spend gold to damage a creature",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "damage",
					Description: "Damage to deal; each point costs one gold",
					Required:    true,
					MinValue:    &minDamage,
				},
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "leader",
					Description: "Join someone else's fight",
				},
			},
		},
		{
			Name:        "flee",
			Description: "Run from your fight",
		},
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := common.ParseOptions(i)
	switch i.ApplicationCommandData().Name {
	case "travel":
		f.handleTravel(s, i, opts)
	case "fight":
		f.handleFight(s, i)
	case "attack":
		f.handleAttack(s, i, opts)
	case "flee":
		f.handleFlee(s, i)
	}
}
