package gambling

import (
	"github.com/bwmarrin/discordgo"

	"dungeonbot/service"
)

const doubleButtonID = "gamble_double"

var minWager = float64(1)

type Feature struct {
	gamblingService service.GamblingService
}

func New(gamblingService service.GamblingService) *Feature {
	return &Feature{gamblingService: gamblingService}
}

func (f *Feature) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "gamble",
			Description: "Bet gold on two dice",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Gold to wager",
					Required:    true,
					MinValue:    &minWager,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "side",
					Description: "What the dice total will be",
					Required:    true,
					Choices: []*discordgo.ApplicationCommandOptionChoice{
						{Name: "High (8-12), pays 1:1", Value: "high"},
						{Name: "Low (2-6), pays 1:1", Value: "low"},
						{Name: "Seven, pays 4:1", Value: "seven"},
					},
				},
			},
		},
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleGamble(s, i)
}

func (f *Feature) Prefix() string {
	return doubleButtonID
}

func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleDouble(s, i)
}
