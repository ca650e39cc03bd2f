package economy

import (
	"github.com/bwmarrin/discordgo"

	"dungeonbot/service"
)

const pressButtonID = "economy_press"

var minAmount = float64(1)

type Feature struct {
	userService service.UserService
}

func New(userService service.UserService) *Feature {
	return &Feature{userService: userService}
}

func (f *Feature) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "balance",
			Description: "Show your gold and progress",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Whose balance to show",
				},
			},
		},
		{
			Name:        "give",
			Description: "Give gold to another player",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Who receives the gold",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "How much gold",
					Required:    true,
					MinValue:    &minAmount,
				},
			},
		},
		{
			Name:        "spawn",
			Description: "Mint or burn gold (admins only)",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionUser,
					Name:        "user",
					Description: "Whose balance to change",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "amount",
					Description: "Gold to add, negative to remove",
					Required:    true,
				},
			},
		},
		{
			Name:        "leaderboard",
			Description: "Show the richest players",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionInteger,
					Name:        "count",
					Description: "How many players to show",
					MinValue:    &minAmount,
					MaxValue:    25,
				},
			},
		},
		{
			Name:        "button",
			Description: "Post the button",
		},
		{
			Name:        "daily",
			Description: "Claim your daily gold",
		},
		{
			Name:        "cooldowns",
			Description: "Show when your activities are ready again",
		},
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.ApplicationCommandData().Name {
	case "balance":
		f.handleBalance(s, i)
	case "give":
		f.handleGive(s, i)
	case "spawn":
		f.handleSpawn(s, i)
	case "leaderboard":
		f.handleLeaderboard(s, i)
	case "button":
		f.handleButton(s, i)
	case "daily":
		f.handleDaily(s, i)
	case "cooldowns":
		f.handleCooldowns(s, i)
	}
}

func (f *Feature) Prefix() string {
	return pressButtonID
}

func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handlePress(s, i)
}
