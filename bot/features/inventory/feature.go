package inventory

import (
	"github.com/bwmarrin/discordgo"

	"dungeonbot/bot/common"
	"dungeonbot/service"
)

// moveTargetPrefix prefixes the destination buttons of a two step move
const moveTargetPrefix = "inventory_move:"

var minPrice = float64(0)

type Feature struct {
	inventoryService service.InventoryService
}

func New(inventoryService service.InventoryService) *Feature {
	return &Feature{inventoryService: inventoryService}
}

func itemOption(description string) *discordgo.ApplicationCommandOption {
	return &discordgo.ApplicationCommandOption{
		Type:        discordgo.ApplicationCommandOptionString,
		Name:        "item",
		Description: description,
		Required:    true,
	}
}

func (f *Feature) Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        "inventory",
			Description: "Show one of your inventories",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "which",
					Description: "backpack, bank, resources or a bag",
				},
			},
		},
		{
			Name:        "item",
			Description: "Manage your items",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "move",
					Description: "Move an item to another inventory",
					Options: []*discordgo.ApplicationCommandOption{
						itemOption("Item id or name"),
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "to",
							Description: "Destination; leave empty to pick with buttons",
						},
						{
							Type:        discordgo.ApplicationCommandOptionBoolean,
							Name:        "force",
							Description: "Ignore the destination's slot limit",
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "deposit",
					Description: "Move an item from your backpack into the bank",
					Options:     []*discordgo.ApplicationCommandOption{itemOption("Item id or name")},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "sell",
					Description: "Sell an item for its value",
					Options:     []*discordgo.ApplicationCommandOption{itemOption("Item id or name")},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "use",
					Description: "Use an item",
					Options:     []*discordgo.ApplicationCommandOption{itemOption("Item id or name")},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "equip",
					Description: "Equip a weapon",
					Options:     []*discordgo.ApplicationCommandOption{itemOption("Weapon id or name")},
				},
			},
		},
		{
			Name:        "trade",
			Description: "Trade items for gold",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "offer",
					Description: "Offer items to another player",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Who receives the offer",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "items",
							Description: "Item ids or names, comma separated",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionInteger,
							Name:        "price",
							Description: "Gold asked in return",
							Required:    true,
							MinValue:    &minPrice,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "accept",
					Description: "Accept the trade offered to you",
				},
			},
		},
	}
}

func (f *Feature) HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate) {
	opts := common.ParseOptions(i)
	switch i.ApplicationCommandData().Name {
	case "inventory":
		f.handleView(s, i, opts)
	case "item":
		switch opts.Sub {
		case "move":
			f.handleMove(s, i, opts)
		case "deposit":
			f.handleDeposit(s, i, opts)
		case "sell":
			f.handleSell(s, i, opts)
		case "use":
			f.handleUse(s, i, opts)
		case "equip":
			f.handleEquip(s, i, opts)
		}
	case "trade":
		switch opts.Sub {
		case "offer":
			f.handleOffer(s, i, opts)
		case "accept":
			f.handleAccept(s, i)
		}
	}
}

func (f *Feature) Prefix() string {
	return moveTargetPrefix
}

func (f *Feature) HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate) {
	f.handleMoveTarget(s, i)
}
