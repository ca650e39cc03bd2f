package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"dungeonbot/bot/common"
	"dungeonbot/models"

	"github.com/bwmarrin/discordgo"
)

func (f *Feature) respondErr(s *discordgo.Session, i *discordgo.InteractionCreate, err error, fallback string) {
	var ue *userError
	if errors.As(err, &ue) || errors.Is(err, errNoQuery) {
		common.RespondWithError(s, i, err.Error())
		return
	}
	common.RespondWithServiceError(s, i, err, fallback)
}

func (f *Feature) handleView(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	userID, err := common.UserID(i)
	if err != nil {
		f.respondErr(s, i, err, "Unable to read your account")
		return
	}

	inv, err := resolveInventory(ctx, f.inventoryService, userID, opts.String("which"))
	if err != nil {
		f.respondErr(s, i, err, "Unable to open inventory")
		return
	}
	items := f.inventoryService.Contents(inv)
	capacity := inv.MaxCapacity(lookup(items))

	desc := common.FormatInventory(inv, items, capacity)
	if inv.ID == models.BackpackID {
		if bags := f.inventoryService.Bags(userID); len(bags) > 0 {
			names := make([]string, len(bags))
			for n, bag := range bags {
				names[n] = fmt.Sprintf("`%s` %s", common.ShortID(bag.ID), bag.Name)
			}
			desc += "\n\nBags: " + strings.Join(names, ", ")
		}
	}
	common.RespondWithEmbed(s, i, &discordgo.MessageEmbed{Description: desc, Color: 0x8E6B3F}, nil, true)
}

func (f *Feature) handleMove(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	userID, err := common.UserID(i)
	if err != nil {
		f.respondErr(s, i, err, "Unable to read your account")
		return
	}

	item, from, err := resolveItem(ctx, f.inventoryService, userID, opts.String("item"))
	if err != nil {
		f.respondErr(s, i, err, "Move failed")
		return
	}

	if !opts.Has("to") {
		if err := f.inventoryService.StartMove(userID, item.ID, from.ID); err != nil {
			f.respondErr(s, i, err, "Move failed")
			return
		}
		common.RespondWithMessage(s, i, fmt.Sprintf("Move %s where?", item.DisplayName()), f.moveTargets(ctx, userID, from.ID), true)
		return
	}

	to, err := resolveInventory(ctx, f.inventoryService, userID, opts.String("to"))
	if err != nil {
		f.respondErr(s, i, err, "Move failed")
		return
	}
	if err := f.inventoryService.Move(ctx, userID, item.ID, from.ID, to.ID, opts.Bool("force")); err != nil {
		f.respondErr(s, i, err, "Move failed")
		return
	}
	common.RespondWithSuccess(s, i, fmt.Sprintf("Moved %s from %s to %s", item.DisplayName(), from.Name, to.Name), true)
}

// moveTargets offers every inventory except the source as a button
func (f *Feature) moveTargets(ctx context.Context, userID int64, fromID string) []discordgo.MessageComponent {
	var buttons []discordgo.MessageComponent
	for _, inv := range inventories(ctx, f.inventoryService, userID) {
		if inv.ID == fromID {
			continue
		}
		buttons = append(buttons, &discordgo.Button{
			Label:    inv.Name,
			CustomID: moveTargetPrefix + inv.ID,
			Style:    discordgo.SecondaryButton,
		})
		if len(buttons) == 5 {
			break
		}
	}
	return []discordgo.MessageComponent{&discordgo.ActionsRow{Components: buttons}}
}

func (f *Feature) handleMoveTarget(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := common.UserID(i)
	if err != nil {
		f.respondErr(s, i, err, "Unable to read your account")
		return
	}
	toID := strings.TrimPrefix(i.MessageComponentData().CustomID, moveTargetPrefix)

	if err := f.inventoryService.CompleteMove(context.Background(), userID, toID, false); err != nil {
		f.respondErr(s, i, err, "Move failed")
		return
	}
	common.UpdateMessage(s, i, "✅ Moved.", common.DisableComponents(i.Message.Components))
}

func (f *Feature) handleDeposit(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	userID, err := common.UserID(i)
	if err != nil {
		f.respondErr(s, i, err, "Unable to read your account")
		return
	}
	item, _, err := resolveItem(ctx, f.inventoryService, userID, opts.String("item"))
	if err != nil {
		f.respondErr(s, i, err, "Deposit failed")
		return
	}
	if err := f.inventoryService.Deposit(ctx, userID, item.ID, false); err != nil {
		f.respondErr(s, i, err, "Deposit failed")
		return
	}
	common.RespondWithSuccess(s, i, fmt.Sprintf("Deposited %s in the bank", item.DisplayName()), true)
}

func (f *Feature) handleSell(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	userID, err := common.UserID(i)
	if err != nil {
		f.respondErr(s, i, err, "Unable to read your account")
		return
	}
	item, _, err := resolveItem(ctx, f.inventoryService, userID, opts.String("item"))
	if err != nil {
		f.respondErr(s, i, err, "Sale failed")
		return
	}
	gold, err := f.inventoryService.Sell(ctx, userID, item.ID)
	if err != nil {
		f.respondErr(s, i, err, "Sale failed")
		return
	}
	common.RespondWithSuccess(s, i, fmt.Sprintf("Sold %s for %s gold", item.DisplayName(), common.FormatGold(gold)), true)
}

func (f *Feature) handleUse(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	userID, err := common.UserID(i)
	if err != nil {
		f.respondErr(s, i, err, "Unable to read your account")
		return
	}
	item, _, err := resolveItem(ctx, f.inventoryService, userID, opts.String("item"))
	if err != nil {
		f.respondErr(s, i, err, "Could not use the item")
		return
	}
	res, err := f.inventoryService.Use(ctx, userID, item.ID)
	if err != nil {
		f.respondErr(s, i, err, "Could not use the item")
		return
	}

	var msg string
	switch {
	case res.Unlocked != "":
		msg = fmt.Sprintf("%s is now open to you", res.Unlocked.DisplayName())
	case res.Bag != nil:
		msg = fmt.Sprintf("Unpacked %s with %d slots", res.Bag.Name, res.Bag.Capacity)
	case res.Opened != nil:
		msg = "Opened " + item.DisplayName() + ": " + common.FormatGrant(res.Opened)
	case res.Equipped:
		msg = "Equipped " + item.DisplayName()
	default:
		msg = "Used " + res.Item.DisplayName()
	}
	common.RespondWithSuccess(s, i, msg, true)
}

func (f *Feature) handleEquip(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	userID, err := common.UserID(i)
	if err != nil {
		f.respondErr(s, i, err, "Unable to read your account")
		return
	}
	item, _, err := resolveItem(ctx, f.inventoryService, userID, opts.String("item"))
	if err != nil {
		f.respondErr(s, i, err, "Could not equip")
		return
	}
	if err := f.inventoryService.Equip(ctx, userID, item.ID); err != nil {
		f.respondErr(s, i, err, "Could not equip")
		return
	}
	common.RespondWithSuccess(s, i, "Equipped "+item.DisplayName(), true)
}

func (f *Feature) handleOffer(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	fromID, err := common.UserID(i)
	if err != nil {
		f.respondErr(s, i, err, "Unable to read your account")
		return
	}
	toID, ok := opts.Snowflake("user")
	if !ok {
		common.RespondWithError(s, i, "Invalid user.")
		return
	}

	var ids, names []string
	for _, q := range strings.Split(opts.String("items"), ",") {
		item, _, err := resolveItem(ctx, f.inventoryService, fromID, q)
		if err != nil {
			f.respondErr(s, i, err, "Trade failed")
			return
		}
		ids = append(ids, item.ID)
		names = append(names, item.DisplayName())
	}

	offer, err := f.inventoryService.OfferTrade(ctx, common.GuildID(i), fromID, toID, ids, opts.Int("price", 0))
	if err != nil {
		f.respondErr(s, i, err, "Trade failed")
		return
	}
	common.RespondWithMessage(s, i, fmt.Sprintf("%s offers %s %s for **%s** gold. Use `/trade accept` to take it.",
		common.Mention(offer.FromID), common.Mention(offer.ToID), strings.Join(names, ", "), common.FormatGold(offer.Price)), nil, false)
}

func (f *Feature) handleAccept(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := common.UserID(i)
	if err != nil {
		f.respondErr(s, i, err, "Unable to read your account")
		return
	}
	offer, err := f.inventoryService.AcceptTrade(context.Background(), userID)
	if err != nil {
		f.respondErr(s, i, err, "Trade failed")
		return
	}
	common.RespondWithSuccess(s, i, fmt.Sprintf("%s bought %d item(s) from %s for %s gold",
		common.Mention(offer.ToID), len(offer.ItemIDs), common.Mention(offer.FromID), common.FormatGold(offer.Price)), false)
}

// lookup resolves ids against the items already loaded for display
type lookup []*models.Item

func (l lookup) Lookup(id string) (*models.Item, bool) {
	for _, item := range l {
		if item.ID == id {
			return item, true
		}
	}
	return nil, false
}
