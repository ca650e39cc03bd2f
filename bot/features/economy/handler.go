package economy

import (
	"context"
	"fmt"
	"strings"
	"time"

	"dungeonbot/bot/common"
	"dungeonbot/models"

	"github.com/bwmarrin/discordgo"
)

func (f *Feature) handleBalance(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}
	if target, ok := common.ParseOptions(i).Snowflake("user"); ok {
		userID = target
	}

	u := f.userService.Get(ctx, userID)
	embed := &discordgo.MessageEmbed{
		Title:       "Balance",
		Description: common.Mention(u.ID),
		Color:       0xF1C40F,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Gold", Value: common.FormatGold(u.Gold), Inline: true},
			{Name: "Level", Value: fmt.Sprintf("%d (%d xp)", u.Level, u.Experience), Inline: true},
			{Name: "Location", Value: fmt.Sprintf("%s, floor %d", u.Location.DisplayName(), u.Floor), Inline: true},
			{Name: "Gambles", Value: fmt.Sprintf("%d won of %d", u.GamblesWon, u.Gambles), Inline: true},
			{Name: "Kills", Value: fmt.Sprintf("%d", u.Kills), Inline: true},
			{Name: "Messages", Value: fmt.Sprintf("%d", u.MsgCount), Inline: true},
		},
	}
	common.RespondWithEmbed(s, i, embed, nil, false)
}

func (f *Feature) handleGive(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	fromID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}
	opts := common.ParseOptions(i)
	toID, ok := opts.Snowflake("user")
	if !ok {
		common.RespondWithError(s, i, "Invalid recipient user.")
		return
	}

	res, err := f.userService.Give(ctx, common.GuildID(i), fromID, toID, opts.Int("amount", 0))
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Transfer failed")
		return
	}
	common.RespondWithSuccess(s, i, fmt.Sprintf("%s gave %s **%s** gold. New balance: %s",
		common.Mention(res.FromID), common.Mention(res.ToID), common.FormatGold(res.Amount), common.FormatGold(res.FromBalance)), false)
}

func (f *Feature) handleSpawn(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	adminID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}
	opts := common.ParseOptions(i)
	userID, ok := opts.Snowflake("user")
	if !ok {
		common.RespondWithError(s, i, "Invalid user.")
		return
	}

	u, err := f.userService.Spawn(ctx, adminID, userID, opts.Int("amount", 0))
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Spawn failed")
		return
	}
	common.RespondWithSuccess(s, i, fmt.Sprintf("%s now has %s gold", common.Mention(u.ID), common.FormatGold(u.Gold)), true)
}

func (f *Feature) handleLeaderboard(s *discordgo.Session, i *discordgo.InteractionCreate) {
	n := int(common.ParseOptions(i).Int("count", 10))
	users := f.userService.Leaderboard(n)
	if len(users) == 0 {
		common.RespondWithMessage(s, i, "Nobody has any gold yet.", nil, false)
		return
	}

	var b strings.Builder
	for rank, u := range users {
		fmt.Fprintf(&b, "**%d.** %s · %s gold\n", rank+1, common.Mention(u.ID), common.FormatGold(u.Gold))
	}
	embed := &discordgo.MessageEmbed{
		Title:       "Leaderboard",
		Description: b.String(),
		Color:       0xF1C40F,
	}
	common.RespondWithEmbed(s, i, embed, nil, false)
}

func (f *Feature) handleButton(s *discordgo.Session, i *discordgo.InteractionCreate) {
	common.RespondWithMessage(s, i, "Press it.", common.Button("Press", pressButtonID, discordgo.PrimaryButton), false)
}

func (f *Feature) handlePress(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}
	u, err := f.userService.PressButton(context.Background(), userID)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "The button jammed")
		return
	}
	common.RespondWithMessage(s, i, fmt.Sprintf("You pressed the button %d times. Gold: %s", u.ButtonPress, common.FormatGold(u.Gold)), nil, true)
}

func (f *Feature) handleDaily(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}
	res, err := f.userService.Daily(context.Background(), userID)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Daily claim failed")
		return
	}
	common.RespondWithSuccess(s, i, fmt.Sprintf("You claimed **%s** gold. Balance: %s. Next claim %s",
		common.FormatGold(res.Reward), common.FormatGold(res.Balance), common.FormatDiscordTimestamp(res.NextClaim, "R")), true)
}

func (f *Feature) handleCooldowns(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}
	ctx := context.Background()
	remaining := make(map[string]time.Duration, len(cooldownKinds))
	for _, kind := range cooldownKinds {
		remaining[kind] = f.userService.CooldownRemaining(ctx, userID, kind)
	}
	common.RespondWithMessage(s, i, FormatCooldowns(remaining), nil, true)
}

var cooldownKinds = []string{models.CooldownDaily, models.CooldownGamble, models.CooldownFight}

// FormatCooldowns lists each activity as ready or with its remaining wait
func FormatCooldowns(remaining map[string]time.Duration) string {
	var b strings.Builder
	for _, kind := range cooldownKinds {
		if d := remaining[kind]; d > 0 {
			fmt.Fprintf(&b, "⏳ **%s** in %s\n", kind, common.FormatDuration(d))
		} else {
			fmt.Fprintf(&b, "✅ **%s** ready\n", kind)
		}
	}
	return strings.TrimSuffix(b.String(), "\n")
}
