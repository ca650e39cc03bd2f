package gambling

import (
	"context"
	"fmt"

	"dungeonbot/bot/common"
	"dungeonbot/game"
	"dungeonbot/service"

	"github.com/bwmarrin/discordgo"
)

func (f *Feature) handleGamble(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}
	opts := common.ParseOptions(i)

	res, err := f.gamblingService.Gamble(ctx, common.GuildID(i), userID, opts.Int("amount", 0), opts.String("side"))
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Gamble failed")
		return
	}

	var components []discordgo.MessageComponent
	if res.DoubleOffered {
		components = common.Button(fmt.Sprintf("Double or nothing (%s)", common.FormatGold(res.Winnings)), doubleButtonID, discordgo.DangerButton)
	}
	common.RespondWithMessage(s, i, FormatOutcome(res), components, false)
}

// FormatOutcome renders a gamble and notes a double or nothing offer that
// could not be made
func FormatOutcome(res *service.GambleOutcome) string {
	msg := FormatGamble(&res.GambleResult)
	if res.Won && !res.DoubleOffered {
		msg += fmt.Sprintf("\nNo double or nothing: your %s is still waiting.", res.Kept)
	}
	return msg
}

func (f *Feature) handleDouble(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	userID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}

	res, err := f.gamblingService.DoubleOrNothing(ctx, common.GuildID(i), userID)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Double or nothing failed")
		return
	}

	var components []discordgo.MessageComponent
	if res.Won {
		components = common.Button(fmt.Sprintf("Double or nothing (%s)", common.FormatGold(res.Stake*2)), doubleButtonID, discordgo.DangerButton)
	}
	common.UpdateMessage(s, i, FormatDouble(res), components)
}

// FormatGamble renders a settled gamble
func FormatGamble(res *game.GambleResult) string {
	outcome := fmt.Sprintf("lost **%s** gold", common.FormatGold(res.Wager))
	if res.Won {
		outcome = fmt.Sprintf("won **%s** gold", common.FormatGold(res.Winnings))
	}
	return fmt.Sprintf("🎲 %d + %d = **%d** on %s: you %s. Balance: %s → %s",
		res.Dice[0], res.Dice[1], res.Total, res.Side, outcome,
		common.FormatGold(res.OldGold), common.FormatGold(res.NewGold))
}

// FormatDouble renders a settled double or nothing
func FormatDouble(res *game.DoubleResult) string {
	outcome := "lost the winnings"
	if res.Won {
		outcome = fmt.Sprintf("doubled up, **+%s** gold", common.FormatGold(res.Stake))
	}
	return fmt.Sprintf("🎲 %d + %d = **%d** on %s: you %s. Balance: %s → %s",
		res.Dice[0], res.Dice[1], res.Total, res.Side, outcome,
		common.FormatGold(res.OldGold), common.FormatGold(res.NewGold))
}
