package adventure

import (
	"context"
	"fmt"
	"strings"

	"dungeonbot/bot/common"
	"dungeonbot/game"
	"dungeonbot/service"

	"github.com/bwmarrin/discordgo"
)

func (f *Feature) handleTravel(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	userID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}
	u, err := f.userService.Travel(context.Background(), userID, opts.String("location"), opts.Int("floor", 0))
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Travel failed")
		return
	}
	common.RespondWithSuccess(s, i, fmt.Sprintf("You arrive at %s, floor %d", u.Location.DisplayName(), u.Floor), true)
}

func (f *Feature) handleFight(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()
	userID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}

	c, err := f.combatService.Encounter(ctx, userID)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "No fight today")
		return
	}
	common.RespondWithEmbed(s, i, creatureEmbed(c, common.Mention(userID)), nil, false)
}

func (f *Feature) handleAttack(s *discordgo.Session, i *discordgo.InteractionCreate, opts common.Options) {
	ctx := context.Background()
	userID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}
	leaderID := userID
	if id, ok := opts.Snowflake("leader"); ok {
		leaderID = id
	}

	res, err := f.combatService.Attack(ctx, common.GuildID(i), leaderID, []service.AttackRequest{
		{UserID: userID, Damage: opts.Int("damage", 0)},
	})
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Attack failed")
		return
	}
	common.RespondWithMessage(s, i, FormatRound(res), nil, false)
}

func (f *Feature) handleFlee(s *discordgo.Session, i *discordgo.InteractionCreate) {
	userID, err := common.UserID(i)
	if err != nil {
		common.RespondWithServiceError(s, i, err, "Unable to read your account")
		return
	}
	if !f.combatService.Flee(userID) {
		common.RespondWithError(s, i, "You are not fighting anything.")
		return
	}
	common.RespondWithSuccess(s, i, "You got away.", true)
}

func creatureEmbed(c *game.Creature, leader string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       fmt.Sprintf("A %s appears!", c.DisplayName()),
		Description: fmt.Sprintf("%s found it in %s. Use `/attack` to fight.", leader, c.Location.DisplayName()),
		Color:       0xC0392B,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Health", Value: fmt.Sprintf("%d/%d", c.Health, c.MaxHealth), Inline: true},
			{Name: "Tier", Value: c.Tier.String(), Inline: true},
			{Name: "Experience", Value: fmt.Sprintf("%d", c.Experience), Inline: true},
		},
	}
}

// FormatRound renders one settled round of combat
func FormatRound(res *service.AttackResult) string {
	var b strings.Builder
	for _, hit := range res.Outcome.Hits {
		fmt.Fprintf(&b, "⚔️ %s hits for %d", common.Mention(hit.UserID), hit.Applied)
		if hit.Applied < hit.Requested {
			fmt.Fprintf(&b, " (of %d)", hit.Requested)
		}
		b.WriteByte('\n')
	}
	if !res.Outcome.Killed {
		fmt.Fprintf(&b, "%s has %d/%d health left", res.Creature.DisplayName(), res.Outcome.RemainingHealth, res.Creature.MaxHealth)
		return b.String()
	}

	fmt.Fprintf(&b, "💀 %s is dead!\n", res.Creature.DisplayName())
	for _, r := range res.Outcome.Rewards {
		fmt.Fprintf(&b, "%s earns %d xp", common.Mention(r.UserID), r.Experience)
		if r.LeveledUp {
			b.WriteString(" and levels up")
		}
		b.WriteByte('\n')
	}
	if res.Loot != nil {
		b.WriteString("Loot: " + common.FormatGrant(res.Loot))
	}
	return strings.TrimRight(b.String(), "\n")
}
