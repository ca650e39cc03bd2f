package bot

import (
	"context"
	"testing"

	"dungeonbot/models"
	"dungeonbot/service"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

type countingUsers struct {
	service.UserService
	recorded []int64
}

func (u *countingUsers) RecordMessage(ctx context.Context, userID int64) (*models.User, error) {
	u.recorded = append(u.recorded, userID)
	return models.NewUser(userID, models.DefaultGold), nil
}

type unknownAliases struct {
	service.AliasService
	looked []string
}

func (a *unknownAliases) Resolve(guildID int64, name string) (string, bool) {
	a.looked = append(a.looked, name)
	return "", false
}

func message(content string) *discordgo.MessageCreate {
	return &discordgo.MessageCreate{Message: &discordgo.Message{
		Content:   content,
		GuildID:   "10",
		ChannelID: "20",
		Author:    &discordgo.User{ID: "30"},
	}}
}

func TestHandleMessage_AliasLookup(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{"hello", nil},
		{"!", nil},
		{"! ", nil},
		{"!\n\t", nil},
		{"!roll", []string{"roll"}},
		{"!roll twice", []string{"roll"}},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			users := &countingUsers{}
			aliases := &unknownAliases{}
			b := &Bot{services: Services{Users: users, Aliases: aliases}}

			assert.NotPanics(t, func() { b.handleMessage(nil, message(tt.content)) })
			assert.Equal(t, []int64{30}, users.recorded)
			assert.Equal(t, tt.want, aliases.looked)
		})
	}
}

func TestHandleMessage_IgnoresBotsAndDMs(t *testing.T) {
	users := &countingUsers{}
	b := &Bot{services: Services{Users: users, Aliases: &unknownAliases{}}}

	fromBot := message("!roll")
	fromBot.Author.Bot = true
	b.handleMessage(nil, fromBot)

	dm := message("!roll")
	dm.GuildID = ""
	b.handleMessage(nil, dm)

	assert.Empty(t, users.recorded)
}
