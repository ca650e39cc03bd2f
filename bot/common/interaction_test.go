package common

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOptions_FlattensSubcommand(t *testing.T) {
	opts := NewOptions([]*discordgo.ApplicationCommandInteractionDataOption{
		{
			Name: "offer",
			Type: discordgo.ApplicationCommandOptionSubCommand,
			Options: []*discordgo.ApplicationCommandInteractionDataOption{
				{Name: "user", Type: discordgo.ApplicationCommandOptionUser, Value: "123456789012345678"},
				{Name: "price", Type: discordgo.ApplicationCommandOptionInteger, Value: float64(50)},
				{Name: "items", Type: discordgo.ApplicationCommandOptionString, Value: "sword"},
			},
		},
	})

	assert.Equal(t, "offer", opts.Sub)
	assert.True(t, opts.Has("price"))
	assert.False(t, opts.Has("force"))
	assert.Equal(t, int64(50), opts.Int("price", 0))
	assert.Equal(t, int64(3), opts.Int("missing", 3))
	assert.Equal(t, "sword", opts.String("items"))
	assert.False(t, opts.Bool("force"))

	id, ok := opts.Snowflake("user")
	require.True(t, ok)
	assert.Equal(t, int64(123456789012345678), id)
	_, ok = opts.Snowflake("items")
	assert.False(t, ok)
}

func TestUserID(t *testing.T) {
	guild := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{User: &discordgo.User{ID: "42"}},
	}}
	id, err := UserID(guild)
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	dm := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{User: &discordgo.User{ID: "7"}}}
	id, err = UserID(dm)
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)

	_, err = UserID(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}})
	assert.Error(t, err)
}

func TestIsAdminAndMention(t *testing.T) {
	admin := &discordgo.InteractionCreate{Interaction: &discordgo.Interaction{
		Member: &discordgo.Member{Permissions: discordgo.PermissionAdministrator | discordgo.PermissionSendMessages},
	}}
	assert.True(t, IsAdmin(admin))
	assert.False(t, IsAdmin(&discordgo.InteractionCreate{Interaction: &discordgo.Interaction{}}))
	assert.Equal(t, "<@5>", Mention(5))
}
