package admin

import (
	"testing"

	"dungeonbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelField(t *testing.T) {
	gs := models.NewGuildSettings(1)
	id := int64(55)

	for _, kind := range []string{keyMarket, keyReactRoles, keySupport, keySuggestions, keyLog} {
		field, ok := channelField(gs, kind)
		require.True(t, ok, kind)
		*field = &id
	}
	assert.True(t, gs.HasMarketChannel())
	assert.True(t, gs.HasLogChannel())
	assert.Equal(t, &id, gs.SupportChannelID)

	_, ok := channelField(gs, "attic")
	assert.False(t, ok)

	_, ok = roleField(gs, keyLog)
	assert.False(t, ok)
	field, ok := roleField(gs, keySuggestions)
	require.True(t, ok)
	*field = &id
	assert.Equal(t, &id, gs.SuggestionReviewerRoleID)
}

func TestFormatReactRoles(t *testing.T) {
	roles := []*models.ReactRole{
		{Emoji: "⚔️", RoleID: 10, Description: "Fighters"},
		{Emoji: "🎲", RoleID: 11},
	}
	assert.Equal(t, "⚔️ <@&10> · Fighters\n🎲 <@&11>", FormatReactRoles(roles))
}

func TestMentions(t *testing.T) {
	id := int64(7)
	assert.Equal(t, "not set", channelMention(nil))
	assert.Equal(t, "<#7>", channelMention(&id))
	assert.Equal(t, "<@&7>", roleMention(&id))
}
