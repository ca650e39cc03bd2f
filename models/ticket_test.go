package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTicket_Lifecycle(t *testing.T) {
	ticket := NewTicket(TicketKey{GuildID: 1, ID: 1})

	require.NoError(t, ticket.Transition(TicketStateInProgress))
	assert.False(t, ticket.Done)

	require.NoError(t, ticket.Transition(TicketStateClosed))
	assert.True(t, ticket.Done)
	assert.False(t, ticket.IsActive())

	assert.Error(t, ticket.Transition(TicketStateOpen))
	assert.Error(t, ticket.Transition(TicketStateInProgress))
}

func TestTicket_OnlySuggestionsAreApproved(t *testing.T) {
	ticket := NewTicket(TicketKey{GuildID: 1, ID: 1})
	assert.Error(t, ticket.Transition(TicketStateApproved))

	suggestion := NewTicket(TicketKey{GuildID: 1, ID: 2})
	suggestion.Kind = TicketKindSuggestion

	require.NoError(t, suggestion.Transition(TicketStateApproved))
	assert.Error(t, suggestion.Transition(TicketStateDenied))
	require.NoError(t, suggestion.Transition(TicketStateClosed))
	assert.True(t, suggestion.Done)
}

func TestGuildSettings_Defaults(t *testing.T) {
	gs := NewGuildSettings(7)

	assert.Equal(t, DefaultExpirationDays, gs.ExpirationDays)
	assert.False(t, gs.HasLogChannel())

	zero := int64(0)
	gs.LogChannelID = &zero
	assert.False(t, gs.HasLogChannel())

	assert.True(t, gs.MarkApplied(FeatureSupport))
	assert.False(t, gs.MarkApplied(FeatureSupport))
	assert.True(t, gs.IsApplied(FeatureSupport))
}

func TestSubGuild_Bans(t *testing.T) {
	sg := NewSubGuild(1)

	assert.True(t, sg.Ban(5))
	assert.False(t, sg.Ban(5))
	assert.True(t, sg.IsBanned(5))
	assert.True(t, sg.Unban(5))
	assert.False(t, sg.Unban(5))
	assert.Empty(t, sg.Banned)
}
