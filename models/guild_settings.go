package models

import "slices"

// DefaultExpirationDays is how long market listings stay up when a guild has not configured it
const DefaultExpirationDays int64 = 7

// Features a guild can apply once; recorded in GuildSettings.Applied
const (
	FeatureMarket      = "market"
	FeatureReactRoles  = "react_roles"
	FeatureSupport     = "support"
	FeatureSuggestions = "suggestions"
	FeatureLogging     = "logging"
)

// GuildSettings holds per-guild configuration
type GuildSettings struct {
	GuildID                  int64
	MarketChannelID          *int64 // Nullable - channel for market listings
	ReactRoleChannelID       *int64 // Nullable - channel holding the react role message
	ReactRoleMsgID           *int64
	ExpirationDays           int64
	SupportChannelID         *int64 // Nullable - parent channel for ticket threads
	SupportRoleID            *int64 // Nullable - staff role pinged on new tickets
	SuggestionChannelID      *int64
	SuggestionReviewerRoleID *int64
	LogChannelID             *int64 // Nullable - audit log channel (NULL = disabled)
	Applied                  []string
}

// NewGuildSettings creates the default settings for a guild
func NewGuildSettings(guildID int64) *GuildSettings {
	return &GuildSettings{
		GuildID:        guildID,
		ExpirationDays: DefaultExpirationDays,
		Applied:        []string{},
	}
}

func isSet(id *int64) bool {
	return id != nil && *id > 0
}

// HasMarketChannel checks if a market channel is configured
func (gs *GuildSettings) HasMarketChannel() bool {
	return isSet(gs.MarketChannelID)
}

// HasReactRoleMessage checks if the react role message has been posted
func (gs *GuildSettings) HasReactRoleMessage() bool {
	return isSet(gs.ReactRoleChannelID) && isSet(gs.ReactRoleMsgID)
}

// HasSupport checks if ticket support is configured
func (gs *GuildSettings) HasSupport() bool {
	return isSet(gs.SupportChannelID)
}

// HasSupportRole checks if a support role is configured
func (gs *GuildSettings) HasSupportRole() bool {
	return isSet(gs.SupportRoleID)
}

// HasSuggestions checks if a suggestion channel is configured
func (gs *GuildSettings) HasSuggestions() bool {
	return isSet(gs.SuggestionChannelID)
}

// HasSuggestionReviewerRole checks if a reviewer role is configured
func (gs *GuildSettings) HasSuggestionReviewerRole() bool {
	return isSet(gs.SuggestionReviewerRoleID)
}

// HasLogChannel checks if audit logging is enabled
func (gs *GuildSettings) HasLogChannel() bool {
	return isSet(gs.LogChannelID)
}

// IsApplied reports whether a one-time feature setup already ran
func (gs *GuildSettings) IsApplied(feature string) bool {
	return slices.Contains(gs.Applied, feature)
}

// MarkApplied records a feature setup, returning false if it was already recorded
func (gs *GuildSettings) MarkApplied(feature string) bool {
	if gs.IsApplied(feature) {
		return false
	}
	gs.Applied = append(gs.Applied, feature)
	return true
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// Clone returns a deep copy for mutation outside the cache
func (gs *GuildSettings) Clone() *GuildSettings {
	c := *gs
	c.MarketChannelID = cloneID(gs.MarketChannelID)
	c.ReactRoleChannelID = cloneID(gs.ReactRoleChannelID)
	c.ReactRoleMsgID = cloneID(gs.ReactRoleMsgID)
	c.SupportChannelID = cloneID(gs.SupportChannelID)
	c.SupportRoleID = cloneID(gs.SupportRoleID)
	c.SuggestionChannelID = cloneID(gs.SuggestionChannelID)
	c.SuggestionReviewerRoleID = cloneID(gs.SuggestionReviewerRoleID)
	c.LogChannelID = cloneID(gs.LogChannelID)
	c.Applied = slices.Clone(gs.Applied)
	if c.Applied == nil {
		c.Applied = []string{}
	}
	return &c
}
