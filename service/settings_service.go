package service

import (
	"context"

	"dungeonbot/models"

	log "github.com/sirupsen/logrus"
)

const maxExpirationDays = 30

type settingsService struct {
	m *Managers
}

// NewSettingsService creates a new guild settings service
func NewSettingsService(m *Managers) SettingsService {
	return &settingsService{m: m}
}

func (s *settingsService) Get(ctx context.Context, guildID int64) *models.GuildSettings {
	return s.m.GuildSettings.Get(ctx, guildID)
}

func (s *settingsService) Update(ctx context.Context, guildID int64, fn func(gs *models.GuildSettings) error) (*models.GuildSettings, error) {
	gs, err := s.m.GuildSettings.Update(ctx, guildID, fn)
	if err != nil {
		return nil, err
	}

	log.WithField("guild", guildID).Info("Guild settings updated")
	return gs, nil
}

// SetLogChannel enables audit logging to the channel, or disables it with nil
func (s *settingsService) SetLogChannel(ctx context.Context, guildID int64, channelID *int64) (*models.GuildSettings, error) {
	return s.Update(ctx, guildID, func(gs *models.GuildSettings) error {
		gs.LogChannelID = channelID
		return nil
	})
}

func (s *settingsService) SetExpirationDays(ctx context.Context, guildID int64, days int64) (*models.GuildSettings, error) {
	if days < 1 || days > maxExpirationDays {
		return nil, invalid("expiration must be between 1 and %d days", maxExpirationDays)
	}
	return s.Update(ctx, guildID, func(gs *models.GuildSettings) error {
		gs.ExpirationDays = days
		return nil
	})
}

// Apply records a one time feature setup once its channel is configured
func (s *settingsService) Apply(ctx context.Context, guildID int64, feature string) (*models.GuildSettings, error) {
	ready, known := map[string]func(*models.GuildSettings) bool{
		models.FeatureMarket:      (*models.GuildSettings).HasMarketChannel,
		models.FeatureReactRoles:  func(gs *models.GuildSettings) bool { return gs.ReactRoleChannelID != nil && *gs.ReactRoleChannelID > 0 },
		models.FeatureSupport:     (*models.GuildSettings).HasSupport,
		models.FeatureSuggestions: (*models.GuildSettings).HasSuggestions,
		models.FeatureLogging:     (*models.GuildSettings).HasLogChannel,
	}[feature]
	if !known {
		return nil, invalid("unknown feature %q", feature)
	}

	return s.Update(ctx, guildID, func(gs *models.GuildSettings) error {
		if !ready(gs) {
			return invalid("configure a channel for %s first", feature)
		}
		if !gs.MarkApplied(feature) {
			return invalid("%s is already set up", feature)
		}
		return nil
	})
}
