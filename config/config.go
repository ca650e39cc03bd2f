package config

import (
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string `env:"DISCORD_TOKEN"`
	DiscordGuildID string `env:"DISCORD_GUILD_ID"`

	// Database configuration; postgres:// or sqlite://path
	DatabaseURL string `env:"DATABASE_URL"`

	// Status API
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// Game settings
	StartingGold     int64         `env:"STARTING_GOLD" envDefault:"100"`
	PendingActionTTL time.Duration `env:"PENDING_ACTION_TTL" envDefault:"2m"`
	GambleCooldown   time.Duration `env:"GAMBLE_COOLDOWN" envDefault:"3s"`
	FightCooldown    time.Duration `env:"FIGHT_COOLDOWN" envDefault:"10s"`
	DailyReward      int64         `env:"DAILY_REWARD" envDefault:"50"`
	DailyCooldown    time.Duration `env:"DAILY_COOLDOWN" envDefault:"24h"`

	// Discord IDs allowed to mint gold and manage guild settings
	AdminDiscordIDs []int64 `env:"ADMIN_DISCORD_IDS" envSeparator:","`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"` // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{}
	if err := env.Parse(config); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate checks required settings. Tests skip it.
func (c *Config) Validate() error {
	if c.Environment == "test" {
		return nil
	}
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.StartingGold < 0 {
		return fmt.Errorf("STARTING_GOLD must not be negative")
	}
	return nil
}

// IsProduction reports whether the bot runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsAdmin reports whether the Discord user may run admin commands
func (c *Config) IsAdmin(discordID int64) bool {
	return slices.Contains(c.AdminDiscordIDs, discordID)
}

// NewTestConfig returns the configuration used by tests
func NewTestConfig() *Config {
	return &Config{
		DatabaseURL:      "sqlite://:memory:",
		HTTPAddr:         ":0",
		StartingGold:     100,
		PendingActionTTL: 2 * time.Minute,
		GambleCooldown:   0,
		FightCooldown:    0,
		DailyReward:      50,
		DailyCooldown:    24 * time.Hour,
		AdminDiscordIDs:  []int64{999},
		LogLevel:         "debug",
		Environment:      "test",
	}
}
