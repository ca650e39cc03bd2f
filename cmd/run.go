package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"dungeonbot/bot"
	"dungeonbot/config"
	"dungeonbot/database"
	"dungeonbot/events"
	"dungeonbot/game"
	"dungeonbot/httpapi"
	"dungeonbot/repository"
	"dungeonbot/service"
)

func newRunCmd() *cobra.Command {
	var noBot bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Start the bot and the status API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return Run(ctx, config.Get(), !noBot)
		},
	}
	cmd.Flags().BoolVar(&noBot, "no-bot", false, "serve the status API without connecting to Discord")
	return cmd
}

// Run initializes and starts the application until ctx is cancelled
func Run(ctx context.Context, cfg *config.Config, withBot bool) error {
	log.WithField("environment", cfg.Environment).Info("Starting dungeonbot...")

	// Apply pending schema migrations
	if err := database.RunMigrationsWithURL(ctx, cfg.DatabaseURL); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}

	// Initialize database connection
	db, err := database.NewConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()
	log.WithField("dialect", db.Dialect).Info("Database connection established")

	// Load every table into its manager
	eventBus := events.NewBus()
	tables := repository.NewTables(db)
	managers := service.NewManagers(tables.Stores(), cfg.StartingGold, eventBus)
	if err := managers.Init(ctx); err != nil {
		return fmt.Errorf("failed to load state: %w", err)
	}
	uowFactory := repository.NewUnitOfWorkFactory(tables, eventBus)

	// Initialize services
	roller := game.SystemRoller()
	pending := service.NewPendingActions(cfg.PendingActionTTL)
	services := bot.Services{
		Users:      service.NewUserService(managers, uowFactory, cfg),
		Gambling:   service.NewGamblingService(managers, uowFactory, pending, roller, cfg),
		Inventory:  service.NewInventoryService(managers, uowFactory, pending, roller),
		Combat:     service.NewCombatService(managers, uowFactory, roller, cfg),
		Tickets:    service.NewTicketService(managers, eventBus),
		SubGuilds:  service.NewSubGuildService(managers, eventBus),
		Settings:   service.NewSettingsService(managers),
		ReactRoles: service.NewReactRoleService(managers),
		Aliases:    service.NewAliasService(managers),
		Logs:       service.NewLogService(managers),
	}
	services.Logs.Subscribe(eventBus)
	log.Info("Services initialized")

	// Status API
	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(db, services.Users),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serverErr := make(chan error, 1)
	go func() {
		log.WithField("addr", cfg.HTTPAddr).Info("Status API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Discord bot
	var discordBot *bot.Bot
	if withBot {
		discordBot, err = bot.New(bot.Config{Token: cfg.DiscordToken, GuildID: cfg.DiscordGuildID}, services)
		if err != nil {
			shutdownServer(server)
			return fmt.Errorf("failed to initialize Discord bot: %w", err)
		}
		log.Info("Discord bot connected")
	}

	// Wait for cancellation or a dead listener
	select {
	case <-ctx.Done():
		log.Info("Shutting down...")
	case err = <-serverErr:
		log.WithError(err).Error("Status API stopped")
	}

	if discordBot != nil {
		if cerr := discordBot.Close(); cerr != nil {
			log.WithError(cerr).Error("Error closing Discord bot")
		}
	}
	shutdownServer(server)

	if err != nil {
		return fmt.Errorf("status API failed: %w", err)
	}
	log.Info("Shutdown completed")
	return nil
}

func shutdownServer(server *http.Server) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("Status API shutdown timed out")
	}
}
