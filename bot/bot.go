package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"

	"dungeonbot/bot/features/admin"
	"dungeonbot/bot/features/adventure"
	"dungeonbot/bot/features/community"
	"dungeonbot/bot/features/economy"
	"dungeonbot/bot/features/gambling"
	"dungeonbot/bot/features/inventory"
	"dungeonbot/service"

	"github.com/bwmarrin/discordgo"
)

// Config holds bot configuration
type Config struct {
	Token   string
	GuildID string
}

// Services bundles everything the features talk to
type Services struct {
	Users      service.UserService
	Gambling   service.GamblingService
	Inventory  service.InventoryService
	Combat     service.CombatService
	Tickets    service.TicketService
	SubGuilds  service.SubGuildService
	Settings   service.SettingsService
	ReactRoles service.ReactRoleService
	Aliases    service.AliasService
	Logs       service.LogService
}

// Feature is a group of slash commands
type Feature interface {
	Commands() []*discordgo.ApplicationCommand
	HandleCommand(s *discordgo.Session, i *discordgo.InteractionCreate)
}

// ComponentHandler handles buttons whose custom id starts with Prefix
type ComponentHandler interface {
	Prefix() string
	HandleComponent(s *discordgo.Session, i *discordgo.InteractionCreate)
}

type Bot struct {
	config   Config
	session  *discordgo.Session
	services Services

	commands   map[string]Feature
	components []ComponentHandler
	registered []*discordgo.ApplicationCommand
}

func New(config Config, services Services) (*Bot, error) {
	dg, err := discordgo.New("Bot " + config.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating discord session: %w", err)
	}
	dg.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions |
		discordgo.IntentsMessageContent

	bot := &Bot{
		config:   config,
		session:  dg,
		services: services,
		commands: make(map[string]Feature),
	}

	bot.addFeature(economy.New(services.Users))
	bot.addFeature(gambling.New(services.Gambling))
	bot.addFeature(inventory.New(services.Inventory))
	bot.addFeature(adventure.New(services.Users, services.Combat))
	bot.addFeature(community.New(services.Tickets, services.SubGuilds, services.Settings))
	bot.addFeature(admin.New(services.Settings, services.ReactRoles, services.Aliases, services.Logs))

	// Register slash command and component handlers
	dg.AddHandler(bot.handleInteraction)

	// Message counters, aliases and react roles
	dg.AddHandler(bot.handleMessage)
	dg.AddHandler(bot.handleReactionAdd)
	dg.AddHandler(bot.handleReactionRemove)

	// Open websocket connection
	if err := dg.Open(); err != nil {
		return nil, fmt.Errorf("error opening connection: %w", err)
	}

	// Register slash commands with Discord
	if err := bot.registerCommands(); err != nil {
		dg.Close()
		return nil, fmt.Errorf("error registering commands: %w", err)
	}

	return bot, nil
}

func (b *Bot) addFeature(f Feature) {
	for _, cmd := range f.Commands() {
		if _, dup := b.commands[cmd.Name]; dup {
			panic(fmt.Sprintf("command %q registered twice", cmd.Name))
		}
		b.commands[cmd.Name] = f
	}
	if ch, ok := f.(ComponentHandler); ok {
		b.components = append(b.components, ch)
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	cmds := make([]*discordgo.ApplicationCommand, 0, len(b.commands))
	for _, f := range b.uniqueFeatures() {
		cmds = append(cmds, f.Commands()...)
	}

	registered, err := b.session.ApplicationCommandBulkOverwrite(b.session.State.User.ID, b.config.GuildID, cmds)
	if err != nil {
		return fmt.Errorf("cannot overwrite commands: %w", err)
	}
	b.registered = registered
	log.WithField("count", len(registered)).Info("Slash commands registered")
	return nil
}

func (b *Bot) uniqueFeatures() []Feature {
	seen := make(map[Feature]bool)
	var out []Feature
	for _, f := range b.commands {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}

func (b *Bot) Close() error {
	return b.session.Close()
}

func (b *Bot) handleInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		name := i.ApplicationCommandData().Name
		f, ok := b.commands[name]
		if !ok {
			log.WithField("command", name).Warn("Unknown command")
			return
		}
		f.HandleCommand(s, i)

	case discordgo.InteractionMessageComponent:
		customID := i.MessageComponentData().CustomID
		for _, ch := range b.components {
			if strings.HasPrefix(customID, ch.Prefix()) {
				ch.HandleComponent(s, i)
				return
			}
		}
		log.WithField("custom_id", customID).Warn("Unhandled component")
	}
}

// handleMessage counts messages and answers "!alias" shortcuts
func (b *Bot) handleMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}
	ctx := context.Background()

	userID, err := strconv.ParseInt(m.Author.ID, 10, 64)
	if err != nil {
		return
	}
	if _, err := b.services.Users.RecordMessage(ctx, userID); err != nil {
		log.WithError(err).WithField("user", userID).Warn("Failed to record message")
	}

	name, ok := strings.CutPrefix(m.Content, "!")
	if !ok {
		return
	}
	fields := strings.Fields(name)
	if len(fields) == 0 {
		return
	}
	guildID, _ := strconv.ParseInt(m.GuildID, 10, 64)
	command, ok := b.services.Aliases.Resolve(guildID, fields[0])
	if !ok {
		return
	}
	if _, err := s.ChannelMessageSendReply(m.ChannelID, command, m.Reference()); err != nil {
		log.WithError(err).Error("Failed to answer alias")
	}
}

func (b *Bot) handleReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	b.applyReactRole(r.MessageReaction, true)
}

func (b *Bot) handleReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	b.applyReactRole(r.MessageReaction, false)
}

// applyReactRole grants or revokes the role bound to an emoji on the guild's react role message
func (b *Bot) applyReactRole(r *discordgo.MessageReaction, add bool) {
	if r.GuildID == "" || (b.session.State.User != nil && r.UserID == b.session.State.User.ID) {
		return
	}
	guildID, _ := strconv.ParseInt(r.GuildID, 10, 64)
	msgID, _ := strconv.ParseInt(r.MessageID, 10, 64)

	gs := b.services.Settings.Get(context.Background(), guildID)
	if !gs.HasReactRoleMessage() || *gs.ReactRoleMsgID != msgID {
		return
	}
	roleID, ok := b.services.ReactRoles.RoleFor(guildID, r.Emoji.APIName())
	if !ok {
		return
	}

	role := strconv.FormatInt(roleID, 10)
	var err error
	if add {
		err = b.session.GuildMemberRoleAdd(r.GuildID, r.UserID, role)
	} else {
		err = b.session.GuildMemberRoleRemove(r.GuildID, r.UserID, role)
	}
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"guild": r.GuildID,
			"user":  r.UserID,
			"role":  role,
			"add":   add,
		}).Error("Failed to update react role")
	}
}
