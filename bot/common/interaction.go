package common

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"
)

// Options holds the options of a command, flattened through one subcommand level
type Options struct {
	Sub    string
	values map[string]*discordgo.ApplicationCommandInteractionDataOption
}

// ParseOptions reads the options of an application command interaction
func ParseOptions(i *discordgo.InteractionCreate) Options {
	return NewOptions(i.ApplicationCommandData().Options)
}

// NewOptions indexes raw options by name
func NewOptions(list []*discordgo.ApplicationCommandInteractionDataOption) Options {
	opts := Options{values: map[string]*discordgo.ApplicationCommandInteractionDataOption{}}
	if len(list) == 1 && list[0].Type == discordgo.ApplicationCommandOptionSubCommand {
		opts.Sub = list[0].Name
		list = list[0].Options
	}
	for _, o := range list {
		opts.values[o.Name] = o
	}
	return opts
}

// Has reports whether the option was supplied
func (o Options) Has(name string) bool {
	_, ok := o.values[name]
	return ok
}

func (o Options) Int(name string, def int64) int64 {
	if v, ok := o.values[name]; ok {
		return v.IntValue()
	}
	return def
}

func (o Options) String(name string) string {
	if v, ok := o.values[name]; ok {
		return v.StringValue()
	}
	return ""
}

func (o Options) Bool(name string) bool {
	if v, ok := o.values[name]; ok {
		return v.BoolValue()
	}
	return false
}

// Snowflake returns a user, role or channel option as an int64 id
func (o Options) Snowflake(name string) (int64, bool) {
	v, ok := o.values[name]
	if !ok {
		return 0, false
	}
	id, err := strconv.ParseInt(fmt.Sprint(v.Value), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// UserID returns the invoking user, in guilds and in DMs
func UserID(i *discordgo.InteractionCreate) (int64, error) {
	var raw string
	switch {
	case i.Member != nil && i.Member.User != nil:
		raw = i.Member.User.ID
	case i.User != nil:
		raw = i.User.ID
	default:
		return 0, fmt.Errorf("interaction has no user")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse user id %q: %w", raw, err)
	}
	return id, nil
}

// GuildID returns the guild the interaction came from, 0 in DMs
func GuildID(i *discordgo.InteractionCreate) int64 {
	id, _ := strconv.ParseInt(i.GuildID, 10, 64)
	return id
}

// ChannelID returns the channel the interaction came from
func ChannelID(i *discordgo.InteractionCreate) int64 {
	id, _ := strconv.ParseInt(i.ChannelID, 10, 64)
	return id
}

// IsAdmin reports whether the invoking member has the administrator permission
func IsAdmin(i *discordgo.InteractionCreate) bool {
	return i.Member != nil && i.Member.Permissions&discordgo.PermissionAdministrator != 0
}

// Mention renders a user mention
func Mention(userID int64) string {
	return fmt.Sprintf("<@%d>", userID)
}
