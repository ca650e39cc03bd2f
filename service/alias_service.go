package service

import (
	"context"
	"slices"
	"strings"

	"dungeonbot/models"
)

type aliasService struct {
	m *Managers
}

// NewAliasService creates a new alias service
func NewAliasService(m *Managers) AliasService {
	return &aliasService{m: m}
}

// normalizeAlias lowercases and trims; aliases are single words
func normalizeAlias(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func (s *aliasService) Set(ctx context.Context, guildID int64, name, command string) (*models.Alias, error) {
	name = normalizeAlias(name)
	command = strings.TrimSpace(command)
	if name == "" || strings.ContainsAny(name, " \t\n") {
		return nil, invalid("aliases are a single word")
	}
	if command == "" {
		return nil, invalid("an alias needs a command")
	}

	return s.m.Aliases.Update(ctx, models.AliasKey{GuildID: guildID, Name: name}, func(a *models.Alias) error {
		a.Command = command
		return nil
	})
}

func (s *aliasService) Remove(ctx context.Context, guildID int64, name string) error {
	key := models.AliasKey{GuildID: guildID, Name: normalizeAlias(name)}
	if _, ok := s.m.Aliases.Peek(key); !ok {
		return invalid("there is no alias %q", name)
	}
	return s.m.Aliases.Delete(ctx, key)
}

func (s *aliasService) Resolve(guildID int64, name string) (string, bool) {
	a, ok := s.m.Aliases.Peek(models.AliasKey{GuildID: guildID, Name: normalizeAlias(name)})
	if !ok || a.Command == "" {
		return "", false
	}
	return a.Command, true
}

func (s *aliasService) List(guildID int64) []*models.Alias {
	aliases := s.m.Aliases.Find(func(a *models.Alias) bool { return a.GuildID == guildID })
	slices.SortFunc(aliases, func(a, b *models.Alias) int { return strings.Compare(a.Name, b.Name) })
	return aliases
}
