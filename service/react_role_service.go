package service

import (
	"context"
	"strings"
	"sync"

	"dungeonbot/models"
)

type reactRoleService struct {
	m  *Managers
	mu sync.Mutex
}

// NewReactRoleService creates a new react role service
func NewReactRoleService(m *Managers) ReactRoleService {
	return &reactRoleService{m: m}
}

func (s *reactRoleService) Add(ctx context.Context, guildID int64, emoji string, roleID int64, description string) (*models.ReactRole, error) {
	emoji = strings.TrimSpace(emoji)
	if emoji == "" {
		return nil, invalid("pick an emoji")
	}
	if roleID <= 0 {
		return nil, invalid("pick a role")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.find(guildID, emoji); ok {
		return nil, invalid("%s is already mapped to a role", emoji)
	}

	var next int64 = 1
	for _, rr := range s.m.ReactRoles.Find(func(rr *models.ReactRole) bool { return rr.GuildID == guildID }) {
		next = max(next, rr.ID+1)
	}

	rr := &models.ReactRole{
		GuildID:     guildID,
		ID:          next,
		Emoji:       emoji,
		RoleID:      roleID,
		Description: strings.TrimSpace(description),
	}
	if err := s.m.ReactRoles.Save(ctx, rr); err != nil {
		return nil, err
	}
	return rr, nil
}

func (s *reactRoleService) Remove(ctx context.Context, guildID int64, emoji string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rr, ok := s.find(guildID, strings.TrimSpace(emoji))
	if !ok {
		return invalid("%s is not mapped to a role", emoji)
	}
	return s.m.ReactRoles.Delete(ctx, rr.Key())
}

func (s *reactRoleService) RoleFor(guildID int64, emoji string) (int64, bool) {
	rr, ok := s.find(guildID, emoji)
	if !ok {
		return 0, false
	}
	return rr.RoleID, true
}

func (s *reactRoleService) List(guildID int64) []*models.ReactRole {
	roles := s.m.ReactRoles.Find(func(rr *models.ReactRole) bool { return rr.GuildID == guildID })
	sortByID(roles, func(rr *models.ReactRole) int64 { return rr.ID })
	return roles
}

func (s *reactRoleService) find(guildID int64, emoji string) (*models.ReactRole, bool) {
	return s.m.ReactRoles.FindFirst(func(rr *models.ReactRole) bool {
		return rr.GuildID == guildID && rr.Emoji == emoji
	})
}
