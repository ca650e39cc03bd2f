package service

import (
	"context"
	"strings"
	"sync"

	"dungeonbot/events"
	"dungeonbot/models"

	log "github.com/sirupsen/logrus"
)

// Sub-guild moderation actions carried on SubGuildChangeEvent
const (
	SubGuildActionCreate  = "create"
	SubGuildActionBan     = "ban"
	SubGuildActionUnban   = "unban"
	SubGuildActionDisable = "disable"
	SubGuildActionEnable  = "enable"
)

const maxSubGuildName = 32

type subGuildService struct {
	m   *Managers
	bus EventPublisher

	mu sync.Mutex // serializes creation so names and ids stay unique
}

// NewSubGuildService creates a new sub-guild service
func NewSubGuildService(m *Managers, bus EventPublisher) SubGuildService {
	return &subGuildService{m: m, bus: bus}
}

func (s *subGuildService) Create(ctx context.Context, guildID, ownerID int64, name string, threadID, msgID int64) (*models.SubGuild, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("give the guild a name")
	}
	if len(name) > maxSubGuildName {
		return nil, invalid("guild names are at most %d characters", maxSubGuildName)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.FindByName(guildID, name); taken {
		return nil, invalid("a guild named %q already exists", name)
	}

	var next int64 = 1
	for _, sg := range s.m.SubGuilds.GetAll() {
		next = max(next, sg.ID+1)
	}

	sg := models.NewSubGuild(next)
	sg.GuildID = guildID
	sg.Name = name
	sg.OwnerID = ownerID
	sg.ThreadID = threadID
	sg.MsgID = msgID

	if err := s.m.SubGuilds.Save(ctx, sg); err != nil {
		return nil, err
	}
	s.publish(sg, ownerID, SubGuildActionCreate, 0)

	log.WithFields(log.Fields{
		"guild":    guildID,
		"subguild": sg.ID,
		"owner":    ownerID,
	}).Info("Sub-guild created")
	return sg, nil
}

func (s *subGuildService) Get(id int64) (*models.SubGuild, bool) {
	return s.m.SubGuilds.Peek(id)
}

// FindByName matches names case-insensitively within a guild
func (s *subGuildService) FindByName(guildID int64, name string) (*models.SubGuild, bool) {
	name = strings.TrimSpace(name)
	return s.m.SubGuilds.FindFirst(func(sg *models.SubGuild) bool {
		return sg.GuildID == guildID && strings.EqualFold(sg.Name, name)
	})
}

func (s *subGuildService) FindByThread(threadID int64) (*models.SubGuild, bool) {
	return s.m.SubGuilds.FindFirst(func(sg *models.SubGuild) bool { return sg.ThreadID == threadID })
}

// modify runs fn on the sub-guild after checking the actor owns it
func (s *subGuildService) modify(ctx context.Context, id, actorID int64, fn func(sg *models.SubGuild) error) (*models.SubGuild, error) {
	if _, ok := s.m.SubGuilds.Peek(id); !ok {
		return nil, invalid("that guild does not exist")
	}
	return s.m.SubGuilds.Update(ctx, id, func(sg *models.SubGuild) error {
		if sg.OwnerID != actorID {
			return invalid("only the owner can do that")
		}
		return fn(sg)
	})
}

func (s *subGuildService) Ban(ctx context.Context, id, actorID, targetID int64) error {
	sg, err := s.modify(ctx, id, actorID, func(sg *models.SubGuild) error {
		if targetID == sg.OwnerID {
			return invalid("the owner cannot be banned")
		}
		if !sg.Ban(targetID) {
			return invalid("that user is already banned")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(sg, actorID, SubGuildActionBan, targetID)
	return nil
}

func (s *subGuildService) Unban(ctx context.Context, id, actorID, targetID int64) error {
	sg, err := s.modify(ctx, id, actorID, func(sg *models.SubGuild) error {
		if !sg.Unban(targetID) {
			return invalid("that user is not banned")
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.publish(sg, actorID, SubGuildActionUnban, targetID)
	return nil
}

func (s *subGuildService) SetDisabled(ctx context.Context, id, actorID int64, disabled bool) error {
	sg, err := s.modify(ctx, id, actorID, func(sg *models.SubGuild) error {
		sg.Disabled = disabled
		return nil
	})
	if err != nil {
		return err
	}

	action := SubGuildActionEnable
	if disabled {
		action = SubGuildActionDisable
	}
	s.publish(sg, actorID, action, 0)
	return nil
}

// List returns the guild's sub-guilds by id
func (s *subGuildService) List(guildID int64) []*models.SubGuild {
	sgs := s.m.SubGuilds.Find(func(sg *models.SubGuild) bool { return sg.GuildID == guildID })
	sortByID(sgs, func(sg *models.SubGuild) int64 { return sg.ID })
	return sgs
}

func (s *subGuildService) publish(sg *models.SubGuild, actorID int64, action string, targetID int64) {
	s.bus.Publish(events.SubGuildChangeEvent{
		GuildID:    sg.GuildID,
		SubGuildID: sg.ID,
		ActorID:    actorID,
		Action:     action,
		TargetID:   targetID,
	})
}
