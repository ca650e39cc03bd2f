package testutil

import (
	"time"

	"dungeonbot/models"

	"github.com/google/uuid"
)

// CreateTestUser creates a user with a populated record
func CreateTestUser(id int64) *models.User {
	u := models.NewUser(id, 500)
	u.MsgCount = 12
	u.Gambles = 4
	u.GamblesWon = 1
	u.Experience = 150
	u.Level = models.LevelForExperience(u.Experience)
	u.Unlocked = append(u.Unlocked, models.LocationCaves)
	u.Cooldowns[models.CooldownGamble] = time.Now().Add(time.Minute).UnixMilli()
	return u
}

// CreateTestItem creates an item of the given type with a fresh id
func CreateTestItem(t models.ItemType, name string) *models.Item {
	item := &models.Item{
		ID:        uuid.NewString(),
		Type:      t,
		Name:      name,
		Material:  models.MaterialIron,
		BaseValue: 10,
		Uses:      1,
		UsesMax:   1,
	}
	if t == models.ItemTypeBag {
		item.Uses = 0
		item.UsesMax = 4
	}
	return item
}

// CreateTestTicket creates an open ticket
func CreateTestTicket(guildID, id int64, title string) *models.Ticket {
	ticket := models.NewTicket(models.TicketKey{GuildID: guildID, ID: id})
	ticket.Title = title
	ticket.OwnerID = 1
	ticket.ThreadID = 1000 + id
	ticket.CreatedAt = time.UnixMilli(time.Now().UnixMilli()).UTC()
	return ticket
}
