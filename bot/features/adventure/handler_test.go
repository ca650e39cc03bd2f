package adventure

import (
	"testing"

	"dungeonbot/game"
	"dungeonbot/models"
	"dungeonbot/service"

	"github.com/stretchr/testify/assert"
)

func TestFormatRound(t *testing.T) {
	goblin := &game.Creature{Name: "Goblin", Health: 5, MaxHealth: 20}

	res := &service.AttackResult{
		Creature: goblin,
		Outcome: game.CombatOutcome{
			Hits:            []game.Hit{{UserID: 1, Requested: 15, Applied: 15}},
			RemainingHealth: 5,
		},
	}
	assert.Equal(t, "⚔️ <@1> hits for 15\nGoblin has 5/20 health left", FormatRound(res))

	chest := &models.Item{ID: "c", Type: models.ItemTypeContainer, Name: "Uncommon Chest"}
	killed := &service.AttackResult{
		Creature: &game.Creature{Name: "Goblin", MaxHealth: 20, Paragon: true},
		Outcome: game.CombatOutcome{
			Hits:    []game.Hit{{UserID: 2, Requested: 10, Applied: 5}},
			Killed:  true,
			Rewards: []game.Reward{{UserID: 1, Experience: 22}, {UserID: 2, Experience: 7, LeveledUp: true}},
		},
		Loot: &service.GrantResult{Placed: []service.Placement{{Item: chest, InventoryID: models.BackpackID}}},
	}
	assert.Equal(t, "⚔️ <@2> hits for 5 (of 10)\n"+
		"💀 Paragon Goblin is dead!\n"+
		"<@1> earns 22 xp\n"+
		"<@2> earns 7 xp and levels up\n"+
		"Loot: Uncommon Chest → backpack", FormatRound(killed))
}
