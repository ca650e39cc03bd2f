package economy

import (
	"testing"
	"time"

	"dungeonbot/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatCooldowns(t *testing.T) {
	got := FormatCooldowns(map[string]time.Duration{
		models.CooldownDaily: 90 * time.Minute,
		models.CooldownFight: 4 * time.Second,
	})
	assert.Equal(t, "⏳ **daily** in 1h 30m\n✅ **gamble** ready\n⏳ **fight** in 4s", got)

	assert.Equal(t, "✅ **daily** ready\n✅ **gamble** ready\n✅ **fight** ready", FormatCooldowns(nil))
}

func TestCommands_IncludeDailyAndCooldowns(t *testing.T) {
	names := map[string]bool{}
	for _, c := range New(nil).Commands() {
		names[c.Name] = true
	}
	assert.True(t, names["daily"])
	assert.True(t, names["cooldowns"])
}
