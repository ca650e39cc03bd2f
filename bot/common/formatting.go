package common

import (
	"fmt"
	"strings"
	"time"

	"dungeonbot/models"
	"dungeonbot/service"
)

// FormatGold formats an amount with thousand separators
func FormatGold(amount int64) string {
	sign := ""
	if amount < 0 {
		sign, amount = "-", -amount
	}
	str := fmt.Sprintf("%d", amount)

	n := len(str)
	if n <= 3 {
		return sign + str
	}

	var result strings.Builder
	result.WriteString(sign)
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}
	return result.String()
}

// ShortID is the prefix of an item id users type to refer to it
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

// FormatItem renders one inventory line
func FormatItem(item *models.Item) string {
	line := fmt.Sprintf("`%s` %s", ShortID(item.ID), item.DisplayName())
	if item.Type == models.ItemTypeWeapon && item.UsesMax > 0 {
		line += fmt.Sprintf(" (%d/%d)", item.Uses, item.UsesMax)
	}
	if v := item.Value(); v > 0 {
		line += fmt.Sprintf(" · %s gold", FormatGold(v))
	}
	return line
}

// FormatInventory renders a header with the slot count and one line per item
func FormatInventory(inv *models.Inventory, items []*models.Item, capacity int64) string {
	var b strings.Builder
	if inv.IsUnbounded() {
		fmt.Fprintf(&b, "**%s** (%d stacks)\n", inv.Name, len(items))
	} else {
		fmt.Fprintf(&b, "**%s** (%d/%d)\n", inv.Name, len(inv.Items), capacity)
	}
	if len(items) == 0 {
		b.WriteString("*empty*")
		return b.String()
	}
	for _, item := range items {
		b.WriteString(FormatItem(item))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatGrant summarises where granted items ended up
func FormatGrant(g *service.GrantResult) string {
	var parts []string
	if g.Gold > 0 {
		parts = append(parts, FormatGold(g.Gold)+" gold")
	}
	for _, p := range g.Placed {
		parts = append(parts, fmt.Sprintf("%s → %s", p.Item.DisplayName(), p.InventoryID))
	}
	for _, item := range g.Merged {
		parts = append(parts, item.DisplayName())
	}
	for _, item := range g.Overflow {
		parts = append(parts, fmt.Sprintf("~~%s~~ (no room)", item.DisplayName()))
	}
	if len(parts) == 0 {
		return "nothing"
	}
	return strings.Join(parts, ", ")
}

// FormatDuration renders a cooldown the way players read it
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	switch {
	case d < time.Minute:
		return fmt.Sprintf("%ds", int(d.Seconds()))
	case d < time.Hour:
		return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
	default:
		return fmt.Sprintf("%dh %dm", int(d.Hours()), int(d.Minutes())%60)
	}
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}
