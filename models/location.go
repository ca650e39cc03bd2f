package models

import "strings"

// Location is a place a user can be in
type Location string

const (
	LocationTown    Location = "town"
	LocationForest  Location = "forest"
	LocationCaves   Location = "caves"
	LocationMines   Location = "mines"
	LocationCrypt   Location = "crypt"
	LocationVolcano Location = "volcano"
)

// Locations lists every location in travel order
var Locations = []Location{
	LocationTown,
	LocationForest,
	LocationCaves,
	LocationMines,
	LocationCrypt,
	LocationVolcano,
}

// ParseLocation resolves a user supplied location name
func ParseLocation(s string) (Location, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, l := range Locations {
		if string(l) == s {
			return l, true
		}
	}
	return "", false
}

// IsSafe reports whether creatures can spawn at the location
func (l Location) IsSafe() bool {
	return l == LocationTown
}

// MaxFloor is the deepest floor reachable at the location
func (l Location) MaxFloor() int64 {
	switch l {
	case LocationCaves, LocationMines:
		return 5
	case LocationCrypt:
		return 10
	case LocationVolcano:
		return 3
	default:
		return 0
	}
}

// DisplayName capitalises the location for messages
func (l Location) DisplayName() string {
	return capitalize(string(l))
}

func capitalize(s string) string {
	if s == "" {
		return ""
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// RequiresKey reports whether travelling there needs a key item first
func (l Location) RequiresKey() bool {
	return l != LocationTown && l != LocationForest
}

// Difficulty scales creatures spawned at the location
func (l Location) Difficulty() float64 {
	switch l {
	case LocationForest:
		return 1
	case LocationCaves:
		return 1.5
	case LocationMines:
		return 2
	case LocationCrypt:
		return 3
	case LocationVolcano:
		return 4
	default:
		return 0
	}
}
