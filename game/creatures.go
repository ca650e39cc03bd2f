package game

import (
	"fmt"
	"maps"
	"math"
	"sort"

	"dungeonbot/models"
)

// Paragon tuning
const (
	paragonChancePerDifficulty = 0.02
	maxParagonChance           = 0.1
	floorDifficultyStep        = 0.25
)

// Habitat is a location a creature spawns at, with its relative spawn weight
type Habitat struct {
	Location models.Location
	Weight   int
}

// CreatureSpec is a registry entry
type CreatureSpec struct {
	ID         string
	Name       string
	MinHealth  int64
	MaxHealth  int64
	Tier       models.Tier
	Experience int64
	Habitats   []Habitat
}

// Creature is one spawned encounter
type Creature struct {
	ID         string
	Name       string
	Location   models.Location
	Difficulty float64
	Health     int64
	MaxHealth  int64
	Tier       models.Tier
	Paragon    bool
	Experience int64
	Damage     map[int64]int64 // user id -> damage dealt so far
}

// IsDead reports whether the creature has no health left
func (c *Creature) IsDead() bool {
	return c.Health <= 0
}

// DisplayName renders the creature for chat output
func (c *Creature) DisplayName() string {
	if c.Paragon {
		return "Paragon " + c.Name
	}
	return c.Name
}

// Clone copies the creature so a failed round can be discarded
func (c *Creature) Clone() *Creature {
	cp := *c
	cp.Damage = maps.Clone(c.Damage)
	if cp.Damage == nil {
		cp.Damage = map[int64]int64{}
	}
	return &cp
}

var registry = map[string]CreatureSpec{}

// Register adds a creature spec. Registering the same id twice panics.
func Register(spec CreatureSpec) {
	if _, dup := registry[spec.ID]; dup {
		panic(fmt.Sprintf("creature %q registered twice", spec.ID))
	}
	registry[spec.ID] = spec
}

// LookupCreature returns the spec registered under id
func LookupCreature(id string) (CreatureSpec, bool) {
	spec, ok := registry[id]
	return spec, ok
}

// CreaturesAt lists the specs that spawn at loc, ordered by id
func CreaturesAt(loc models.Location) []CreatureSpec {
	var out []CreatureSpec
	for _, spec := range registry {
		if spec.weightAt(loc) > 0 {
			out = append(out, spec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s CreatureSpec) weightAt(loc models.Location) int {
	for _, h := range s.Habitats {
		if h.Location == loc {
			return h.Weight
		}
	}
	return 0
}

// LocationDifficulty is the location's base difficulty raised by each floor descended
func LocationDifficulty(loc models.Location, floor int64) float64 {
	return loc.Difficulty() + floorDifficultyStep*float64(floor)
}

// ParagonChance is the probability a spawn at this difficulty is a paragon
func ParagonChance(difficulty float64) float64 {
	return math.Min(paragonChancePerDifficulty*difficulty, maxParagonChance)
}

// Spawn picks a creature living at loc and rolls its health. It fails for safe
// locations or locations nothing lives at.
func Spawn(r Roller, loc models.Location, floor int64) (*Creature, error) {
	if loc.IsSafe() {
		return nil, fmt.Errorf("nothing to fight in %s", loc.DisplayName())
	}

	specs := CreaturesAt(loc)
	weights := make([]int, len(specs))
	for i, s := range specs {
		weights[i] = s.weightAt(loc)
	}
	idx := WeightedIndex(r, weights)
	if idx < 0 {
		return nil, fmt.Errorf("nothing lives in %s", loc.DisplayName())
	}

	return specs[idx].Spawn(r, loc, LocationDifficulty(loc, floor)), nil
}

// Spawn creates an instance of the spec. Health is uniform in [min, max] scaled
// by difficulty; a paragon has double health and experience.
func (s CreatureSpec) Spawn(r Roller, loc models.Location, difficulty float64) *Creature {
	base := RollBetween(r, s.MinHealth, s.MaxHealth)
	health := max(1, int64(math.Round(float64(base)*difficulty)))
	xp := int64(math.Round(float64(s.Experience) * difficulty))

	paragon := r.Float64() < ParagonChance(difficulty)
	if paragon {
		health *= 2
		xp *= 2
	}

	return &Creature{
		ID:         s.ID,
		Name:       s.Name,
		Location:   loc,
		Difficulty: difficulty,
		Health:     health,
		MaxHealth:  health,
		Tier:       s.Tier,
		Paragon:    paragon,
		Experience: xp,
		Damage:     map[int64]int64{},
	}
}

func init() {
	for _, spec := range []CreatureSpec{
		{ID: "rat", Name: "Giant Rat", MinHealth: 5, MaxHealth: 12, Tier: models.TierCommon, Experience: 10,
			Habitats: []Habitat{{models.LocationForest, 30}, {models.LocationCaves, 20}, {models.LocationMines, 10}}},
		{ID: "wolf", Name: "Wolf", MinHealth: 15, MaxHealth: 30, Tier: models.TierCommon, Experience: 20,
			Habitats: []Habitat{{models.LocationForest, 25}}},
		{ID: "goblin", Name: "Goblin", MinHealth: 20, MaxHealth: 40, Tier: models.TierUncommon, Experience: 30,
			Habitats: []Habitat{{models.LocationForest, 10}, {models.LocationCaves, 25}, {models.LocationMines, 15}}},
		{ID: "bat_swarm", Name: "Bat Swarm", MinHealth: 10, MaxHealth: 25, Tier: models.TierCommon, Experience: 15,
			Habitats: []Habitat{{models.LocationCaves, 30}}},
		{ID: "golem", Name: "Stone Golem", MinHealth: 60, MaxHealth: 100, Tier: models.TierRare, Experience: 70,
			Habitats: []Habitat{{models.LocationMines, 20}, {models.LocationCaves, 5}}},
		{ID: "skeleton", Name: "Skeleton", MinHealth: 30, MaxHealth: 60, Tier: models.TierUncommon, Experience: 40,
			Habitats: []Habitat{{models.LocationCrypt, 35}}},
		{ID: "wraith", Name: "Wraith", MinHealth: 70, MaxHealth: 120, Tier: models.TierEpic, Experience: 110,
			Habitats: []Habitat{{models.LocationCrypt, 15}}},
		{ID: "salamander", Name: "Fire Salamander", MinHealth: 80, MaxHealth: 140, Tier: models.TierEpic, Experience: 130,
			Habitats: []Habitat{{models.LocationVolcano, 30}}},
		{ID: "drake", Name: "Ember Drake", MinHealth: 200, MaxHealth: 320, Tier: models.TierLegendary, Experience: 300,
			Habitats: []Habitat{{models.LocationVolcano, 8}, {models.LocationCrypt, 2}}},
	} {
		Register(spec)
	}
}
