package game

import "math/rand/v2"

// Roller is the randomness source for game resolution
type Roller interface {
	// IntN returns a uniform int in [0, n)
	IntN(n int) int
	// Float64 returns a uniform float in [0, 1)
	Float64() float64
}

type systemRoller struct{}

func (systemRoller) IntN(n int) int    { return rand.IntN(n) }
func (systemRoller) Float64() float64 { return rand.Float64() }

// SystemRoller returns a roller backed by the global, concurrency safe generator
func SystemRoller() Roller {
	return systemRoller{}
}

// NewSeededRoller returns a deterministic roller. It is not safe for concurrent use.
func NewSeededRoller(seed uint64) Roller {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// RollD6 rolls one six sided die
func RollD6(r Roller) int {
	return r.IntN(6) + 1
}

// RollBetween returns a uniform int64 in [lo, hi]
func RollBetween(r Roller, lo, hi int64) int64 {
	if hi <= lo {
		return lo
	}
	return lo + int64(r.IntN(int(hi-lo+1)))
}

// WeightedIndex picks an index with probability proportional to its weight.
// It returns -1 when no weight is positive.
func WeightedIndex(r Roller, weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return -1
	}

	n := r.IntN(total)
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		if n < w {
			return i
		}
		n -= w
	}
	return len(weights) - 1
}
