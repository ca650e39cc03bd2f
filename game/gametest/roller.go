// Package gametest provides deterministic randomness for tests of code built on game.
package gametest

import "math"

// Roller replays fixed values. IntN results are reduced modulo n; once the
// script runs out IntN returns 0 and Float64 returns the largest value below 1.
type Roller struct {
	Ints   []int
	Floats []float64
}

func (r *Roller) IntN(n int) int {
	if len(r.Ints) == 0 {
		return 0
	}
	v := r.Ints[0]
	r.Ints = r.Ints[1:]
	return v % n
}

func (r *Roller) Float64() float64 {
	if len(r.Floats) == 0 {
		return math.Nextafter(1, 0)
	}
	v := r.Floats[0]
	r.Floats = r.Floats[1:]
	return v
}

// Push appends IntN values to the script
func (r *Roller) Push(ints ...int) {
	r.Ints = append(r.Ints, ints...)
}

// Dice returns IntN values that roll the given d6 faces
func Dice(faces ...int) []int {
	out := make([]int, len(faces))
	for i, f := range faces {
		out[i] = f - 1
	}
	return out
}
