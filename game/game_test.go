package game

import "math"

// scriptedRoller replays fixed values; IntN results are reduced modulo n
type scriptedRoller struct {
	ints   []int
	floats []float64
}

func (s *scriptedRoller) IntN(n int) int {
	if len(s.ints) == 0 {
		return 0
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	return v % n
}

func (s *scriptedRoller) Float64() float64 {
	if len(s.floats) == 0 {
		return math.Nextafter(1, 0)
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// dice returns IntN values that roll the given faces
func dice(faces ...int) []int {
	out := make([]int, len(faces))
	for i, f := range faces {
		out[i] = f - 1
	}
	return out
}
