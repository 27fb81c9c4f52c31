package core

import "math/bits"

// DefaultSeed is the seed used when none has been chosen yet.
var DefaultSeed = [4]uint32{1014776995, 476057059, 3301633994, 706340607}

// Source produces a deterministic stream of signed 32-bit integers.
// The generator consumes it only through Intn.
type Source interface {
	NextInt32() int32
}

// RNG is the 128-bit state generator used for puzzle generation.
// Its stream must stay bit-compatible with previously stored seeds.
type RNG struct {
	state [4]uint32
}

// NewRNG creates a generator starting from the given state words.
func NewRNG(seed [4]uint32) *RNG {
	return &RNG{state: seed}
}

// State returns a copy of the current state words.
func (r *RNG) State() [4]uint32 {
	return r.state
}

// NextInt32 returns the next value of the stream.
func (r *RNG) NextInt32() int32 {
	s := &r.state
	result := bits.RotateLeft32(s[0]+s[3], 7) + s[0]
	Step(s)
	return int32(result)
}

// Step applies one state transition in place. Both the generator and
// AdvanceSeed go through this function so stored seeds and generated
// puzzles never drift apart.
func Step(s *[4]uint32) {
	t := s[1] >> 9

	s[2] ^= s[0]
	s[3] ^= s[1]
	s[1] ^= s[2]
	s[0] ^= s[3]

	s[2] ^= t
	s[3] = bits.RotateLeft32(s[3], 11)
}

// AdvanceSeed returns seed moved forward by n transitions without drawing values.
func AdvanceSeed(seed [4]uint32, n int) [4]uint32 {
	for i := 0; i < n; i++ {
		Step(&seed)
	}
	return seed
}

// Intn returns |next| mod n. The modulo bias is accepted: reproducibility
// matters more than uniformity here. The absolute value wraps, so
// math.MinInt32 maps to 2^31.
func Intn(src Source, n int) int {
	if n <= 0 {
		return 0
	}
	v := src.NextInt32()
	if v < 0 {
		v = -v
	}
	return int(uint32(v) % uint32(n))
}

// Shuffle performs an in-place Fisher-Yates shuffle of n elements,
// walking from the last index down to 1.
func Shuffle(src Source, n int, swap func(i, j int)) {
	for i := n - 1; i > 0; i-- {
		j := Intn(src, i+1)
		swap(i, j)
	}
}
