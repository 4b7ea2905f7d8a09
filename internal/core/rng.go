package core

import (
	"encoding/binary"
	"image/color"
	"math/rand/v2"
)

// RNG is a thin convenience wrapper around math/rand/v2 for deterministic seeding.
type RNG struct {
	r *rand.Rand
}

// NewRNG creates a deterministic RNG using the provided seed.
func NewRNG(seed int64) *RNG {
	return &RNG{r: rand.New(rand.NewPCG(uint64(seed), 0))}
}

// Float64 returns a value in [0, 1).
func (r *RNG) Float64() float64 { return r.r.Float64() }

// Range returns a uniform value in [min, max]. Reversed bounds are swapped.
func (r *RNG) Range(min, max float64) float64 {
	if max < min {
		min, max = max, min
	}
	return min + r.r.Float64()*(max-min)
}

// Centered returns a uniform value in [-extent, extent].
func (r *RNG) Centered(extent float64) float64 {
	return (r.r.Float64() - 0.5) * 2 * extent
}

// Bool returns a random boolean value.
func (r *RNG) Bool() bool {
	return r.r.IntN(2) == 1
}

// Color returns an opaque colour drawn uniformly from the 24-bit space.
func (r *RNG) Color() color.RGBA {
	v := r.r.Uint32N(1 << 24)
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}

// Read fills p with random bytes so the RNG can serve as ULID entropy.
func (r *RNG) Read(p []byte) (int, error) {
	var buf [8]byte
	for i := 0; i < len(p); i += 8 {
		binary.LittleEndian.PutUint64(buf[:], r.r.Uint64())
		copy(p[i:], buf[:])
	}
	return len(p), nil
}
