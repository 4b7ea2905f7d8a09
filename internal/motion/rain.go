// Package motion holds the per-frame update rules for the scene's animated
// entities. Rules are deterministic; randomness is only used at construction.
package motion

import (
	"math"

	"porch/internal/core"
)

const (
	// FallRate is how far a drop falls per reference tick at full intensity.
	FallRate = 0.25
	// ReferenceDelta is the frame delta FallRate is expressed against.
	ReferenceDelta = 1.0 / 60.0
)

// RainConfig sizes a rain field.
type RainConfig struct {
	Count    int
	AreaSize float64
	Height   float64
	FallRate float64
}

// DefaultRainConfig mirrors the porch scene: 400 drops over a 20x20 area
// falling from a height of 10.
func DefaultRainConfig() RainConfig {
	return RainConfig{Count: 400, AreaSize: 20, Height: 10, FallRate: FallRate}
}

// Rain is a fixed-size set of falling drops.
type Rain struct {
	cfg   RainConfig
	drops []core.Vec3
}

// NewRain scatters cfg.Count drops uniformly over the area and height.
func NewRain(cfg RainConfig, rng *core.RNG) *Rain {
	if cfg.Count < 0 {
		cfg.Count = 0
	}
	if cfg.Height <= 0 {
		cfg.Height = DefaultRainConfig().Height
	}
	if cfg.FallRate <= 0 {
		cfg.FallRate = FallRate
	}
	r := &Rain{cfg: cfg, drops: make([]core.Vec3, cfg.Count)}
	half := cfg.AreaSize / 2
	for i := range r.drops {
		r.drops[i] = core.Vec3{
			X: rng.Centered(half),
			Y: rng.Float64() * cfg.Height,
			Z: rng.Centered(half),
		}
	}
	return r
}

// Drops exposes the current drop positions.
func (r *Rain) Drops() []core.Vec3 { return r.drops }

// Height returns the ceiling drops respawn at.
func (r *Rain) Height() float64 { return r.cfg.Height }

// Update lowers every drop by the intensity-scaled fall rate. A drop that
// passes below the ground is put back at the ceiling.
func (r *Rain) Update(intensity, dt float64) {
	dt = core.SanitizeDelta(dt)
	intensity = clamp01(intensity)
	fall := r.cfg.FallRate * intensity * (dt / ReferenceDelta)
	if fall == 0 {
		return
	}
	for i := range r.drops {
		y := r.drops[i].Y - fall
		if y < 0 {
			y = r.cfg.Height
		}
		r.drops[i].Y = y
	}
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v):
		return 0
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
