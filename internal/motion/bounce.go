package motion

import (
	"math"

	"porch/internal/core"
)

// Bounce tuning for the hop an animal does when poked.
const (
	BounceAmplitude = 0.2
	BounceDecay     = 2.0
	BounceFrequency = 10.0
)

// Bounce is a damped vertical oscillation driven by a local clock.
type Bounce struct {
	clock float64
}

// Reset restarts the hop.
func (b *Bounce) Reset() { b.clock = 0 }

// Update advances the local clock by dt.
func (b *Bounce) Update(dt float64) {
	b.clock += core.SanitizeDelta(dt)
}

// Clock reports the seconds since the last reset.
func (b *Bounce) Clock() float64 { return b.clock }

// Offset is the vertical displacement from the resting height.
func (b *Bounce) Offset() float64 {
	return BounceOffset(b.clock)
}

// BounceOffset evaluates the hop curve at t seconds.
func BounceOffset(t float64) float64 {
	return math.Sin(t*BounceFrequency) * BounceAmplitude * math.Exp(-BounceDecay*t)
}
