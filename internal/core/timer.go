package core

import (
	"math"
	"time"
)

// DefaultMaxDelta caps a single frame delta so a stalled window does not
// replay seconds of motion in one update.
const DefaultMaxDelta = 0.25

// SanitizeDelta maps a raw delta to a usable one. Negative, NaN and infinite
// values become zero so state never moves backward or diverges.
func SanitizeDelta(dt float64) float64 {
	if math.IsNaN(dt) || math.IsInf(dt, 0) || dt < 0 {
		return 0
	}
	return dt
}

// FrameClock turns wall-clock readings into per-frame deltas in seconds.
type FrameClock struct {
	now      func() time.Time
	last     time.Time
	elapsed  float64
	maxDelta float64
}

// NewFrameClock constructs a clock reading time from now. A nil now uses
// time.Now.
func NewFrameClock(now func() time.Time) *FrameClock {
	if now == nil {
		now = time.Now
	}
	return &FrameClock{now: now, maxDelta: DefaultMaxDelta}
}

// SetMaxDelta changes the per-frame cap. Non-positive values disable it.
func (c *FrameClock) SetMaxDelta(max float64) {
	c.maxDelta = max
}

// Tick returns the delta since the previous Tick. The first call returns 0.
func (c *FrameClock) Tick() float64 {
	now := c.now()
	if c.last.IsZero() {
		c.last = now
		return 0
	}
	dt := SanitizeDelta(now.Sub(c.last).Seconds())
	c.last = now
	if c.maxDelta > 0 && dt > c.maxDelta {
		dt = c.maxDelta
	}
	c.elapsed += dt
	return dt
}

// Elapsed reports the accumulated, sanitized time in seconds.
func (c *FrameClock) Elapsed() float64 { return c.elapsed }
