package motion

import (
	"math"

	"porch/internal/core"
)

const (
	SwingDamping  = 0.99
	SwingBoost    = 0.3
	SwingMaxAngle = math.Pi / 4
	// SwingEpsilon is the amplitude below which the swing is considered still.
	SwingEpsilon = 1e-4
)

// SwingConfig tunes the swing.
type SwingConfig struct {
	Damping  float64
	Boost    float64
	MaxAngle float64
}

// DefaultSwingConfig returns the porch swing tuning.
func DefaultSwingConfig() SwingConfig {
	return SwingConfig{Damping: SwingDamping, Boost: SwingBoost, MaxAngle: SwingMaxAngle}
}

// Swing is a damped pendulum pushed by interactions.
type Swing struct {
	cfg       SwingConfig
	amplitude float64
	phase     float64
}

// NewSwing returns a swing at rest.
func NewSwing(cfg SwingConfig) *Swing {
	if cfg.Damping <= 0 || cfg.Damping >= 1 {
		cfg.Damping = SwingDamping
	}
	if cfg.Boost < 0 {
		cfg.Boost = 0
	}
	if cfg.MaxAngle <= 0 {
		cfg.MaxAngle = SwingMaxAngle
	}
	return &Swing{cfg: cfg}
}

func (s *Swing) Amplitude() float64 { return s.amplitude }
func (s *Swing) Phase() float64     { return s.phase }

// SetDamping changes the per-update decay factor. Values outside (0, 1) are
// ignored.
func (s *Swing) SetDamping(d float64) bool {
	if d <= 0 || d >= 1 || math.IsNaN(d) {
		return false
	}
	s.cfg.Damping = d
	return true
}

// Damping returns the per-update decay factor.
func (s *Swing) Damping() float64 { return s.cfg.Damping }

// Push adds the boost to the amplitude, capped at 1.
func (s *Swing) Push() {
	s.amplitude = math.Min(s.amplitude+s.cfg.Boost, 1)
}

// Update decays the amplitude and advances the phase by dt.
func (s *Swing) Update(dt float64) {
	dt = core.SanitizeDelta(dt)
	s.amplitude *= s.cfg.Damping
	if s.amplitude < SwingEpsilon {
		s.amplitude = 0
	}
	s.phase += dt
}

// Angle is the seat rotation in radians around the Z axis.
func (s *Swing) Angle() float64 {
	return math.Sin(s.phase) * s.amplitude * s.cfg.MaxAngle
}
