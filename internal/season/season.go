// Package season runs the fixed spring→summer→autumn→winter cycle and the
// weather each season implies.
package season

import (
	"fmt"
	"io"
	"log"

	"porch/internal/timers"
)

// DefaultPeriod is how long each season lasts, in seconds.
const DefaultPeriod = 60.0

// Season is one of the four seasons.
type Season uint8

const (
	Spring Season = iota
	Summer
	Autumn
	Winter
	seasonCount
)

var seasonNames = [...]string{"spring", "summer", "autumn", "winter"}

func (s Season) String() string {
	if s < seasonCount {
		return seasonNames[s]
	}
	return fmt.Sprintf("season(%d)", uint8(s))
}

// MarshalText encodes the season by name.
func (s Season) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

// Next returns the following season, wrapping after winter.
func (s Season) Next() Season { return (s + 1) % seasonCount }

// Weather is the condition a season brings.
type Weather uint8

const (
	Rain Weather = iota
	Sun
	Wind
	Snow
)

var weatherNames = [...]string{"rain", "sun", "wind", "snow"}

func (w Weather) String() string {
	if int(w) < len(weatherNames) {
		return weatherNames[w]
	}
	return fmt.Sprintf("weather(%d)", uint8(w))
}

// MarshalText encodes the weather by name.
func (w Weather) MarshalText() ([]byte, error) { return []byte(w.String()), nil }

// WeatherFor maps a season to its weather.
func WeatherFor(s Season) Weather {
	switch s {
	case Spring:
		return Rain
	case Summer:
		return Sun
	case Autumn:
		return Wind
	case Winter:
		return Snow
	}
	return Sun
}

// Intensity is the rain intensity a weather condition produces.
func (w Weather) Intensity() float64 {
	switch w {
	case Rain:
		return 1.0
	case Snow:
		return 0.3
	}
	return 0
}

// State is the observable cycle position. Weather is always WeatherFor(Season).
type State struct {
	Season  Season  `json:"season"`
	Weather Weather `json:"weather"`
}

// RainIntensity derives the rain intensity of the state.
func (s State) RainIntensity() float64 { return s.Weather.Intensity() }

// Cycle advances through the seasons on a fixed period.
type Cycle struct {
	season Season
	period float64
	log    *log.Logger

	reg    *timers.Registry
	owner  *timers.Owner
	handle timers.Handle

	transitions int
}

// NewCycle returns a cycle at spring. A non-positive period uses
// DefaultPeriod. A nil logger discards output.
func NewCycle(period float64, logger *log.Logger) *Cycle {
	if !(period > 0) {
		period = DefaultPeriod
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Cycle{season: Spring, period: period, log: logger}
}

// State reports the current season and weather.
func (c *Cycle) State() State {
	return State{Season: c.season, Weather: WeatherFor(c.season)}
}

// Period returns the season length in seconds.
func (c *Cycle) Period() float64 { return c.period }

// Transitions counts how many times the season has changed.
func (c *Cycle) Transitions() int { return c.transitions }

// Advance moves to the next season.
func (c *Cycle) Advance() {
	prev := c.season
	c.season = c.season.Next()
	c.transitions++
	c.log.Printf("[season] %s -> %s (%s)", prev, c.season, WeatherFor(c.season))
}

// Start arms the periodic timer on reg. Calling Start again re-arms it.
func (c *Cycle) Start(reg *timers.Registry) error {
	c.Stop()
	owner := timers.NewOwner("season")
	h, err := reg.Every(owner, c.period, func(float64) { c.Advance() })
	if err != nil {
		return fmt.Errorf("start season cycle: %w", err)
	}
	c.reg, c.owner, c.handle = reg, owner, h
	return nil
}

// SetPeriod changes the season length. A running timer is re-armed from the
// current time.
func (c *Cycle) SetPeriod(period float64) error {
	if !(period > 0) {
		return fmt.Errorf("season period %v: %w", period, timers.ErrInvalidPeriod)
	}
	c.period = period
	if c.reg != nil && c.owner.Alive() {
		return c.Start(c.reg)
	}
	return nil
}

// NextChange reports the scene time of the next transition.
func (c *Cycle) NextChange() (float64, bool) {
	if c.reg == nil {
		return 0, false
	}
	return c.reg.Due(c.handle)
}

// Stop cancels the timer. The cycle keeps its current season.
func (c *Cycle) Stop() {
	if c.owner != nil {
		c.owner.Revoke()
	}
	if c.reg != nil {
		c.reg.Cancel(c.handle)
	}
}
