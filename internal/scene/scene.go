// Package scene assembles the porch: rain, swing, season cycle and wildlife
// driven from one clock and one timer registry.
package scene

import (
	"image/color"
	"io"
	"log"
	"strconv"

	"porch/internal/config"
	"porch/internal/core"
	"porch/internal/motion"
	"porch/internal/season"
	"porch/internal/state"
	"porch/internal/timers"
	"porch/internal/wildlife"
)

// Fixed entity ids.
const (
	AvatarID = "avatar"
	SwingID  = "swing"
)

var (
	swingPosition  = core.Vec3{X: 0, Y: 1, Z: 0}
	avatarPosition = core.Vec3{X: 0, Y: 0, Z: 2}

	swingColor = color.RGBA{R: 0x98, G: 0x76, B: 0x54, A: 0xff}
	rainColor  = color.RGBA{R: 0x88, G: 0xaa, B: 0xff, A: 0x99}

	swingScale  = core.Vec3{X: 1.6, Y: 0.1, Z: 0.4}
	animalScale = core.Vec3{X: 0.15, Y: 0.15, Z: 0.15}
	dropScale   = core.Vec3{X: 0.02, Y: 0.3, Z: 0.02}
)

var _ core.Scene = (*Scene)(nil)

// Option customizes a Scene.
type Option func(*Scene)

// WithLogger routes component log lines to l.
func WithLogger(l *log.Logger) Option {
	return func(s *Scene) { s.log = l }
}

// Scene is the porch composition root. It is not safe for concurrent use:
// drive it from one goroutine (the ebiten update loop or a Runner).
type Scene struct {
	cfg config.Config
	app *state.AppState
	log *log.Logger

	rng      *core.RNG
	reg      *timers.Registry
	rain     *motion.Rain
	swing    *motion.Swing
	cycle    *season.Cycle
	wildlife *wildlife.Manager
	dropIDs  []string

	now    float64
	frames uint64
	closed bool
}

// New builds a scene from cfg reading settings from app. A nil app uses
// fresh defaults.
func New(cfg config.Config, app *state.AppState, opts ...Option) *Scene {
	if app == nil {
		app = state.New()
	}
	s := &Scene{cfg: cfg, app: app}
	for _, opt := range opts {
		opt(s)
	}
	if s.log == nil {
		s.log = log.New(io.Discard, "", 0)
	}
	s.Reset(cfg.Seed)
	return s
}

// Name returns the scene identifier.
func (s *Scene) Name() string { return "porch" }

// Reset rebuilds every component deterministically. A zero seed uses the
// configured one.
func (s *Scene) Reset(seed int64) {
	if seed == 0 {
		seed = s.cfg.Seed
	}
	s.teardown()
	s.closed = false
	s.now = 0
	s.frames = 0
	s.rng = core.NewRNG(seed)
	s.reg = timers.NewRegistry()
	s.rain = motion.NewRain(s.cfg.RainConfig(), s.rng)
	s.swing = motion.NewSwing(s.cfg.SwingConfig())
	s.cycle = season.NewCycle(s.cfg.Season.Period, s.log)
	if err := s.cycle.Start(s.reg); err != nil {
		s.log.Printf("[scene] season cycle not started: %v", err)
	}
	s.wildlife = wildlife.NewManager(s.cfg.WildlifeConfig(), s.reg, s.rng, s.log, wildlife.DefaultResidents())
	s.dropIDs = make([]string, len(s.rain.Drops()))
	for i := range s.dropIDs {
		s.dropIDs[i] = "rain-" + strconv.Itoa(i)
	}
}

// Step advances the scene by dt seconds: timers fire first, then every
// motion rule runs once.
func (s *Scene) Step(dt float64) {
	if s.closed {
		return
	}
	dt = core.SanitizeDelta(dt)
	s.wildlife.SetIdle(s.app.IdleMode())
	s.now += dt
	s.reg.Advance(s.now)

	if intensity := s.RainIntensity(); intensity > 0 {
		s.rain.Update(intensity, dt)
	}
	s.swing.Update(dt)
	s.wildlife.Update(dt)
	s.frames++
}

// Interaction describes the effect of poking an entity.
type Interaction struct {
	EntityID string          `json:"entityId"`
	Kind     core.EntityKind `json:"kind"`
	Sound    wildlife.Sound  `json:"sound,omitempty"`
}

// Interact pokes the entity with the given id. The swing gets a push; an
// animal hops and reports its sound cue.
func (s *Scene) Interact(id string) (Interaction, bool) {
	if s.closed {
		return Interaction{}, false
	}
	if id == SwingID {
		s.swing.Push()
		return Interaction{EntityID: id, Kind: core.KindSwing}, true
	}
	if sound, ok := s.wildlife.Interact(id); ok {
		return Interaction{EntityID: id, Kind: core.KindAnimal, Sound: sound}, true
	}
	return Interaction{}, false
}

// Transforms returns this frame's render records: avatar, swing, animals,
// then rain drops while it rains.
func (s *Scene) Transforms() []core.Transform {
	animals := s.wildlife.Members()
	out := make([]core.Transform, 0, 2+len(animals)+len(s.dropIDs))

	avatar := s.app.Avatar()
	out = append(out, core.Transform{
		ID:       AvatarID,
		Kind:     core.KindAvatar,
		Position: avatarPosition,
		Scale:    avatar.BodyScale(),
		Color:    avatar.SkinTone.ToRGBA(),
	})
	out = append(out, core.Transform{
		ID:       SwingID,
		Kind:     core.KindSwing,
		Position: swingPosition,
		Rotation: core.Vec3{Z: s.swing.Angle()},
		Scale:    swingScale,
		Color:    swingColor,
	})
	for _, a := range animals {
		out = append(out, core.Transform{
			ID:       a.ID.String(),
			Kind:     core.KindAnimal,
			Position: a.RenderPosition(),
			Scale:    animalScale,
			Color:    a.Color,
		})
	}
	if s.RainIntensity() > 0 {
		for i, d := range s.rain.Drops() {
			out = append(out, core.Transform{
				ID:       s.dropIDs[i],
				Kind:     core.KindRainDrop,
				Position: d,
				Scale:    dropScale,
				Color:    rainColor,
			})
		}
	}
	return out
}

// Close cancels every timer. Step and Interact are no-ops afterwards.
func (s *Scene) Close() {
	if s.closed {
		return
	}
	s.teardown()
	s.closed = true
}

func (s *Scene) teardown() {
	if s.cycle != nil {
		s.cycle.Stop()
	}
	if s.wildlife != nil {
		s.wildlife.Close()
	}
}

// Closed reports whether Close has been called.
func (s *Scene) Closed() bool { return s.closed }

// Now returns the scene time in seconds.
func (s *Scene) Now() float64 { return s.now }

// Frames counts the steps taken since the last reset.
func (s *Scene) Frames() uint64 { return s.frames }

// Season reports the current season and weather.
func (s *Scene) Season() season.State { return s.cycle.State() }

// RainIntensity derives the rain intensity from the weather.
func (s *Scene) RainIntensity() float64 { return s.cycle.State().RainIntensity() }

// App exposes the application state the scene reads.
func (s *Scene) App() *state.AppState { return s.app }

// Wildlife exposes the population manager.
func (s *Scene) Wildlife() *wildlife.Manager { return s.wildlife }

// Swing exposes the swing.
func (s *Scene) Swing() *motion.Swing { return s.swing }

// Rain exposes the rain field.
func (s *Scene) Rain() *motion.Rain { return s.rain }

// Timers exposes the registry, mainly for diagnostics.
func (s *Scene) Timers() *timers.Registry { return s.reg }
