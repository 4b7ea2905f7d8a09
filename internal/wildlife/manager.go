package wildlife

import (
	"io"
	"log"
	"math"

	"github.com/oklog/ulid/v2"

	"porch/internal/core"
	"porch/internal/timers"
)

// Config tunes idle-mode spawning.
type Config struct {
	MaxPopulation int
	// SpawnMin and SpawnMax bound the seconds between visitor arrivals.
	SpawnMin float64
	SpawnMax float64
	// Extent is the half-width of the square visitors land in.
	Extent  float64
	GroundY float64
}

// DefaultConfig returns the porch tuning: up to 8 animals, a visitor every
// 10-20 seconds within ±3 units of the origin.
func DefaultConfig() Config {
	return Config{
		MaxPopulation: DefaultMaxPopulation,
		SpawnMin:      10,
		SpawnMax:      20,
		Extent:        3,
		GroundY:       0.15,
	}
}

// Normalize repairs out-of-range values in place.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.MaxPopulation <= 0 {
		c.MaxPopulation = def.MaxPopulation
	}
	if !(c.SpawnMin > 0) || math.IsInf(c.SpawnMin, 0) {
		c.SpawnMin = def.SpawnMin
	}
	if math.IsNaN(c.SpawnMax) || math.IsInf(c.SpawnMax, 0) || c.SpawnMax < c.SpawnMin {
		c.SpawnMax = c.SpawnMin
	}
	c.Extent = math.Abs(c.Extent)
}

// Manager owns the population and the idle spawn schedule.
type Manager struct {
	cfg     Config
	pop     *Population
	rng     *core.RNG
	entropy io.Reader
	reg     *timers.Registry
	log     *log.Logger

	active     bool
	closed     bool
	spawnOwner *timers.Owner
	handle     timers.Handle

	spawned int
	evicted int
}

// NewManager builds a manager holding the given residents. Spawns are
// scheduled on reg and all randomness comes from rng.
func NewManager(cfg Config, reg *timers.Registry, rng *core.RNG, logger *log.Logger, residents []Seed) *Manager {
	cfg.Normalize()
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	m := &Manager{
		cfg:     cfg,
		pop:     NewPopulation(cfg.MaxPopulation),
		rng:     rng,
		entropy: ulid.Monotonic(rng, 0),
		reg:     reg,
		log:     logger,
	}
	for _, s := range residents {
		m.pop.Add(&Animal{
			ID:       m.newID(reg.Now()),
			Position: s.Position,
			Color:    s.Color,
			Sound:    s.Sound,
		})
	}
	return m
}

// Config returns the active tuning.
func (m *Manager) Config() Config { return m.cfg }

// Population exposes the managed population.
func (m *Manager) Population() *Population { return m.pop }

// Members returns the animals, oldest first.
func (m *Manager) Members() []*Animal { return m.pop.Members() }

// Active reports whether idle spawning is running.
func (m *Manager) Active() bool { return m.active }

// Spawned and Evicted count lifetime events.
func (m *Manager) Spawned() int { return m.spawned }
func (m *Manager) Evicted() int { return m.evicted }

// NextSpawn reports when the pending visitor arrives.
func (m *Manager) NextSpawn() (float64, bool) {
	if !m.active {
		return 0, false
	}
	return m.reg.Due(m.handle)
}

// SetIdle starts or stops idle spawning. Repeating the current value does
// nothing, so callers may sync it every frame.
func (m *Manager) SetIdle(on bool) {
	if m.closed || on == m.active {
		return
	}
	if on {
		m.active = true
		m.spawnOwner = timers.NewOwner("wildlife")
		m.schedule()
		m.log.Printf("[wildlife] idle on, first visitor in %.1fs", m.untilNext())
		return
	}
	m.cancel()
	m.log.Printf("[wildlife] idle off")
}

// Interact resets the hop of the animal with the given id and returns its
// sound cue.
func (m *Manager) Interact(id string) (Sound, bool) {
	a := m.pop.Find(id)
	if a == nil {
		return "", false
	}
	a.bounce.Reset()
	return a.Sound, true
}

// Update advances every animal's hop clock.
func (m *Manager) Update(dt float64) {
	for _, a := range m.pop.Members() {
		a.bounce.Update(dt)
	}
}

// SetSpawnRange changes the interval bounds used from the next roll on.
func (m *Manager) SetSpawnRange(min, max float64) {
	cfg := m.cfg
	cfg.SpawnMin, cfg.SpawnMax = min, max
	cfg.Normalize()
	m.cfg = cfg
}

// SetMaxPopulation changes the cap, evicting the oldest animals if needed.
func (m *Manager) SetMaxPopulation(n int) bool {
	if n <= 0 {
		return false
	}
	m.cfg.MaxPopulation = n
	m.logEvicted(m.pop.SetMax(n))
	return true
}

// Close stops spawning for good.
func (m *Manager) Close() {
	m.cancel()
	m.closed = true
}

// Interval samples the seconds until the next visitor. Samples that are not
// finite or fall under the minimum are clamped to the minimum.
func (m *Manager) Interval() float64 {
	v := m.rng.Range(m.cfg.SpawnMin, m.cfg.SpawnMax)
	if math.IsNaN(v) || math.IsInf(v, 0) || v < m.cfg.SpawnMin {
		return m.cfg.SpawnMin
	}
	return v
}

func (m *Manager) schedule() {
	m.handle = m.reg.After(m.spawnOwner, m.Interval(), m.spawn)
}

func (m *Manager) cancel() {
	m.active = false
	if m.spawnOwner != nil {
		m.spawnOwner.Revoke()
		m.spawnOwner = nil
	}
	m.reg.Cancel(m.handle)
}

func (m *Manager) spawn(at float64) {
	if !m.active {
		return
	}
	a := &Animal{
		ID: m.newID(at),
		Position: core.Vec3{
			X: m.rng.Centered(m.cfg.Extent),
			Y: m.cfg.GroundY,
			Z: m.rng.Centered(m.cfg.Extent),
		},
		Color: m.rng.Color(),
		Sound: SoundBird,
	}
	if m.rng.Bool() {
		a.Sound = SoundCat
	}
	evicted := m.pop.Add(a)
	m.spawned++
	m.log.Printf("[wildlife] visitor %s (seq %d) arrived at %.1fs, population %d", a.ID, a.Seq, at, m.pop.Len())
	m.logEvicted(evicted)
	m.schedule()
}

func (m *Manager) logEvicted(evicted []*Animal) {
	for _, a := range evicted {
		m.evicted++
		m.log.Printf("[wildlife] evicted %s (seq %d)", a.ID, a.Seq)
	}
}

func (m *Manager) untilNext() float64 {
	due, ok := m.reg.Due(m.handle)
	if !ok {
		return 0
	}
	return due - m.reg.Now()
}

func (m *Manager) newID(at float64) ulid.ULID {
	ms := uint64(0)
	if at > 0 {
		ms = uint64(at * 1000)
	}
	return ulid.MustNew(ms, m.entropy)
}
