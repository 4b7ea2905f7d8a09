// Package config gathers the porch scene's tunables from defaults, a YAML
// file, the environment and command-line flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"porch/internal/motion"
	"porch/internal/season"
	"porch/internal/state"
	"porch/internal/wildlife"
)

// ErrInvalid is wrapped by every validation and parse failure.
var ErrInvalid = errors.New("invalid config")

// EnvPrefix namespaces environment overrides, e.g. PORCH_SEASON_PERIOD.
const EnvPrefix = "PORCH_"

// Rain sizes the rain field.
type Rain struct {
	Count    int     `yaml:"count"`
	AreaSize float64 `yaml:"areaSize"`
	Height   float64 `yaml:"height"`
	FallRate float64 `yaml:"fallRate"`
}

// Swing tunes the porch swing.
type Swing struct {
	Damping     float64 `yaml:"damping"`
	Boost       float64 `yaml:"boost"`
	MaxAngleDeg float64 `yaml:"maxAngleDeg"`
}

// Season sets the cycle length in seconds.
type Season struct {
	Period float64 `yaml:"period"`
}

// Wildlife tunes idle-mode spawning.
type Wildlife struct {
	MaxPopulation int     `yaml:"maxPopulation"`
	SpawnMin      float64 `yaml:"spawnMin"`
	SpawnMax      float64 `yaml:"spawnMax"`
	Extent        float64 `yaml:"extent"`
	GroundY       float64 `yaml:"groundY"`
}

// Inspect configures the HTTP inspector.
type Inspect struct {
	Addr        string `yaml:"addr"`
	BroadcastHz int    `yaml:"broadcastHz"`
}

// Config holds every tunable of the scene and its front ends.
type Config struct {
	Seed  int64 `yaml:"seed"`
	TPS   int   `yaml:"tps"`
	Scale int   `yaml:"scale"`
	Idle  bool  `yaml:"idle"`

	Avatar   state.AvatarConfig `yaml:"avatar"`
	Rain     Rain               `yaml:"rain"`
	Swing    Swing              `yaml:"swing"`
	Season   Season             `yaml:"season"`
	Wildlife Wildlife           `yaml:"wildlife"`
	Inspect  Inspect            `yaml:"inspect"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	rain := motion.DefaultRainConfig()
	swing := motion.DefaultSwingConfig()
	wl := wildlife.DefaultConfig()
	return Config{
		Seed:   42,
		TPS:    60,
		Scale:  48,
		Avatar: state.DefaultAvatar(),
		Rain: Rain{
			Count:    rain.Count,
			AreaSize: rain.AreaSize,
			Height:   rain.Height,
			FallRate: rain.FallRate,
		},
		Swing: Swing{
			Damping:     swing.Damping,
			Boost:       swing.Boost,
			MaxAngleDeg: swing.MaxAngle * 180 / math.Pi,
		},
		Season: Season{Period: season.DefaultPeriod},
		Wildlife: Wildlife{
			MaxPopulation: wl.MaxPopulation,
			SpawnMin:      wl.SpawnMin,
			SpawnMax:      wl.SpawnMax,
			Extent:        wl.Extent,
			GroundY:       wl.GroundY,
		},
		Inspect: Inspect{Addr: ":8080", BroadcastHz: 10},
	}
}

// RainConfig converts to the motion package's form.
func (c Config) RainConfig() motion.RainConfig {
	return motion.RainConfig{
		Count:    c.Rain.Count,
		AreaSize: c.Rain.AreaSize,
		Height:   c.Rain.Height,
		FallRate: c.Rain.FallRate,
	}
}

// SwingConfig converts to the motion package's form.
func (c Config) SwingConfig() motion.SwingConfig {
	return motion.SwingConfig{
		Damping:  c.Swing.Damping,
		Boost:    c.Swing.Boost,
		MaxAngle: c.Swing.MaxAngleDeg * math.Pi / 180,
	}
}

// WildlifeConfig converts to the wildlife package's form.
func (c Config) WildlifeConfig() wildlife.Config {
	return wildlife.Config{
		MaxPopulation: c.Wildlife.MaxPopulation,
		SpawnMin:      c.Wildlife.SpawnMin,
		SpawnMax:      c.Wildlife.SpawnMax,
		Extent:        c.Wildlife.Extent,
		GroundY:       c.Wildlife.GroundY,
	}
}

// Validate reports the first out-of-range value.
func (c Config) Validate() error {
	switch {
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps must be positive, got %d", ErrInvalid, c.TPS)
	case c.Scale <= 0:
		return fmt.Errorf("%w: scale must be positive, got %d", ErrInvalid, c.Scale)
	case !(c.Season.Period > 0):
		return fmt.Errorf("%w: season period must be positive, got %v", ErrInvalid, c.Season.Period)
	case c.Rain.Count < 0:
		return fmt.Errorf("%w: rain count must not be negative, got %d", ErrInvalid, c.Rain.Count)
	case !(c.Rain.Height > 0):
		return fmt.Errorf("%w: rain height must be positive, got %v", ErrInvalid, c.Rain.Height)
	case !(c.Swing.Damping > 0 && c.Swing.Damping < 1):
		return fmt.Errorf("%w: swing damping must be in (0,1), got %v", ErrInvalid, c.Swing.Damping)
	case c.Wildlife.MaxPopulation <= 0:
		return fmt.Errorf("%w: max population must be positive, got %d", ErrInvalid, c.Wildlife.MaxPopulation)
	case !(c.Wildlife.SpawnMin > 0):
		return fmt.Errorf("%w: spawn min must be positive, got %v", ErrInvalid, c.Wildlife.SpawnMin)
	case c.Wildlife.SpawnMax < c.Wildlife.SpawnMin:
		return fmt.Errorf("%w: spawn max %v below min %v", ErrInvalid, c.Wildlife.SpawnMax, c.Wildlife.SpawnMin)
	case c.Inspect.BroadcastHz <= 0:
		return fmt.Errorf("%w: broadcast rate must be positive, got %d", ErrInvalid, c.Inspect.BroadcastHz)
	}
	if err := c.Avatar.Validate(); err != nil {
		return fmt.Errorf("%w: avatar: %v", ErrInvalid, err)
	}
	return nil
}

// LoadFile reads a YAML file over the defaults and validates the result.
func LoadFile(path string) (Config, error) {
	c := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return c, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &c); err != nil {
		return c, fmt.Errorf("parse config YAML: %w", err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("config %s: %w", path, err)
	}
	return c, nil
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// LoadEnvFile applies PORCH_* entries from a dotenv file.
func (c *Config) LoadEnvFile(path string) error {
	vars, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("read env file: %w", err)
	}
	return c.applyEnv(vars)
}

// ApplyEnv applies PORCH_* entries from the process environment.
func (c *Config) ApplyEnv() error {
	vars := map[string]string{}
	for _, kv := range os.Environ() {
		k, v, ok := strings.Cut(kv, "=")
		if ok {
			vars[k] = v
		}
	}
	return c.applyEnv(vars)
}

func (c *Config) applyEnv(vars map[string]string) error {
	names := make([]string, 0, len(vars))
	for k := range vars {
		if strings.HasPrefix(k, EnvPrefix) {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	for _, k := range names {
		key := strings.ToLower(strings.TrimPrefix(k, EnvPrefix))
		if err := c.Set(key, vars[k]); err != nil {
			return fmt.Errorf("env %s: %w", k, err)
		}
	}
	return nil
}

// Bind attaches the most common settings to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for scene randomness")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per scene unit")
	fs.BoolVar(&c.Idle, "idle", c.Idle, "start with idle mode enabled")
	fs.Float64Var(&c.Season.Period, "season-period", c.Season.Period, "seconds per season")
	fs.StringVar(&c.Inspect.Addr, "addr", c.Inspect.Addr, "inspector listen address")
}

// Keys lists the names accepted by Set.
func Keys() []string {
	keys := make([]string, 0, len(setters))
	for k := range setters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Set assigns one value by its flat key, e.g. "spawn_min" or "seed".
func (c *Config) Set(key, value string) error {
	set, ok := setters[key]
	if !ok {
		return fmt.Errorf("%w: unknown key %q", ErrInvalid, key)
	}
	if err := set(c, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalid, key, value, err)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value
// pairs), skipping entries that do not parse.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	for k, v := range cfg {
		_ = c.Set(k, v)
	}
	return c
}

var setters = map[string]func(*Config, string) error{
	"seed":           func(c *Config, v string) error { return parseInt64(v, &c.Seed) },
	"tps":            func(c *Config, v string) error { return parseInt(v, &c.TPS) },
	"scale":          func(c *Config, v string) error { return parseInt(v, &c.Scale) },
	"idle":           func(c *Config, v string) error { return parseBool(v, &c.Idle) },
	"rain_count":     func(c *Config, v string) error { return parseInt(v, &c.Rain.Count) },
	"rain_area":      func(c *Config, v string) error { return parseFloat(v, &c.Rain.AreaSize) },
	"rain_height":    func(c *Config, v string) error { return parseFloat(v, &c.Rain.Height) },
	"rain_fall_rate": func(c *Config, v string) error { return parseFloat(v, &c.Rain.FallRate) },
	"swing_damping":  func(c *Config, v string) error { return parseFloat(v, &c.Swing.Damping) },
	"swing_boost":    func(c *Config, v string) error { return parseFloat(v, &c.Swing.Boost) },
	"swing_max_deg":  func(c *Config, v string) error { return parseFloat(v, &c.Swing.MaxAngleDeg) },
	"season_period":  func(c *Config, v string) error { return parseFloat(v, &c.Season.Period) },
	"max_population": func(c *Config, v string) error { return parseInt(v, &c.Wildlife.MaxPopulation) },
	"spawn_min":      func(c *Config, v string) error { return parseFloat(v, &c.Wildlife.SpawnMin) },
	"spawn_max":      func(c *Config, v string) error { return parseFloat(v, &c.Wildlife.SpawnMax) },
	"spawn_extent":   func(c *Config, v string) error { return parseFloat(v, &c.Wildlife.Extent) },
	"inspect_addr": func(c *Config, v string) error {
		c.Inspect.Addr = v
		return nil
	},
	"broadcast_hz": func(c *Config, v string) error { return parseInt(v, &c.Inspect.BroadcastHz) },
	"body_type": func(c *Config, v string) error {
		a := c.Avatar
		a.BodyType = state.BodyType(v)
		return c.setAvatar(a)
	},
	"hair_color": func(c *Config, v string) error { return c.Avatar.HairColor.UnmarshalText([]byte(v)) },
	"skin_tone":  func(c *Config, v string) error { return c.Avatar.SkinTone.UnmarshalText([]byte(v)) },
	"accessory": func(c *Config, v string) error {
		a := c.Avatar
		a.Accessory = state.Accessory(v)
		return c.setAvatar(a)
	},
}

func (c *Config) setAvatar(a state.AvatarConfig) error {
	if err := a.Validate(); err != nil {
		return err
	}
	c.Avatar = a
	return nil
}

func parseInt(v string, dst *int) error {
	n, err := strconv.Atoi(v)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseInt64(v string, dst *int64) error {
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return err
	}
	*dst = n
	return nil
}

func parseFloat(v string, dst *float64) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return errors.New("not finite")
	}
	*dst = f
	return nil
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}
