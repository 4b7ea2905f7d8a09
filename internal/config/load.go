package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

// KVList collects repeatable key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// flagKeys maps Bind's flag names to Set keys.
var flagKeys = map[string]string{
	"seed":          "seed",
	"tps":           "tps",
	"scale":         "scale",
	"idle":          "idle",
	"season-period": "season_period",
	"addr":          "inspect_addr",
}

// Loader wires the config sources to a FlagSet. Later sources win:
// defaults, the YAML file, the env file, the process environment, the
// bound flags and finally -set overrides.
type Loader struct {
	File      string
	EnvFile   string
	Overrides KVList

	flags Config
	fs    *flag.FlagSet
}

// NewLoader binds -config, -env, -set and the Config flags to fs.
func NewLoader(fs *flag.FlagSet) *Loader {
	l := &Loader{flags: DefaultConfig(), fs: fs}
	fs.StringVar(&l.File, "config", "", "YAML config file")
	fs.StringVar(&l.EnvFile, "env", "", "dotenv file with PORCH_* settings")
	fs.Var(&l.Overrides, "set", "setting override in key=value form (repeatable)")
	l.flags.Bind(fs)
	return l
}

// Load resolves the final config. Call it after fs has been parsed.
func (l *Loader) Load() (Config, error) {
	c := DefaultConfig()
	if l.File != "" {
		loaded, err := LoadFile(l.File)
		if err != nil {
			return c, err
		}
		c = loaded
	}
	if l.EnvFile != "" {
		if err := c.LoadEnvFile(l.EnvFile); err != nil {
			return c, err
		}
	} else if err := c.LoadEnvFile(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return c, err
	}
	if err := c.ApplyEnv(); err != nil {
		return c, err
	}

	var flagErr error
	l.fs.Visit(func(f *flag.Flag) {
		key, ok := flagKeys[f.Name]
		if !ok || flagErr != nil {
			return
		}
		flagErr = c.Set(key, f.Value.String())
	})
	if flagErr != nil {
		return c, flagErr
	}

	for _, kv := range l.Overrides {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			return c, fmt.Errorf("%w: override %q is not key=value", ErrInvalid, kv)
		}
		if err := c.Set(strings.TrimSpace(key), value); err != nil {
			return c, err
		}
	}
	if err := c.Validate(); err != nil {
		return c, err
	}
	return c, nil
}
