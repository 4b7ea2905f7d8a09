package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderPrecedence(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "porch.yaml")
	if err := os.WriteFile(file, []byte("seed: 1\ntps: 30\nseason:\n  period: 20\nwildlife:\n  spawnMin: 4\n  spawnMax: 8\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	env := filepath.Join(dir, "porch.env")
	if err := os.WriteFile(env, []byte("PORCH_TPS=45\nPORCH_SEED=2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	l := NewLoader(fs)
	args := []string{"-config", file, "-env", env, "-seed", "3", "-set", "spawn_max=9", "-set", "seed=4"}
	if err := fs.Parse(args); err != nil {
		t.Fatal(err)
	}
	c, err := l.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"file only", c.Season.Period, 20.0},
		{"file only spawn min", c.Wildlife.SpawnMin, 4.0},
		{"env beats file", c.TPS, 45},
		{"override beats flag", c.Seed, int64(4)},
		{"override beats file", c.Wildlife.SpawnMax, 9.0},
		{"untouched default", c.Rain.Count, 400},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Fatalf("%s: got %v, want %v", tt.name, tt.got, tt.want)
		}
	}
}

func TestLoaderFlagBeatsEnv(t *testing.T) {
	t.Setenv("PORCH_TPS", "20")
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	l := NewLoader(fs)
	if err := fs.Parse([]string{"-tps", "90"}); err != nil {
		t.Fatal(err)
	}
	c, err := l.Load()
	if err != nil {
		t.Fatal(err)
	}
	if c.TPS != 90 {
		t.Fatalf("flag should win over env, got %d", c.TPS)
	}
}

func TestLoaderErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"malformed override", []string{"-set", "seed"}},
		{"unknown override", []string{"-set", "wings=2"}},
		{"invalid result", []string{"-set", "spawn_min=9", "-set", "spawn_max=1"}},
	}
	for _, tt := range tests {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		l := NewLoader(fs)
		if err := fs.Parse(tt.args); err != nil {
			t.Fatal(err)
		}
		if _, err := l.Load(); !errors.Is(err, ErrInvalid) {
			t.Fatalf("%s: expected ErrInvalid, got %v", tt.name, err)
		}
	}

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	l := NewLoader(fs)
	if err := fs.Parse([]string{"-env", filepath.Join(t.TempDir(), "missing.env")}); err != nil {
		t.Fatal(err)
	}
	if _, err := l.Load(); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("explicit env file must exist, got %v", err)
	}
}
