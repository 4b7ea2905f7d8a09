package season

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"

	"porch/internal/timers"
)

func TestWeatherLookup(t *testing.T) {
	cases := []struct {
		season    Season
		weather   Weather
		intensity float64
	}{
		{Spring, Rain, 1.0},
		{Summer, Sun, 0},
		{Autumn, Wind, 0},
		{Winter, Snow, 0.3},
	}
	for _, tc := range cases {
		if got := WeatherFor(tc.season); got != tc.weather {
			t.Fatalf("%s: weather %s, want %s", tc.season, got, tc.weather)
		}
		if got := tc.weather.Intensity(); got != tc.intensity {
			t.Fatalf("%s: intensity %f, want %f", tc.weather, got, tc.intensity)
		}
	}
}

func TestFourAdvancesReturnToStart(t *testing.T) {
	c := NewCycle(0, nil)
	initial := c.State()
	for i := 0; i < 4; i++ {
		c.Advance()
		if s := c.State(); s.Weather != WeatherFor(s.Season) {
			t.Fatalf("weather desynced from season: %+v", s)
		}
	}
	if c.State() != initial {
		t.Fatalf("expected %+v after four advances, got %+v", initial, c.State())
	}
	if c.Transitions() != 4 {
		t.Fatalf("expected 4 transitions, got %d", c.Transitions())
	}
}

func TestTimerDrivenCycle(t *testing.T) {
	reg := timers.NewRegistry()
	c := NewCycle(60, nil)
	if err := c.Start(reg); err != nil {
		t.Fatal(err)
	}

	if s := c.State(); s.Season != Spring || s.Weather != Rain || s.RainIntensity() != 1 {
		t.Fatalf("unexpected initial state %+v", s)
	}

	reg.Advance(59.9)
	if c.State().Season != Spring {
		t.Fatalf("advanced early to %s", c.State().Season)
	}

	reg.Advance(60)
	if s := c.State(); s.Season != Summer || s.Weather != Sun || s.RainIntensity() != 0 {
		t.Fatalf("after one period expected summer/sun, got %+v", s)
	}

	reg.Advance(240)
	if s := c.State(); s.Season != Spring || s.Weather != Rain {
		t.Fatalf("after four periods expected spring/rain, got %+v", s)
	}
	if at, ok := c.NextChange(); !ok || at != 300 {
		t.Fatalf("expected next change at 300, got %v %v", at, ok)
	}
}

func TestStopCancelsTimer(t *testing.T) {
	reg := timers.NewRegistry()
	c := NewCycle(10, nil)
	if err := c.Start(reg); err != nil {
		t.Fatal(err)
	}
	c.Stop()
	reg.Advance(100)
	if c.State().Season != Spring {
		t.Fatalf("stopped cycle advanced to %s", c.State().Season)
	}
	if reg.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", reg.Pending())
	}
}

func TestSetPeriodRearms(t *testing.T) {
	reg := timers.NewRegistry()
	c := NewCycle(60, nil)
	if err := c.Start(reg); err != nil {
		t.Fatal(err)
	}
	reg.Advance(30)
	if err := c.SetPeriod(5); err != nil {
		t.Fatal(err)
	}
	reg.Advance(35)
	if c.State().Season != Summer {
		t.Fatalf("expected re-armed timer to fire at 35, season=%s", c.State().Season)
	}
	if reg.Pending() != 1 {
		t.Fatalf("old timer should be gone, pending=%d", reg.Pending())
	}
	if err := c.SetPeriod(0); !errors.Is(err, timers.ErrInvalidPeriod) {
		t.Fatalf("expected ErrInvalidPeriod, got %v", err)
	}
}

func TestAdvanceLogsTransition(t *testing.T) {
	var buf bytes.Buffer
	c := NewCycle(1, log.New(&buf, "", 0))
	c.Advance()
	if !strings.Contains(buf.String(), "spring -> summer (sun)") {
		t.Fatalf("unexpected log output %q", buf.String())
	}
}

func TestNamesMarshal(t *testing.T) {
	b, _ := Winter.MarshalText()
	if string(b) != "winter" {
		t.Fatalf("got %q", b)
	}
	b, _ = Wind.MarshalText()
	if string(b) != "wind" {
		t.Fatalf("got %q", b)
	}
}
