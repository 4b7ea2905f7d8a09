package timers

import (
	"errors"
	"math"
	"slices"
	"testing"
)

func TestAfterFiresOnceAtDueTime(t *testing.T) {
	r := NewRegistry()
	owner := NewOwner("test")
	var fired []float64
	r.After(owner, 5, func(at float64) { fired = append(fired, at) })

	r.Advance(4.9)
	if len(fired) != 0 {
		t.Fatalf("fired early: %v", fired)
	}
	r.Advance(5)
	r.Advance(50)
	if !slices.Equal(fired, []float64{5}) {
		t.Fatalf("expected single firing at 5, got %v", fired)
	}
	if r.Pending() != 0 {
		t.Fatalf("one-shot entry should be removed, pending=%d", r.Pending())
	}
}

func TestEveryCatchesUpSkippedPeriods(t *testing.T) {
	r := NewRegistry()
	owner := NewOwner("cycle")
	var fired []float64
	if _, err := r.Every(owner, 60, func(at float64) { fired = append(fired, at) }); err != nil {
		t.Fatalf("Every: %v", err)
	}

	if n := r.Advance(250); n != 4 {
		t.Fatalf("expected 4 firings, got %d", n)
	}
	if !slices.Equal(fired, []float64{60, 120, 180, 240}) {
		t.Fatalf("unexpected firing times %v", fired)
	}
}

func TestEveryRejectsInvalidPeriods(t *testing.T) {
	r := NewRegistry()
	for _, p := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		if _, err := r.Every(NewOwner("bad"), p, func(float64) {}); !errors.Is(err, ErrInvalidPeriod) {
			t.Fatalf("period %v: expected ErrInvalidPeriod, got %v", p, err)
		}
	}
}

func TestAdvanceOrdersByDueThenSchedule(t *testing.T) {
	r := NewRegistry()
	owner := NewOwner("order")
	var order []string
	r.After(owner, 2, func(float64) { order = append(order, "b") })
	r.After(owner, 1, func(float64) { order = append(order, "a") })
	r.After(owner, 2, func(float64) { order = append(order, "c") })

	r.Advance(3)
	if !slices.Equal(order, []string{"a", "b", "c"}) {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestRescheduleFromCallbackUsesEventTime(t *testing.T) {
	r := NewRegistry()
	owner := NewOwner("chain")
	var fired []float64
	var schedule func()
	schedule = func() {
		r.After(owner, 10, func(at float64) {
			fired = append(fired, at)
			schedule()
		})
	}
	schedule()

	r.Advance(35)
	if !slices.Equal(fired, []float64{10, 20, 30}) {
		t.Fatalf("chained events should be spaced from their own due time, got %v", fired)
	}
	if due, ok := r.Due(4); !ok || due != 40 {
		t.Fatalf("expected next entry due at 40, got %v %v", due, ok)
	}
}

func TestRevokedOwnerNeverFires(t *testing.T) {
	r := NewRegistry()
	alive := NewOwner("alive")
	dead := NewOwner("dead")
	var fired []string
	r.After(alive, 1, func(float64) { fired = append(fired, "alive") })
	if _, err := r.Every(dead, 1, func(float64) { fired = append(fired, "dead") }); err != nil {
		t.Fatal(err)
	}

	dead.Revoke()
	r.Advance(10)
	if !slices.Equal(fired, []string{"alive"}) {
		t.Fatalf("revoked owner fired: %v", fired)
	}
}

func TestRevokeInsideCallbackStopsSiblings(t *testing.T) {
	r := NewRegistry()
	owner := NewOwner("scene")
	count := 0
	r.After(owner, 1, func(float64) {
		count++
		owner.Revoke()
	})
	r.After(owner, 1, func(float64) { count++ })

	r.Advance(2)
	if count != 1 {
		t.Fatalf("expected teardown to stop the second callback, count=%d", count)
	}
}

func TestCancel(t *testing.T) {
	r := NewRegistry()
	owner := NewOwner("cancel")
	fired := false
	h := r.After(owner, 1, func(float64) { fired = true })

	if !r.Cancel(h) {
		t.Fatal("expected Cancel to report a live entry")
	}
	if r.Cancel(h) {
		t.Fatal("second Cancel should report false")
	}
	r.Advance(5)
	if fired {
		t.Fatal("cancelled entry fired")
	}
}

func TestAdvanceIgnoresBackwardTime(t *testing.T) {
	r := NewRegistry()
	r.Advance(10)
	if n := r.Advance(5); n != 0 {
		t.Fatalf("expected no firings, got %d", n)
	}
	if r.Now() != 10 {
		t.Fatalf("time moved backward to %f", r.Now())
	}
	r.Advance(math.NaN())
	if r.Now() != 10 {
		t.Fatalf("NaN advance changed time to %f", r.Now())
	}
}

func TestNegativeDelayRunsOnNextAdvance(t *testing.T) {
	r := NewRegistry()
	r.Advance(3)
	fired := -1.0
	r.After(NewOwner("neg"), -4, func(at float64) { fired = at })
	r.Advance(3)
	if fired != 3 {
		t.Fatalf("expected clamp to current time, fired at %f", fired)
	}
}
