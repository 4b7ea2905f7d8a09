// Package timers holds the scene's scheduled events. Every entry belongs to
// an Owner; once the owner is revoked none of its callbacks run again.
package timers

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPeriod is returned by Every for periods that would never advance.
var ErrInvalidPeriod = errors.New("timers: period must be positive and finite")

// maxFiresPerAdvance bounds the work of a single Advance. Entries left due are
// picked up by the next call.
const maxFiresPerAdvance = 4096

// Owner is a liveness token shared by all entries a component schedules.
type Owner struct {
	name  string
	alive bool
}

// NewOwner returns a live token. The name only appears in error messages.
func NewOwner(name string) *Owner {
	return &Owner{name: name, alive: true}
}

// Alive reports whether callbacks scheduled under o may still fire.
func (o *Owner) Alive() bool { return o != nil && o.alive }

// Revoke marks the owner dead. It is idempotent.
func (o *Owner) Revoke() {
	if o != nil {
		o.alive = false
	}
}

// Handle identifies a single scheduled entry.
type Handle uint64

// Func is invoked with the scene time at which the entry was due.
type Func func(at float64)

type entry struct {
	id     Handle
	owner  *Owner
	due    float64
	period float64
	fn     Func
	done   bool
}

func (e *entry) live() bool { return !e.done && e.owner.Alive() }

// Registry orders scheduled events on the scene clock. It is not safe for
// concurrent use; the scene loop owns it.
type Registry struct {
	now     float64
	nextID  Handle
	entries []*entry
}

// NewRegistry returns an empty registry at time zero.
func NewRegistry() *Registry {
	return &Registry{}
}

// Now reports the registry's current time in seconds.
func (r *Registry) Now() float64 { return r.now }

// After schedules fn to run once, delay seconds from now. Negative or
// non-finite delays run on the next Advance.
func (r *Registry) After(owner *Owner, delay float64, fn Func) Handle {
	if math.IsNaN(delay) || math.IsInf(delay, 0) || delay < 0 {
		delay = 0
	}
	return r.add(owner, r.now+delay, 0, fn)
}

// Every schedules fn to run each period seconds, first at now+period.
func (r *Registry) Every(owner *Owner, period float64, fn Func) (Handle, error) {
	if math.IsNaN(period) || math.IsInf(period, 0) || period <= 0 {
		return 0, fmt.Errorf("every %v for %q: %w", period, ownerName(owner), ErrInvalidPeriod)
	}
	return r.add(owner, r.now+period, period, fn), nil
}

func (r *Registry) add(owner *Owner, due, period float64, fn Func) Handle {
	r.nextID++
	r.entries = append(r.entries, &entry{
		id:     r.nextID,
		owner:  owner,
		due:    due,
		period: period,
		fn:     fn,
	})
	return r.nextID
}

// Cancel removes the entry behind h. It reports whether a live entry was
// cancelled.
func (r *Registry) Cancel(h Handle) bool {
	for _, e := range r.entries {
		if e.id == h && !e.done {
			e.done = true
			return e.owner.Alive()
		}
	}
	return false
}

// Due reports when h fires next.
func (r *Registry) Due(h Handle) (float64, bool) {
	for _, e := range r.entries {
		if e.id == h && e.live() {
			return e.due, true
		}
	}
	return 0, false
}

// Pending counts the live entries.
func (r *Registry) Pending() int {
	n := 0
	for _, e := range r.entries {
		if e.live() {
			n++
		}
	}
	return n
}

// Advance moves the clock to now, firing every due entry in due order. Ties
// fire in scheduling order. A now earlier than the current time is ignored.
// It returns the number of callbacks run.
func (r *Registry) Advance(now float64) int {
	if math.IsNaN(now) || now < r.now {
		return 0
	}
	fired := 0
	for fired < maxFiresPerAdvance {
		e := r.nextDue(now)
		if e == nil {
			break
		}
		at := e.due
		r.now = at
		if e.period > 0 {
			e.due += e.period
		} else {
			e.done = true
		}
		if e.fn != nil {
			e.fn(at)
		}
		fired++
	}
	r.now = now
	r.compact()
	return fired
}

func (r *Registry) nextDue(now float64) *entry {
	var best *entry
	for _, e := range r.entries {
		if !e.live() || e.due > now {
			continue
		}
		if best == nil || e.due < best.due || (e.due == best.due && e.id < best.id) {
			best = e
		}
	}
	return best
}

func (r *Registry) compact() {
	kept := r.entries[:0]
	for _, e := range r.entries {
		if e.live() {
			kept = append(kept, e)
		}
	}
	for i := len(kept); i < len(r.entries); i++ {
		r.entries[i] = nil
	}
	r.entries = kept
}

func ownerName(o *Owner) string {
	if o == nil {
		return ""
	}
	return o.name
}
