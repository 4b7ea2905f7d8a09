package scene

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"porch/internal/core"
)

// ErrStopped is returned by Runner requests once the loop has exited.
var ErrStopped = errors.New("scene: runner stopped")

const subscriberBuffer = 4

// Runner owns a Scene and drives it from a single goroutine. Other
// goroutines talk to it through Inbox.
type Runner struct {
	Inbox chan any

	scene          *Scene
	tps            int
	broadcastEvery int
	clock          *core.FrameClock
	log            *log.Logger

	subs    map[int]chan Snapshot
	nextSub int
	ticks   uint64
	done    chan struct{}
}

// NewRunner wraps sc. tps sets the step rate and broadcastHz how often
// subscribers receive snapshots.
func NewRunner(sc *Scene, tps, broadcastHz int, logger *log.Logger) *Runner {
	if tps <= 0 {
		tps = 60
	}
	if broadcastHz <= 0 || broadcastHz > tps {
		broadcastHz = tps
	}
	broadcastEvery := tps / broadcastHz
	if broadcastEvery <= 0 {
		broadcastEvery = 1
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Runner{
		Inbox:          make(chan any, 64),
		scene:          sc,
		tps:            tps,
		broadcastEvery: broadcastEvery,
		clock:          core.NewFrameClock(time.Now),
		log:            logger,
		subs:           make(map[int]chan Snapshot),
		nextSub:        1,
		done:           make(chan struct{}),
	}
}

// Done is closed when Run returns.
func (r *Runner) Done() <-chan struct{} { return r.done }

// Run steps the scene until ctx is cancelled, then closes the scene and
// every subscription.
func (r *Runner) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second / time.Duration(r.tps))
	defer ticker.Stop()
	defer close(r.done)
	defer r.shutdown()

	r.log.Printf("[runner] %s running at %d tps", r.scene.Name(), r.tps)
	r.clock.Tick()
	for {
		select {
		case <-ctx.Done():
			return
		case cmd := <-r.Inbox:
			r.handleCommand(cmd)
		case <-ticker.C:
			r.scene.Step(r.clock.Tick())
			r.ticks++
			if r.ticks%uint64(r.broadcastEvery) == 0 {
				r.broadcast()
			}
		}
	}
}

func (r *Runner) handleCommand(cmd any) {
	switch c := cmd.(type) {
	case SetIdle:
		app := r.scene.App()
		var on bool
		if c.On == nil {
			on = app.ToggleIdleMode()
		} else {
			app.SetIdleMode(*c.On)
			on = *c.On
		}
		r.log.Printf("[runner] idle mode %t", on)
		c.Reply <- on
	case Interact:
		in, ok := r.scene.Interact(c.ID)
		c.Reply <- InteractResult{Interaction: in, OK: ok}
	case SetAvatarProp:
		err := r.scene.App().SetAvatarProp(c.Prop, c.Value)
		c.Reply <- AvatarResult{Avatar: r.scene.App().Avatar(), Err: err}
	case GetSnapshot:
		c.Reply <- r.scene.Snapshot()
	case Subscribe:
		id := r.nextSub
		r.nextSub++
		ch := make(chan Snapshot, subscriberBuffer)
		r.subs[id] = ch
		c.Reply <- Subscription{ID: id, C: ch}
	case Unsubscribe:
		if ch, ok := r.subs[c.ID]; ok {
			close(ch)
			delete(r.subs, c.ID)
		}
	case ResetScene:
		r.scene.Reset(c.Seed)
		r.log.Printf("[runner] reset with seed %d", c.Seed)
		c.Reply <- r.scene.Snapshot()
	default:
		r.log.Printf("[runner] unknown command %T", cmd)
	}
}

func (r *Runner) broadcast() {
	if len(r.subs) == 0 {
		return
	}
	snap := r.scene.Snapshot()
	for _, ch := range r.subs {
		select {
		case ch <- snap:
		default:
		}
	}
}

func (r *Runner) shutdown() {
	r.scene.Close()
	for id, ch := range r.subs {
		close(ch)
		delete(r.subs, id)
	}
	r.log.Printf("[runner] stopped after %d ticks", r.ticks)
}

// request sends cmd and waits for its reply.
func request[T any](ctx context.Context, r *Runner, cmd any, reply <-chan T) (T, error) {
	var zero T
	select {
	case r.Inbox <- cmd:
	case <-r.done:
		return zero, ErrStopped
	case <-ctx.Done():
		return zero, ctx.Err()
	}
	select {
	case v := <-reply:
		return v, nil
	case <-r.done:
		return zero, ErrStopped
	case <-ctx.Done():
		return zero, ctx.Err()
	}
}

// SetIdle sets idle mode, or toggles it when on is nil, and returns the
// resulting value.
func (r *Runner) SetIdle(ctx context.Context, on *bool) (bool, error) {
	reply := make(chan bool, 1)
	return request(ctx, r, SetIdle{On: on, Reply: reply}, reply)
}

// Interact pokes the entity with the given id.
func (r *Runner) Interact(ctx context.Context, id string) (InteractResult, error) {
	reply := make(chan InteractResult, 1)
	return request(ctx, r, Interact{ID: id, Reply: reply}, reply)
}

// SetAvatarProp updates one avatar property.
func (r *Runner) SetAvatarProp(ctx context.Context, prop, value string) (AvatarResult, error) {
	reply := make(chan AvatarResult, 1)
	return request(ctx, r, SetAvatarProp{Prop: prop, Value: value, Reply: reply}, reply)
}

// Snapshot fetches the current scene snapshot.
func (r *Runner) Snapshot(ctx context.Context) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	return request(ctx, r, GetSnapshot{Reply: reply}, reply)
}

// Subscribe registers for periodic snapshots. Call Unsubscribe when done.
func (r *Runner) Subscribe(ctx context.Context) (Subscription, error) {
	reply := make(chan Subscription, 1)
	return request(ctx, r, Subscribe{Reply: reply}, reply)
}

// Unsubscribe releases a subscription. It is a no-op after the loop stops.
func (r *Runner) Unsubscribe(id int) {
	select {
	case r.Inbox <- Unsubscribe{ID: id}:
	case <-r.done:
	}
}

// Reset rebuilds the scene and returns the fresh snapshot.
func (r *Runner) Reset(ctx context.Context, seed int64) (Snapshot, error) {
	reply := make(chan Snapshot, 1)
	return request(ctx, r, ResetScene{Seed: seed, Reply: reply}, reply)
}
