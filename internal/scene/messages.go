package scene

import "porch/internal/state"

// SetIdle turns idle mode on or off; a nil On toggles it.
type SetIdle struct {
	On    *bool
	Reply chan<- bool
}

// Interact pokes an entity by id.
type Interact struct {
	ID    string
	Reply chan<- InteractResult
}

type InteractResult struct {
	Interaction Interaction
	OK          bool
}

// SetAvatarProp updates one avatar property by name.
type SetAvatarProp struct {
	Prop  string
	Value string
	Reply chan<- AvatarResult
}

type AvatarResult struct {
	Avatar state.AvatarConfig
	Err    error
}

// GetSnapshot asks for the current snapshot.
type GetSnapshot struct {
	Reply chan<- Snapshot
}

// Subscribe registers for periodic snapshots.
type Subscribe struct {
	Reply chan<- Subscription
}

// Subscription delivers snapshots at the broadcast rate. Slow readers miss
// frames rather than stall the loop.
type Subscription struct {
	ID int
	C  <-chan Snapshot
}

// Unsubscribe drops a subscription and closes its channel.
type Unsubscribe struct {
	ID int
}

// ResetScene rebuilds the scene with a new seed.
type ResetScene struct {
	Seed  int64
	Reply chan<- Snapshot
}
