package scene

import (
	"porch/internal/core"
	"porch/internal/season"
	"porch/internal/state"
	"porch/internal/wildlife"
)

// Ambient loop volumes.
const (
	RainLoopWetVolume = 0.6
	RainLoopDryVolume = 0.2
	ChimesVolume      = 0.3
)

// Ambient holds the volumes of the two ambient loops.
type Ambient struct {
	Rain   float64 `json:"rain"`
	Chimes float64 `json:"chimes"`
}

// AmbientFor derives loop volumes from the rain intensity.
func AmbientFor(intensity float64) Ambient {
	a := Ambient{Rain: RainLoopDryVolume, Chimes: ChimesVolume}
	if intensity > 0 {
		a.Rain = RainLoopWetVolume
	}
	return a
}

// AnimalView is the serializable form of an animal.
type AnimalView struct {
	ID       string         `json:"id"`
	Seq      uint64         `json:"seq"`
	Position core.Vec3      `json:"position"`
	Color    state.Color    `json:"color"`
	Sound    wildlife.Sound `json:"sound"`
	Bounce   float64        `json:"bounce"`
}

// SwingView is the serializable form of the swing.
type SwingView struct {
	Amplitude float64 `json:"amplitude"`
	Angle     float64 `json:"angle"`
}

// Snapshot is a point-in-time view of the scene for inspectors and HUDs.
type Snapshot struct {
	Time          float64            `json:"time"`
	Frames        uint64             `json:"frames"`
	Season        season.Season      `json:"season"`
	Weather       season.Weather     `json:"weather"`
	RainIntensity float64            `json:"rainIntensity"`
	NextSeason    float64            `json:"nextSeason"`
	Idle          bool               `json:"idle"`
	NextSpawn     *float64           `json:"nextSpawn,omitempty"`
	Animals       []AnimalView       `json:"animals"`
	Swing         SwingView          `json:"swing"`
	Ambient       Ambient            `json:"ambient"`
	Avatar        state.AvatarConfig `json:"avatar"`
}

// Snapshot captures the current scene state.
func (s *Scene) Snapshot() Snapshot {
	st := s.cycle.State()
	snap := Snapshot{
		Time:          s.now,
		Frames:        s.frames,
		Season:        st.Season,
		Weather:       st.Weather,
		RainIntensity: st.RainIntensity(),
		Idle:          s.app.IdleMode(),
		Swing:         SwingView{Amplitude: s.swing.Amplitude(), Angle: s.swing.Angle()},
		Ambient:       AmbientFor(st.RainIntensity()),
		Avatar:        s.app.Avatar(),
	}
	if at, ok := s.cycle.NextChange(); ok {
		snap.NextSeason = at
	}
	if at, ok := s.wildlife.NextSpawn(); ok {
		snap.NextSpawn = &at
	}
	members := s.wildlife.Members()
	snap.Animals = make([]AnimalView, len(members))
	for i, a := range members {
		snap.Animals[i] = AnimalView{
			ID:       a.ID.String(),
			Seq:      a.Seq,
			Position: a.Position,
			Color:    state.Color(a.Color),
			Sound:    a.Sound,
			Bounce:   a.Bounce().Offset(),
		}
	}
	return snap
}
