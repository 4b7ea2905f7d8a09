// Package wildlife manages the porch's animals: the two residents placed at
// scene start and the visitors that arrive while idle mode is on.
package wildlife

import (
	"image/color"

	"github.com/oklog/ulid/v2"

	"porch/internal/core"
	"porch/internal/motion"
)

// Sound names the cue an animal plays when poked.
type Sound string

const (
	SoundSquirrel Sound = "/sounds/squirrel.mp3"
	SoundBird     Sound = "/sounds/bird.mp3"
	SoundCat      Sound = "/sounds/cat.mp3"
)

// Animal is one member of the population.
type Animal struct {
	ID       ulid.ULID
	Seq      uint64
	Position core.Vec3
	Color    color.RGBA
	Sound    Sound

	bounce motion.Bounce
}

// Bounce exposes the animal's hop state.
func (a *Animal) Bounce() *motion.Bounce { return &a.bounce }

// RenderPosition is the resting position lifted by the current hop.
func (a *Animal) RenderPosition() core.Vec3 {
	return a.Position.Add(core.Vec3{Y: a.bounce.Offset()})
}

// Seed describes a resident animal placed when the scene starts.
type Seed struct {
	Position core.Vec3
	Color    color.RGBA
	Sound    Sound
}

// DefaultResidents returns the squirrel and bird that start on the porch.
func DefaultResidents() []Seed {
	return []Seed{
		{Position: core.Vec3{X: 2, Y: 0.15, Z: 2}, Color: color.RGBA{R: 0xdd, G: 0xaa, B: 0x66, A: 0xff}, Sound: SoundSquirrel},
		{Position: core.Vec3{X: -1.5, Y: 0.15, Z: 1.5}, Color: color.RGBA{R: 0x88, G: 0xbb, B: 0xff, A: 0xff}, Sound: SoundBird},
	}
}
