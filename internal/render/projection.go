// Package render turns scene transforms into screen geometry. The projection
// and picking math is build-tag free; the ebiten painter lives beside it.
package render

import (
	"math"
	"sort"

	"porch/internal/core"
)

// Camera is a fixed oblique camera looking at the porch from the front:
// X runs right, Y up, and Z toward the viewer (drawn lower on screen).
type Camera struct {
	Width  int
	Height int
	// Scale is pixels per scene unit.
	Scale float64
	// Depth is how many screen units one unit of Z shifts a point down.
	Depth float64
	// Horizon is the fraction of the height where Y=0, Z=0 lands.
	Horizon float64
}

// NewCamera returns a camera for a width by height view.
func NewCamera(width, height int, scale float64) Camera {
	if scale <= 0 {
		scale = 48
	}
	return Camera{Width: width, Height: height, Scale: scale, Depth: 0.45, Horizon: 0.55}
}

// Project maps a scene position to screen pixels.
func (c Camera) Project(v core.Vec3) (float64, float64) {
	x := float64(c.Width)/2 + v.X*c.Scale
	y := float64(c.Height)*c.Horizon - v.Y*c.Scale + v.Z*c.Depth*c.Scale
	return x, y
}

// Size converts a scene length to pixels.
func (c Camera) Size(l float64) float64 { return l * c.Scale }

const minPickRadius = 8

// Pick returns the id of the front-most interactive entity under the
// screen point. Only the swing and animals can be picked.
func (c Camera) Pick(ts []core.Transform, x, y float64) (string, bool) {
	best := -1
	for i, t := range ts {
		if !c.hit(t, x, y) {
			continue
		}
		if best < 0 || t.Position.Z >= ts[best].Position.Z {
			best = i
		}
	}
	if best < 0 {
		return "", false
	}
	return ts[best].ID, true
}

func (c Camera) hit(t core.Transform, x, y float64) bool {
	cx, cy := c.Project(t.Position)
	switch t.Kind {
	case core.KindAnimal:
		r := math.Max(c.Size(t.Scale.X), minPickRadius)
		return math.Hypot(x-cx, y-cy) <= r
	case core.KindSwing:
		hw := c.Size(t.Scale.X) / 2
		hh := math.Max(c.Size(t.Scale.Y), minPickRadius)
		// Undo the seat tilt before the box test.
		dx, dy := x-cx, y-cy
		sin, cos := math.Sincos(t.Rotation.Z)
		lx := dx*cos - dy*sin
		ly := dx*sin + dy*cos
		return math.Abs(lx) <= hw && math.Abs(ly) <= hh
	}
	return false
}

// DrawOrder returns indices into ts from back to front.
func DrawOrder(ts []core.Transform) []int {
	idx := make([]int, len(ts))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return ts[idx[a]].Position.Z < ts[idx[b]].Position.Z
	})
	return idx
}
