package core

import "image/color"

// Vec3 is a position or scale in scene units.
type Vec3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z} }

// EntityKind tags a transform so renderers can pick a shape for it.
type EntityKind string

const (
	KindAvatar   EntityKind = "avatar"
	KindSwing    EntityKind = "swing"
	KindAnimal   EntityKind = "animal"
	KindRainDrop EntityKind = "raindrop"
)

// Transform is the per-entity record handed to the render step each frame.
// Rotation holds Euler angles in radians.
type Transform struct {
	ID       string
	Kind     EntityKind
	Position Vec3
	Rotation Vec3
	Scale    Vec3
	Color    color.RGBA
}

// Scene defines the minimal contract the viewer and runner drive each frame.
type Scene interface {
	Name() string
	Reset(seed int64)
	Step(dt float64)
	Transforms() []Transform
}
