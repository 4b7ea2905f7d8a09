package render

import (
	"image/color"
	"math"
	"testing"

	"porch/internal/core"
	"porch/internal/season"
)

func TestProjectOrigin(t *testing.T) {
	c := NewCamera(800, 600, 50)
	x, y := c.Project(core.Vec3{})
	if x != 400 || y != 330 {
		t.Fatalf("origin projected to (%v, %v)", x, y)
	}
	_, up := c.Project(core.Vec3{Y: 1})
	_, near := c.Project(core.Vec3{Z: 1})
	if up >= y || near <= y {
		t.Fatalf("up should rise and near should drop: up=%v near=%v base=%v", up, near, y)
	}
}

func TestPick(t *testing.T) {
	c := NewCamera(800, 600, 50)
	ts := []core.Transform{
		{ID: "avatar", Kind: core.KindAvatar, Position: core.Vec3{Z: 2}, Scale: core.Vec3{X: 1, Y: 1, Z: 1}},
		{ID: "swing", Kind: core.KindSwing, Position: core.Vec3{Y: 1}, Scale: core.Vec3{X: 1.6, Y: 0.1, Z: 0.4}},
		{ID: "back", Kind: core.KindAnimal, Position: core.Vec3{X: 2, Y: 0.15, Z: 0}, Scale: core.Vec3{X: 0.15, Y: 0.15, Z: 0.15}},
		{ID: "front", Kind: core.KindAnimal, Position: core.Vec3{X: 2, Y: 0.15, Z: 0.1}, Scale: core.Vec3{X: 0.15, Y: 0.15, Z: 0.15}},
	}

	tests := []struct {
		name string
		at   core.Vec3
		want string
		ok   bool
	}{
		{"swing center", core.Vec3{Y: 1}, "swing", true},
		{"swing edge", core.Vec3{X: 0.75, Y: 1}, "swing", true},
		{"front animal wins", core.Vec3{X: 2, Y: 0.15, Z: 0.05}, "front", true},
		{"avatar is not pickable", core.Vec3{Z: 2}, "", false},
		{"empty space", core.Vec3{X: -5, Y: 3}, "", false},
	}
	for _, tt := range tests {
		x, y := c.Project(tt.at)
		got, ok := c.Pick(ts, x, y)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("%s: got %q %v, want %q %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestPickFollowsSwingTilt(t *testing.T) {
	c := NewCamera(800, 600, 50)
	angle := math.Pi / 4
	ts := []core.Transform{{ID: "swing", Kind: core.KindSwing, Position: core.Vec3{}, Rotation: core.Vec3{Z: angle}, Scale: core.Vec3{X: 1.6, Y: 0.1}}}
	cx, cy := c.Project(core.Vec3{})
	r := c.Size(0.7)
	tip := [2]float64{cx + r*math.Cos(angle), cy - r*math.Sin(angle)}
	if _, ok := c.Pick(ts, tip[0], tip[1]); !ok {
		t.Fatalf("tilted seat end should be pickable")
	}
	if _, ok := c.Pick(ts, cx+r, cy); ok {
		t.Fatalf("point off the tilted seat should miss")
	}
}

func TestDrawOrder(t *testing.T) {
	ts := []core.Transform{
		{ID: "a", Position: core.Vec3{Z: 2}},
		{ID: "b", Position: core.Vec3{Z: -1}},
		{ID: "c", Position: core.Vec3{Z: 2}},
		{ID: "d", Position: core.Vec3{Z: 0}},
	}
	got := DrawOrder(ts)
	want := []int{1, 3, 0, 2}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestPalette(t *testing.T) {
	if SkyColor(season.Summer) == SkyColor(season.Winter) {
		t.Fatalf("seasons should differ")
	}
	if SkyColor(season.Season(9)) != SkyColor(season.Spring) {
		t.Fatalf("unknown season should fall back to spring")
	}
	c := color.RGBA{R: 100, G: 200, B: 50, A: 128}
	if got := Shade(c, 2); got != (color.RGBA{R: 200, G: 255, B: 100, A: 128}) {
		t.Fatalf("unexpected shade %v", got)
	}
	if got := Lerp(color.RGBA{}, color.RGBA{R: 200, A: 255}, 0.5); got.R != 100 || got.A != 128 {
		t.Fatalf("unexpected lerp %v", got)
	}
}
