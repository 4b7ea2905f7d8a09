//go:build ebiten

package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"porch/internal/core"
	"porch/internal/season"
	"porch/internal/state"
)

// Painter draws scene transforms with ebiten's vector helpers.
type Painter struct {
	cam Camera
}

// NewPainter constructs a painter for the given camera.
func NewPainter(cam Camera) *Painter {
	return &Painter{cam: cam}
}

// Camera returns the projection in use.
func (p *Painter) Camera() Camera { return p.cam }

// Draw paints the backdrop and every transform back to front.
func (p *Painter) Draw(screen *ebiten.Image, ts []core.Transform, avatar state.AvatarConfig, s season.Season) {
	p.drawBackdrop(screen, s)
	for _, i := range DrawOrder(ts) {
		t := ts[i]
		switch t.Kind {
		case core.KindAvatar:
			p.drawAvatar(screen, t, avatar)
		case core.KindSwing:
			p.drawSwing(screen, t)
		case core.KindAnimal:
			p.drawAnimal(screen, t)
		case core.KindRainDrop:
			p.drawDrop(screen, t)
		}
	}
}

func (p *Painter) drawBackdrop(screen *ebiten.Image, s season.Season) {
	screen.Fill(SkyColor(s))
	_, horizon := p.cam.Project(core.Vec3{Z: -4})
	w := float32(p.cam.Width)
	vector.DrawFilledRect(screen, 0, float32(horizon), w, float32(p.cam.Height)-float32(horizon), GroundColor(s), false)

	// Porch floor and the beam the swing hangs from.
	x0, y0 := p.cam.Project(core.Vec3{X: -2.5, Z: -0.5})
	x1, y1 := p.cam.Project(core.Vec3{X: 2.5, Z: 1})
	vector.DrawFilledRect(screen, float32(x0), float32(y0), float32(x1-x0), float32(y1-y0), porchColor, false)
	bx0, by := p.cam.Project(core.Vec3{X: -1.2, Y: 2.2})
	bx1, _ := p.cam.Project(core.Vec3{X: 1.2, Y: 2.2})
	vector.StrokeLine(screen, float32(bx0), float32(by), float32(bx1), float32(by), 6, Shade(porchColor, 0.7), true)
}

func (p *Painter) drawSwing(screen *ebiten.Image, t core.Transform) {
	cx, cy := p.cam.Project(t.Position)
	hw := p.cam.Size(t.Scale.X) / 2
	sin, cos := math.Sincos(t.Rotation.Z)
	lx, ly := cx-hw*cos, cy+hw*sin
	rx, ry := cx+hw*cos, cy-hw*sin

	_, beam := p.cam.Project(core.Vec3{Y: 2.2})
	rope := color.RGBA{R: 60, G: 50, B: 40, A: 255}
	vector.StrokeLine(screen, float32(lx), float32(beam), float32(lx), float32(ly), 2, rope, true)
	vector.StrokeLine(screen, float32(rx), float32(beam), float32(rx), float32(ry), 2, rope, true)

	thick := float32(math.Max(p.cam.Size(t.Scale.Y), 3))
	vector.StrokeLine(screen, float32(lx), float32(ly), float32(rx), float32(ry), thick, t.Color, true)
}

func (p *Painter) drawAvatar(screen *ebiten.Image, t core.Transform, a state.AvatarConfig) {
	fx, fy := p.cam.Project(t.Position)
	bodyW := p.cam.Size(0.5 * t.Scale.X)
	bodyH := p.cam.Size(1.2 * t.Scale.Y)
	headR := p.cam.Size(0.22)
	skin := t.Color

	top := fy - bodyH
	vector.DrawFilledRect(screen, float32(fx-bodyW/2), float32(top), float32(bodyW), float32(bodyH), Shade(skin, 0.8), true)
	hx, hy := fx, top-headR
	vector.DrawFilledCircle(screen, float32(hx), float32(hy), float32(headR), skin, true)

	hair := a.HairColor.ToRGBA()
	vector.DrawFilledRect(screen, float32(hx-headR), float32(hy-headR), float32(2*headR), float32(headR*0.6), hair, true)
	if a.Accessory == state.AccessoryHat {
		brimY := hy - headR*0.6
		vector.DrawFilledRect(screen, float32(hx-headR*1.4), float32(brimY), float32(headR*2.8), float32(headR*0.25), color.RGBA{R: 40, G: 40, B: 50, A: 255}, true)
		vector.DrawFilledRect(screen, float32(hx-headR*0.8), float32(brimY-headR), float32(headR*1.6), float32(headR), color.RGBA{R: 40, G: 40, B: 50, A: 255}, true)
	}
}

func (p *Painter) drawAnimal(screen *ebiten.Image, t core.Transform) {
	cx, cy := p.cam.Project(t.Position)
	r := float32(math.Max(p.cam.Size(t.Scale.X), 4))
	_, ground := p.cam.Project(core.Vec3{Z: t.Position.Z})
	vector.DrawFilledCircle(screen, float32(cx), float32(ground), r*0.8, color.RGBA{A: 60}, true)
	vector.DrawFilledCircle(screen, float32(cx), float32(cy), r, t.Color, true)
	vector.StrokeCircle(screen, float32(cx), float32(cy), r, 1, Shade(t.Color, 0.6), true)
}

func (p *Painter) drawDrop(screen *ebiten.Image, t core.Transform) {
	x, y := p.cam.Project(t.Position)
	l := p.cam.Size(t.Scale.Y)
	vector.StrokeLine(screen, float32(x), float32(y), float32(x), float32(y+l), 1, t.Color, false)
}
