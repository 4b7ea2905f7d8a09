//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"porch/internal/core"
	"porch/internal/render"
	"porch/internal/scene"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Overlay draws the status line, pick outlines and key help over the view.
type Overlay struct {
	showStatus bool
	showHits   bool
	showHelp   bool
}

// NewOverlay starts with the status line and help visible.
func NewOverlay() *Overlay {
	return &Overlay{showStatus: true, showHelp: true}
}

// Update handles the overlay toggles.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showStatus = !o.showStatus
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showHits = !o.showHits
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showHelp = !o.showHelp
	}
}

// Draw renders the enabled layers.
func (o *Overlay) Draw(screen *ebiten.Image, cam render.Camera, ts []core.Transform, snap scene.Snapshot) {
	if o.showHits {
		drawHitAreas(screen, cam, ts)
	}
	face := basicfont.Face7x13
	if o.showStatus {
		text.Draw(screen, StatusLine(snap), face, 8, 16, color.White)
	}
	if o.showHelp {
		y := cam.Height - 8 - (len(helpLines)-1)*14
		for _, line := range helpLines {
			text.Draw(screen, line, face, 8, y, color.RGBA{R: 230, G: 230, B: 240, A: 200})
			y += 14
		}
	}
}

func drawHitAreas(screen *ebiten.Image, cam render.Camera, ts []core.Transform) {
	outline := color.RGBA{R: 255, G: 230, B: 80, A: 200}
	for _, t := range ts {
		x, y := cam.Project(t.Position)
		switch t.Kind {
		case core.KindAnimal:
			r := math.Max(cam.Size(t.Scale.X), 8)
			vector.StrokeCircle(screen, float32(x), float32(y), float32(r), 1, outline, true)
		case core.KindSwing:
			hw := cam.Size(t.Scale.X) / 2
			vector.StrokeRect(screen, float32(x-hw), float32(y-8), float32(2*hw), 16, 1, outline, false)
		}
	}
}
