//go:build ebiten

package app

import (
	"io"
	"log"
	"time"

	"porch/internal/config"
	"porch/internal/core"
	"porch/internal/render"
	"porch/internal/scene"
	"porch/internal/state"
	"porch/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	viewWidth  = 960
	viewHeight = 600
	hudWidth   = 240
)

// Game adapts the porch scene to the ebiten.Game interface.
type Game struct {
	scene   *scene.Scene
	app     *state.AppState
	painter *render.Painter
	hud     *ui.HUD
	overlay *ui.Overlay
	audio   *Audio
	clock   *core.FrameClock
	log     *log.Logger

	seed int64
}

// New constructs a Game around a fresh scene built from cfg.
func New(cfg config.Config, logger *log.Logger) *Game {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	app := state.New()
	if err := app.SetAvatar(cfg.Avatar); err != nil {
		logger.Printf("[app] ignoring avatar config: %v", err)
	}
	app.SetIdleMode(cfg.Idle)

	sc := scene.New(cfg, app, scene.WithLogger(logger))
	g := &Game{
		scene:   sc,
		app:     app,
		painter: render.NewPainter(render.NewCamera(viewWidth, viewHeight, float64(cfg.Scale))),
		hud:     ui.NewHUD(sc, hudWidth),
		overlay: ui.NewOverlay(),
		clock:   core.NewFrameClock(time.Now),
		log:     logger,
		seed:    cfg.Seed,
	}
	audio, err := NewAudio(core.NewRNG(cfg.Seed), logger)
	if err != nil {
		logger.Printf("[app] audio disabled: %v", err)
	}
	g.audio = audio
	return g
}

// Reset rebuilds the scene with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.scene.Reset(seed)
}

// Close stops every scene timer and the ambient loops.
func (g *Game) Close() {
	g.scene.Close()
	g.audio.Close()
}

// Update handles input and advances the scene by the elapsed frame time.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyI) {
		g.log.Printf("[app] idle mode %t", g.app.ToggleIdleMode())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		_ = g.app.SetBodyType(state.NextBodyType(g.app.Avatar().BodyType))
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		next := state.AccessoryHat
		if g.app.Avatar().Accessory == state.AccessoryHat {
			next = state.AccessoryNone
		}
		_ = g.app.SetAccessory(next)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}

	g.overlay.Update()
	if !g.hud.Update(viewWidth) {
		g.handleClick()
	}

	g.scene.Step(g.clock.Tick())
	g.audio.SetAmbient(scene.AmbientFor(g.scene.RainIntensity()))
	return nil
}

func (g *Game) handleClick() {
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	id, ok := g.painter.Camera().Pick(g.scene.Transforms(), float64(mx), float64(my))
	if !ok {
		return
	}
	in, ok := g.scene.Interact(id)
	if ok && in.Sound != "" {
		g.audio.Play(in.Sound)
	}
}

// Draw renders the porch, overlay and HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	ts := g.scene.Transforms()
	g.painter.Draw(screen, ts, g.app.Avatar(), g.scene.Season().Season)
	g.overlay.Draw(screen, g.painter.Camera(), ts, g.scene.Snapshot())
	g.hud.Draw(screen, viewWidth, viewHeight)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return viewWidth + g.hud.Width(), viewHeight
}
