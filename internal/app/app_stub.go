//go:build !ebiten

package app

import (
	"errors"
	"log"

	"porch/internal/config"
)

// ErrHeadless is returned by the placeholder Game in builds without the
// ebiten tag.
var ErrHeadless = errors.New("app: the viewer requires building with the 'ebiten' tag")

// Game is a placeholder that satisfies the API expected by the GUI build.
type Game struct{}

// New panics to indicate that the ebiten build tag is required for GUI support.
func New(config.Config, *log.Logger) *Game {
	panic(ErrHeadless.Error())
}

// Reset is a no-op placeholder.
func (g *Game) Reset(int64) {}

// Close is a no-op placeholder.
func (g *Game) Close() {}

// Update always reports that the GUI build tag is missing.
func (g *Game) Update() error { return ErrHeadless }

// Draw is a no-op placeholder to satisfy the interface shape.
func (g *Game) Draw(any) {}

// Layout returns zeros in the headless build.
func (g *Game) Layout(int, int) (int, int) { return 0, 0 }
