package render

import (
	"image/color"
	"math"

	"porch/internal/season"
)

type seasonPalette struct {
	sky    color.RGBA
	ground color.RGBA
}

var palettes = [...]seasonPalette{
	season.Spring: {sky: color.RGBA{R: 120, G: 140, B: 170, A: 255}, ground: color.RGBA{R: 70, G: 120, B: 60, A: 255}},
	season.Summer: {sky: color.RGBA{R: 140, G: 200, B: 245, A: 255}, ground: color.RGBA{R: 110, G: 160, B: 70, A: 255}},
	season.Autumn: {sky: color.RGBA{R: 200, G: 170, B: 130, A: 255}, ground: color.RGBA{R: 150, G: 100, B: 50, A: 255}},
	season.Winter: {sky: color.RGBA{R: 200, G: 210, B: 225, A: 255}, ground: color.RGBA{R: 235, G: 240, B: 245, A: 255}},
}

var porchColor = color.RGBA{R: 120, G: 90, B: 60, A: 255}

// SkyColor is the background for a season.
func SkyColor(s season.Season) color.RGBA {
	if int(s) < len(palettes) {
		return palettes[s].sky
	}
	return palettes[season.Spring].sky
}

// GroundColor is the lawn colour for a season.
func GroundColor(s season.Season) color.RGBA {
	if int(s) < len(palettes) {
		return palettes[s].ground
	}
	return palettes[season.Spring].ground
}

// Shade scales the RGB channels of c by f, keeping alpha.
func Shade(c color.RGBA, f float64) color.RGBA {
	return color.RGBA{R: scaleComponent(c.R, f), G: scaleComponent(c.G, f), B: scaleComponent(c.B, f), A: c.A}
}

// Lerp blends a toward b by t in [0, 1].
func Lerp(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	return color.RGBA{
		R: lerpComponent(a.R, b.R, t),
		G: lerpComponent(a.G, b.G, t),
		B: lerpComponent(a.B, b.B, t),
		A: lerpComponent(a.A, b.A, t),
	}
}

func lerpComponent(a, b uint8, t float64) uint8 {
	return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
}

func scaleComponent(v uint8, f float64) uint8 {
	s := math.Round(float64(v) * f)
	if s < 0 {
		return 0
	}
	if s > 255 {
		return 255
	}
	return uint8(s)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
