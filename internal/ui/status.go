package ui

import (
	"fmt"
	"math"

	"porch/internal/scene"
)

var helpLines = []string{
	"click  push swing / pet animal",
	"I      toggle idle mode",
	"B      cycle body type",
	"H      toggle hat",
	"R      reset   Q/Esc quit",
	"1 status  2 hit areas  3 help",
}

// StatusLine summarizes a snapshot in one line.
func StatusLine(snap scene.Snapshot) string {
	idle := "off"
	if snap.Idle {
		idle = "on"
		if snap.NextSpawn != nil {
			idle = fmt.Sprintf("on, visitor in %.0fs", math.Max(0, *snap.NextSpawn-snap.Time))
		}
	}
	return fmt.Sprintf("%s / %s   animals %d   idle %s   next season in %.0fs",
		snap.Season, snap.Weather, len(snap.Animals), idle, math.Max(0, snap.NextSeason-snap.Time))
}
