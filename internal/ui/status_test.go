package ui

import (
	"testing"

	"porch/internal/scene"
	"porch/internal/season"
)

func TestStatusLine(t *testing.T) {
	next := 25.0
	tests := []struct {
		snap scene.Snapshot
		want string
	}{
		{
			snap: scene.Snapshot{Time: 10, Season: season.Spring, Weather: season.Rain, NextSeason: 60, Animals: make([]scene.AnimalView, 2)},
			want: "spring / rain   animals 2   idle off   next season in 50s",
		},
		{
			snap: scene.Snapshot{Time: 20, Season: season.Winter, Weather: season.Snow, NextSeason: 240, Idle: true, NextSpawn: &next},
			want: "winter / snow   animals 0   idle on, visitor in 5s   next season in 220s",
		},
		{
			snap: scene.Snapshot{Time: 70, Season: season.Summer, Weather: season.Sun, Idle: true},
			want: "summer / sun   animals 0   idle on   next season in 0s",
		},
	}
	for _, tt := range tests {
		if got := StatusLine(tt.snap); got != tt.want {
			t.Fatalf("got %q, want %q", got, tt.want)
		}
	}
}
