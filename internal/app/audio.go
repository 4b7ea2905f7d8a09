//go:build ebiten

package app

import (
	"bytes"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"

	"porch/internal/core"
	"porch/internal/scene"
	"porch/internal/sound"
	"porch/internal/wildlife"
)

// Audio plays the animal cues and keeps the two ambient loops running.
// A nil *Audio is silent.
type Audio struct {
	ctx    *audio.Context
	cues   map[wildlife.Sound][]byte
	rain   *audio.Player
	chimes *audio.Player
	log    *log.Logger
}

// NewAudio synthesizes every clip and starts the ambient loops muted.
func NewAudio(rng *core.RNG, logger *log.Logger) (*Audio, error) {
	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sound.SampleRate)
	}
	a := &Audio{
		ctx:  ctx,
		cues: make(map[wildlife.Sound][]byte),
		log:  logger,
	}
	for _, cue := range []wildlife.Sound{wildlife.SoundBird, wildlife.SoundCat, wildlife.SoundSquirrel} {
		a.cues[cue] = sound.Cue(cue)
	}

	var err error
	if a.rain, err = a.loop(sound.RainLoop(rng)); err != nil {
		return nil, fmt.Errorf("rain loop: %w", err)
	}
	if a.chimes, err = a.loop(sound.ChimeLoop()); err != nil {
		return nil, fmt.Errorf("chime loop: %w", err)
	}
	return a, nil
}

func (a *Audio) loop(pcm []byte) (*audio.Player, error) {
	l := audio.NewInfiniteLoop(bytes.NewReader(pcm), int64(len(pcm)))
	p, err := a.ctx.NewPlayer(l)
	if err != nil {
		return nil, err
	}
	p.SetVolume(0)
	p.Play()
	return p, nil
}

// Play starts a one-shot cue.
func (a *Audio) Play(cue wildlife.Sound) {
	if a == nil {
		return
	}
	pcm, ok := a.cues[cue]
	if !ok {
		pcm = sound.Cue(cue)
		a.cues[cue] = pcm
	}
	a.ctx.NewPlayerFromBytes(pcm).Play()
	a.log.Printf("[audio] play %s", cue)
}

// SetAmbient applies the loop volumes.
func (a *Audio) SetAmbient(amb scene.Ambient) {
	if a == nil {
		return
	}
	a.rain.SetVolume(amb.Rain)
	a.chimes.SetVolume(amb.Chimes)
}

// Close stops the loops.
func (a *Audio) Close() {
	if a == nil {
		return
	}
	for _, p := range []*audio.Player{a.rain, a.chimes} {
		if err := p.Close(); err != nil {
			a.log.Printf("[audio] close loop: %v", err)
		}
	}
}
