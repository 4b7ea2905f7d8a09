// Package sound synthesizes the porch's audio cues as 16-bit little-endian
// stereo PCM, the format ebiten's audio players consume.
package sound

import (
	"math"

	"porch/internal/core"
	"porch/internal/wildlife"
)

// SampleRate is the playback rate every buffer is generated for.
const SampleRate = 44100

const bytesPerFrame = 4

// Frames reports how many stereo frames a PCM buffer holds.
func Frames(pcm []byte) int { return len(pcm) / bytesPerFrame }

// Cue returns the one-shot clip for an animal sound. Unknown cues get a
// short click.
func Cue(s wildlife.Sound) []byte {
	switch s {
	case wildlife.SoundBird:
		return chirp()
	case wildlife.SoundCat:
		return meow()
	case wildlife.SoundSquirrel:
		return chatter()
	}
	return render(0.03, func(t float64) float64 {
		return math.Sin(2*math.Pi*2000*t) * envelope(t, 0.03)
	})
}

// RainLoop is a seamless two second loop of filtered noise.
func RainLoop(rng *core.RNG) []byte {
	const seconds = 2.0
	var lp float64
	return render(seconds, func(t float64) float64 {
		n := rng.Float64()*2 - 1
		lp += 0.08 * (n - lp)
		return lp * 0.9
	})
}

// ChimeLoop is a four second loop of two soft bell strikes.
func ChimeLoop() []byte {
	const seconds = 4.0
	return render(seconds, func(t float64) float64 {
		v := bell(t, 880)
		if t >= 1.7 {
			v += bell(t-1.7, 1174.66)
		}
		return v * 0.5
	})
}

func chirp() []byte {
	const d = 0.18
	return render(d, func(t float64) float64 {
		f := 2400 + 1800*t/d
		return math.Sin(2*math.Pi*f*t) * envelope(t, d)
	})
}

func meow() []byte {
	const d = 0.6
	return render(d, func(t float64) float64 {
		x := t / d
		f := 420 + 260*math.Sin(math.Pi*x)
		v := math.Sin(2*math.Pi*f*t) + 0.3*math.Sin(4*math.Pi*f*t)
		return 0.7 * v * envelope(t, d)
	})
}

func chatter() []byte {
	const d = 0.4
	return render(d, func(t float64) float64 {
		gate := 0.0
		if math.Mod(t, 0.08) < 0.04 {
			gate = 1
		}
		return gate * math.Sin(2*math.Pi*1500*t) * envelope(t, d)
	})
}

func bell(t, f float64) float64 {
	if t < 0 {
		return 0
	}
	return math.Exp(-3*t) * (math.Sin(2*math.Pi*f*t) + 0.4*math.Sin(2*math.Pi*f*2.76*t))
}

// envelope fades in over 5ms and out over the last 30% of d.
func envelope(t, d float64) float64 {
	const attack = 0.005
	if t < attack {
		return t / attack
	}
	release := d * 0.3
	if t > d-release {
		return math.Max(0, (d-t)/release)
	}
	return 1
}

// render samples fn over seconds and encodes it, clipping to [-1, 1].
func render(seconds float64, fn func(t float64) float64) []byte {
	n := int(seconds * SampleRate)
	buf := make([]byte, n*bytesPerFrame)
	for i := 0; i < n; i++ {
		v := fn(float64(i) / SampleRate)
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		s := int16(v * math.MaxInt16)
		base := i * bytesPerFrame
		buf[base] = byte(s)
		buf[base+1] = byte(s >> 8)
		buf[base+2] = byte(s)
		buf[base+3] = byte(s >> 8)
	}
	return buf
}
