// Package audio synthesizes and mixes the soundtrack: key clicks,
// the enter thunk, an optional ambient bed, and narration clips, all
// as mono 16-bit PCM so sample math stays exact and testable.
package audio

import (
	"math"
	"math/rand"
)

// Clip is a mono PCM sound at a fixed sample rate.
type Clip struct {
	Rate    int
	Samples []int16
}

// DurationMs reports the clip length in milliseconds.
func (c Clip) DurationMs() int {
	if c.Rate == 0 {
		return 0
	}
	return len(c.Samples) * 1000 / c.Rate
}

// Silence returns a clip of exactly ms milliseconds of nothing.
func Silence(rate, ms int) Clip {
	return Clip{Rate: rate, Samples: make([]int16, rate*ms/1000)}
}

// SineTone synthesizes a pure tone. amp is linear in [0, 1].
func SineTone(rate int, freq float64, ms int, amp float64) Clip {
	c := Silence(rate, ms)
	for i := range c.Samples {
		v := amp * math.Sin(2*math.Pi*freq*float64(i)/float64(rate))
		c.Samples[i] = int16(v * 32767)
	}
	return c
}

// Noise synthesizes white noise from a fixed seed, keeping every
// render of the same configuration byte-identical.
func Noise(rate, ms int, amp float64, seed int64) Clip {
	c := Silence(rate, ms)
	rng := rand.New(rand.NewSource(seed))
	for i := range c.Samples {
		v := amp * (rng.Float64()*2 - 1)
		c.Samples[i] = int16(v * 32767)
	}
	return c
}

// Gain returns a copy scaled by db decibels (negative attenuates).
func (c Clip) Gain(db float64) Clip {
	factor := math.Pow(10, db/20)
	out := Clip{Rate: c.Rate, Samples: make([]int16, len(c.Samples))}
	for i, s := range c.Samples {
		out.Samples[i] = clampSample(int32(float64(s) * factor))
	}
	return out
}

// FadeOut returns a copy with a linear ramp to zero over the last ms.
func (c Clip) FadeOut(ms int) Clip {
	out := Clip{Rate: c.Rate, Samples: append([]int16(nil), c.Samples...)}
	n := c.Rate * ms / 1000
	if n > len(out.Samples) {
		n = len(out.Samples)
	}
	start := len(out.Samples) - n
	for i := 0; i < n; i++ {
		scale := float64(n-i) / float64(n)
		out.Samples[start+i] = int16(float64(out.Samples[start+i]) * scale)
	}
	return out
}

// Overlay adds other on top of c starting at offsetMs. The base keeps
// its length: overhang past the end is dropped, matching how a sound
// landing near the end of a fixed-length track behaves.
func (c *Clip) Overlay(other Clip, offsetMs int) {
	start := c.Rate * offsetMs / 1000
	for i, s := range other.Samples {
		idx := start + i
		if idx < 0 {
			continue
		}
		if idx >= len(c.Samples) {
			break
		}
		c.Samples[idx] = clampSample(int32(c.Samples[idx]) + int32(s))
	}
}

// Tiled loops or truncates the clip to exactly totalMs.
func (c Clip) Tiled(totalMs int) Clip {
	out := Silence(c.Rate, totalMs)
	if len(c.Samples) == 0 {
		return out
	}
	for i := range out.Samples {
		out.Samples[i] = c.Samples[i%len(c.Samples)]
	}
	return out
}

// Resampled converts the clip to rate using nearest-neighbor lookup.
// Narration is transcoded to the mixer rate before it gets here, so
// this only defends against user-supplied pool or ambient files.
func (c Clip) Resampled(rate int) Clip {
	if c.Rate == rate || c.Rate == 0 {
		return Clip{Rate: rate, Samples: c.Samples}
	}
	n := int(int64(len(c.Samples)) * int64(rate) / int64(c.Rate))
	out := Clip{Rate: rate, Samples: make([]int16, n)}
	for i := range out.Samples {
		out.Samples[i] = c.Samples[int(int64(i)*int64(c.Rate)/int64(rate))]
	}
	return out
}

func clampSample(v int32) int16 {
	if v > 32767 {
		return 32767
	}
	if v < -32768 {
		return -32768
	}
	return int16(v)
}
