package audio

import (
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// ClipPool is a small set of key click variants rotated so rapid
// typing does not repeat one identical sample.
type ClipPool struct {
	variants []Clip
}

// Size returns how many variants the pool holds.
func (p ClipPool) Size() int {
	return len(p.variants)
}

// Variant maps an unbounded rotation counter onto the pool.
func (p ClipPool) Variant(i int) Clip {
	if len(p.variants) == 0 {
		return Clip{}
	}
	if i < 0 {
		i = -i
	}
	return p.variants[i%len(p.variants)]
}

// SynthKeyPool synthesizes four click variants: a short sine strike
// with a noise transient and a quick fade, each at a slightly
// different pitch.
func SynthKeyPool(rate int) ClipPool {
	freqs := []float64{380, 400, 420, 440}

	pool := ClipPool{}
	for i, freq := range freqs {
		click := SineTone(rate, freq, 30, 0.8)
		click.Overlay(Noise(rate, 15, 0.25, int64(i+1)), 0)
		pool.variants = append(pool.variants, click.FadeOut(10))
	}
	return pool
}

// LoadKeyPool reads WAV samples from dir, falling back to synthesized
// clicks when the directory is missing or holds no usable files.
func LoadKeyPool(dir string, rate int) ClipPool {
	if dir == "" {
		return SynthKeyPool(rate)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return SynthKeyPool(rate)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.EqualFold(filepath.Ext(entry.Name()), ".wav") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)

	pool := ClipPool{}
	for _, name := range names {
		clip, err := LoadWAV(filepath.Join(dir, name))
		if err != nil {
			log.Printf("⚠️  Skipping key sample %s: %v", name, err)
			continue
		}
		pool.variants = append(pool.variants, clip.Resampled(rate))
	}

	if len(pool.variants) == 0 {
		return SynthKeyPool(rate)
	}
	log.Printf("🎹 Loaded %d key samples from %s", len(pool.variants), dir)
	return pool
}

// EnterClip synthesizes the heavier thunk played when the command
// runs: lower pitch, longer noise tail, slower fade than a key click.
func EnterClip(rate int) Clip {
	thunk := SineTone(rate, 300, 60, 0.8)
	thunk.Overlay(Noise(rate, 30, 0.3, 99), 0)
	return thunk.FadeOut(20)
}

// AmbientPad synthesizes a two second loop of stacked low sines used
// as the background bed when no ambient track file is configured.
func AmbientPad(rate int) Clip {
	pad := SineTone(rate, 110, 2000, 0.12)
	pad.Overlay(SineTone(rate, 165, 2000, 0.08), 0)
	pad.Overlay(SineTone(rate, 220, 2000, 0.06), 0)
	return pad
}
