package audio

import (
	"fmt"
	"log"

	"codereel/config"
	"codereel/timeline"
)

// MixerConfig carries the gains and optional sample sources for one
// render's soundtrack.
type MixerConfig struct {
	SampleRate    int
	KeyGainDB     float64
	EnterGainDB   float64
	AmbientGainDB float64

	// AmbientTrack optionally names a loop file for the background
	// bed; empty means the synthesized pad.
	AmbientTrack string

	// PoolDir optionally names a directory of key click samples.
	PoolDir string
}

// Mixer resolves timeline events to clips and superposes them onto a
// silent base track.
type Mixer struct {
	cfg   MixerConfig
	pool  ClipPool
	enter Clip
}

// NewMixer loads the key pool and enter clip once; both are read-only
// afterwards, so one mixer can serve sequential renders.
func NewMixer(cfg MixerConfig) *Mixer {
	if cfg.SampleRate <= 0 {
		cfg.SampleRate = config.SampleRate
	}
	return &Mixer{
		cfg:   cfg,
		pool:  LoadKeyPool(cfg.PoolDir, cfg.SampleRate),
		enter: EnterClip(cfg.SampleRate),
	}
}

// Mix renders the complete soundtrack: exactly totalMs of audio with
// every resolvable event added at its offset. Events whose clip fails
// to resolve are skipped with a warning; they never abort the mix.
// Accumulation is 32-bit with a single final clamp, so overlapping
// events superpose exactly regardless of their order in the list.
func (m *Mixer) Mix(totalMs int, events []timeline.AudioEvent) Clip {
	rate := m.cfg.SampleRate
	acc := make([]int32, rate*totalMs/1000)

	for _, ev := range events {
		clip, err := m.resolve(ev, totalMs)
		if err != nil {
			log.Printf("⚠️  Skipping %s event at %dms: %v", ev.Kind, ev.OffsetMs, err)
			continue
		}
		addAt(acc, clip.Samples, rate*ev.OffsetMs/1000)
	}

	out := Clip{Rate: rate, Samples: make([]int16, len(acc))}
	for i, v := range acc {
		out.Samples[i] = clampSample(v)
	}
	return out
}

func (m *Mixer) resolve(ev timeline.AudioEvent, totalMs int) (Clip, error) {
	switch ev.Kind {
	case timeline.EventSpeech:
		clip, err := LoadWAV(ev.ClipPath)
		if err != nil {
			return Clip{}, err
		}
		return clip.Resampled(m.cfg.SampleRate), nil
	case timeline.EventKey:
		return m.pool.Variant(ev.Variant).Gain(m.cfg.KeyGainDB), nil
	case timeline.EventEnter:
		return m.enter.Gain(m.cfg.EnterGainDB), nil
	case timeline.EventAmbient:
		return m.ambient(totalMs), nil
	default:
		return Clip{}, fmt.Errorf("unknown event kind %d", ev.Kind)
	}
}

// ambient builds the full-length background bed at its configured low
// gain, preferring the user's loop file over the synthesized pad.
func (m *Mixer) ambient(totalMs int) Clip {
	if m.cfg.AmbientTrack != "" {
		clip, err := LoadWAV(m.cfg.AmbientTrack)
		if err == nil {
			return clip.Resampled(m.cfg.SampleRate).Tiled(totalMs).Gain(m.cfg.AmbientGainDB)
		}
		log.Printf("⚠️  Ambient track %s unreadable, using synthesized pad: %v", m.cfg.AmbientTrack, err)
	}
	return AmbientPad(m.cfg.SampleRate).Tiled(totalMs).Gain(m.cfg.AmbientGainDB)
}

func addAt(acc []int32, samples []int16, start int) {
	for i, s := range samples {
		idx := start + i
		if idx < 0 {
			continue
		}
		if idx >= len(acc) {
			break
		}
		acc[idx] += int32(s)
	}
}
