package render

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"codereel/audio"
	"codereel/compose"
	"codereel/config"
	"codereel/speech"
	"codereel/timeline"
	"codereel/types"
)

// FrameEncoder receives the streamed frame sequence and finalizes the
// silent video stream on Close.
type FrameEncoder interface {
	timeline.FrameSink
	Close() error
}

// EncoderFactory opens a frame encoder writing to path.
type EncoderFactory func(path string, width, height, fps int) (FrameEncoder, error)

// Muxer combines the silent video stream with the mixed audio track.
// An empty audio path means the video stream is the final output.
type Muxer interface {
	Mux(videoPath, audioPath, finalPath string) error
}

// Synthesizer produces a narration clip and its measured duration.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) (clipPath string, durationMs int, err error)
}

// AudioMixer assembles the full audio track from timeline events.
type AudioMixer interface {
	Mix(totalMs int, events []timeline.AudioEvent) audio.Clip
}

// Capabilities reports which optional subsystems are live. Degraded
// renders still return a playable file; callers that care inspect this.
type Capabilities struct {
	AudioEnabled    bool `json:"audio_enabled"`
	SpeechAvailable bool `json:"speech_available"`
	MergeAvailable  bool `json:"merge_available"`
}

// Config carries the per-process render settings. Pacing constants come
// from the config package; Lightweight shrinks them for fast iteration.
type Config struct {
	Width  int
	Height int
	FPS    int

	OutputDir string
	TempDir   string

	// AmbientTrack enables the background bed: a loop file path, or
	// "synth" for the built-in pad. Empty disables the bed.
	AmbientTrack string

	Voice       string
	Audio       bool
	Lightweight bool
}

// ConfigFromSettings maps process settings onto a render config.
func ConfigFromSettings(s config.Settings) Config {
	return Config{
		Width:        config.VideoWidth,
		Height:       config.VideoHeight,
		FPS:          config.FPS,
		OutputDir:    s.OutputDir,
		TempDir:      config.TempDir,
		AmbientTrack: s.AmbientTrack,
		Voice:        s.Voice,
		Audio:        true,
		Lightweight:  s.Lightweight,
	}
}

// Pipeline runs renders start to finish. Collaborators are injected so
// hosts can swap the encoder, muxer or speech backend.
type Pipeline struct {
	cfg        Config
	newEncoder EncoderFactory
	muxer      Muxer
	synth      Synthesizer
	mixer      AudioMixer
	caps       Capabilities
}

func NewPipeline(cfg Config, newEncoder EncoderFactory, muxer Muxer, synth Synthesizer, mixer AudioMixer) *Pipeline {
	if cfg.FPS <= 0 {
		cfg.FPS = config.FPS
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width = config.VideoWidth
		cfg.Height = config.VideoHeight
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = config.OutputDir
	}
	if cfg.TempDir == "" {
		cfg.TempDir = config.TempDir
	}

	p := &Pipeline{
		cfg:        cfg,
		newEncoder: newEncoder,
		muxer:      muxer,
		synth:      synth,
		mixer:      mixer,
	}
	p.caps = Capabilities{
		AudioEnabled:    cfg.Audio && mixer != nil,
		SpeechAvailable: probeAvailable(synth),
		MergeAvailable:  probeAvailable(muxer),
	}
	return p
}

// probeAvailable asks a collaborator whether its external tool exists.
// Collaborators without an Available method count as available.
func probeAvailable(v any) bool {
	if v == nil {
		return false
	}
	if a, ok := v.(interface{ Available() bool }); ok {
		return a.Available()
	}
	return true
}

// Capabilities returns the subsystem availability snapshot.
func (p *Pipeline) Capabilities() Capabilities {
	return p.caps
}

// Render produces the final media file for one request and returns its
// path. Optional subsystems failing never abort the render; only a
// failure to produce the video stream itself does.
func (p *Pipeline) Render(ctx context.Context, req types.GenerationRequest, stem string) (string, error) {
	if !req.Valid() {
		return "", fmt.Errorf("request needs both a question and code")
	}
	if stem == "" {
		stem = "reel_" + uuid.NewString()[:8]
	}

	if err := os.MkdirAll(p.cfg.OutputDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	silentPath := filepath.Join(p.cfg.TempDir, stem+"_silent.mp4")
	audioPath := filepath.Join(p.cfg.TempDir, stem+"_audio.wav")
	finalPath := filepath.Join(p.cfg.OutputDir, stem+".mp4")

	temps := []string{silentPath}
	defer func() {
		for _, f := range temps {
			os.Remove(f)
		}
	}()

	style := ResolveStyle(req, p.cfg.Voice)
	log.Printf("🎬 Rendering %q as %s (%s theme)", stem, style.Language.Display, style.Visual.ID)

	speechPath, speechMs := p.synthesizeNarration(ctx, req.Question, style.Voice)
	if speechPath != "" {
		temps = append(temps, speechPath)
	}

	comp, err := compose.NewCompositor(compose.Geometry{
		Width:           p.cfg.Width,
		Height:          p.cfg.Height,
		TerminalHeight:  config.TerminalHeight,
		TerminalPadding: config.TerminalPadding,
	}, style.Visual, style.Terminal, style.Cursor, style.Language.Filename)
	if err != nil {
		return "", fmt.Errorf("failed to prepare compositor: %w", err)
	}

	enc, err := p.newEncoder(silentPath, p.cfg.Width, p.cfg.Height, p.cfg.FPS)
	if err != nil {
		return "", fmt.Errorf("failed to open video encoder: %w", err)
	}

	builder := timeline.NewBuilder(p.timelineConfig(style.SlideFrom), comp, enc)
	tl, err := builder.Run(timeline.Input{
		Question:         req.Question,
		Code:             req.Code,
		Output:           req.ExpectedOutput,
		Command:          style.Language.Command,
		SpeechClipPath:   speechPath,
		SpeechDurationMs: speechMs,
		OutputIsError:    OutputLooksLikeError(req.ExpectedOutput),
	})
	if err != nil {
		enc.Close()
		return "", fmt.Errorf("frame rendering failed: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("video encoding failed: %w", err)
	}

	mixedPath := ""
	if p.caps.AudioEnabled {
		events := tl.Events
		if p.cfg.AmbientTrack != "" {
			events = append(events, timeline.AudioEvent{OffsetMs: 0, Kind: timeline.EventAmbient})
		}
		track := p.mixer.Mix(tl.TotalDurationMs(), events)
		if err := audio.SaveWAV(audioPath, track); err != nil {
			log.Printf("⚠️ Failed to export audio track, continuing video-only: %v", err)
		} else {
			mixedPath = audioPath
			temps = append(temps, audioPath)
		}
	}

	if err := p.muxer.Mux(silentPath, mixedPath, finalPath); err != nil {
		return "", fmt.Errorf("failed to produce final output: %w", err)
	}

	log.Printf("✅ Render complete: %s (%d frames, %.1fs)", finalPath, tl.FrameCount, float64(tl.TotalDurationMs())/1000)
	return finalPath, nil
}

// synthesizeNarration returns the speech clip path and duration, or
// zero values when synthesis is disabled or failed. Failure here only
// changes pacing, never the outcome of the render.
func (p *Pipeline) synthesizeNarration(ctx context.Context, text, voice string) (string, int) {
	if !p.caps.AudioEnabled || p.synth == nil {
		return "", 0
	}

	clipPath, ms, err := p.synth.Synthesize(ctx, text, voice)
	if err != nil {
		if errors.Is(err, speech.ErrUnavailable) {
			log.Printf("⚠️ Speech backend unavailable, using estimated pacing")
		} else {
			log.Printf("⚠️ Speech synthesis failed, using estimated pacing: %v", err)
		}
		return "", 0
	}
	return clipPath, ms
}

// timelineConfig assembles pacing from the package defaults, halving
// hold and per-character budgets in lightweight mode.
func (p *Pipeline) timelineConfig(slide compose.SlideDirection) timeline.Config {
	cfg := timeline.Config{
		FPS:                  p.cfg.FPS,
		CodeFramesPerChar:    config.CodeFramesPerChar,
		CommandFramesPerChar: config.CommandFramesPerChar,
		QuestionHoldFrames:   config.QuestionHoldFrames,
		NewlinePauseFrames:   config.NewlinePauseFrames,
		SlideFrames:          config.TerminalSlideFrames,
		IdleFrames:           config.TerminalIdleFrames,
		BlinkPeriod:          config.CursorBlinkPeriod,
		BlinkOn:              config.CursorBlinkOn,
		ResultHoldFrames:     config.ResultHoldFrames,
		MinKeyGapMs:          config.MinKeyGapMs,
		FallbackMsPerChar:    config.FallbackMsPerChar,
		FallbackMinMs:        config.FallbackMinMs,
		SlideFrom:            slide,
	}

	if p.cfg.Lightweight {
		cfg.CodeFramesPerChar = 1
		cfg.CommandFramesPerChar = 1
		cfg.QuestionHoldFrames = halve(cfg.QuestionHoldFrames)
		cfg.SlideFrames = halve(cfg.SlideFrames)
		cfg.IdleFrames = halve(cfg.IdleFrames)
		cfg.ResultHoldFrames = halve(cfg.ResultHoldFrames)
		cfg.FallbackMsPerChar = halve(cfg.FallbackMsPerChar)
	}
	return cfg
}

func halve(n int) int {
	if n <= 1 {
		return n
	}
	return n / 2
}

// OutputLooksLikeError decides whether the expected output should be
// shown in the error color. There is no exit status to consult, the
// output is precomputed text, so this is a surface heuristic.
func OutputLooksLikeError(out string) bool {
	trimmed := strings.TrimSpace(out)
	if strings.HasPrefix(trimmed, "Error") || strings.HasPrefix(trimmed, "error:") {
		return true
	}
	for _, marker := range []string{"Traceback (most recent call last)", "panic:", "Exception"} {
		if strings.Contains(out, marker) {
			return true
		}
	}
	return false
}
