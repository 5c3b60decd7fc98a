// Package timeline walks a generation request through its six phases,
// streaming frames to the video encoder while collecting the audio
// events each keystroke and narration produces. Frames are never
// buffered: a long request can reach tens of thousands of frames.
package timeline

import (
	"fmt"
	"image"
	"math"

	"codereel/compose"
)

// Config is the resolved pacing for one render. The render package
// derives it from defaults, environment and the lightweight flag.
type Config struct {
	FPS int

	CodeFramesPerChar    int
	CommandFramesPerChar int
	QuestionHoldFrames   int
	NewlinePauseFrames   int
	SlideFrames          int
	IdleFrames           int
	BlinkPeriod          int
	BlinkOn              int
	ResultHoldFrames     int

	MinKeyGapMs       int
	FallbackMsPerChar int
	FallbackMinMs     int

	SlideFrom compose.SlideDirection
}

// Input is what the builder animates. SpeechDurationMs below or equal
// to zero means synthesis failed and the fallback estimate paces the
// question instead.
type Input struct {
	Question string
	Code     string
	Output   string
	Command  string

	SpeechClipPath   string
	SpeechDurationMs int
	OutputIsError    bool
}

// Builder runs the phase state machine for a single render. It is
// single use: create one per render.
type Builder struct {
	cfg  Config
	comp *compose.Compositor
	sink FrameSink

	frames    int
	events    []AudioEvent
	lastKeyMs int
	keySeq    int
}

// NewBuilder wires a builder to its compositor and frame sink.
func NewBuilder(cfg Config, comp *compose.Compositor, sink FrameSink) *Builder {
	return &Builder{
		cfg:       cfg,
		comp:      comp,
		sink:      sink,
		lastKeyMs: -cfg.MinKeyGapMs,
	}
}

// Run executes all phases in order and returns the finished timeline.
// Any frame write failure aborts immediately: without a complete video
// stream there is nothing to salvage.
func (b *Builder) Run(in Input) (*Timeline, error) {
	st := compose.State{
		Phase:      compose.PhaseQuestion,
		ShowCursor: true,
	}

	if err := b.typeQuestion(&st, in); err != nil {
		return nil, err
	}
	if err := b.typeCode(&st, in); err != nil {
		return nil, err
	}
	if err := b.slideTerminal(&st); err != nil {
		return nil, err
	}
	if err := b.idleTerminal(&st); err != nil {
		return nil, err
	}
	if err := b.typeCommand(&st, in); err != nil {
		return nil, err
	}
	if err := b.showResult(&st, in); err != nil {
		return nil, err
	}

	return &Timeline{
		FrameCount: b.frames,
		FPS:        b.cfg.FPS,
		Events:     b.events,
	}, nil
}

// typeQuestion reveals the question one character at a time, pacing
// the reveal so it ends together with the narration. The total frame
// budget is round(speech_ms / 1000 * fps), split as evenly as possible
// across characters with the remainder assigned to the earliest ones.
func (b *Builder) typeQuestion(st *compose.State, in Input) error {
	lines := b.comp.WrapQuestion(in.Question)
	chars := 0
	for _, line := range lines {
		chars += len([]rune(line))
	}

	speechMs := in.SpeechDurationMs
	if in.SpeechClipPath == "" || speechMs <= 0 {
		speechMs = b.fallbackSpeechMs(chars)
	}
	totalFrames := int(math.Round(float64(speechMs) / 1000 * float64(b.cfg.FPS)))

	if in.SpeechClipPath != "" {
		b.events = append(b.events, AudioEvent{OffsetMs: 0, Kind: EventSpeech, ClipPath: in.SpeechClipPath})
	}

	if chars == 0 {
		// Nothing to type; hold an empty screen for the narration.
		return b.writeFrames(b.comp.Render(*st), totalFrames)
	}

	base := totalFrames / chars
	remainder := totalFrames - base*chars

	typed := 0
	st.QuestionLines = st.QuestionLines[:0]
	for _, line := range lines {
		st.QuestionLines = append(st.QuestionLines, "")
		row := len(st.QuestionLines) - 1
		for _, r := range line {
			b.emitKey(r)

			st.QuestionLines[row] += string(r)
			hold := base
			if typed < remainder {
				hold = base + 1
			}
			typed++

			if hold > 0 {
				if err := b.writeFrames(b.comp.Render(*st), hold); err != nil {
					return err
				}
			}
		}
	}

	return b.writeFrames(b.comp.Render(*st), b.cfg.QuestionHoldFrames)
}

// typeCode reveals the wrapped code lines. Indentation is pre-filled
// when a line appears, only its content is typed, and a short pause
// separates consecutive lines.
func (b *Builder) typeCode(st *compose.State, in Input) error {
	lines := b.comp.WrapCode(in.Code)
	st.Phase = compose.PhaseCode

	for i, line := range lines {
		st.CodeLines = append(st.CodeLines, compose.CodeLine{
			Number: line.Number,
			Indent: line.Indent,
			Cont:   line.Cont,
		})
		row := len(st.CodeLines) - 1

		for _, r := range line.Text {
			b.emitKey(r)

			st.CodeLines[row].Text += string(r)
			if err := b.writeFrames(b.comp.Render(*st), b.cfg.CodeFramesPerChar); err != nil {
				return err
			}
		}

		if i < len(lines)-1 {
			if err := b.writeFrames(b.comp.Render(*st), b.cfg.NewlinePauseFrames); err != nil {
				return err
			}
		}
	}

	return nil
}

// slideTerminal animates the panel into place. Progress hits exactly
// 1.0 on the final frame so the panel seats flush.
func (b *Builder) slideTerminal(st *compose.State) error {
	st.Phase = compose.PhaseTerminal
	st.ShowCursor = false
	st.Terminal = &compose.TerminalState{From: b.cfg.SlideFrom}

	for i := 0; i < b.cfg.SlideFrames; i++ {
		st.Terminal.SlideProgress = float64(i+1) / float64(b.cfg.SlideFrames)
		if err := b.writeFrames(b.comp.Render(*st), 1); err != nil {
			return err
		}
	}
	return nil
}

// idleTerminal blinks the empty prompt before the command types.
func (b *Builder) idleTerminal(st *compose.State) error {
	st.Terminal.SlideProgress = 1
	st.Terminal.ShowPrompt = true

	for i := 0; i < b.cfg.IdleFrames; i++ {
		st.Terminal.CursorOn = i%b.cfg.BlinkPeriod < b.cfg.BlinkOn
		if err := b.writeFrames(b.comp.Render(*st), 1); err != nil {
			return err
		}
	}
	return nil
}

// typeCommand types the shell command and presses enter once.
func (b *Builder) typeCommand(st *compose.State, in Input) error {
	st.Terminal.CursorOn = true

	for _, r := range in.Command {
		b.emitKey(r)

		st.Terminal.Command += string(r)
		if err := b.writeFrames(b.comp.Render(*st), b.cfg.CommandFramesPerChar); err != nil {
			return err
		}
	}

	b.events = append(b.events, AudioEvent{OffsetMs: b.nowMs(), Kind: EventEnter})
	return nil
}

// showResult holds the final frame with the program output.
func (b *Builder) showResult(st *compose.State, in Input) error {
	st.Terminal.CursorOn = false
	st.Terminal.Output = b.comp.WrapOutput(in.Output)
	st.Terminal.IsError = in.OutputIsError

	return b.writeFrames(b.comp.Render(*st), b.cfg.ResultHoldFrames)
}

// emitKey schedules a key click for a typed character at the current
// frame time. Whitespace is silent, and clicks closer together than
// the configured minimum gap are dropped so multi-frame bursts do not
// flood the mix.
func (b *Builder) emitKey(r rune) {
	if r == ' ' || r == '\t' {
		return
	}

	now := b.nowMs()
	if now-b.lastKeyMs < b.cfg.MinKeyGapMs {
		return
	}

	b.lastKeyMs = now
	b.events = append(b.events, AudioEvent{OffsetMs: now, Kind: EventKey, Variant: b.keySeq})
	b.keySeq++
}

// writeFrames pushes the same rendered frame count times.
func (b *Builder) writeFrames(frame *image.RGBA, count int) error {
	for i := 0; i < count; i++ {
		if err := b.sink.WriteFrame(frame); err != nil {
			return fmt.Errorf("failed to write frame %d: %w", b.frames, err)
		}
		b.frames++
	}
	return nil
}

func (b *Builder) nowMs() int {
	return b.frames * 1000 / b.cfg.FPS
}

// fallbackSpeechMs estimates narration length when synthesis failed.
func (b *Builder) fallbackSpeechMs(chars int) int {
	est := chars * b.cfg.FallbackMsPerChar
	if est < b.cfg.FallbackMinMs {
		return b.cfg.FallbackMinMs
	}
	return est
}
