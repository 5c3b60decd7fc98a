package timeline

import (
	"errors"
	"image"
	"math"
	"testing"

	"codereel/compose"
	"codereel/themes"
)

type countingSink struct {
	frames int
	last   []byte
}

func (s *countingSink) WriteFrame(frame *image.RGBA) error {
	s.frames++
	s.last = append(s.last[:0], frame.Pix...)
	return nil
}

type failingSink struct{}

func (failingSink) WriteFrame(*image.RGBA) error {
	return errors.New("disk full")
}

func testCompositor(t *testing.T) *compose.Compositor {
	t.Helper()

	c, err := compose.NewCompositor(compose.DefaultGeometry(), themes.VisualByID("onedark"), themes.TerminalByID("classic"), themes.CursorByID("block"), "index.js")
	if err != nil {
		t.Fatalf("failed to build compositor: %v", err)
	}
	return c
}

func testConfig() Config {
	return Config{
		FPS:                  30,
		CodeFramesPerChar:    2,
		CommandFramesPerChar: 2,
		QuestionHoldFrames:   15,
		NewlinePauseFrames:   5,
		SlideFrames:          20,
		IdleFrames:           45,
		BlinkPeriod:          15,
		BlinkOn:              8,
		ResultHoldFrames:     90,
		MinKeyGapMs:          60,
		FallbackMsPerChar:    60,
		FallbackMinMs:        1500,
		SlideFrom:            compose.SlideFromBottom,
	}
}

// questionOnlyConfig zeroes every phase after question typing so frame
// counts isolate the narration sync rule.
func questionOnlyConfig() Config {
	cfg := testConfig()
	cfg.CodeFramesPerChar = 0
	cfg.CommandFramesPerChar = 0
	cfg.QuestionHoldFrames = 0
	cfg.NewlinePauseFrames = 0
	cfg.SlideFrames = 0
	cfg.IdleFrames = 0
	cfg.ResultHoldFrames = 0
	return cfg
}

func TestQuestionTypingMatchesSpeechDuration(t *testing.T) {
	comp := testCompositor(t)

	cases := []struct {
		question string
		speechMs int
	}{
		{"Hi", 900},
		{"What does this print?", 2000},
		{"Why does appending to a slice sometimes allocate?", 3333},
		{"x", 10000},
	}

	for _, tc := range cases {
		sink := &countingSink{}
		b := NewBuilder(questionOnlyConfig(), comp, sink)

		tl, err := b.Run(Input{
			Question:         tc.question,
			SpeechClipPath:   "speech.wav",
			SpeechDurationMs: tc.speechMs,
		})
		if err != nil {
			t.Fatalf("run failed: %v", err)
		}

		want := int(math.Round(float64(tc.speechMs) / 1000 * 30))
		if tl.FrameCount != want {
			t.Fatalf("question %q at %dms: expected %d frames, got %d", tc.question, tc.speechMs, want, tl.FrameCount)
		}
		if sink.frames != tl.FrameCount {
			t.Fatalf("timeline reports %d frames but sink saw %d", tl.FrameCount, sink.frames)
		}
	}
}

func TestFallbackPacingWhenSpeechMissing(t *testing.T) {
	comp := testCompositor(t)

	sink := &countingSink{}
	b := NewBuilder(questionOnlyConfig(), comp, sink)

	question := "Short one"
	tl, err := b.Run(Input{Question: question})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	// Nine characters at 60ms/char is under the 1500ms floor.
	want := int(math.Round(1.5 * 30))
	if tl.FrameCount != want {
		t.Fatalf("expected floor pacing of %d frames, got %d", want, tl.FrameCount)
	}

	for _, ev := range tl.Events {
		if ev.Kind == EventSpeech {
			t.Fatal("speech event scheduled without a clip")
		}
	}
}

func TestFrameAccountingAcrossPhases(t *testing.T) {
	comp := testCompositor(t)
	sink := &countingSink{}
	b := NewBuilder(testConfig(), comp, sink)

	question := "What does this print?" // 21 chars -> 60 frames at 2000ms
	code := "console.log(1+1)"          // 16 chars * 2
	command := "node index.js"          // 13 chars * 2

	tl, err := b.Run(Input{
		Question:         question,
		Code:             code,
		Output:           "2",
		Command:          command,
		SpeechClipPath:   "speech.wav",
		SpeechDurationMs: 2000,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	want := 60 + 15 + 16*2 + 20 + 45 + 13*2 + 90
	if tl.FrameCount != want {
		t.Fatalf("expected %d frames, got %d", want, tl.FrameCount)
	}

	if got := tl.TotalDurationMs(); got != want*1000/30 {
		t.Fatalf("expected %dms total, got %d", want*1000/30, got)
	}
}

func TestKeyEventsThrottled(t *testing.T) {
	comp := testCompositor(t)
	sink := &countingSink{}

	// A long question against a short narration forces several
	// characters per frame, the flood the throttle exists for.
	b := NewBuilder(questionOnlyConfig(), comp, sink)
	tl, err := b.Run(Input{
		Question:         "abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz",
		SpeechClipPath:   "speech.wav",
		SpeechDurationMs: 1000,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	lastKey := -1 << 30
	keys := 0
	for _, ev := range tl.Events {
		if ev.Kind != EventKey {
			continue
		}
		if gap := ev.OffsetMs - lastKey; gap < 60 {
			t.Fatalf("key events %dms apart, minimum is 60", gap)
		}
		lastKey = ev.OffsetMs
		keys++
	}

	if keys == 0 {
		t.Fatal("expected at least one key event")
	}
	if keys >= 52 {
		t.Fatalf("throttle kept all %d key events", keys)
	}
}

func TestEventSequence(t *testing.T) {
	comp := testCompositor(t)
	sink := &countingSink{}
	b := NewBuilder(testConfig(), comp, sink)

	tl, err := b.Run(Input{
		Question:         "What does this print?",
		Code:             "print(2)",
		Output:           "2",
		Command:          "python3 main.py",
		SpeechClipPath:   "speech.wav",
		SpeechDurationMs: 1500,
	})
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	speech, enter := 0, 0
	lastOffset := 0
	for _, ev := range tl.Events {
		if ev.OffsetMs < lastOffset {
			t.Fatalf("event offsets regressed: %d after %d", ev.OffsetMs, lastOffset)
		}
		lastOffset = ev.OffsetMs

		switch ev.Kind {
		case EventSpeech:
			speech++
			if ev.OffsetMs != 0 {
				t.Fatalf("speech should start at 0, got %d", ev.OffsetMs)
			}
		case EventEnter:
			enter++
		}
	}

	if speech != 1 {
		t.Fatalf("expected one speech event, got %d", speech)
	}
	if enter != 1 {
		t.Fatalf("expected one enter event, got %d", enter)
	}
	if last := tl.Events[len(tl.Events)-1]; last.Kind != EventEnter {
		t.Fatalf("expected enter to be the final event, got %v", last.Kind)
	}
}

func TestFrameWriteFailureAborts(t *testing.T) {
	comp := testCompositor(t)
	b := NewBuilder(testConfig(), comp, failingSink{})

	if _, err := b.Run(Input{Question: "Will this fail?"}); err == nil {
		t.Fatal("expected error when the sink rejects frames")
	}
}
