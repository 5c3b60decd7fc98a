package timeline

import "image"

// EventKind labels an audio event on the timeline.
type EventKind int

const (
	EventSpeech EventKind = iota
	EventKey
	EventEnter
	EventAmbient
)

func (k EventKind) String() string {
	switch k {
	case EventSpeech:
		return "speech"
	case EventKey:
		return "key"
	case EventEnter:
		return "enter"
	case EventAmbient:
		return "ambient"
	default:
		return "unknown"
	}
}

// AudioEvent schedules one sound at an absolute offset from the start
// of the video. Speech and ambient events reference a clip file; key
// and enter events carry a rotating variant counter that the mixer
// maps onto its clip pool.
type AudioEvent struct {
	OffsetMs int       `json:"offset_ms"`
	Kind     EventKind `json:"kind"`
	ClipPath string    `json:"clip_path,omitempty"`
	Variant  int       `json:"variant,omitempty"`
}

// Timeline summarizes one render: how many frames were written at what
// rate, and every scheduled sound. FrameCount is authoritative; the
// mixed audio track is sized from it, never the other way around.
type Timeline struct {
	FrameCount int          `json:"frame_count"`
	FPS        int          `json:"fps"`
	Events     []AudioEvent `json:"events"`
}

// TotalDurationMs is the video length implied by the frame count.
func (t *Timeline) TotalDurationMs() int {
	if t.FPS == 0 {
		return 0
	}
	return t.FrameCount * 1000 / t.FPS
}

// FrameSink receives frames one at a time as they are produced. The
// image passed to WriteFrame is only valid for the duration of the
// call; implementations must consume or copy it before returning.
type FrameSink interface {
	WriteFrame(frame *image.RGBA) error
}
