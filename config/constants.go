package config

import "time"

// Canvas Constants
const (
	// VideoWidth is the output video width (9:16 vertical format)
	VideoWidth = 1080

	// VideoHeight is the output video height (9:16 vertical format)
	VideoHeight = 1920

	// FPS is the frame rate every timeline calculation assumes
	FPS = 30
)

// Encoding Constants
const (
	// VideoCodec is the video encoding codec
	VideoCodec = "libx264"

	// AudioCodec is the audio encoding codec
	AudioCodec = "aac"

	// AudioBitrate is the audio quality bitrate
	AudioBitrate = "192k"

	// VideoPreset is the ffmpeg encoding speed preset
	VideoPreset = "fast"

	// PixelFormat keeps the output playable on mobile players
	PixelFormat = "yuv420p"
)

// Layout Constants
const (
	// MarginX is the left/right page margin in pixels
	MarginX = 60

	// HeaderY is the vertical center of the window chrome row
	HeaderY = 100

	// QuestionY is where the question block starts
	QuestionY = 200

	// CodeY is where the code block starts
	CodeY = 500

	// QuestionLineHeight is the vertical advance per question line
	QuestionLineHeight = 80

	// CodeLineHeight is the vertical advance per code line
	CodeLineHeight = 70

	// GutterWidth indents code text past the line-number gutter
	GutterWidth = 60

	// DotSize is the diameter of each window chrome dot
	DotSize = 25

	// DotSpacing is the horizontal distance between chrome dots
	DotSpacing = 60
)

// Terminal Panel Constants
const (
	// TerminalHeight is the height of the terminal panel in pixels
	TerminalHeight = 600

	// TerminalHeaderHeight is the title bar inside the terminal panel
	TerminalHeaderHeight = 60

	// TerminalPadding insets the prompt from the panel edges
	TerminalPadding = 40

	// TerminalPromptOffset is the distance from panel top to the prompt row
	TerminalPromptOffset = 100

	// TerminalResultOffset is the distance from the prompt row to the output
	TerminalResultOffset = 60

	// TerminalResultLineHeight is the vertical advance per output line
	TerminalResultLineHeight = 50
)

// Pacing Constants
const (
	// CodeFramesPerChar is how many frames each typed code character holds
	CodeFramesPerChar = 2

	// CommandFramesPerChar is how many frames each typed terminal character holds
	CommandFramesPerChar = 2

	// QuestionHoldFrames keeps the finished question on screen before code starts
	QuestionHoldFrames = 15

	// NewlinePauseFrames is the beat inserted after each completed code line
	NewlinePauseFrames = 5

	// TerminalSlideFrames is how long the panel slide-in animation runs
	TerminalSlideFrames = 20

	// TerminalIdleFrames shows the blinking prompt before the command types
	TerminalIdleFrames = 45

	// CursorBlinkPeriod is the blink cycle length in frames
	CursorBlinkPeriod = 15

	// CursorBlinkOn is how many frames of each cycle show the cursor
	CursorBlinkOn = 8

	// ResultHoldFrames keeps the final output on screen
	ResultHoldFrames = 90
)

// Audio Constants
const (
	// SampleRate is the PCM sample rate for every generated clip
	SampleRate = 44100

	// MinKeyGapMs drops key clicks that would land closer than this
	MinKeyGapMs = 60

	// KeyClickGainDB attenuates the synthesized key click
	KeyClickGainDB = -5.0

	// EnterGainDB attenuates the synthesized enter thunk
	EnterGainDB = -3.0

	// AmbientGainDB keeps the background bed far under the voice
	AmbientGainDB = -18.0

	// FallbackMsPerChar paces question typing when no speech clip exists
	FallbackMsPerChar = 60

	// FallbackMinMs is the floor for the estimated narration length
	FallbackMinMs = 1500
)

// Directory Constants
const (
	// OutputDir is the directory for finished videos
	OutputDir = "output"

	// TempDir is the directory for intermediate render artifacts
	TempDir = "/tmp"

	// SoundsDir holds optional key-click sample pools
	SoundsDir = "sounds"
)

// YouTube Constants
const (
	// YouTubeCategoryID for Science & Technology
	YouTubeCategoryID = "28"

	// YouTubePrivacyStatus sets video visibility
	YouTubePrivacyStatus = "public"
)

// Schedule Constants
const (
	// ActiveHourStart is the first hour of the day uploads may run
	ActiveHourStart = 8

	// ActiveHourEnd is the hour uploads stop (exclusive)
	ActiveHourEnd = 22

	// MinUploadInterval is the required gap between consecutive uploads
	MinUploadInterval = 3 * time.Hour

	// DefaultDailyUploadLimit caps uploads per calendar day
	DefaultDailyUploadLimit = 5
)
