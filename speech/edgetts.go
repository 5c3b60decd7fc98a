// Package speech synthesizes narration audio for the question text.
package speech

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	ffmpeg "github.com/u2takey/ffmpeg-go"

	"codereel/audio"
	"codereel/config"
	"codereel/themes"
)

// ErrUnavailable reports that no speech backend can run on this host.
// Callers recover by substituting the deterministic duration estimate.
var ErrUnavailable = errors.New("speech backend unavailable")

// EdgeTTS synthesizes narration with the edge-tts CLI and converts the
// result to a mono WAV clip the mixer can overlay.
type EdgeTTS struct {
	TempDir string
	Retries int
}

func NewEdgeTTS(tempDir string) *EdgeTTS {
	if tempDir == "" {
		tempDir = config.TempDir
	}
	return &EdgeTTS{TempDir: tempDir, Retries: 3}
}

// Available reports whether the edge-tts CLI is installed.
func (e *EdgeTTS) Available() bool {
	_, err := exec.LookPath("edge-tts")
	return err == nil
}

// Synthesize renders text to a WAV clip at the mixer sample rate and
// returns the clip path and its measured duration in milliseconds. The
// caller owns deleting the returned file.
func (e *EdgeTTS) Synthesize(ctx context.Context, text, voiceID string) (string, int, error) {
	if !e.Available() {
		return "", 0, ErrUnavailable
	}

	voice := themes.VoiceByID(voiceID)
	stem := filepath.Join(e.TempDir, fmt.Sprintf("speech_%s", uuid.NewString()))
	mp3Path := stem + ".mp3"
	wavPath := stem + ".wav"

	if err := e.runEdgeTTS(ctx, text, voice, mp3Path); err != nil {
		return "", 0, err
	}
	defer os.Remove(mp3Path)

	err := ffmpeg.Input(mp3Path).
		Output(wavPath, ffmpeg.KwArgs{
			"ar": config.SampleRate,
			"ac": 1,
		}).
		OverWriteOutput().
		Run()
	if err != nil {
		return "", 0, fmt.Errorf("failed to convert speech clip: %w", err)
	}

	clip, err := audio.LoadWAV(wavPath)
	if err != nil {
		os.Remove(wavPath)
		return "", 0, fmt.Errorf("failed to read back speech clip: %w", err)
	}

	return wavPath, clip.DurationMs(), nil
}

// runEdgeTTS invokes the CLI with retries. The free endpoint drops
// connections often enough that a single attempt is not reliable.
func (e *EdgeTTS) runEdgeTTS(ctx context.Context, text, voiceID, outPath string) error {
	retries := e.Retries
	if retries < 1 {
		retries = 1
	}

	var lastErr error
	for attempt := 1; attempt <= retries; attempt++ {
		var stderr bytes.Buffer
		cmd := exec.CommandContext(ctx,
			"edge-tts",
			"--voice", voiceID,
			"--text", text,
			"--write-media", outPath,
		)
		cmd.Stderr = &stderr

		if err := cmd.Run(); err != nil {
			lastErr = fmt.Errorf("edge-tts failed: %v (%s)", err, bytes.TrimSpace(stderr.Bytes()))
			if ctx.Err() != nil {
				return lastErr
			}
			log.Printf("⚠️ Speech attempt %d/%d failed: %v", attempt, retries, err)
			time.Sleep(time.Duration(attempt) * time.Second)
			continue
		}
		return nil
	}
	return lastErr
}
