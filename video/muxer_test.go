package video

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMuxWithoutAudioEmitsVideoDirectly(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "silent.mp4")
	finalPath := filepath.Join(dir, "final.mp4")

	payload := []byte("fake video stream")
	if err := os.WriteFile(videoPath, payload, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	var m FFmpegMuxer
	if err := m.Mux(videoPath, "", finalPath); err != nil {
		t.Fatalf("mux failed: %v", err)
	}

	got, err := os.ReadFile(finalPath)
	if err != nil {
		t.Fatalf("final output missing: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatal("final output does not match the video stream")
	}
	if _, err := os.Stat(videoPath); !os.IsNotExist(err) {
		t.Fatal("intermediate video stream was left behind")
	}
}

func TestMuxFallsBackToVideoOnMergeFailure(t *testing.T) {
	dir := t.TempDir()
	videoPath := filepath.Join(dir, "silent.mp4")
	audioPath := filepath.Join(dir, "audio.wav")
	finalPath := filepath.Join(dir, "final.mp4")

	payload := []byte("fake video stream")
	if err := os.WriteFile(videoPath, payload, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	// Not a playable stream, so the merge fails whether or not the
	// merge tool is installed.
	if err := os.WriteFile(audioPath, []byte("not audio"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	var m FFmpegMuxer
	if err := m.Mux(videoPath, audioPath, finalPath); err != nil {
		t.Fatalf("mux should degrade to video-only, got: %v", err)
	}

	got, err := os.ReadFile(finalPath)
	if err != nil {
		t.Fatalf("final output missing: %v", err)
	}
	if string(got) != string(payload) {
		t.Fatal("final output does not match the video stream")
	}
}

func TestMoveFileKeepsSourceOnFailure(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	if err := os.WriteFile(src, []byte("abc"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	// A destination inside a missing directory forces the rename to fail
	// and the copy path to report the real error.
	dst := filepath.Join(dir, "missing", "dst.bin")
	if err := moveFile(src, dst); err == nil {
		t.Fatal("expected an error for an unwritable destination")
	}

	if _, err := os.Stat(src); err != nil {
		t.Fatalf("source should survive a failed move: %v", err)
	}
}

func TestNewStreamEncoderRejectsBadGeometry(t *testing.T) {
	cases := []struct {
		name      string
		w, h, fps int
	}{
		{"zero width", 0, 1920, 30},
		{"zero height", 1080, 0, 30},
		{"zero fps", 1080, 1920, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewStreamEncoder("out.mp4", tc.w, tc.h, tc.fps); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}
