package video

import (
	"fmt"
	"io"
	"log"
	"os"
	"os/exec"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"codereel/config"
)

// FFmpegMuxer combines a silent video stream with a mixed audio track.
type FFmpegMuxer struct{}

// MergeAvailable reports whether the external merge tool can be invoked.
func MergeAvailable() bool {
	_, err := exec.LookPath("ffmpeg")
	return err == nil
}

// Available lets capability probes see the merge tool's presence.
func (FFmpegMuxer) Available() bool {
	return MergeAvailable()
}

// Mux writes the final container to finalPath. The video stream is copied
// without re-encoding; only the audio track is encoded. When audioPath is
// empty the video stream becomes the final output directly, and a merge
// failure degrades to video-only output instead of failing the render.
func (FFmpegMuxer) Mux(videoPath, audioPath, finalPath string) error {
	if audioPath == "" {
		return moveFile(videoPath, finalPath)
	}

	videoStream := ffmpeg.Input(videoPath)
	audioStream := ffmpeg.Input(audioPath)

	err := ffmpeg.Output([]*ffmpeg.Stream{videoStream, audioStream}, finalPath, ffmpeg.KwArgs{
		"c:v":      "copy",
		"c:a":      config.AudioCodec,
		"b:a":      config.AudioBitrate,
		"shortest": "",
	}).OverWriteOutput().Run()

	if err != nil {
		log.Printf("⚠️ Audio merge failed, keeping video-only output: %v", err)
		return moveFile(videoPath, finalPath)
	}
	return nil
}

// moveFile renames src to dst, copying across filesystems when the output
// directory is not on the same device as the temp directory.
func moveFile(src, dst string) error {
	if err := os.Rename(src, dst); err == nil {
		return nil
	}

	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open video stream: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create final output: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return fmt.Errorf("failed to copy video stream: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to finalize output: %w", err)
	}

	os.Remove(src)
	return nil
}
