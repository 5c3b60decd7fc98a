// Package video encodes rendered frames into a silent video stream and
// muxes the mixed audio track into the final container.
package video

import (
	"fmt"
	"image"
	"io"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	"codereel/config"
)

// StreamEncoder pipes raw RGBA frames into an ffmpeg process that encodes
// them as a silent H.264 stream. Frames are written one at a time so a long
// render never holds more than one raster frame in memory.
type StreamEncoder struct {
	path   string
	width  int
	height int
	pw     *io.PipeWriter
	done   chan error
	failed error
	closed bool
}

// NewStreamEncoder starts an encoder writing to path. The caller must call
// Close to finalize the stream, even after a write failure.
func NewStreamEncoder(path string, width, height, fps int) (*StreamEncoder, error) {
	if width <= 0 || height <= 0 || fps <= 0 {
		return nil, fmt.Errorf("invalid encoder geometry %dx%d at %d fps", width, height, fps)
	}

	pr, pw := io.Pipe()
	enc := &StreamEncoder{
		path:   path,
		width:  width,
		height: height,
		pw:     pw,
		done:   make(chan error, 1),
	}

	go func() {
		err := ffmpeg.Input("pipe:", ffmpeg.KwArgs{
			"format":    "rawvideo",
			"pix_fmt":   "rgba",
			"s":         fmt.Sprintf("%dx%d", width, height),
			"framerate": fps,
		}).
			Output(path, ffmpeg.KwArgs{
				"c:v":     config.VideoCodec,
				"pix_fmt": config.PixelFormat,
				"preset":  config.VideoPreset,
				"r":       fps,
			}).
			OverWriteOutput().
			WithInput(pr).
			Run()

		// Unblock any writer stuck on a dead pipe before reporting.
		pr.CloseWithError(err)
		enc.done <- err
	}()

	return enc, nil
}

// Path returns the output path the encoder writes to.
func (e *StreamEncoder) Path() string {
	return e.path
}

// WriteFrame sends one frame to the encoder. The frame buffer may be reused
// by the caller after this returns.
func (e *StreamEncoder) WriteFrame(frame *image.RGBA) error {
	if e.failed != nil {
		return e.failed
	}
	if e.closed {
		return fmt.Errorf("encoder already closed")
	}

	b := frame.Bounds()
	if b.Dx() != e.width || b.Dy() != e.height {
		return fmt.Errorf("frame is %dx%d, encoder expects %dx%d", b.Dx(), b.Dy(), e.width, e.height)
	}

	if frame.Stride == 4*e.width {
		if _, err := e.pw.Write(frame.Pix); err != nil {
			return e.fail(err)
		}
		return nil
	}
	for y := 0; y < e.height; y++ {
		row := frame.Pix[y*frame.Stride : y*frame.Stride+4*e.width]
		if _, err := e.pw.Write(row); err != nil {
			return e.fail(err)
		}
	}
	return nil
}

// Close signals end of stream and waits for the encoder to finish.
func (e *StreamEncoder) Close() error {
	if e.closed {
		return e.failed
	}
	e.closed = true

	e.pw.Close()
	if err := <-e.done; err != nil {
		e.failed = fmt.Errorf("ffmpeg encoder failed: %w", err)
	}
	return e.failed
}

// fail records the first write failure. A broken pipe usually means the
// encoder process died, so prefer its exit error over the raw write error.
func (e *StreamEncoder) fail(writeErr error) error {
	e.closed = true
	e.pw.Close()
	if runErr := <-e.done; runErr != nil {
		e.failed = fmt.Errorf("ffmpeg encoder failed: %w", runErr)
	} else {
		e.failed = fmt.Errorf("failed to write frame data: %w", writeErr)
	}
	return e.failed
}
