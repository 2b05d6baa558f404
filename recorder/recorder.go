// Package recorder pipes rendered frames to an ffmpeg process that encodes them
// into a video file.
package recorder

import (
	"fmt"
	"io"
	"log"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// numBuffers is how many frames may be queued for the encoder before Capture
// blocks.
const numBuffers = 3

// FrameSource reads the current back buffer as bottom-up RGBA rows.
type FrameSource interface {
	ReadPixels(width, height int, dst []byte)
}

// Recorder is the producer side of the encoder pipeline. Capture runs on the
// render thread; a writer goroutine feeds the ffmpeg pipe.
type Recorder struct {
	source FrameSource
	width  int
	height int

	frames chan []byte
	free   chan []byte
	done   chan error

	captured   int64
	warnedSize bool
	closed     bool
}

func inputArgs(width, height, fps int) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"format":  "rawvideo",
		"pix_fmt": "rgba",
		"s":       fmt.Sprintf("%dx%d", width, height),
		"r":       fps,
	}
}

func outputArgs(path string) ffmpeg.KwArgs {
	// GL rows come bottom-up
	args := ffmpeg.KwArgs{"vf": "vflip"}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".webm":
		args["c:v"] = "libvpx-vp9"
		args["pix_fmt"] = "yuv420p"
	case ".gif":
	default:
		args["c:v"] = "libx264"
		args["pix_fmt"] = "yuv420p"
		args["preset"] = "veryfast"
	}
	return args
}

// New starts ffmpeg writing to path. Frames must be width x height; the size is
// fixed for the life of the recording.
func New(path string, width, height, fps int, ffmpegPath string, source FrameSource) (*Recorder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid recording size %dx%d", width, height)
	}
	if fps <= 0 {
		return nil, fmt.Errorf("invalid recording rate %d", fps)
	}

	pipeReader, pipeWriter := io.Pipe()
	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs(width, height, fps)).
		Output(path, outputArgs(path)).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()
	if ffmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(ffmpegPath)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		if err != nil {
			err = fmt.Errorf("ffmpeg: %w", err)
		}
		// unblock the writer if ffmpeg died early
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()

	log.Printf("Recording %dx%d at %d fps to %s", width, height, fps, path)
	return newRecorder(pipeWriter, errc, width, height, source), nil
}

func newRecorder(w io.WriteCloser, encoderDone <-chan error, width, height int, source FrameSource) *Recorder {
	r := &Recorder{
		source: source,
		width:  width,
		height: height,
		frames: make(chan []byte, numBuffers),
		free:   make(chan []byte, numBuffers+1),
		done:   make(chan error, 1),
	}
	go r.runWriter(w, encoderDone)
	return r
}

// runWriter is the consumer. After a write error it keeps draining so Capture
// never blocks on a dead encoder.
func (r *Recorder) runWriter(w io.WriteCloser, encoderDone <-chan error) {
	var writeErr error
	for buf := range r.frames {
		if writeErr == nil {
			if _, err := w.Write(buf); err != nil {
				writeErr = fmt.Errorf("failed to write frame to encoder: %w", err)
				log.Printf("Recording stopped: %v", err)
			}
		}
		select {
		case r.free <- buf:
		default:
		}
	}
	w.Close()

	encErr := <-encoderDone
	if encErr != nil {
		r.done <- encErr
		return
	}
	r.done <- writeErr
}

// Capture reads the current frame and queues it for encoding. Frames whose size
// differs from the recording size are skipped.
func (r *Recorder) Capture(width, height int) {
	if r.closed {
		return
	}
	if width != r.width || height != r.height {
		if !r.warnedSize {
			log.Printf("Recorder: skipping %dx%d frames, recording is %dx%d", width, height, r.width, r.height)
			r.warnedSize = true
		}
		return
	}

	var buf []byte
	select {
	case buf = <-r.free:
	default:
		buf = make([]byte, r.width*r.height*4)
	}
	r.source.ReadPixels(r.width, r.height, buf)
	r.frames <- buf
	r.captured++
}

// Frames is the number of frames queued so far.
func (r *Recorder) Frames() int64 { return r.captured }

// Close flushes the queue, closes the pipe and waits for the encoder to exit.
// Safe to call more than once; later calls return nil.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	close(r.frames)
	err := <-r.done
	log.Printf("Recorder finished after %d frames", r.captured)
	return err
}
