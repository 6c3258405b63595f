package capture

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/record"
)

// Handle is the exclusive claim on the camera+microphone pair. At most
// one Handle is live at a time; every exit path releases it exactly
// once through Release.
type Handle struct {
	opts        Options
	mimeType    string
	constrained bool

	mu        sync.Mutex
	recording *Recording
	released  bool
}

// Acquire probes the configured devices and returns the capture
// handle. Permission or device errors surface as a "camera access
// failed" error with the ffmpeg detail attached; the caller may
// acquire again at any time.
func Acquire(ctx context.Context, opts Options) (*Handle, error) {
	if err := CheckDependencies(); err != nil {
		return nil, err
	}
	norm := opts.normalized()
	if strings.TrimSpace(norm.VideoInput) == "" {
		return nil, fmt.Errorf("camera access failed: no video input configured (run `interview-cli settings`)")
	}

	constrained := true
	if err := runProbe(ctx, norm, true); err != nil {
		// Target constraints are best-effort: retry with whatever the
		// device grants before reporting failure.
		if retryErr := runProbe(ctx, norm, false); retryErr != nil {
			return nil, fmt.Errorf("camera access failed: %w", retryErr)
		}
		constrained = false
	}

	mimeType := record.PreferredMIMEType
	if !encoderSupported(h264Encoder) {
		mimeType = record.FallbackMIMEType
	}

	return &Handle{
		opts:        norm,
		mimeType:    mimeType,
		constrained: constrained,
	}, nil
}

func runProbe(ctx context.Context, opts Options, constrained bool) error {
	probeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	cmd := exec.CommandContext(probeCtx, "ffmpeg", probeArgs(opts, constrained)...)
	var stderr limitedBuffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			return err
		}
		return fmt.Errorf("%w: %s", err, detail)
	}
	return nil
}

// MIMEType is the recording mime type chosen at acquisition.
func (h *Handle) MIMEType() string {
	return h.mimeType
}

// Constrained reports whether the 1280x720 @ 24fps targets were
// accepted by the device.
func (h *Handle) Constrained() bool {
	return h.constrained
}

// Released reports whether the handle has been released.
func (h *Handle) Released() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.released
}

// Release stops any active recording process and gives the devices
// back. Safe to call repeatedly and from any exit path.
func (h *Handle) Release() {
	h.mu.Lock()
	rec := h.recording
	h.recording = nil
	h.released = true
	h.mu.Unlock()

	if rec != nil {
		_ = rec.Stop()
	}
}

// StartRecording launches the encoding process. Chunks arrive on the
// returned Recording's channel in encode order, roughly once per
// second.
func (h *Handle) StartRecording(ctx context.Context) (*Recording, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.released {
		return nil, fmt.Errorf("capture handle already released")
	}
	if h.recording != nil {
		return nil, fmt.Errorf("a recording is already in progress")
	}

	useH264 := h.mimeType == record.PreferredMIMEType
	cmd := exec.CommandContext(ctx, "ffmpeg", captureArgs(h.opts, h.constrained, useH264)...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("setup stdin pipe: %w", err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("setup stdout pipe: %w", err)
	}
	rec := &Recording{
		cmd:    cmd,
		stdin:  stdin,
		// Sized so a full-length capture can never block the pump while
		// the consumer drains the tail after a stop request.
		chunks: make(chan []byte, 4096),
		done:   make(chan struct{}),
	}
	cmd.Stderr = &rec.stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	go rec.pump(stdout)
	h.recording = rec
	return rec, nil
}

// Recording is one live ffmpeg encode. The chunk channel closes when
// the process ends and the output pipe drains.
type Recording struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	chunks chan []byte
	stderr limitedBuffer

	stopOnce sync.Once
	stopErr  error
	done     chan struct{}
}

// Chunks delivers encoded segments in arrival order.
func (r *Recording) Chunks() <-chan []byte {
	return r.chunks
}

func (r *Recording) pump(stdout io.Reader) {
	defer close(r.chunks)
	defer close(r.done)
	buf := make([]byte, 256*1024)
	for {
		n, err := stdout.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			r.chunks <- chunk
		}
		if err != nil {
			return
		}
	}
}

// Stop asks ffmpeg to finish, waits for the tail to flush, and reaps
// the process. Idempotent; the first result is sticky.
func (r *Recording) Stop() error {
	r.stopOnce.Do(func() {
		// "q" triggers ffmpeg's graceful shutdown so the final
		// fragment reaches the pipe before EOF.
		_, _ = io.WriteString(r.stdin, "q")
		_ = r.stdin.Close()

		select {
		case <-r.done:
		case <-time.After(5 * time.Second):
			if r.cmd.Process != nil {
				_ = r.cmd.Process.Kill()
			}
			<-r.done
		}

		if err := r.cmd.Wait(); err != nil {
			detail := strings.TrimSpace(r.stderr.String())
			if detail != "" {
				r.stopErr = fmt.Errorf("ffmpeg capture failed: %w: %s", err, detail)
				return
			}
			r.stopErr = fmt.Errorf("ffmpeg capture failed: %w", err)
		}
	})
	return r.stopErr
}

// limitedBuffer keeps the head of ffmpeg's diagnostics for error
// reporting without letting a chatty process grow without bound.
type limitedBuffer struct {
	mu  sync.Mutex
	buf strings.Builder
}

func (b *limitedBuffer) Write(p []byte) (int, error) {
	const maxKeep = 8192
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.buf.Len() < maxKeep {
		remain := maxKeep - b.buf.Len()
		if len(p) > remain {
			b.buf.Write(p[:remain])
		} else {
			b.buf.Write(p)
		}
	}
	return len(p), nil
}

func (b *limitedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
