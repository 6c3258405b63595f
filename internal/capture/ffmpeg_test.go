package capture

import (
	"strings"
	"testing"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/record"
)

func TestDefaultInputsPerPlatform(t *testing.T) {
	vf, vi, af, ai := defaultInputs("linux")
	if vf != "v4l2" || vi != "/dev/video0" || af != "alsa" || ai != "default" {
		t.Fatalf("unexpected linux defaults: %s %s %s %s", vf, vi, af, ai)
	}

	vf, vi, _, _ = defaultInputs("darwin")
	if vf != "avfoundation" || vi != "0:0" {
		t.Fatalf("unexpected darwin defaults: %s %s", vf, vi)
	}

	_, vi, _, _ = defaultInputs("windows")
	if vi != "" {
		t.Fatalf("windows should require explicit devices, got %q", vi)
	}
}

func TestCaptureArgsCarryEncodingTargets(t *testing.T) {
	opts := Options{
		VideoFormat: "v4l2", VideoInput: "/dev/video0",
		AudioFormat: "alsa", AudioInput: "default",
	}.normalized()

	joined := strings.Join(captureArgs(opts, true, true), " ")

	for _, want := range []string{
		"-video_size 1280x720",
		"-framerate 24",
		"-c:v libx264",
		"-b:v 1500000",
		"-b:a 128000",
		"-c:a aac",
		"-f mp4",
		"-frag_duration 1000000",
		"pipe:1",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("capture args missing %q: %s", want, joined)
		}
	}
}

func TestCaptureArgsFallbackDropsH264(t *testing.T) {
	opts := DefaultOptions()
	joined := strings.Join(captureArgs(opts, true, false), " ")
	if strings.Contains(joined, "libx264") {
		t.Fatalf("fallback args should not request libx264: %s", joined)
	}
	if !strings.Contains(joined, "-f mp4") {
		t.Fatalf("fallback args should still target mp4: %s", joined)
	}
}

func TestCaptureArgsUnconstrainedOmitsTargets(t *testing.T) {
	opts := DefaultOptions()
	joined := strings.Join(captureArgs(opts, false, true), " ")
	if strings.Contains(joined, "-video_size") || strings.Contains(joined, "-framerate") {
		t.Fatalf("unconstrained args should omit size/rate: %s", joined)
	}
}

func TestProbeArgsAreShortAndDiscarding(t *testing.T) {
	opts := DefaultOptions()
	joined := strings.Join(probeArgs(opts, true), " ")
	if !strings.Contains(joined, "-t 0.2") || !strings.Contains(joined, "-f null -") {
		t.Fatalf("unexpected probe args: %s", joined)
	}
}

func TestNormalizedFillsDefaults(t *testing.T) {
	norm := Options{}.normalized()
	if norm.Width != record.TargetWidth || norm.Height != record.TargetHeight {
		t.Fatalf("unexpected size defaults: %dx%d", norm.Width, norm.Height)
	}
	if norm.FrameRate != record.TargetFrameRate {
		t.Fatalf("unexpected framerate default: %d", norm.FrameRate)
	}
	if norm.VideoBitrate != record.VideoBitsPerSecond || norm.AudioBitrate != record.AudioBitsPerSecond {
		t.Fatalf("unexpected bitrate defaults: %d/%d", norm.VideoBitrate, norm.AudioBitrate)
	}
}

func TestParseEncoderList(t *testing.T) {
	listing := `Encoders:
 V..... = Video
 ------
 V....D mpeg4                MPEG-4 part 2
 V..X.D libx264              H.264 / AVC / MPEG-4 AVC
 A....D aac                  AAC (Advanced Audio Coding)
`
	if !parseEncoderList(listing, "libx264") {
		t.Fatal("expected libx264 to be found")
	}
	if parseEncoderList(listing, "libx265") {
		t.Fatal("libx265 should not be found")
	}
}
