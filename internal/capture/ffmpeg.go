package capture

import (
	"bytes"
	"fmt"
	"os/exec"
	"runtime"
	"strings"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/record"
)

// h264Encoder is the preferred encoder; when the local ffmpeg build
// lacks it, capture falls back to the container default and the
// artifact is tagged with the generic mp4 mime type.
const h264Encoder = "libx264"

type DependencyReport struct {
	FFmpegFound bool   `json:"ffmpeg_found"`
	FFmpegPath  string `json:"ffmpeg_path,omitempty"`
}

func DependencyStatus() DependencyReport {
	report := DependencyReport{}
	if path, err := exec.LookPath("ffmpeg"); err == nil {
		report.FFmpegFound = true
		report.FFmpegPath = path
	}
	return report
}

func CheckDependencies() error {
	if !DependencyStatus().FFmpegFound {
		return fmt.Errorf("missing dependency: ffmpeg is not installed or not on PATH")
	}
	return nil
}

// Options describes the camera+microphone inputs and encoding targets
// for one capture. Empty input fields take platform defaults.
type Options struct {
	VideoFormat string
	VideoInput  string
	AudioFormat string
	AudioInput  string

	Width     int
	Height    int
	FrameRate int

	VideoBitrate int
	AudioBitrate int
}

// DefaultOptions returns the standard encoding targets plus the platform
// default device inputs.
func DefaultOptions() Options {
	opts := Options{
		Width:        record.TargetWidth,
		Height:       record.TargetHeight,
		FrameRate:    record.TargetFrameRate,
		VideoBitrate: record.VideoBitsPerSecond,
		AudioBitrate: record.AudioBitsPerSecond,
	}
	opts.VideoFormat, opts.VideoInput, opts.AudioFormat, opts.AudioInput = defaultInputs(runtime.GOOS)
	return opts
}

func defaultInputs(goos string) (videoFormat, videoInput, audioFormat, audioInput string) {
	switch goos {
	case "darwin":
		// avfoundation multiplexes video:audio on one input.
		return "avfoundation", "0:0", "", ""
	case "windows":
		// dshow needs explicit device names; candidates set them via
		// `interview-cli settings`.
		return "dshow", "", "dshow", ""
	default:
		return "v4l2", "/dev/video0", "alsa", "default"
	}
}

func (o Options) normalized() Options {
	norm := o
	df, dvi, af, dai := defaultInputs(runtime.GOOS)
	if strings.TrimSpace(norm.VideoFormat) == "" {
		norm.VideoFormat = df
	}
	if strings.TrimSpace(norm.VideoInput) == "" {
		norm.VideoInput = dvi
	}
	if strings.TrimSpace(norm.AudioFormat) == "" {
		norm.AudioFormat = af
	}
	if strings.TrimSpace(norm.AudioInput) == "" {
		norm.AudioInput = dai
	}
	if norm.Width <= 0 || norm.Height <= 0 {
		norm.Width = record.TargetWidth
		norm.Height = record.TargetHeight
	}
	if norm.FrameRate <= 0 {
		norm.FrameRate = record.TargetFrameRate
	}
	if norm.VideoBitrate <= 0 {
		norm.VideoBitrate = record.VideoBitsPerSecond
	}
	if norm.AudioBitrate <= 0 {
		norm.AudioBitrate = record.AudioBitsPerSecond
	}
	return norm
}

// inputArgs builds the device half of the command line. constrained
// controls whether the target video size/framerate are requested;
// acquisition retries without them when a device refuses the targets.
func inputArgs(opts Options, constrained bool) []string {
	args := []string{"-f", opts.VideoFormat}
	if constrained {
		args = append(args,
			"-video_size", fmt.Sprintf("%dx%d", opts.Width, opts.Height),
			"-framerate", fmt.Sprintf("%d", opts.FrameRate),
		)
	}
	args = append(args, "-i", opts.VideoInput)
	if strings.TrimSpace(opts.AudioFormat) != "" {
		args = append(args, "-f", opts.AudioFormat, "-i", opts.AudioInput)
	}
	return args
}

// probeArgs opens the devices for a fraction of a second and discards
// the output. Success means permission and device availability.
func probeArgs(opts Options, constrained bool) []string {
	args := []string{"-hide_banner", "-loglevel", "error"}
	args = append(args, inputArgs(opts, constrained)...)
	args = append(args, "-t", "0.2", "-f", "null", "-")
	return args
}

// captureArgs builds the recording command: encode to fragmented mp4
// on stdout with roughly 1-second fragments so the chunk cadence
// matches the elapsed-time tick.
func captureArgs(opts Options, constrained bool, useH264 bool) []string {
	// stdin stays open: graceful stop is the "q" quit key, after which
	// ffmpeg flushes the final fragment.
	args := []string{"-hide_banner", "-loglevel", "error"}
	args = append(args, inputArgs(opts, constrained)...)
	if useH264 {
		args = append(args, "-c:v", h264Encoder, "-preset", "veryfast", "-tune", "zerolatency")
	}
	args = append(args,
		"-b:v", fmt.Sprintf("%d", opts.VideoBitrate),
		"-c:a", "aac",
		"-b:a", fmt.Sprintf("%d", opts.AudioBitrate),
		"-f", "mp4",
		"-movflags", "frag_keyframe+empty_moov+default_base_moof",
		"-frag_duration", "1000000",
		"pipe:1",
	)
	return args
}

// encoderSupported asks the local ffmpeg build whether it carries the
// named encoder.
func encoderSupported(name string) bool {
	cmd := exec.Command("ffmpeg", "-hide_banner", "-encoders")
	var stdout bytes.Buffer
	cmd.Stdout = &stdout
	if err := cmd.Run(); err != nil {
		return false
	}
	return parseEncoderList(stdout.String(), name)
}

func parseEncoderList(listing, name string) bool {
	for _, line := range strings.Split(listing, "\n") {
		fields := strings.Fields(line)
		// Encoder rows look like: " V....D libx264   H.264 ...".
		if len(fields) >= 2 && fields[1] == name {
			return true
		}
	}
	return false
}
