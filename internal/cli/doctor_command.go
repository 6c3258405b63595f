package cli

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/api"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/capture"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/config"
)

type doctorReport struct {
	FFmpegFound bool   `json:"ffmpeg_found"`
	FFmpegPath  string `json:"ffmpeg_path,omitempty"`
	VideoFormat string `json:"video_format"`
	VideoInput  string `json:"video_input"`
	AudioFormat string `json:"audio_format"`
	AudioInput  string `json:"audio_input"`
	CaptureOK   bool   `json:"capture_ok"`
	CaptureErr  string `json:"capture_error,omitempty"`
	Constrained bool   `json:"capture_at_720p"`
	MIMEType    string `json:"mime_type,omitempty"`
	LoggedIn    bool   `json:"logged_in"`
}

func runDoctor(args []string) error {
	fs := flag.NewFlagSet("doctor", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print the report as JSON")
	skipProbe := fs.Bool("skip-probe", false, "skip the live camera/microphone probe")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	settingsPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return err
	}
	opts := captureOptionsFromSettings(settings)

	deps := capture.DependencyStatus()
	report := doctorReport{
		FFmpegFound: deps.FFmpegFound,
		FFmpegPath:  deps.FFmpegPath,
		VideoFormat: opts.VideoFormat,
		VideoInput:  opts.VideoInput,
		AudioFormat: opts.AudioFormat,
		AudioInput:  opts.AudioInput,
		LoggedIn:    api.LoadToken() != "",
	}

	if deps.FFmpegFound && !*skipProbe {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		handle, probeErr := capture.Acquire(ctx, opts)
		cancel()
		if probeErr != nil {
			report.CaptureErr = probeErr.Error()
		} else {
			report.CaptureOK = true
			report.Constrained = handle.Constrained()
			report.MIMEType = handle.MIMEType()
			handle.Release()
		}
	}

	if *asJSON {
		return printJSON(report)
	}

	if report.FFmpegFound {
		fmt.Println("ffmpeg: OK (" + report.FFmpegPath + ")")
	} else {
		fmt.Println("ffmpeg: MISSING - install ffmpeg and make sure it is on PATH")
	}
	fmt.Printf("video device: %s (%s)\n", report.VideoInput, report.VideoFormat)
	fmt.Printf("audio device: %s (%s)\n", report.AudioInput, report.AudioFormat)
	switch {
	case *skipProbe || !report.FFmpegFound:
		fmt.Println("capture probe: skipped")
	case report.CaptureOK:
		if report.Constrained {
			fmt.Println("capture probe: OK (720p)")
		} else {
			fmt.Println("capture probe: OK (device defaults; 720p not granted)")
		}
		fmt.Println("recording format:", report.MIMEType)
	default:
		fmt.Println("capture probe: FAILED -", report.CaptureErr)
	}
	if report.LoggedIn {
		fmt.Println("session: token stored")
	} else {
		fmt.Println("session: not logged in")
	}
	return nil
}
