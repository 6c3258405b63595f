package cli

import (
	"flag"
	"fmt"
	"strings"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/config"
)

func runSettings(args []string) error {
	if len(args) == 0 {
		return runSettingsShow(nil)
	}
	switch args[0] {
	case "show":
		return runSettingsShow(args[1:])
	case "set":
		return runSettingsSet(args[1:])
	case "help", "-h", "--help":
		printSettingsUsage()
		return nil
	default:
		printSettingsUsage()
		return fmt.Errorf("unknown settings subcommand %q", args[0])
	}
}

func printSettingsUsage() {
	fmt.Println("settings show [--json]")
	fmt.Println("settings set [--api-url URL] [--video-format F] [--video-input DEV]")
	fmt.Println("             [--audio-format F] [--audio-input DEV] [--theme classic|modern]")
}

func runSettingsShow(args []string) error {
	fs := flag.NewFlagSet("settings show", flag.ContinueOnError)
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := config.DefaultPath()
	if err != nil {
		return err
	}
	settings, err := config.Load(path)
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(map[string]any{
			"config_path": path,
			"settings":    settings,
		})
	}

	fmt.Printf("config: %s\n", path)
	fmt.Printf("api_base_url: %s\n", orDefault(settings.APIBaseURL, "(default)"))
	fmt.Printf("video_format: %s\n", orDefault(settings.VideoFormat, "(platform default)"))
	fmt.Printf("video_input: %s\n", orDefault(settings.VideoInput, "(platform default)"))
	fmt.Printf("audio_format: %s\n", orDefault(settings.AudioFormat, "(platform default)"))
	fmt.Printf("audio_input: %s\n", orDefault(settings.AudioInput, "(platform default)"))
	fmt.Printf("theme: %s\n", orDefault(settings.Theme, config.DefaultTheme))
	return nil
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func runSettingsSet(args []string) error {
	fs := flag.NewFlagSet("settings set", flag.ContinueOnError)
	apiURL := fs.String("api-url", "\x00", "API base URL (empty resets to default)")
	videoFormat := fs.String("video-format", "\x00", "ffmpeg input format for the camera (v4l2, avfoundation, dshow)")
	videoInput := fs.String("video-input", "\x00", "camera device (e.g. /dev/video0)")
	audioFormat := fs.String("audio-format", "\x00", "ffmpeg input format for the microphone (alsa, avfoundation, dshow)")
	audioInput := fs.String("audio-input", "\x00", "microphone device (e.g. default)")
	themeName := fs.String("theme", "\x00", "presentation theme: classic or modern")
	jsonOut := fs.Bool("json", false, "print JSON output")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	path, err := config.DefaultPath()
	if err != nil {
		return err
	}
	settings, err := config.Load(path)
	if err != nil {
		return err
	}

	// "\x00" sentinels distinguish "not passed" from an explicit empty
	// value, which resets the field to its default.
	changed := false
	apply := func(target *string, flagValue string) {
		if flagValue == "\x00" {
			return
		}
		*target = strings.TrimSpace(flagValue)
		changed = true
	}
	apply(&settings.APIBaseURL, *apiURL)
	apply(&settings.VideoFormat, *videoFormat)
	apply(&settings.VideoInput, *videoInput)
	apply(&settings.AudioFormat, *audioFormat)
	apply(&settings.AudioInput, *audioInput)
	apply(&settings.Theme, *themeName)

	if !changed {
		printSettingsUsage()
		return fmt.Errorf("nothing to change")
	}
	if err := config.Save(path, settings); err != nil {
		return err
	}

	updated, err := config.Load(path)
	if err != nil {
		return err
	}
	if *jsonOut {
		return printJSON(map[string]any{
			"config_path": path,
			"settings":    updated,
		})
	}
	fmt.Println("settings updated")
	return nil
}
