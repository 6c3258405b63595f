package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/store"
)

const (
	ThemeClassic = "classic"
	ThemeModern  = "modern"

	DefaultTheme = ThemeClassic

	settingsFileName = "settings.json"
)

// Settings are the durable client preferences: where the backend
// lives, which devices ffmpeg should open, and which interview page
// presentation to use.
type Settings struct {
	APIBaseURL  string `json:"api_base_url,omitempty"`
	VideoFormat string `json:"video_format,omitempty"`
	VideoInput  string `json:"video_input,omitempty"`
	AudioFormat string `json:"audio_format,omitempty"`
	AudioInput  string `json:"audio_input,omitempty"`
	Theme       string `json:"theme,omitempty"`
}

func DefaultPath() (string, error) {
	dir, err := store.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, settingsFileName), nil
}

func normalizeTheme(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case ThemeModern:
		return ThemeModern
	default:
		return DefaultTheme
	}
}

func normalize(raw Settings) Settings {
	norm := Settings{
		APIBaseURL:  strings.TrimSuffix(strings.TrimSpace(raw.APIBaseURL), "/"),
		VideoFormat: strings.TrimSpace(raw.VideoFormat),
		VideoInput:  strings.TrimSpace(raw.VideoInput),
		AudioFormat: strings.TrimSpace(raw.AudioFormat),
		AudioInput:  strings.TrimSpace(raw.AudioInput),
		Theme:       normalizeTheme(raw.Theme),
	}
	return norm
}

// Load reads settings from path, returning normalized defaults when no
// file exists yet.
func Load(path string) (Settings, error) {
	var raw Settings
	if err := store.ReadJSON(path, &raw); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return normalize(Settings{}), nil
		}
		return Settings{}, err
	}
	return normalize(raw), nil
}

// Save writes normalized settings atomically.
func Save(path string, s Settings) error {
	return store.WriteJSON(path, normalize(s))
}
