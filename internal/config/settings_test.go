package config

import (
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "settings.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.Theme != DefaultTheme {
		t.Fatalf("expected default theme, got %q", s.Theme)
	}
	if s.APIBaseURL != "" {
		t.Fatalf("expected empty base URL, got %q", s.APIBaseURL)
	}
}

func TestSaveLoadNormalizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	in := Settings{
		APIBaseURL: "  https://api.example.com/  ",
		VideoInput: " /dev/video2 ",
		Theme:      "MODERN",
	}
	if err := Save(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if s.APIBaseURL != "https://api.example.com" {
		t.Fatalf("expected trimmed base URL, got %q", s.APIBaseURL)
	}
	if s.VideoInput != "/dev/video2" {
		t.Fatalf("expected trimmed input, got %q", s.VideoInput)
	}
	if s.Theme != ThemeModern {
		t.Fatalf("expected modern theme, got %q", s.Theme)
	}
}

func TestUnknownThemeFallsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	if err := Save(path, Settings{Theme: "neon"}); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if s.Theme != DefaultTheme {
		t.Fatalf("expected fallback theme, got %q", s.Theme)
	}
}
