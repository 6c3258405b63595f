package api

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/store"
)

// The bearer token lives in a file under the user config dir, the CLI
// counterpart of the browser cookie.
const tokenFileName = "token.json"

type tokenState struct {
	AccessToken string `json:"access_token"`
}

func TokenPath() (string, error) {
	dir, err := store.ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, tokenFileName), nil
}

// SaveToken persists the bearer token atomically.
func SaveToken(token string) error {
	path, err := TokenPath()
	if err != nil {
		return err
	}
	return store.WriteJSON(path, tokenState{AccessToken: token})
}

// LoadToken returns the stored bearer token, or "" when absent.
func LoadToken() string {
	path, err := TokenPath()
	if err != nil {
		return ""
	}
	var state tokenState
	if err := store.ReadJSON(path, &state); err != nil {
		return ""
	}
	return strings.TrimSpace(state.AccessToken)
}

// ClearToken removes the stored token. Missing files are fine: logout
// and expiry both clear unconditionally.
func ClearToken() error {
	path, err := TokenPath()
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
