package cli

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/api"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/config"
)

func runLogout(args []string) error {
	fs := flag.NewFlagSet("logout", flag.ContinueOnError)
	apiURL := fs.String("api-url", "", "override the API base URL")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	token := api.LoadToken()
	if token == "" {
		fmt.Println("Not logged in.")
		return nil
	}

	settingsPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	settings, err := config.Load(settingsPath)
	if err != nil {
		return err
	}
	baseURL := settings.APIBaseURL
	if strings.TrimSpace(*apiURL) != "" {
		baseURL = *apiURL
	}

	// Server-side logout is best-effort; the local token always goes.
	if err := api.NewClient(baseURL).Logout(context.Background(), token); err != nil {
		fmt.Println("warning:", err)
	}
	if err := api.ClearToken(); err != nil {
		return fmt.Errorf("clear stored token: %w", err)
	}
	fmt.Println("Logged out.")
	return nil
}
