package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/api"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/config"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/countdown"
	"github.com/hudahoeda/job-seeking-support-front-end/internal/retry"
)

type statusReport struct {
	LoggedIn         bool    `json:"logged_in"`
	Email            string  `json:"email,omitempty"`
	AccessExpiry     string  `json:"access_expiry,omitempty"`
	TimeRemaining    string  `json:"time_remaining,omitempty"`
	MinutesRemaining float64 `json:"minutes_remaining,omitempty"`
	UploadCompleted  bool    `json:"upload_completed"`
	UploadStatus     string  `json:"upload_status,omitempty"`
	RetriesRemaining int     `json:"retries_remaining"`
}

func runStatus(args []string) error {
	fs := flag.NewFlagSet("status", flag.ContinueOnError)
	asJSON := fs.Bool("json", false, "print the status as JSON")
	apiURL := fs.String("api-url", "", "override the API base URL")
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	budgetPath, err := retry.DefaultPath()
	if err != nil {
		return err
	}
	budget := retry.Load(budgetPath)
	report := statusReport{RetriesRemaining: budget.Remaining()}

	token := api.LoadToken()
	if token == "" {
		if *asJSON {
			return printJSON(report)
		}
		fmt.Println("Not logged in. Run `interview-cli login`.")
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
	client := api.NewClient(baseURL)

	session, err := client.Me(context.Background(), token)
	if err != nil {
		_ = api.ClearToken()
		if api.IsAccessExpired(err) {
			return errors.New("access expired: your interview window has closed")
		}
		return fmt.Errorf("session check failed: %w", err)
	}

	report.LoggedIn = true
	report.Email = session.UserData.Email
	report.UploadCompleted = session.UploadCompleted()
	if session.VideoUpload != nil {
		report.UploadStatus = session.VideoUpload.UploadStatus
	}
	if session.AccessExpiry != nil {
		report.AccessExpiry = *session.AccessExpiry
	}
	if session.MinutesRemaining != nil {
		report.MinutesRemaining = *session.MinutesRemaining
	}
	if expiry, ok := session.ExpiryTime(); ok {
		remaining := time.Until(expiry)
		if remaining < 0 {
			remaining = 0
		}
		report.TimeRemaining = countdown.Format(remaining)
	}

	if *asJSON {
		return printJSON(report)
	}

	fmt.Printf("Logged in as %s\n", report.Email)
	if report.AccessExpiry != "" {
		fmt.Printf("Access expires: %s (%s)\n", report.AccessExpiry, report.TimeRemaining)
	}
	if report.UploadCompleted {
		fmt.Println("Interview: submitted")
	} else {
		fmt.Println("Interview: not submitted")
		fmt.Printf("Retries remaining: %d\n", report.RetriesRemaining)
	}
	return nil
}
