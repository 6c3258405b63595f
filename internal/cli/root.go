package cli

import (
	"fmt"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/version"
)

func Run(args []string) error {
	if len(args) == 0 {
		printRootUsage()
		return nil
	}

	var err error
	switch args[0] {
	case "login":
		err = runLogin(args[1:])
	case "interview":
		err = runInterview(args[1:])
	case "brief":
		err = runBrief(args[1:])
	case "status":
		err = runStatus(args[1:])
	case "logout":
		err = runLogout(args[1:])
	case "doctor":
		err = runDoctor(args[1:])
	case "settings":
		err = runSettings(args[1:])
	case "version", "--version":
		fmt.Println(version.Value)
		return nil
	case "help", "-h", "--help":
		printRootUsage()
		return nil
	default:
		printRootUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}

	return err
}

func printRootUsage() {
	fmt.Println("interview-cli: record and submit your video interview")
	fmt.Println()
	fmt.Println("Quick Start:")
	fmt.Println("  interview-cli doctor")
	fmt.Println("  interview-cli login")
	fmt.Println("  interview-cli brief")
	fmt.Println("  interview-cli interview")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  login      sign in with your email and access token")
	fmt.Println("  interview  open the interview page (record + upload)")
	fmt.Println("  brief      read the interview brief and rules")
	fmt.Println("  status     show session, expiry, and submission status")
	fmt.Println("  logout     end the session and clear the stored token")
	fmt.Println("  doctor     run camera/microphone and dependency checks")
	fmt.Println("  settings   show/update API URL, devices, and theme")
	fmt.Println("  version    print the client version")
	fmt.Println()
	fmt.Println("Notes:")
	fmt.Println("  - Use --json on status/doctor/settings for machine-readable output")
	fmt.Println("  - One continuous recording answers all interview questions")
}
