package cli

import (
	"flag"
	"fmt"

	"github.com/hudahoeda/job-seeking-support-front-end/internal/questions"
)

func runBrief(args []string) error {
	fs := flag.NewFlagSet("brief", flag.ContinueOnError)
	fs.SetOutput(flag.CommandLine.Output())
	if err := fs.Parse(args); err != nil {
		return err
	}

	fmt.Println("Interview Brief - My Digital Academy")
	fmt.Println()
	fmt.Println("Welcome to the interview for the My Digital Academy (MDA) program!")
	fmt.Println("This brief outlines the structure, instructions, and expectations for")
	fmt.Println("the interview. The interview focuses on your understanding of AI")
	fmt.Println("applications, problem-solving ability, and motivational fit.")
	fmt.Println()
	fmt.Println("Interview Format")
	fmt.Printf("  - Number of questions: %d\n", len(questions.List()))
	fmt.Println("  - Duration: 5 minutes per question, maximum 15 minutes in total")
	fmt.Println("  - Response style: one-way verbal responses (no discussion)")
	fmt.Println("  - Platform: one continuous recording for all questions")
	fmt.Println()
	fmt.Println("Recording Instructions")
	fmt.Println("  - Ensure you are in a quiet, well-lit environment")
	fmt.Println("  - Test your camera and microphone before starting (interview-cli doctor)")
	fmt.Println("  - Speak clearly and maintain eye contact with the camera")
	fmt.Println("  - You cannot pause once you start recording")
	fmt.Println("  - You can retry the recording up to 2 times if needed")
	fmt.Println()
	fmt.Println("Interview Questions")
	for i, q := range questions.List() {
		fmt.Printf("  Question %d: %s\n", i+1, q.Title)
		fmt.Printf("    %q\n", q.Body)
		if q.Tip != "" {
			fmt.Printf("    Tips: %s\n", q.Tip)
		}
	}
	fmt.Println()
	fmt.Println("When you are ready, run `interview-cli interview`.")
	return nil
}
