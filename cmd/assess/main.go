// Command assess runs the Patternwork questionnaire in a terminal against
// a running backend. It is the reference consumer of the runner package
// and doubles as a manual end-to-end check.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/patternwork/patternwork-backend/internal/logger"
	"github.com/patternwork/patternwork-backend/internal/runner"
)

func main() {
	var serverURL string
	var timeout time.Duration
	flag.StringVar(&serverURL, "server", "http://localhost:8080", "Base URL of the backend")
	flag.DurationVar(&timeout, "timeout", 15*time.Second, "Request timeout")
	flag.Parse()

	log := logger.Setup("warn", "pretty")

	ctx := context.Background()
	client := runner.NewClient(serverURL, timeout)

	questions, err := client.FetchQuestions(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not fetch questions from %s: %v\n", serverURL, err)
		os.Exit(1)
	}

	r, err := runner.New(questions, client, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "start questionnaire: %v\n", err)
		os.Exit(1)
	}

	in := bufio.NewScanner(os.Stdin)
	fmt.Println("Patternwork Assessment")
	fmt.Println("Commands: 1..n choose, t <text> own words, a alternative phrasing, p previous, n next, q quit")

	for r.State() != runner.StateDone {
		switch r.State() {
		case runner.StateQuestioning:
			questionStep(r, in)
		case runner.StateFinalizing:
			finalStep(ctx, r, in)
		}
	}

	res := r.Result()
	fmt.Printf("\nSaved. Your reference: %s (%s)\n", res.AssessmentID, res.CreatedAt.Local().Format(time.RFC822))
}

func questionStep(r *runner.Runner, in *bufio.Scanner) {
	q := r.Current()
	ans := r.Answer(q.ID)

	fmt.Printf("\nQuestion %d of %d\n%s\n", r.Index()+1, r.Total(), r.CurrentText())
	for i, c := range q.Choices {
		marker := " "
		if ans.Choice == c.Value {
			marker = "*"
		}
		fmt.Printf(" %s %d) %s\n", marker, i+1, c.Label)
	}
	if ans.Text != "" {
		fmt.Printf("   own words: %s\n", ans.Text)
	}

	fmt.Print("> ")
	if !in.Scan() {
		os.Exit(0)
	}
	input := strings.TrimSpace(in.Text())

	switch {
	case input == "q":
		os.Exit(0)
	case input == "a":
		_ = r.CyclePhrasing()
	case input == "p":
		_ = r.GoBack()
	case input == "n":
		_ = r.Advance()
	case strings.HasPrefix(input, "t "):
		_ = r.SetFreeText(strings.TrimSpace(strings.TrimPrefix(input, "t ")))
	default:
		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(q.Choices) {
			fmt.Println("unrecognized input")
			return
		}
		if err := r.SelectChoice(q.Choices[n-1].Value); err != nil {
			fmt.Printf("cannot select: %v\n", err)
		}
	}
}

func finalStep(ctx context.Context, r *runner.Runner, in *bufio.Scanner) {
	fmt.Print("\nAll questions done. Enter your email to submit (or 'p' to go back): ")
	if !in.Scan() {
		os.Exit(0)
	}
	input := strings.TrimSpace(in.Text())

	if input == "p" {
		_ = r.BackToQuestions()
		return
	}

	if _, err := r.Submit(ctx, input); err != nil {
		// Field-level and transport problems both land here. Answers are
		// preserved, so the loop simply asks again.
		fmt.Printf("submission failed: %v\n", err)
	}
}
