package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andriy/career-mentor/internal/bridge"
	"github.com/andriy/career-mentor/internal/session"
)

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run a mock interview with the mentor",
	Long:  "Starts or resumes a mock interview. The conversation is saved after every answer, so quitting and coming back continues where you left off. Type /quit to stop, /restart to throw the saved conversation away and start over.",
	RunE:  runInterview,
}

func init() {
	rootCmd.AddCommand(interviewCmd)
}

func runInterview(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.requireProfile(ctx)
	if err != nil {
		return err
	}

	existing := a.ledger.Transcript()
	if len(existing) > 0 {
		fmt.Printf("Resuming interview (%d messages so far).\n\n", len(existing))
		for _, turn := range existing {
			label := "You"
			if turn.Speaker != "user" {
				label = "Mentor"
			}
			fmt.Printf("%s: %s\n", label, turn.Text)
		}
	}

	sess, err := a.sessions.Create(ctx, session.KindInterview, p, bridge.Build(a.ledger), existing)
	if err != nil {
		a.log.Warn("interview opening failed, continuing", zap.Error(err))
	}

	if len(existing) == 0 {
		transcript := sess.Transcript()
		if len(transcript) > 0 {
			fmt.Printf("Mentor: %s\n", transcript[len(transcript)-1].Text)
		}
		a.ledger.SetTranscript(ctx, sess.Transcript())
	}

	fmt.Println("\nType /quit to stop, /restart to start over.")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/quit":
			_ = sess.Terminate()
			fmt.Println("Interview paused. Run 'mentor_agent interview' to continue.")
			return nil
		case "/restart":
			_ = sess.Terminate()
			a.ledger.SetTranscript(ctx, nil)
			fmt.Println("Interview cleared. Run 'mentor_agent interview' to start fresh.")
			return nil
		}

		reply, err := sess.SendTurn(ctx, line)
		if err != nil {
			a.log.Warn("interview turn failed", zap.Error(err))
		}
		fmt.Printf("\nMentor: %s\n", reply)

		a.ledger.SetTranscript(ctx, sess.Transcript())
	}

	_ = sess.Terminate()
	return nil
}
