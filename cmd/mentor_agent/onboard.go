package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/andriy/career-mentor/internal/bridge"
	"github.com/andriy/career-mentor/internal/coach"
	"github.com/andriy/career-mentor/internal/extract"
	"github.com/andriy/career-mentor/internal/session"
	"github.com/andriy/career-mentor/internal/types"
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create your profile through a short intake interview",
	Long:  "Collects your contact details and CV, runs a short intake conversation to learn your goals, and saves the resulting profile. Type /done during the conversation to finish.",
	RunE:  runOnboard,
}

var (
	onboardName     string
	onboardEmail    string
	onboardGithub   string
	onboardLinkedin string
	onboardCVPath   string
)

func init() {
	onboardCmd.Flags().StringVar(&onboardName, "name", "", "Your name (required)")
	onboardCmd.Flags().StringVar(&onboardEmail, "email", "", "Your email (required)")
	onboardCmd.Flags().StringVar(&onboardGithub, "github", "", "GitHub profile URL")
	onboardCmd.Flags().StringVar(&onboardLinkedin, "linkedin", "", "LinkedIn profile URL")
	onboardCmd.Flags().StringVar(&onboardCVPath, "cv", "", "Path to your CV (.txt, .md, .html or .json)")

	rootCmd.AddCommand(onboardCmd)
}

// mimeForPath maps a CV file extension to the extractor's MIME types.
func mimeForPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return "text/html"
	case ".json":
		return "application/json"
	case ".md":
		return "text/markdown"
	default:
		return "text/plain"
	}
}

func runOnboard(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, true)
	if err != nil {
		return err
	}
	defer a.Close()

	if existing, err := a.profiles.Load(ctx); err != nil {
		return err
	} else if existing != nil && existing.Onboarded {
		return fmt.Errorf("a profile for %s already exists: run 'mentor_agent logout' first", existing.Name)
	}

	form := types.IntakeForm{
		Name:        onboardName,
		Email:       onboardEmail,
		GithubURL:   onboardGithub,
		LinkedinURL: onboardLinkedin,
	}

	if onboardCVPath != "" {
		data, err := os.ReadFile(onboardCVPath)
		if err != nil {
			return fmt.Errorf("failed to read CV file: %w", err)
		}
		text, err := extract.Text(data, mimeForPath(onboardCVPath))
		if err != nil {
			return err
		}
		form.CVText = coach.TruncateCV(text)
	}

	if err := form.Validate(); err != nil {
		return fmt.Errorf("intake form invalid: %w", err)
	}

	seed := &types.Profile{Name: form.Name, Email: form.Email}
	sess, err := a.sessions.Create(ctx, session.KindIntake, seed, bridge.Context{}, nil)
	if err != nil {
		a.log.Warn("intake opening failed, continuing", zap.Error(err))
	}

	transcript := sess.Transcript()
	if len(transcript) > 0 {
		fmt.Printf("\nMentor: %s\n", transcript[len(transcript)-1].Text)
	}

	fmt.Println("\nAnswer the mentor's questions. Type /done when you are finished.")
	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "/done" {
			break
		}
		if line == "" {
			continue
		}

		reply, err := sess.SendTurn(ctx, line)
		if err != nil {
			a.log.Warn("intake turn failed", zap.Error(err))
		}
		fmt.Printf("\nMentor: %s\n", reply)
	}
	_ = sess.Terminate()

	fmt.Println("\nBuilding your profile...")
	bio := a.coach.SummarizeProfile(ctx, form, sess.Transcript())

	p := &types.Profile{
		Name:        form.Name,
		Email:       form.Email,
		GithubURL:   form.GithubURL,
		LinkedinURL: form.LinkedinURL,
		CVText:      form.CVText,
		BioSummary:  bio,
		Onboarded:   true,
	}
	a.profiles.Save(ctx, p)

	fmt.Printf("\nProfile saved. Bio: %s\n", bio)
	fmt.Println("Try 'mentor_agent scan' or 'mentor_agent roadmap' next.")
	return nil
}
