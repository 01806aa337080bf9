package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/andriy/career-mentor/internal/bridge"
	"github.com/andriy/career-mentor/internal/history"
	"github.com/andriy/career-mentor/internal/types"
)

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Analyze a vacancy and draft a tailored cover letter",
	Long:  "Reads a vacancy description from a file or stdin, checks it against your profile, and drafts a cover letter in your voice.",
	RunE:  runCoverLetter,
}

var coverLetterFile string

func init() {
	coverLetterCmd.Flags().StringVarP(&coverLetterFile, "in", "i", "", "Path to the vacancy text file (reads stdin when omitted)")

	rootCmd.AddCommand(coverLetterCmd)
}

func runCoverLetter(_ *cobra.Command, _ []string) error {
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

	var vacancy []byte
	if coverLetterFile != "" {
		vacancy, err = os.ReadFile(coverLetterFile)
		if err != nil {
			return fmt.Errorf("failed to read vacancy file: %w", err)
		}
	} else {
		vacancy, err = readAllStdin()
		if err != nil {
			return err
		}
	}
	if len(vacancy) == 0 {
		return fmt.Errorf("vacancy text is empty")
	}

	result, genErr := a.coach.CoverLetter(ctx, p, bridge.Build(a.ledger), string(vacancy))

	now := time.Now()
	if err := a.ledger.Append(ctx, types.HistoryEntry{
		ID:        history.NewEntryID(),
		Category:  types.CategoryCoverLetter,
		Title:     fmt.Sprintf("Cover Letter (%s)", now.Format("2006-01-02")),
		Payload:   types.TextPayload(result),
		CreatedAt: now,
	}); err != nil {
		return err
	}

	fmt.Println(result)
	a.reportDegraded("cover-letter", genErr)
	return nil
}

func readAllStdin() ([]byte, error) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, fmt.Errorf("failed to read stdin: %w", err)
	}
	return data, nil
}
