package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/andriy/career-mentor/internal/bridge"
	"github.com/andriy/career-mentor/internal/coach"
	"github.com/andriy/career-mentor/internal/extract"
	"github.com/andriy/career-mentor/internal/history"
	"github.com/andriy/career-mentor/internal/types"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Analyze your CV against the current junior market",
	Long:  "Runs a deep analysis of your CV: strengths, gaps, and how it reads to a hiring manager. Uses the CV stored at onboarding unless --cv points at a newer file.",
	RunE:  runScan,
}

var scanCVPath string

func init() {
	scanCmd.Flags().StringVar(&scanCVPath, "cv", "", "Path to a CV file (defaults to the CV from onboarding)")

	rootCmd.AddCommand(scanCmd)
}

func runScan(_ *cobra.Command, _ []string) error {
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

	cvText := p.CVText
	title := "Scan: stored CV"
	if scanCVPath != "" {
		data, err := os.ReadFile(scanCVPath)
		if err != nil {
			return fmt.Errorf("failed to read CV file: %w", err)
		}
		cvText, err = extract.Text(data, mimeForPath(scanCVPath))
		if err != nil {
			return err
		}
		title = "Scan: " + filepath.Base(scanCVPath)
	}
	if cvText == "" {
		return fmt.Errorf("no CV available: onboard with --cv or pass --cv here")
	}

	result, genErr := a.coach.Scan(ctx, p, bridge.Build(a.ledger), coach.TruncateCV(cvText))

	if err := a.ledger.Append(ctx, types.HistoryEntry{
		ID:        history.NewEntryID(),
		Category:  types.CategoryScan,
		Title:     title,
		Payload:   types.TextPayload(result),
		CreatedAt: time.Now(),
	}); err != nil {
		return err
	}

	fmt.Println(result)
	a.reportDegraded("scan", genErr)
	return nil
}
