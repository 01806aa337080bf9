package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andriy/career-mentor/internal/bridge"
	"github.com/andriy/career-mentor/internal/history"
	"github.com/andriy/career-mentor/internal/types"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap <target role>",
	Short: "Generate a career roadmap toward a target role",
	Long:  "Builds a step-by-step plan from where you are now to the target role, using your latest scan and plan from history as context.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runRoadmap,
}

func init() {
	rootCmd.AddCommand(roadmapCmd)
}

func runRoadmap(_ *cobra.Command, args []string) error {
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

	goal := strings.Join(args, " ")
	result, genErr := a.coach.Roadmap(ctx, p, bridge.Build(a.ledger), goal)

	if err := a.ledger.Append(ctx, types.HistoryEntry{
		ID:        history.NewEntryID(),
		Category:  types.CategoryRoadmap,
		Title:     "Roadmap: " + goal,
		Payload:   types.TextPayload(result),
		CreatedAt: time.Now(),
	}); err != nil {
		return err
	}

	fmt.Println(result)
	a.reportDegraded("roadmap", genErr)
	return nil
}
