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

var projectCmd = &cobra.Command{
	Use:   "project <interests>",
	Short: "Propose a portfolio project matched to your interests",
	Long:  "Generates a concrete pet-project proposal with scope, stack, and milestones, sized for a junior portfolio.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProject,
}

func init() {
	rootCmd.AddCommand(projectCmd)
}

func runProject(_ *cobra.Command, args []string) error {
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

	interests := strings.Join(args, " ")
	result, genErr := a.coach.ProjectIdea(ctx, p, bridge.Build(a.ledger), interests)

	if err := a.ledger.Append(ctx, types.HistoryEntry{
		ID:        history.NewEntryID(),
		Category:  types.CategoryProject,
		Title:     "Project Idea: " + interests,
		Payload:   types.TextPayload(result),
		CreatedAt: time.Now(),
	}); err != nil {
		return err
	}

	fmt.Println(result)
	a.reportDegraded("project", genErr)
	return nil
}
