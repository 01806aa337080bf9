package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show your profile and toggle integrations",
	RunE:  runProfile,
}

var (
	profileNotion   bool
	profileObsidian bool
)

func init() {
	profileCmd.Flags().BoolVar(&profileNotion, "notion", false, "Toggle the Notion integration")
	profileCmd.Flags().BoolVar(&profileObsidian, "obsidian", false, "Toggle the Obsidian integration")

	rootCmd.AddCommand(profileCmd)
}

func runProfile(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	p, err := a.requireProfile(ctx)
	if err != nil {
		return err
	}

	changed := false
	if cmd.Flags().Changed("notion") {
		p.Integrations.Notion = !p.Integrations.Notion
		fmt.Printf("Notion integration: %v\n", p.Integrations.Notion)
		changed = true
	}
	if cmd.Flags().Changed("obsidian") {
		p.Integrations.Obsidian = !p.Integrations.Obsidian
		fmt.Printf("Obsidian integration: %v\n", p.Integrations.Obsidian)
		changed = true
	}
	if changed {
		a.profiles.Save(ctx, p)
	}

	a.printer.PrintProfile(p)
	return nil
}
