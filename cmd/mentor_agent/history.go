package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andriy/career-mentor/internal/types"
)

var historyCmd = &cobra.Command{
	Use:   "history [category]",
	Short: "Show archived results",
	Long:  "Lists archived results, newest first. Pass a category (scan, roadmap, project, search, cover_letter) to show one list, or --show <n> to print a full entry.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistory,
}

var historyShow int

func init() {
	historyCmd.Flags().IntVar(&historyShow, "show", 0, "Print the full payload of entry number n (requires a category)")

	rootCmd.AddCommand(historyCmd)
}

func runHistory(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	a, err := newApp(ctx, false)
	if err != nil {
		return err
	}
	defer a.Close()

	if len(args) == 0 {
		if historyShow > 0 {
			return fmt.Errorf("--show requires a category")
		}
		for _, cat := range types.AllCategories() {
			a.printer.PrintHistory(cat, a.ledger.List(cat))
		}
		return nil
	}

	cat := types.Category(args[0])
	if !cat.Valid() {
		return fmt.Errorf("unknown category %q (valid: scan, roadmap, project, search, cover_letter)", args[0])
	}

	entries := a.ledger.List(cat)
	if historyShow == 0 {
		a.printer.PrintHistory(cat, entries)
		return nil
	}

	if historyShow > len(entries) {
		return fmt.Errorf("entry %d not found: category has %d entries", historyShow, len(entries))
	}
	entry := entries[historyShow-1]

	fmt.Printf("%s\n%s\n\n", entry.Title, entry.CreatedAt.Format("2006-01-02 15:04"))
	if entry.Payload.IsSearch() {
		a.printer.PrintSearchResult(entry.Payload.Search)
	} else {
		fmt.Println(entry.Payload.Text)
	}
	return nil
}
