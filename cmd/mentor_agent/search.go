package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/andriy/career-mentor/internal/bridge"
	"github.com/andriy/career-mentor/internal/curator"
	"github.com/andriy/career-mentor/internal/history"
	"github.com/andriy/career-mentor/internal/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Find junior openings and internships",
	Long:  "Searches for vacancies and internships matching a query (or your profile when the query is omitted), then opens an interactive browser for saving, hiding, and filtering the results.",
	RunE:  runSearch,
}

var searchNoBrowse bool

func init() {
	searchCmd.Flags().BoolVar(&searchNoBrowse, "no-browse", false, "Print results and exit without the interactive browser")

	rootCmd.AddCommand(searchCmd)
}

// searchTitle builds the history title from the query, truncated the way
// short list labels are.
func searchTitle(query string) string {
	runes := []rune(query)
	if len(runes) > 20 {
		query = string(runes[:20])
	}
	return "Search: " + query
}

func runSearch(_ *cobra.Command, args []string) error {
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

	query := strings.Join(args, " ")
	result, sources, genErr := a.coach.FindOpportunities(ctx, p, bridge.Build(a.ledger), query)
	a.reportDegraded("search", genErr)

	entry := types.HistoryEntry{
		ID:        history.NewEntryID(),
		Category:  types.CategorySearch,
		Title:     searchTitle(query),
		Payload:   types.SearchPayload(result),
		CreatedAt: time.Now(),
	}
	if len(sources) > 0 {
		if aux, err := json.Marshal(sources); err == nil {
			entry.Auxiliary = aux
		}
	}
	if err := a.ledger.Append(ctx, entry); err != nil {
		return err
	}

	a.printer.PrintSearchResult(result)
	a.printer.PrintCategories(curator.ExtractCategories(result))
	if len(sources) > 0 {
		fmt.Println("Sources:")
		for _, src := range sources {
			fmt.Printf("  %s\n", src)
		}
	}

	if searchNoBrowse || (len(result.Vacancies) == 0 && len(result.Internships) == 0) {
		return nil
	}

	browse(result, os.Stdin, os.Stdout)
	return nil
}

// browse runs the interactive result browser. Annotations live only for
// the duration of the loop; the stored history entry stays untouched. At
// most one category filter is active at a time; a new filter replaces the
// previous one.
func browse(result *types.SearchResult, in io.Reader, out io.Writer) {
	all := append(append([]types.Candidate{}, result.Vacancies...), result.Internships...)
	overlay := curator.NewOverlay()
	var active []string

	fmt.Fprintln(out, "\nCommands: list | save <n> | hide <n> | filter <tag> | clear | done")

	visible := curator.Filter(all, overlay, active)
	printCandidates(out, visible, overlay)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "search> ")
		if !scanner.Scan() {
			return
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		cmd, rest := fields[0], strings.Join(fields[1:], " ")
		switch cmd {
		case "done", "quit":
			saved := overlay.SavedIDs()
			if len(saved) > 0 {
				fmt.Fprintf(out, "Saved %d candidates this session.\n", len(saved))
			}
			return
		case "list":
			visible = curator.Filter(all, overlay, active)
			printCandidates(out, visible, overlay)
		case "save", "hide":
			n, err := strconv.Atoi(rest)
			if err != nil || n < 1 || n > len(visible) {
				fmt.Fprintln(out, "Usage: save <n> / hide <n> with n from the last list.")
				continue
			}
			id := visible[n-1].ID
			if cmd == "save" {
				if overlay.ToggleSaved(id) {
					fmt.Fprintf(out, "Saved: %s\n", visible[n-1].Title)
				} else {
					fmt.Fprintf(out, "Unsaved: %s\n", visible[n-1].Title)
				}
			} else {
				overlay.ToggleHidden(id)
				visible = curator.Filter(all, overlay, active)
				printCandidates(out, visible, overlay)
			}
		case "filter":
			if rest == "" {
				fmt.Fprintln(out, "Usage: filter <tag>")
				continue
			}
			active = []string{rest}
			visible = curator.Filter(all, overlay, active)
			printCandidates(out, visible, overlay)
		case "clear":
			active = nil
			visible = curator.Filter(all, overlay, active)
			printCandidates(out, visible, overlay)
		default:
			fmt.Fprintln(out, "Commands: list | save <n> | hide <n> | filter <tag> | clear | done")
		}
	}
}

func printCandidates(out io.Writer, candidates []types.Candidate, overlay *curator.Overlay) {
	if len(candidates) == 0 {
		fmt.Fprintln(out, "No candidates match the current filters.")
		return
	}
	for i, c := range candidates {
		mark := " "
		if overlay.IsSaved(c.ID) {
			mark = "*"
		}
		fmt.Fprintf(out, "%s%2d. %s — %s", mark, i+1, c.Title, c.Company)
		if c.Location != "" {
			fmt.Fprintf(out, " (%s)", c.Location)
		}
		if c.Salary != "" {
			fmt.Fprintf(out, " %s", c.Salary)
		}
		fmt.Fprintln(out)
		if len(c.Tags) > 0 {
			fmt.Fprintf(out, "     [%s]\n", strings.Join(c.Tags, ", "))
		}
		fmt.Fprintf(out, "     %s\n", c.URL)
	}
}
