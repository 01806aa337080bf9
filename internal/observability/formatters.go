// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/andriy/career-mentor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the stored user profile.
func (p *Printer) PrintProfile(profile *types.Profile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Name:   %s\n", profile.Name))
	sb.WriteString(fmt.Sprintf("Email:  %s\n", profile.Email))
	if profile.GithubURL != "" {
		sb.WriteString(fmt.Sprintf("GitHub: %s\n", profile.GithubURL))
	}
	if profile.LinkedinURL != "" {
		sb.WriteString(fmt.Sprintf("LinkedIn: %s\n", profile.LinkedinURL))
	}
	sb.WriteString("\n")

	if profile.BioSummary != "" {
		sb.WriteString("Bio:\n")
		sb.WriteString(fmt.Sprintf("  %s\n", profile.BioSummary))
		sb.WriteString("\n")
	}

	var integrations []string
	if profile.Integrations.Notion {
		integrations = append(integrations, "Notion")
	}
	if profile.Integrations.Obsidian {
		integrations = append(integrations, "Obsidian")
	}
	if len(integrations) > 0 {
		sb.WriteString(fmt.Sprintf("Integrations: %s\n", strings.Join(integrations, ", ")))
	}

	p.printBox("USER PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSearchResult outputs a curated search result with its candidate lists.
func (p *Printer) PrintSearchResult(result *types.SearchResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(result.Summary)
	sb.WriteString("\n")

	writeList := func(label string, candidates []types.Candidate) {
		if len(candidates) == 0 {
			return
		}
		sb.WriteString(fmt.Sprintf("\n%s (%d):\n", label, len(candidates)))
		count := min(len(candidates), maxItemsToShow)
		for i := 0; i < count; i++ {
			c := candidates[i]
			sb.WriteString(fmt.Sprintf("  • %s — %s\n", c.Title, c.Company))
			if c.Location != "" || c.Salary != "" {
				sb.WriteString(fmt.Sprintf("    %s %s\n", c.Location, c.Salary))
			}
		}
		if len(candidates) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(candidates)-maxItemsToShow))
		}
	}
	writeList("Vacancies", result.Vacancies)
	writeList("Internships", result.Internships)

	p.printBox("OPPORTUNITY SEARCH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintCategories outputs the aggregated tag categories of a search result.
func (p *Printer) PrintCategories(categories []string) {
	if len(categories) == 0 {
		return
	}

	var sb strings.Builder
	for _, cat := range categories {
		sb.WriteString(fmt.Sprintf("• %s\n", cat))
	}

	p.printBox("TOP CATEGORIES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHistory outputs the entries of one history category, newest first.
func (p *Printer) PrintHistory(category types.Category, entries []types.HistoryEntry) {
	var sb strings.Builder

	if len(entries) == 0 {
		sb.WriteString("(empty)")
	}
	for i, entry := range entries {
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, entry.Title))
		sb.WriteString(fmt.Sprintf("    %s\n", entry.CreatedAt.Format("2006-01-02 15:04")))
		if i < len(entries)-1 {
			sb.WriteString("\n")
		}
	}

	title := fmt.Sprintf("HISTORY: %s", strings.ToUpper(string(category)))
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}
