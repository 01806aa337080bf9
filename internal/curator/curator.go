// Package curator validates, repairs, and organizes structured search
// results: schema-checked parsing, link repair, tag aggregation, and
// per-browsing-session saved/hidden annotations.
package curator

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/andriy/career-mentor/internal/schemas"
	"github.com/andriy/career-mentor/internal/types"
)

//go:embed search_result.schema.json
var searchResultSchema string

// ParseFailureSummary is the summary carried by the empty result returned
// when a search payload cannot be parsed.
const ParseFailureSummary = "Error parsing results"

// CategoryLimit caps how many aggregated tags ExtractCategories returns.
const CategoryLimit = 8

// ParseError indicates the raw search payload failed JSON parsing or
// schema validation.
type ParseError struct {
	Cause error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse search payload: %v", e.Cause)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

// ParsePayload turns raw backend JSON into a curated search result. The
// payload is schema-validated before decoding; every candidate gets an ID
// and a working link. On any failure the returned result is non-nil and
// displayable, carrying ParseFailureSummary and empty lists, alongside a
// *ParseError.
func ParsePayload(raw string) (*types.SearchResult, error) {
	failed := func(cause error) (*types.SearchResult, error) {
		return &types.SearchResult{Summary: ParseFailureSummary}, &ParseError{Cause: cause}
	}

	if strings.TrimSpace(raw) == "" {
		return failed(fmt.Errorf("empty payload"))
	}

	if err := schemas.ValidateJSONString(searchResultSchema, raw); err != nil {
		return failed(err)
	}

	var result types.SearchResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return failed(err)
	}

	repairAll(result.Vacancies)
	repairAll(result.Internships)
	return &result, nil
}

func repairAll(candidates []types.Candidate) {
	for i := range candidates {
		if candidates[i].ID == "" {
			candidates[i].ID = uuid.NewString()
		}
		candidates[i].URL = RepairURL(candidates[i])
	}
}

// RepairURL returns a usable link for a candidate. Backend-provided links
// are frequently hallucinated or truncated; anything too short or not an
// http link is replaced with a scoped web search for the posting.
func RepairURL(c types.Candidate) string {
	link := strings.TrimSpace(c.URL)
	if len(link) >= 15 && strings.Contains(link, "http") {
		return link
	}

	query := url.QueryEscape(c.Title + " " + c.Company)
	return fmt.Sprintf("https://www.google.com/search?q=%s+site:djinni.co+OR+site:jobs.dou.ua", query)
}

// ExtractCategories aggregates vacancy tags and returns the most frequent
// ones, capped at CategoryLimit. Internship tags do not participate. Tags
// are trimmed but counted case-sensitively, so "React" and "react" are
// distinct buckets. Ties keep first-seen order.
func ExtractCategories(result *types.SearchResult) []string {
	if result == nil {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, c := range result.Vacancies {
		for _, tag := range c.Tags {
			tag = strings.TrimSpace(tag)
			if tag == "" {
				continue
			}
			if counts[tag] == 0 {
				order = append(order, tag)
			}
			counts[tag]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > CategoryLimit {
		order = order[:CategoryLimit]
	}
	return order
}

// Filter returns the candidates that survive the overlay's hidden set and
// the active category filters. With no active filters every non-hidden
// candidate passes. Filter matching is a case-insensitive substring test
// against each tag, unlike the case-sensitive buckets of
// ExtractCategories. The input slice is never mutated.
func Filter(candidates []types.Candidate, overlay *Overlay, active []string) []types.Candidate {
	out := make([]types.Candidate, 0, len(candidates))
	for _, c := range candidates {
		if overlay != nil && overlay.IsHidden(c.ID) {
			continue
		}
		if len(active) > 0 && !matchesAny(c, active) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func matchesAny(c types.Candidate, active []string) bool {
	for _, filter := range active {
		filter = strings.ToLower(strings.TrimSpace(filter))
		if filter == "" {
			continue
		}
		for _, tag := range c.Tags {
			if strings.Contains(strings.ToLower(tag), filter) {
				return true
			}
		}
	}
	return false
}
