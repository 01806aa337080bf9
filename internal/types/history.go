package types

import (
	"encoding/json"
	"time"
)

// Category is one of the five fixed activity kinds that partition the
// history ledger. The set is closed; the ledger allocates one bounded
// queue per category at construction time.
type Category string

// Category constants define the closed activity set.
const (
	CategoryScan        Category = "scan"
	CategoryRoadmap     Category = "roadmap"
	CategoryProject     Category = "project"
	CategorySearch      Category = "search"
	CategoryCoverLetter Category = "cover_letter"
)

// AllCategories returns the closed category set in declaration order.
func AllCategories() []Category {
	return []Category{
		CategoryScan,
		CategoryRoadmap,
		CategoryProject,
		CategorySearch,
		CategoryCoverLetter,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryScan, CategoryRoadmap, CategoryProject, CategorySearch, CategoryCoverLetter:
		return true
	}
	return false
}

// Payload is the closed union of things a history entry can hold: a plain
// text result from a one-shot generation, or a structured search result.
// Exactly one of the two fields is set.
type Payload struct {
	Text   string        `json:"text,omitempty"`
	Search *SearchResult `json:"search,omitempty"`
}

// TextPayload wraps a plain text blob as an entry payload.
func TextPayload(text string) Payload {
	return Payload{Text: text}
}

// SearchPayload wraps a curated search result as an entry payload.
func SearchPayload(result *SearchResult) Payload {
	return Payload{Search: result}
}

// IsSearch reports whether the payload holds a structured search result.
func (p Payload) IsSearch() bool {
	return p.Search != nil
}

// HistoryEntry is one archived interaction. Entries are immutable once
// created; the ledger only appends and evicts, never edits in place.
// Auxiliary is opaque side data (e.g. citation sources) that the ledger
// stores but never interprets.
type HistoryEntry struct {
	ID        string          `json:"id"`
	Category  Category        `json:"category"`
	Title     string          `json:"title"`
	Payload   Payload         `json:"payload"`
	CreatedAt time.Time       `json:"created_at"`
	Auxiliary json.RawMessage `json:"auxiliary,omitempty"`
}
