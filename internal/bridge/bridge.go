// Package bridge assembles cross-feature context from the history ledger
// so that a new conversation can reference the user's latest results.
package bridge

import (
	"fmt"
	"strings"

	"github.com/andriy/career-mentor/internal/history"
	"github.com/andriy/career-mentor/internal/types"
)

// Context carries the ledger entries that seed a new session. It is a
// frozen read: entries appended after Build are not reflected.
type Context struct {
	// LastPlan is the newer of the latest roadmap and the latest project
	// idea, or nil when both categories are empty.
	LastPlan *types.HistoryEntry

	// LastScan is the latest CV scan result, or nil.
	LastScan *types.HistoryEntry
}

// Build snapshots the relevant ledger entries. Roadmaps and project ideas
// compete for the plan slot; whichever was created most recently wins.
func Build(ledger *history.Ledger) Context {
	var ctx Context

	roadmap := ledger.Latest(types.CategoryRoadmap)
	project := ledger.Latest(types.CategoryProject)
	switch {
	case roadmap != nil && project != nil:
		if project.CreatedAt.After(roadmap.CreatedAt) {
			ctx.LastPlan = project
		} else {
			ctx.LastPlan = roadmap
		}
	case roadmap != nil:
		ctx.LastPlan = roadmap
	case project != nil:
		ctx.LastPlan = project
	}

	ctx.LastScan = ledger.Latest(types.CategoryScan)
	return ctx
}

// Empty reports whether the context carries no entries.
func (c Context) Empty() bool {
	return c.LastPlan == nil && c.LastScan == nil
}

// Render formats the context as bracketed lines suitable for inclusion in
// a system instruction. Returns the empty string for an empty context.
func (c Context) Render() string {
	var b strings.Builder

	if c.LastPlan != nil {
		label := "LATEST CAREER ROADMAP"
		if c.LastPlan.Category == types.CategoryProject {
			label = "LATEST PROJECT IDEA"
		}
		fmt.Fprintf(&b, "[CONTEXT: %s \"%s\"]\n%s\n", label, c.LastPlan.Title, c.LastPlan.Payload.Text)
	}
	if c.LastScan != nil {
		fmt.Fprintf(&b, "[CONTEXT: LATEST CV ANALYSIS \"%s\"]\n%s\n", c.LastScan.Title, c.LastScan.Payload.Text)
	}

	return strings.TrimRight(b.String(), "\n")
}
