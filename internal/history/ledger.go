// Package history maintains the per-category ledger of generated results
// and the interview transcript, persisted as a single snapshot record.
package history

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/andriy/career-mentor/internal/store"
	"github.com/andriy/career-mentor/internal/types"
)

// EntryCap is the maximum number of entries retained per category. Appends
// beyond the cap evict the oldest entry.
const EntryCap = 20

// snapshot is the persisted form of the ledger.
type snapshot struct {
	Entries    map[types.Category][]types.HistoryEntry `json:"entries"`
	Transcript types.Transcript                        `json:"interview_transcript,omitempty"`
}

// Ledger holds history entries grouped by category, newest first. All
// mutations synchronously persist the whole snapshot; persistence failures
// are logged but never surfaced, so in-memory state is the source of truth
// for the current process.
type Ledger struct {
	mu         sync.Mutex
	records    store.RecordStore
	log        *zap.Logger
	entries    map[types.Category][]types.HistoryEntry
	transcript types.Transcript
}

// NewLedger loads the persisted snapshot, if any, and returns a ready
// ledger. A corrupt snapshot is discarded and the ledger starts empty.
func NewLedger(ctx context.Context, records store.RecordStore, log *zap.Logger) (*Ledger, error) {
	l := &Ledger{
		records: records,
		log:     log,
		entries: make(map[types.Category][]types.HistoryEntry),
	}

	data, err := records.Load(ctx, store.RecordHistory)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if data == nil {
		return l, nil
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		log.Warn("discarding corrupt history record", zap.Error(err))
		return l, nil
	}
	for cat, list := range snap.Entries {
		if !cat.Valid() {
			log.Warn("dropping history entries with unknown category", zap.String("category", string(cat)))
			continue
		}
		if len(list) > EntryCap {
			list = list[:EntryCap]
		}
		l.entries[cat] = list
	}
	l.transcript = snap.Transcript
	return l, nil
}

// Append inserts an entry at the head of its category, evicting the oldest
// entry past the cap, and persists the snapshot.
func (l *Ledger) Append(ctx context.Context, entry types.HistoryEntry) error {
	if !entry.Category.Valid() {
		return fmt.Errorf("unknown history category: %s", entry.Category)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	list := append([]types.HistoryEntry{entry}, l.entries[entry.Category]...)
	if len(list) > EntryCap {
		list = list[:EntryCap]
	}
	l.entries[entry.Category] = list

	l.persist(ctx)
	return nil
}

// List returns a copy of the entries in a category, newest first.
func (l *Ledger) List(category types.Category) []types.HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	list := l.entries[category]
	out := make([]types.HistoryEntry, len(list))
	copy(out, list)
	return out
}

// Latest returns the newest entry in a category, or nil when the category
// is empty.
func (l *Ledger) Latest(category types.Category) *types.HistoryEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	list := l.entries[category]
	if len(list) == 0 {
		return nil
	}
	entry := list[0]
	return &entry
}

// Transcript returns a copy of the stored interview transcript.
func (l *Ledger) Transcript() types.Transcript {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.transcript.Clone()
}

// SetTranscript replaces the stored interview transcript and persists the
// snapshot.
func (l *Ledger) SetTranscript(ctx context.Context, t types.Transcript) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.transcript = t.Clone()
	l.persist(ctx)
}

// ResetAll clears every category and the interview transcript, and persists
// the empty snapshot.
func (l *Ledger) ResetAll(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = make(map[types.Category][]types.HistoryEntry)
	l.transcript = nil
	l.persist(ctx)
}

// persist writes the snapshot. Callers hold l.mu. Errors are logged only;
// a failed write does not roll back the in-memory state.
func (l *Ledger) persist(ctx context.Context) {
	snap := snapshot{Entries: l.entries, Transcript: l.transcript}
	data, err := json.Marshal(snap)
	if err != nil {
		l.log.Error("failed to encode history snapshot", zap.Error(err))
		return
	}
	if err := l.records.Save(ctx, store.RecordHistory, data); err != nil {
		l.log.Error("failed to persist history snapshot", zap.Error(err))
	}
}

var (
	idMu      sync.Mutex
	idLast    int64
	idCounter int64
)

// NewEntryID returns a process-unique entry ID derived from the current
// time in milliseconds, with a counter suffix to disambiguate entries
// created within the same millisecond.
func NewEntryID() string {
	idMu.Lock()
	defer idMu.Unlock()

	now := time.Now().UnixMilli()
	if now == idLast {
		idCounter++
	} else {
		idLast = now
		idCounter = 0
	}
	return fmt.Sprintf("%d-%d", now, idCounter)
}
