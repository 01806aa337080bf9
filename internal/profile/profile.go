// Package profile persists the single user profile and ties its lifecycle
// to the history ledger.
package profile

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/andriy/career-mentor/internal/history"
	"github.com/andriy/career-mentor/internal/store"
	"github.com/andriy/career-mentor/internal/types"
)

// Store manages the profile record. Clearing the profile also resets the
// ledger: history is meaningless without the profile it was built for.
type Store struct {
	records store.RecordStore
	ledger  *history.Ledger
	log     *zap.Logger
}

// NewStore returns a profile store bound to its ledger.
func NewStore(records store.RecordStore, ledger *history.Ledger, log *zap.Logger) *Store {
	return &Store{records: records, ledger: ledger, log: log}
}

// Load returns the stored profile, or nil when none exists. A corrupt
// record is treated as absent and logged.
func (s *Store) Load(ctx context.Context) (*types.Profile, error) {
	data, err := s.records.Load(ctx, store.RecordProfile)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if data == nil {
		return nil, nil
	}

	var p types.Profile
	if err := json.Unmarshal(data, &p); err != nil {
		s.log.Warn("discarding corrupt profile record", zap.Error(err))
		return nil, nil
	}
	return &p, nil
}

// Save persists the profile. Persistence failures are logged, not
// surfaced; the caller's in-memory profile stays authoritative for the
// current process.
func (s *Store) Save(ctx context.Context, p *types.Profile) {
	data, err := json.Marshal(p)
	if err != nil {
		s.log.Error("failed to encode profile", zap.Error(err))
		return
	}
	if err := s.records.Save(ctx, store.RecordProfile, data); err != nil {
		s.log.Error("failed to persist profile", zap.Error(err))
	}
}

// Clear removes the profile and resets the entire history ledger.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.records.Delete(ctx, store.RecordProfile); err != nil {
		return fmt.Errorf("failed to clear profile: %w", err)
	}
	s.ledger.ResetAll(ctx)
	return nil
}
