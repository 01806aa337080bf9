package profile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/andriy/career-mentor/internal/history"
	"github.com/andriy/career-mentor/internal/store"
	"github.com/andriy/career-mentor/internal/types"
)

func newTestStore(t *testing.T) (*Store, *history.Ledger, *store.FileStore) {
	t.Helper()
	records, err := store.NewFileStore(t.TempDir())
	require.NoError(t, err)
	ledger, err := history.NewLedger(context.Background(), records, zap.NewNop())
	require.NoError(t, err)
	return NewStore(records, ledger, zap.NewNop()), ledger, records
}

func TestStore_SaveAndLoad(t *testing.T) {
	s, _, _ := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, &types.Profile{
		Name:      "Andriy",
		Email:     "andriy@example.com",
		Onboarded: true,
		Integrations: types.Integrations{
			Notion: true,
		},
	})

	p, err := s.Load(ctx)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Andriy", p.Name)
	assert.True(t, p.Onboarded)
	assert.True(t, p.Integrations.Notion)
	assert.False(t, p.Integrations.Obsidian)
}

func TestStore_LoadAbsent(t *testing.T) {
	s, _, _ := newTestStore(t)

	p, err := s.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestStore_LoadCorruptTreatedAsAbsent(t *testing.T) {
	s, _, records := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, records.Save(ctx, store.RecordProfile, []byte("][broken")))

	p, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestStore_ClearResetsLedger(t *testing.T) {
	s, ledger, _ := newTestStore(t)
	ctx := context.Background()

	s.Save(ctx, &types.Profile{Name: "Andriy", Email: "a@b.co"})
	require.NoError(t, ledger.Append(ctx, types.HistoryEntry{
		ID:        history.NewEntryID(),
		Category:  types.CategoryScan,
		Title:     "Scan: cv.pdf",
		Payload:   types.TextPayload("analysis"),
		CreatedAt: time.Now(),
	}))

	require.NoError(t, s.Clear(ctx))

	p, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.Empty(t, ledger.List(types.CategoryScan))
}
