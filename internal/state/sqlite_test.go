package state

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store := NewSQLiteStore()
	require.NoError(t, store.Open(filepath.Join(t.TempDir(), "state.db")))
	t.Cleanup(func() { _ = store.Close() })
	require.NoError(t, store.InitSchema())
	return store
}

func TestRecordRun_FillsDefaults(t *testing.T) {
	store := newTestStore(t)

	run := &Run{Source: "-", Status: RunStatusCompleted, Duration: 5 * time.Millisecond}
	require.NoError(t, store.RecordRun(run))

	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())
}

func TestListRuns(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.RecordRun(&Run{
		ID:        "run-1",
		Source:    "a.kode",
		Status:    RunStatusCompleted,
		Duration:  3 * time.Millisecond,
		CreatedAt: base,
	}))
	require.NoError(t, store.RecordRun(&Run{
		ID:        "run-2",
		Source:    "b.kode",
		Status:    RunStatusFailed,
		Error:     "unmatched text",
		Duration:  7 * time.Millisecond,
		CreatedAt: base.Add(time.Minute),
	}))

	runs, err := store.ListRuns(10)
	require.NoError(t, err)
	require.Len(t, runs, 2)

	assert.Equal(t, "run-2", runs[0].ID, "newest first")
	assert.Equal(t, RunStatusFailed, runs[0].Status)
	assert.Equal(t, "unmatched text", runs[0].Error)
	assert.Equal(t, 7*time.Millisecond, runs[0].Duration)

	assert.Equal(t, "run-1", runs[1].ID)
	assert.Equal(t, "a.kode", runs[1].Source)
}

func TestListRuns_Limit(t *testing.T) {
	store := newTestStore(t)

	base := time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, store.RecordRun(&Run{
			Status:    RunStatusCompleted,
			Source:    "-",
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		}))
	}

	runs, err := store.ListRuns(2)
	require.NoError(t, err)
	assert.Len(t, runs, 2)
}

func TestStore_RequiresOpen(t *testing.T) {
	store := NewSQLiteStore()
	assert.Error(t, store.InitSchema())
	assert.Error(t, store.RecordRun(&Run{}))
	_, err := store.ListRuns(1)
	assert.Error(t, err)
	assert.NoError(t, store.Close())
}
