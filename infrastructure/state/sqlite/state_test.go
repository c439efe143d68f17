// ABOUTME: Tests for the SQLite scheduler state persistence
// ABOUTME: Uses temp database files so every test starts from a clean slate

package sqlite

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aggregator-core/core/domain"
)

func newTestState(t *testing.T) *State {
	t.Helper()
	s, err := NewState(filepath.Join(t.TempDir(), "state.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestUnsetTimestampsAreZero(t *testing.T) {
	s := newTestState(t)

	global, err := s.LastGlobalUpdate()
	require.NoError(t, err)
	assert.True(t, global.IsZero())

	feed, err := s.LastFeedUpdate(domain.ID(3))
	require.NoError(t, err)
	assert.True(t, feed.IsZero())
}

func TestGlobalUpdateRoundTrip(t *testing.T) {
	s := newTestState(t)
	stamp := time.Date(2025, 8, 30, 14, 0, 0, 0, time.UTC)

	require.NoError(t, s.SetLastGlobalUpdate(stamp))

	got, err := s.LastGlobalUpdate()
	require.NoError(t, err)
	assert.WithinDuration(t, stamp, got, 0)
}

func TestFeedUpdatesAreIndependent(t *testing.T) {
	s := newTestState(t)
	first := time.Date(2025, 8, 30, 10, 0, 0, 0, time.UTC)
	second := time.Date(2025, 8, 30, 11, 0, 0, 0, time.UTC)

	require.NoError(t, s.SetLastFeedUpdate(1, first))
	require.NoError(t, s.SetLastFeedUpdate(2, second))

	got1, err := s.LastFeedUpdate(1)
	require.NoError(t, err)
	assert.WithinDuration(t, first, got1, 0)

	got2, err := s.LastFeedUpdate(2)
	require.NoError(t, err)
	assert.WithinDuration(t, second, got2, 0)

	// The global timestamp is a separate key.
	global, err := s.LastGlobalUpdate()
	require.NoError(t, err)
	assert.True(t, global.IsZero())
}

func TestOverwriteKeepsLatest(t *testing.T) {
	s := newTestState(t)
	older := time.Date(2025, 8, 29, 9, 0, 0, 0, time.UTC)
	newer := time.Date(2025, 8, 30, 9, 0, 0, 0, time.UTC)

	require.NoError(t, s.SetLastFeedUpdate(1, older))
	require.NoError(t, s.SetLastFeedUpdate(1, newer))

	got, err := s.LastFeedUpdate(1)
	require.NoError(t, err)
	assert.WithinDuration(t, newer, got, 0)
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	stamp := time.Date(2025, 8, 30, 14, 30, 0, 0, time.UTC)

	s, err := NewState(path)
	require.NoError(t, err)
	require.NoError(t, s.SetLastGlobalUpdate(stamp))
	require.NoError(t, s.Close())

	reopened, err := NewState(path)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.LastGlobalUpdate()
	require.NoError(t, err)
	assert.WithinDuration(t, stamp, got, 0)
}
