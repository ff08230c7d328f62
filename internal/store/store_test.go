package store

import (
	"fmt"
	"testing"
	"time"

	"github.com/mmcdole/xtconsole/internal/domain"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, s *JournalStore, n int) {
	t.Helper()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		require.NoError(t, s.Record(domain.JournalEntry{
			At:     base.Add(time.Duration(i) * time.Minute),
			Action: "playlist.update",
			Target: fmt.Sprintf("p%d", i),
			OK:     true,
		}))
	}
}

func TestJournalPersistsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	s, err := NewJournalStore(dir, "http://backend:8000/", 10)
	require.NoError(t, err)
	record(t, s, 3)
	require.NoError(t, s.Close())

	s, err = NewJournalStore(dir, "HTTP://BACKEND:8000", 10)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "p2", got[0].Target)
	require.Equal(t, "p0", got[2].Target)

	got, err = s.Recent(2)
	require.NoError(t, err)
	require.Len(t, got, 2)
}

func TestJournalPrunesToLimit(t *testing.T) {
	s, err := NewJournalStore(t.TempDir(), "", 3)
	require.NoError(t, err)
	defer s.Close()

	record(t, s, 5)

	got, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.Equal(t, "p4", got[0].Target)
	require.Equal(t, "p2", got[2].Target)
}

func TestJournalMemoryMode(t *testing.T) {
	s, err := NewJournalStore("", "http://x", 2)
	require.NoError(t, err)

	record(t, s, 3)
	require.NoError(t, s.Record(domain.JournalEntry{Action: "xtream.delete", Target: "x1", Error: "gone"}))

	got, err := s.Recent(0)
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "x1", got[0].Target)
	require.False(t, got[0].At.IsZero())
	require.Equal(t, "p2", got[1].Target)
	require.NoError(t, s.Close())
}
