package domain

import "time"

// JournalEntry records one operator mutation and its outcome
type JournalEntry struct {
	At     time.Time `json:"at"`
	Action string    `json:"action"` // e.g. "playlist.create", "xtream.delete"
	Target string    `json:"target"` // resource id or name
	OK     bool      `json:"ok"`
	Error  string    `json:"error,omitempty"`
}

// Journal is the local audit trail of operator actions.
// It never caches server state.
type Journal interface {
	Record(entry JournalEntry) error
	Recent(limit int) ([]JournalEntry, error)
	Close() error
}

// NoOpJournal discards entries (for tests and when history is disabled).
type NoOpJournal struct{}

func (NoOpJournal) Record(JournalEntry) error          { return nil }
func (NoOpJournal) Recent(int) ([]JournalEntry, error) { return nil, nil }
func (NoOpJournal) Close() error                       { return nil }
