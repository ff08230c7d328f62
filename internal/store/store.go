package store

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/xtconsole/internal/domain"
	bolt "go.etcd.io/bbolt"
)

var bucketJournal = []byte("journal")

// DefaultLimit is the number of journal entries kept when no limit is configured
const DefaultLimit = 500

// JournalStore implements domain.Journal using BoltDB.
// Entries are keyed by a monotonically increasing sequence.
type JournalStore struct {
	db    *bolt.DB
	limit int

	mu     sync.Mutex // Protects memory-only entries
	memory []domain.JournalEntry
}

// NewJournalStore opens the journal for a backend. Each backend gets its own
// database under baseDir. An empty baseDir keeps the journal in memory only.
func NewJournalStore(baseDir, serverURL string, limit int) (*JournalStore, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if baseDir == "" {
		// Memory-only mode (no persistence)
		return &JournalStore{limit: limit}, nil
	}

	dir := baseDir
	if serverURL != "" {
		dir = filepath.Join(baseDir, hashServerURL(serverURL))
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}

	db, err := bolt.Open(filepath.Join(dir, "journal.db"), 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketJournal)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &JournalStore{db: db, limit: limit}, nil
}

func hashServerURL(serverURL string) string {
	normalized := strings.TrimRight(strings.ToLower(serverURL), "/")
	hash := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(hash[:6])
}

func (s *JournalStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record appends an entry, dropping the oldest ones beyond the limit
func (s *JournalStore) Record(entry domain.JournalEntry) error {
	if entry.At.IsZero() {
		entry.At = time.Now()
	}

	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.memory = append(s.memory, entry)
		if over := len(s.memory) - s.limit; over > 0 {
			s.memory = append([]domain.JournalEntry(nil), s.memory[over:]...)
		}
		return nil
	}

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketJournal)
		seq, err := b.NextSequence()
		if err != nil {
			return err
		}
		if err := b.Put(seqKey(seq), data); err != nil {
			return err
		}
		return prune(b, s.limit)
	})
}

// Recent returns up to limit entries, newest first. limit <= 0 returns all kept entries.
func (s *JournalStore) Recent(limit int) ([]domain.JournalEntry, error) {
	if s.db == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		out := make([]domain.JournalEntry, 0, len(s.memory))
		for i := len(s.memory) - 1; i >= 0; i-- {
			if limit > 0 && len(out) >= limit {
				break
			}
			out = append(out, s.memory[i])
		}
		return out, nil
	}

	var out []domain.JournalEntry
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(bucketJournal).Cursor()
		for k, v := c.Last(); k != nil; k, v = c.Prev() {
			if limit > 0 && len(out) >= limit {
				break
			}
			var e domain.JournalEntry
			if err := json.Unmarshal(v, &e); err != nil {
				continue // Skip corrupt entries
			}
			out = append(out, e)
		}
		return nil
	})
	return out, err
}

// prune deletes the oldest entries so at most limit remain
func prune(b *bolt.Bucket, limit int) error {
	var keys [][]byte
	c := b.Cursor()
	for k, _ := c.First(); k != nil; k, _ = c.Next() {
		keys = append(keys, append([]byte(nil), k...))
	}
	over := len(keys) - limit
	if over <= 0 {
		return nil
	}
	stale := keys[:over]
	for _, k := range stale {
		if err := b.Delete(k); err != nil {
			return err
		}
	}
	return nil
}

func seqKey(seq uint64) []byte {
	key := make([]byte, 8)
	binary.BigEndian.PutUint64(key, seq)
	return key
}

var _ domain.Journal = (*JournalStore)(nil)
