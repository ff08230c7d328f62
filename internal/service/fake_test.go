package service

import (
	"context"
	"fmt"

	"github.com/mmcdole/xtconsole/internal/domain"
)

// fakeBackend is an in-memory domain.Backend that counts calls
type fakeBackend struct {
	settings  domain.Settings
	playlists []*domain.Playlist
	xtreams   []*domain.XtreamAccount
	converted []byte

	calls   map[string]int
	updates []domain.XtreamUpdate
	plUpd   []domain.PlaylistUpdate
	nextID  int

	failWith error  // returned by every write when set
	failList error  // returned by list calls when set
	lastID   string // id of the last update/delete
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{calls: make(map[string]int)}
}

func (f *fakeBackend) total() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeBackend) id() string {
	f.nextID++
	return fmt.Sprintf("%d", f.nextID)
}

func (f *fakeBackend) GetSettings(ctx context.Context) (domain.Settings, error) {
	f.calls["GetSettings"]++
	if f.failList != nil {
		return domain.Settings{}, f.failList
	}
	return f.settings, nil
}

func (f *fakeBackend) SaveSettings(ctx context.Context, s domain.Settings) error {
	f.calls["SaveSettings"]++
	if f.failWith != nil {
		return f.failWith
	}
	f.settings = s
	return nil
}

func (f *fakeBackend) ListPlaylists(ctx context.Context) ([]*domain.Playlist, error) {
	f.calls["ListPlaylists"]++
	if f.failList != nil {
		return nil, f.failList
	}
	return append([]*domain.Playlist(nil), f.playlists...), nil
}

func (f *fakeBackend) CreatePlaylist(ctx context.Context, p domain.PlaylistCreate) (string, error) {
	f.calls["CreatePlaylist"]++
	if f.failWith != nil {
		return "", f.failWith
	}
	id := f.id()
	f.playlists = append(f.playlists, &domain.Playlist{
		ID: id, Name: p.Name, SourceURL: p.URL, Mode: p.Mode, RefreshIntervalHours: p.EveryHours,
	})
	return id, nil
}

func (f *fakeBackend) UpdatePlaylist(ctx context.Context, id string, u domain.PlaylistUpdate) error {
	f.calls["UpdatePlaylist"]++
	f.lastID = id
	f.plUpd = append(f.plUpd, u)
	return f.failWith
}

func (f *fakeBackend) DeletePlaylist(ctx context.Context, id string) error {
	f.calls["DeletePlaylist"]++
	f.lastID = id
	if f.failWith != nil {
		return f.failWith
	}
	kept := f.playlists[:0]
	for _, p := range f.playlists {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	f.playlists = kept
	return nil
}

func (f *fakeBackend) ListXtreams(ctx context.Context) ([]*domain.XtreamAccount, error) {
	f.calls["ListXtreams"]++
	if f.failList != nil {
		return nil, f.failList
	}
	return append([]*domain.XtreamAccount(nil), f.xtreams...), nil
}

func (f *fakeBackend) CreateXtream(ctx context.Context, d domain.XtreamDraft) (string, error) {
	f.calls["CreateXtream"]++
	if f.failWith != nil {
		return "", f.failWith
	}
	id := f.id()
	f.xtreams = append(f.xtreams, &domain.XtreamAccount{
		ID: id, Name: d.Name, Username: d.Username, Password: d.Password,
		RefreshIntervalHours: d.EveryHours, Categories: d.Categories,
	})
	return id, nil
}

func (f *fakeBackend) UpdateXtream(ctx context.Context, id string, u domain.XtreamUpdate) error {
	f.calls["UpdateXtream"]++
	f.lastID = id
	f.updates = append(f.updates, u)
	return f.failWith
}

func (f *fakeBackend) DeleteXtream(ctx context.Context, id string) error {
	f.calls["DeleteXtream"]++
	f.lastID = id
	return f.failWith
}

func (f *fakeBackend) Convert(ctx context.Context, url string, mode domain.Mode) ([]byte, error) {
	f.calls["Convert"]++
	if f.failWith != nil {
		return nil, f.failWith
	}
	return f.converted, nil
}

// memJournal records entries in memory
type memJournal struct {
	entries []domain.JournalEntry
}

func (j *memJournal) Record(e domain.JournalEntry) error {
	j.entries = append(j.entries, e)
	return nil
}

func (j *memJournal) Recent(limit int) ([]domain.JournalEntry, error) {
	return j.entries, nil
}

func (j *memJournal) Close() error { return nil }
