package profile

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/babelpass/babelpass/internal/charset"
)

type userRecord struct {
	languages   []charset.Tag
	folderOrder []string
	folders     map[string][]Entry
	pending     PendingInput
	lastPass    string
	hasLast     bool
}

// MemoryStore is the default Store: a process-wide map guarded by a single
// mutex. The coarse lock is enough for the read-modify-write races the bot
// can produce (a user double-tapping a button) and keeps the code obvious.
type MemoryStore struct {
	mu    sync.Mutex
	users map[int64]*userRecord
	now   func() time.Time
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users: make(map[int64]*userRecord),
		now:   time.Now,
	}
}

// locked; creates the record on first sight of the user.
func (s *MemoryStore) record(userID int64) *userRecord {
	rec, ok := s.users[userID]
	if !ok {
		rec = &userRecord{
			languages: []charset.Tag{charset.English},
			folders:   make(map[string][]Entry),
		}
		s.users[userID] = rec
	}
	return rec
}

func (s *MemoryStore) snapshot(userID int64, rec *userRecord) Snapshot {
	snap := Snapshot{
		UserID:    userID,
		Languages: append([]charset.Tag(nil), rec.languages...),
		Pending:   rec.pending,
	}
	for _, name := range rec.folderOrder {
		snap.Folders = append(snap.Folders, FolderInfo{Name: name, Entries: len(rec.folders[name])})
	}
	return snap
}

// GetOrCreate implements Store.
func (s *MemoryStore) GetOrCreate(_ context.Context, userID int64) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(userID, s.record(userID)), nil
}

// ToggleLanguage implements Store.
func (s *MemoryStore) ToggleLanguage(_ context.Context, userID int64, tag charset.Tag) (bool, []charset.Tag, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.record(userID)
	for i, existing := range rec.languages {
		if existing == tag {
			rec.languages = append(rec.languages[:i], rec.languages[i+1:]...)
			return false, append([]charset.Tag(nil), rec.languages...), nil
		}
	}
	rec.languages = append(rec.languages, tag)
	return true, append([]charset.Tag(nil), rec.languages...), nil
}

// CreateFolder implements Store.
func (s *MemoryStore) CreateFolder(_ context.Context, userID int64, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.record(userID)
	if _, exists := rec.folders[name]; exists {
		return ErrDuplicateFolder
	}
	rec.folders[name] = nil
	rec.folderOrder = append(rec.folderOrder, name)
	return nil
}

// ListFolders implements Store.
func (s *MemoryStore) ListFolders(_ context.Context, userID int64) ([]FolderInfo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.record(userID)
	infos := make([]FolderInfo, 0, len(rec.folderOrder))
	for _, name := range rec.folderOrder {
		infos = append(infos, FolderInfo{Name: name, Entries: len(rec.folders[name])})
	}
	return infos, nil
}

// SaveToFolder implements Store.
func (s *MemoryStore) SaveToFolder(_ context.Context, userID int64, name, password string) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.record(userID)
	if _, exists := rec.folders[name]; !exists {
		return Entry{}, ErrFolderNotFound
	}
	entry := Entry{
		ID:        uuid.NewString(),
		Password:  password,
		CreatedAt: s.now(),
	}
	rec.folders[name] = append(rec.folders[name], entry)
	return entry, nil
}

// ListEntries implements Store.
func (s *MemoryStore) ListEntries(_ context.Context, userID int64, name string) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.record(userID)
	entries, exists := rec.folders[name]
	if !exists {
		return nil, ErrFolderNotFound
	}
	return append([]Entry(nil), entries...), nil
}

// SetPendingInput implements Store.
func (s *MemoryStore) SetPendingInput(_ context.Context, userID int64, p PendingInput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(userID).pending = p
	return nil
}

// PendingInput implements Store.
func (s *MemoryStore) PendingInput(_ context.Context, userID int64) (PendingInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.users[userID]; ok {
		return rec.pending, nil
	}
	return PendingNone, nil
}

// ConsumePendingInput implements Store.
func (s *MemoryStore) ConsumePendingInput(_ context.Context, userID int64) (PendingInput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.users[userID]
	if !ok {
		return PendingNone, nil
	}
	p := rec.pending
	rec.pending = PendingNone
	return p, nil
}

// SetLastGenerated implements Store.
func (s *MemoryStore) SetLastGenerated(_ context.Context, userID int64, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := s.record(userID)
	rec.lastPass = password
	rec.hasLast = true
	return nil
}

// LastGenerated implements Store.
func (s *MemoryStore) LastGenerated(_ context.Context, userID int64) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.users[userID]; ok && rec.hasLast {
		return rec.lastPass, true, nil
	}
	return "", false, nil
}

// Close implements Store. Nothing to release for the in-memory variant.
func (s *MemoryStore) Close() error { return nil }
