// Package profile keeps per-user bot state: selected languages, folders of
// saved passwords, and the single pending-input flag used by multi-step
// dialogs. Profiles are created lazily on first interaction and are never
// evicted; the store owns every profile and hands out snapshots only.
package profile

import (
	"context"
	"errors"
	"time"

	"github.com/babelpass/babelpass/internal/charset"
)

var (
	// ErrDuplicateFolder reports a folder-name collision on create. The
	// existing folder is left untouched.
	ErrDuplicateFolder = errors.New("profile: folder already exists")
	// ErrFolderNotFound reports a save or list against a folder the user
	// never created.
	ErrFolderNotFound = errors.New("profile: folder not found")
)

// PendingInput marks how the next plain-text message from a user should be
// interpreted. At most one is outstanding per user; setting a new one
// overwrites any previous flag.
type PendingInput string

const (
	// PendingNone means text messages are routed generically.
	PendingNone PendingInput = ""
	// PendingFolderName expects the next message to name a new folder.
	PendingFolderName PendingInput = "folder_name"
	// PendingLength expects the next message to carry a password length.
	PendingLength PendingInput = "length"
)

// Entry is one saved password inside a folder.
type Entry struct {
	ID        string
	Password  string
	CreatedAt time.Time
}

// FolderInfo describes a folder for listing, without its contents.
type FolderInfo struct {
	Name    string
	Entries int
}

// Snapshot is a copy of a profile safe to use after the store call returns.
type Snapshot struct {
	UserID    int64
	Languages []charset.Tag
	Folders   []FolderInfo
	Pending   PendingInput
}

// Store is the per-user state contract shared by the in-memory and the
// Postgres-backed implementations. All read-modify-write sequences are
// atomic per store; no ordering is guaranteed across different users.
type Store interface {
	// GetOrCreate returns the user's profile, creating a default one
	// (languages = {english}, no folders, no pending input) if needed.
	GetOrCreate(ctx context.Context, userID int64) (Snapshot, error)

	// ToggleLanguage adds tag if absent or removes it if present and
	// reports the resulting membership along with the updated selection.
	// Tags are not validated: an unknown tag simply contributes nothing
	// at generation time.
	ToggleLanguage(ctx context.Context, userID int64, tag charset.Tag) (added bool, languages []charset.Tag, err error)

	// CreateFolder registers an empty folder. Names are case-sensitive
	// and unique per user; collisions fail with ErrDuplicateFolder.
	CreateFolder(ctx context.Context, userID int64, name string) error

	// ListFolders returns the user's folders in creation order.
	ListFolders(ctx context.Context, userID int64) ([]FolderInfo, error)

	// SaveToFolder appends a password entry to an existing folder or
	// fails with ErrFolderNotFound.
	SaveToFolder(ctx context.Context, userID int64, name, password string) (Entry, error)

	// ListEntries returns a folder's entries in insertion order or fails
	// with ErrFolderNotFound.
	ListEntries(ctx context.Context, userID int64, name string) ([]Entry, error)

	// SetPendingInput records the flag for the user's next text message,
	// replacing any previous one. PendingNone clears it.
	SetPendingInput(ctx context.Context, userID int64, p PendingInput) error

	// PendingInput reports the outstanding flag without clearing it.
	PendingInput(ctx context.Context, userID int64) (PendingInput, error)

	// ConsumePendingInput returns the outstanding flag and clears it.
	ConsumePendingInput(ctx context.Context, userID int64) (PendingInput, error)

	// SetLastGenerated remembers the most recent password shown to the
	// user so a follow-up save action can reference it. The value is
	// interaction-scoped: it is never persisted.
	SetLastGenerated(ctx context.Context, userID int64, password string) error

	// LastGenerated returns the remembered password, if any.
	LastGenerated(ctx context.Context, userID int64) (string, bool, error)

	// Close releases underlying resources.
	Close() error
}
