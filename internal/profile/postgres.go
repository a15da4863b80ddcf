package profile

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/babelpass/babelpass/internal/charset"
)

const pgUniqueViolation = "23505"

// PostgresStore persists profiles, languages, and folders in Postgres.
// Persistence is best-effort: the schema mirrors the in-memory semantics but
// no guarantee spans multiple operations. The last-generated password is
// interaction-scoped and deliberately stays in memory.
type PostgresStore struct {
	db  *sqlx.DB
	now func() time.Time

	lastMu sync.Mutex
	last   map[int64]string
}

// NewPostgresStore wraps an open sqlx handle. Migrations must have been
// applied before first use.
func NewPostgresStore(db *sqlx.DB) *PostgresStore {
	return &PostgresStore{
		db:   db,
		now:  time.Now,
		last: make(map[int64]string),
	}
}

// ensureProfile inserts the default profile row and language selection on
// the user's first interaction. Safe to call on every operation.
func (s *PostgresStore) ensureProfile(ctx context.Context, tx *sqlx.Tx, userID int64) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO profiles (user_id, pending_input) VALUES ($1, '') ON CONFLICT (user_id) DO NOTHING`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("ensure profile: %w", err)
	}
	inserted, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ensure profile: %w", err)
	}
	if inserted > 0 {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO profile_languages (user_id, tag, position) VALUES ($1, $2, 0)`,
			userID, string(charset.English),
		); err != nil {
			return fmt.Errorf("seed default language: %w", err)
		}
	}
	return nil
}

func (s *PostgresStore) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

func (s *PostgresStore) languages(ctx context.Context, tx *sqlx.Tx, userID int64) ([]charset.Tag, error) {
	var raw []string
	if err := tx.SelectContext(ctx, &raw,
		`SELECT tag FROM profile_languages WHERE user_id = $1 ORDER BY position`,
		userID,
	); err != nil {
		return nil, fmt.Errorf("select languages: %w", err)
	}
	tags := make([]charset.Tag, len(raw))
	for i, t := range raw {
		tags[i] = charset.Tag(t)
	}
	return tags, nil
}

func (s *PostgresStore) folders(ctx context.Context, tx *sqlx.Tx, userID int64) ([]FolderInfo, error) {
	rows := []struct {
		Name    string `db:"name"`
		Entries int    `db:"entries"`
	}{}
	if err := tx.SelectContext(ctx, &rows,
		`SELECT f.name AS name, COUNT(e.id) AS entries
		 FROM folders f
		 LEFT JOIN folder_entries e ON e.folder_id = f.id
		 WHERE f.user_id = $1
		 GROUP BY f.id, f.name
		 ORDER BY f.created_at, f.id`,
		userID,
	); err != nil {
		return nil, fmt.Errorf("select folders: %w", err)
	}
	infos := make([]FolderInfo, 0, len(rows))
	for _, r := range rows {
		infos = append(infos, FolderInfo{Name: r.Name, Entries: r.Entries})
	}
	return infos, nil
}

// GetOrCreate implements Store.
func (s *PostgresStore) GetOrCreate(ctx context.Context, userID int64) (Snapshot, error) {
	snap := Snapshot{UserID: userID}
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.ensureProfile(ctx, tx, userID); err != nil {
			return err
		}
		var pending string
		if err := tx.GetContext(ctx, &pending,
			`SELECT pending_input FROM profiles WHERE user_id = $1`, userID,
		); err != nil {
			return fmt.Errorf("select profile: %w", err)
		}
		snap.Pending = PendingInput(pending)

		langs, err := s.languages(ctx, tx, userID)
		if err != nil {
			return err
		}
		snap.Languages = langs

		folders, err := s.folders(ctx, tx, userID)
		if err != nil {
			return err
		}
		snap.Folders = folders
		return nil
	})
	if err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// ToggleLanguage implements Store.
func (s *PostgresStore) ToggleLanguage(ctx context.Context, userID int64, tag charset.Tag) (bool, []charset.Tag, error) {
	var (
		added bool
		langs []charset.Tag
	)
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.ensureProfile(ctx, tx, userID); err != nil {
			return err
		}
		res, err := tx.ExecContext(ctx,
			`DELETE FROM profile_languages WHERE user_id = $1 AND tag = $2`,
			userID, string(tag),
		)
		if err != nil {
			return fmt.Errorf("delete language: %w", err)
		}
		removed, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("delete language: %w", err)
		}
		if removed == 0 {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO profile_languages (user_id, tag, position)
				 VALUES ($1, $2, (SELECT COALESCE(MAX(position), -1) + 1 FROM profile_languages WHERE user_id = $1))`,
				userID, string(tag),
			); err != nil {
				return fmt.Errorf("insert language: %w", err)
			}
			added = true
		}
		langs, err = s.languages(ctx, tx, userID)
		return err
	})
	if err != nil {
		return false, nil, err
	}
	return added, langs, nil
}

// CreateFolder implements Store.
func (s *PostgresStore) CreateFolder(ctx context.Context, userID int64, name string) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.ensureProfile(ctx, tx, userID); err != nil {
			return err
		}
		_, err := tx.ExecContext(ctx,
			`INSERT INTO folders (id, user_id, name, created_at) VALUES ($1, $2, $3, $4)`,
			uuid.NewString(), userID, name, s.now(),
		)
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgUniqueViolation {
			return ErrDuplicateFolder
		}
		if err != nil {
			return fmt.Errorf("insert folder: %w", err)
		}
		return nil
	})
}

// ListFolders implements Store.
func (s *PostgresStore) ListFolders(ctx context.Context, userID int64) ([]FolderInfo, error) {
	var infos []FolderInfo
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.ensureProfile(ctx, tx, userID); err != nil {
			return err
		}
		var err error
		infos, err = s.folders(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return infos, nil
}

// SaveToFolder implements Store.
func (s *PostgresStore) SaveToFolder(ctx context.Context, userID int64, name, password string) (Entry, error) {
	var entry Entry
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var folderID string
		err := tx.GetContext(ctx, &folderID,
			`SELECT id FROM folders WHERE user_id = $1 AND name = $2`,
			userID, name,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFolderNotFound
		}
		if err != nil {
			return fmt.Errorf("select folder: %w", err)
		}
		entry = Entry{ID: uuid.NewString(), Password: password, CreatedAt: s.now()}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO folder_entries (id, folder_id, password, created_at) VALUES ($1, $2, $3, $4)`,
			entry.ID, folderID, entry.Password, entry.CreatedAt,
		); err != nil {
			return fmt.Errorf("insert entry: %w", err)
		}
		return nil
	})
	if err != nil {
		return Entry{}, err
	}
	return entry, nil
}

// ListEntries implements Store.
func (s *PostgresStore) ListEntries(ctx context.Context, userID int64, name string) ([]Entry, error) {
	var entries []Entry
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var folderID string
		err := tx.GetContext(ctx, &folderID,
			`SELECT id FROM folders WHERE user_id = $1 AND name = $2`,
			userID, name,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrFolderNotFound
		}
		if err != nil {
			return fmt.Errorf("select folder: %w", err)
		}
		rows := []struct {
			ID        string    `db:"id"`
			Password  string    `db:"password"`
			CreatedAt time.Time `db:"created_at"`
		}{}
		if err := tx.SelectContext(ctx, &rows,
			`SELECT id, password, created_at FROM folder_entries WHERE folder_id = $1 ORDER BY created_at, id`,
			folderID,
		); err != nil {
			return fmt.Errorf("select entries: %w", err)
		}
		for _, r := range rows {
			entries = append(entries, Entry{ID: r.ID, Password: r.Password, CreatedAt: r.CreatedAt})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// SetPendingInput implements Store.
func (s *PostgresStore) SetPendingInput(ctx context.Context, userID int64, p PendingInput) error {
	return s.inTx(ctx, func(tx *sqlx.Tx) error {
		if err := s.ensureProfile(ctx, tx, userID); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE profiles SET pending_input = $2 WHERE user_id = $1`,
			userID, string(p),
		); err != nil {
			return fmt.Errorf("update pending input: %w", err)
		}
		return nil
	})
}

// PendingInput implements Store.
func (s *PostgresStore) PendingInput(ctx context.Context, userID int64) (PendingInput, error) {
	var pending string
	err := s.db.GetContext(ctx, &pending,
		`SELECT pending_input FROM profiles WHERE user_id = $1`, userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return PendingNone, nil
	}
	if err != nil {
		return PendingNone, fmt.Errorf("select pending input: %w", err)
	}
	return PendingInput(pending), nil
}

// ConsumePendingInput implements Store.
func (s *PostgresStore) ConsumePendingInput(ctx context.Context, userID int64) (PendingInput, error) {
	var pending string
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		err := tx.GetContext(ctx, &pending,
			`SELECT pending_input FROM profiles WHERE user_id = $1 FOR UPDATE`, userID,
		)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("select pending input: %w", err)
		}
		if pending == "" {
			return nil
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE profiles SET pending_input = '' WHERE user_id = $1`, userID,
		); err != nil {
			return fmt.Errorf("clear pending input: %w", err)
		}
		return nil
	})
	if err != nil {
		return PendingNone, err
	}
	return PendingInput(pending), nil
}

// SetLastGenerated implements Store.
func (s *PostgresStore) SetLastGenerated(_ context.Context, userID int64, password string) error {
	s.lastMu.Lock()
	defer s.lastMu.Unlock()
	s.last[userID] = password
	return nil
}

// LastGenerated implements Store.
func (s *PostgresStore) LastGenerated(_ context.Context, userID int64) (string, bool, error) {
	s.lastMu.Lock()
	defer s.lastMu.Unlock()
	pw, ok := s.last[userID]
	return pw, ok, nil
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}
