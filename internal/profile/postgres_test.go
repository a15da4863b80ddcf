package profile

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babelpass/babelpass/internal/charset"
)

func setupPostgresMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewPostgresStore(sqlx.NewDb(db, "postgres"))
	store.now = func() time.Time { return time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC) }
	return store, mock
}

func expectEnsureProfile(mock sqlmock.Sqlmock, userID int64, fresh bool) {
	inserted := int64(0)
	if fresh {
		inserted = 1
	}
	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO profiles (user_id, pending_input) VALUES ($1, '') ON CONFLICT (user_id) DO NOTHING`,
	)).WithArgs(userID).WillReturnResult(sqlmock.NewResult(0, inserted))
	if fresh {
		mock.ExpectExec(regexp.QuoteMeta(
			`INSERT INTO profile_languages (user_id, tag, position) VALUES ($1, $2, 0)`,
		)).WithArgs(userID, "english").WillReturnResult(sqlmock.NewResult(0, 1))
	}
}

func TestPostgresGetOrCreateFreshProfile(t *testing.T) {
	store, mock := setupPostgresMock(t)

	mock.ExpectBegin()
	expectEnsureProfile(mock, 42, true)
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT pending_input FROM profiles WHERE user_id = $1`,
	)).WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"pending_input"}).AddRow(""))
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT tag FROM profile_languages WHERE user_id = $1 ORDER BY position`,
	)).WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"tag"}).AddRow("english"))
	mock.ExpectQuery(`SELECT f.name AS name, COUNT\(e.id\) AS entries`).
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "entries"}))
	mock.ExpectCommit()

	snap, err := store.GetOrCreate(context.Background(), 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), snap.UserID)
	assert.Equal(t, []charset.Tag{charset.English}, snap.Languages)
	assert.Empty(t, snap.Folders)
	assert.Equal(t, PendingNone, snap.Pending)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateFolder(t *testing.T) {
	store, mock := setupPostgresMock(t)

	mock.ExpectBegin()
	expectEnsureProfile(mock, 7, false)
	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO folders (id, user_id, name, created_at) VALUES ($1, $2, $3, $4)`,
	)).WithArgs(sqlmock.AnyArg(), int64(7), "Games", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, store.CreateFolder(context.Background(), 7, "Games"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresCreateFolderDuplicate(t *testing.T) {
	store, mock := setupPostgresMock(t)

	mock.ExpectBegin()
	expectEnsureProfile(mock, 7, false)
	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO folders (id, user_id, name, created_at) VALUES ($1, $2, $3, $4)`,
	)).WithArgs(sqlmock.AnyArg(), int64(7), "Games", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: pgUniqueViolation})
	mock.ExpectRollback()

	err := store.CreateFolder(context.Background(), 7, "Games")
	assert.ErrorIs(t, err, ErrDuplicateFolder)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSaveToFolderNotFound(t *testing.T) {
	store, mock := setupPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id FROM folders WHERE user_id = $1 AND name = $2`,
	)).WithArgs(int64(7), "Casinos").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := store.SaveToFolder(context.Background(), 7, "Casinos", "secret")
	assert.ErrorIs(t, err, ErrFolderNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresSaveToFolder(t *testing.T) {
	store, mock := setupPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id FROM folders WHERE user_id = $1 AND name = $2`,
	)).WithArgs(int64(7), "Games").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("f0a6e41e-7e3c-4dc1-9a5b-1d2f3a4b5c6d"))
	mock.ExpectExec(regexp.QuoteMeta(
		`INSERT INTO folder_entries (id, folder_id, password, created_at) VALUES ($1, $2, $3, $4)`,
	)).WithArgs(sqlmock.AnyArg(), "f0a6e41e-7e3c-4dc1-9a5b-1d2f3a4b5c6d", "Abc123!!", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	entry, err := store.SaveToFolder(context.Background(), 7, "Games", "Abc123!!")
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.Equal(t, "Abc123!!", entry.Password)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresToggleLanguageAdds(t *testing.T) {
	store, mock := setupPostgresMock(t)

	mock.ExpectBegin()
	expectEnsureProfile(mock, 9, false)
	mock.ExpectExec(regexp.QuoteMeta(
		`DELETE FROM profile_languages WHERE user_id = $1 AND tag = $2`,
	)).WithArgs(int64(9), "greek").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO profile_languages`).
		WithArgs(int64(9), "greek").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT tag FROM profile_languages WHERE user_id = $1 ORDER BY position`,
	)).WithArgs(int64(9)).
		WillReturnRows(sqlmock.NewRows([]string{"tag"}).AddRow("english").AddRow("greek"))
	mock.ExpectCommit()

	added, langs, err := store.ToggleLanguage(context.Background(), 9, charset.Greek)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []charset.Tag{charset.English, charset.Greek}, langs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresConsumePendingInput(t *testing.T) {
	store, mock := setupPostgresMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT pending_input FROM profiles WHERE user_id = $1 FOR UPDATE`,
	)).WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"pending_input"}).AddRow("folder_name"))
	mock.ExpectExec(regexp.QuoteMeta(
		`UPDATE profiles SET pending_input = '' WHERE user_id = $1`,
	)).WithArgs(int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	p, err := store.ConsumePendingInput(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, PendingFolderName, p)
	assert.NoError(t, mock.ExpectationsWereMet())
}
