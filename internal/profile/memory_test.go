package profile

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babelpass/babelpass/internal/charset"
)

func TestGetOrCreateDefaults(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	snap, err := store.GetOrCreate(ctx, 42)
	require.NoError(t, err)

	assert.Equal(t, int64(42), snap.UserID)
	assert.Equal(t, []charset.Tag{charset.English}, snap.Languages)
	assert.Empty(t, snap.Folders)
	assert.Equal(t, PendingNone, snap.Pending)
}

func TestToggleLanguage(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	added, langs, err := store.ToggleLanguage(ctx, 1, charset.Greek)
	require.NoError(t, err)
	assert.True(t, added)
	assert.Equal(t, []charset.Tag{charset.English, charset.Greek}, langs)

	// Toggling the same tag twice restores the previous membership.
	removed, langs, err := store.ToggleLanguage(ctx, 1, charset.Greek)
	require.NoError(t, err)
	assert.False(t, removed)
	assert.Equal(t, []charset.Tag{charset.English}, langs)

	// The default language can be toggled off, leaving an empty selection.
	_, langs, err = store.ToggleLanguage(ctx, 1, charset.English)
	require.NoError(t, err)
	assert.Empty(t, langs)
}

func TestToggleUnknownTagIsAllowed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	added, langs, err := store.ToggleLanguage(ctx, 1, "klingon")
	require.NoError(t, err)
	assert.True(t, added)
	assert.Contains(t, langs, charset.Tag("klingon"))
}

func TestCreateFolderDuplicate(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.CreateFolder(ctx, 7, "Games"))
	_, err := store.SaveToFolder(ctx, 7, "Games", "Abc123!!")
	require.NoError(t, err)

	err = store.CreateFolder(ctx, 7, "Games")
	assert.ErrorIs(t, err, ErrDuplicateFolder)

	// Failed create must not touch the existing folder.
	infos, err := store.ListFolders(ctx, 7)
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, FolderInfo{Name: "Games", Entries: 1}, infos[0])
}

func TestFolderNamesAreCaseSensitive(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	require.NoError(t, store.CreateFolder(ctx, 7, "Games"))
	require.NoError(t, store.CreateFolder(ctx, 7, "games"))

	infos, err := store.ListFolders(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, infos, 2)
}

func TestSaveToFolderAndListEntries(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, err := store.SaveToFolder(ctx, 9, "Banks", "secret")
	assert.ErrorIs(t, err, ErrFolderNotFound)

	require.NoError(t, store.CreateFolder(ctx, 9, "Banks"))
	entry, err := store.SaveToFolder(ctx, 9, "Banks", "Abc123!!")
	require.NoError(t, err)
	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.CreatedAt.IsZero())

	entries, err := store.ListEntries(ctx, 9, "Banks")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Abc123!!", entries[0].Password)

	_, err = store.ListEntries(ctx, 9, "Casinos")
	assert.ErrorIs(t, err, ErrFolderNotFound)
}

func TestFoldersListedInCreationOrder(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	for _, name := range []string{"Social", "Games", "Banks"} {
		require.NoError(t, store.CreateFolder(ctx, 3, name))
	}

	infos, err := store.ListFolders(ctx, 3)
	require.NoError(t, err)
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.Name
	}
	assert.Equal(t, []string{"Social", "Games", "Banks"}, names)
}

func TestPendingInputLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	p, err := store.ConsumePendingInput(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, PendingNone, p)

	require.NoError(t, store.SetPendingInput(ctx, 5, PendingFolderName))
	// A second set overwrites: there is no queue of pending requests.
	require.NoError(t, store.SetPendingInput(ctx, 5, PendingLength))

	p, err = store.PendingInput(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, PendingLength, p)

	p, err = store.ConsumePendingInput(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, PendingLength, p)

	p, err = store.PendingInput(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, PendingNone, p)
}

func TestLastGenerated(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	_, ok, err := store.LastGenerated(ctx, 11)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.SetLastGenerated(ctx, 11, "p@ssw0rd"))
	pw, ok, err := store.LastGenerated(ctx, 11)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "p@ssw0rd", pw)
}

func TestSnapshotIsDetached(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	snap, err := store.GetOrCreate(ctx, 2)
	require.NoError(t, err)
	snap.Languages[0] = "mutated"

	fresh, err := store.GetOrCreate(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []charset.Tag{charset.English}, fresh.Languages)
}

func TestConcurrentTogglesDoNotLoseUpdates(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	var wg sync.WaitGroup
	tags := []charset.Tag{charset.Russian, charset.Greek, charset.Arabic, charset.Math}
	for _, tag := range tags {
		wg.Add(1)
		go func(tag charset.Tag) {
			defer wg.Done()
			// An even number of toggles per tag nets out to no change.
			for i := 0; i < 100; i++ {
				_, _, _ = store.ToggleLanguage(ctx, 1, tag)
				_, _, _ = store.ToggleLanguage(ctx, 1, tag)
			}
		}(tag)
	}
	wg.Wait()

	snap, err := store.GetOrCreate(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []charset.Tag{charset.English}, snap.Languages)
}
