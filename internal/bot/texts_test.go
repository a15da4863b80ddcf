package bot

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babelpass/babelpass/internal/charset"
	"github.com/babelpass/babelpass/internal/profile"
)

func TestParseLength(t *testing.T) {
	cases := []struct {
		in   string
		want int
		ok   bool
	}{
		{"16", 16, true},
		{" 12 ", 12, true},
		{"1", 1, true},
		{"128", 128, true},
		{"0", 0, false},
		{"129", 0, false},
		{"-5", 0, false},
		{"abc", 0, false},
		{"12.5", 0, false},
		{"", 0, false},
	}
	for _, tc := range cases {
		got, ok := parseLength(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		assert.Equal(t, tc.want, got, "input %q", tc.in)
	}
}

func TestLanguagesLine(t *testing.T) {
	assert.Equal(t, "English, Russian", languagesLine([]charset.Tag{charset.English, charset.Russian}))
	// Empty selection renders the implicit english fallback.
	assert.Equal(t, "English", languagesLine(nil))
}

func TestTagLabel(t *testing.T) {
	assert.Equal(t, "Greek", tagLabel(charset.Greek))
	assert.Equal(t, "", tagLabel(charset.Tag("")))
}

func TestToggleText(t *testing.T) {
	added := toggleText(charset.Greek, true, []charset.Tag{charset.English, charset.Greek})
	assert.Contains(t, added, "✅ Added")
	assert.Contains(t, added, "*Greek*")
	assert.Contains(t, added, "English, Greek")

	removed := toggleText(charset.Greek, false, []charset.Tag{charset.English})
	assert.Contains(t, removed, "❌ Removed")
}

func TestPasswordTexts(t *testing.T) {
	text := mixedPasswordText("пароль∞", 7, []charset.Tag{charset.Russian, charset.Math})
	assert.Contains(t, text, "`пароль∞`")
	assert.Contains(t, text, "7 characters")
	assert.Contains(t, text, "Russian, Math")

	text = selectedPasswordText("abc", 3, []charset.Tag{charset.English})
	assert.Contains(t, text, "`abc`")
	assert.Contains(t, text, "English")
}

func TestFolderEntriesText(t *testing.T) {
	empty := folderEntriesText("Games", nil)
	assert.Contains(t, empty, "*Games*")
	assert.Contains(t, empty, "folder is empty")

	full := folderEntriesText("Games", []profile.Entry{
		{ID: "a", Password: "p1"},
		{ID: "b", Password: "p2"},
	})
	assert.Contains(t, full, "(2 passwords)")
	assert.Contains(t, full, "1. `p1`")
	assert.Contains(t, full, "2. `p2`")
}

func TestWelcomeTextEscapesName(t *testing.T) {
	text := welcomeText("a_user*")
	assert.Contains(t, text, `a\_user\*`)

	// Missing first name still produces a greeting.
	assert.Contains(t, welcomeText(""), "Hi, there!")
}

func TestMarkupLayouts(t *testing.T) {
	reg := charset.Default()

	m := languageSettingsMarkup(reg.Tags())
	// 8 tags packed two per row, plus auto-mix and back rows.
	require.Len(t, m.InlineKeyboard, 6)
	assert.Len(t, m.InlineKeyboard[0], 2)

	folders := foldersMarkup([]profile.FolderInfo{
		{Name: "Games", Entries: 2},
		{Name: "Banks", Entries: 0},
	})
	require.Len(t, folders.InlineKeyboard, 4)
	assert.Contains(t, folders.InlineKeyboard[0][0].Text, "Games")
	assert.Contains(t, folders.InlineKeyboard[0][0].Text, "(2 passwords)")

	empty := foldersMarkup(nil)
	require.Len(t, empty.InlineKeyboard, 1)
}
