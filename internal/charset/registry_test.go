package charset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistryTags(t *testing.T) {
	reg := Default()

	want := []Tag{English, Russian, Greek, Arabic, Japanese, Math, Currency, Arrows}
	assert.Equal(t, want, reg.Tags())
	assert.Equal(t, 8, reg.Len())

	for _, tag := range want {
		assert.NotEmpty(t, reg.Charset(tag), "charset for %s", tag)
		assert.True(t, reg.Has(tag))
	}
}

func TestDefaultRegistryEnglishContents(t *testing.T) {
	set := Default().Charset(English)
	require.Len(t, set, 52+10+26)

	members := make(map[rune]struct{}, len(set))
	for _, r := range set {
		members[r] = struct{}{}
	}
	for _, r := range "aZ0!?@" {
		_, ok := members[r]
		assert.True(t, ok, "expected %q in english charset", r)
	}
}

func TestUnknownTagYieldsEmptyCharset(t *testing.T) {
	reg := Default()
	assert.Empty(t, reg.Charset("klingon"))
	assert.False(t, reg.Has("klingon"))
}

func TestNewSkipsEmptyAndDuplicatePairs(t *testing.T) {
	reg := New(
		Pair{English, "abc"},
		Pair{Russian, ""},
		Pair{English, "xyz"},
	)

	assert.Equal(t, []Tag{English}, reg.Tags())
	assert.Equal(t, []rune("abc"), reg.Charset(English))
}

func TestTagsReturnsCopy(t *testing.T) {
	reg := New(Pair{English, "abc"}, Pair{Greek, "αβ"})
	tags := reg.Tags()
	tags[0] = "mutated"
	assert.Equal(t, []Tag{English, Greek}, reg.Tags())
}
