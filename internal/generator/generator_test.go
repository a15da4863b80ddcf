package generator

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babelpass/babelpass/internal/charset"
)

func newTestGenerator(reg *charset.Registry, seed uint64) *Generator {
	return New(reg, WithSource(rand.New(rand.NewPCG(seed, seed))))
}

func runeSet(runes []rune) map[rune]struct{} {
	set := make(map[rune]struct{}, len(runes))
	for _, r := range runes {
		set[r] = struct{}{}
	}
	return set
}

func TestGenerateLengthAndMembership(t *testing.T) {
	reg := charset.Default()
	g := newTestGenerator(reg, 1)

	cases := []struct {
		name   string
		length int
		tags   []charset.Tag
	}{
		{"single english", 12, []charset.Tag{charset.English}},
		{"two languages", 20, []charset.Tag{charset.Russian, charset.Greek}},
		{"symbols", 1, []charset.Tag{charset.Math, charset.Arrows, charset.Currency}},
		{"duplicate tags allowed", 16, []charset.Tag{charset.English, charset.English}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pw, err := g.Generate(tc.length, tc.tags)
			require.NoError(t, err)

			runes := []rune(pw)
			assert.Len(t, runes, tc.length)

			union := make(map[rune]struct{})
			for _, tag := range tc.tags {
				for r := range runeSet(reg.Charset(tag)) {
					union[r] = struct{}{}
				}
			}
			for _, r := range runes {
				_, ok := union[r]
				assert.True(t, ok, "rune %q outside requested charsets", r)
			}
		})
	}
}

func TestGenerateUnknownTagsFallBackToEnglish(t *testing.T) {
	reg := charset.Default()
	g := newTestGenerator(reg, 2)

	pw, err := g.Generate(24, []charset.Tag{"klingon", "elvish"})
	require.NoError(t, err)

	english := runeSet(reg.Charset(charset.English))
	for _, r := range pw {
		_, ok := english[r]
		assert.True(t, ok, "rune %q not in english fallback charset", r)
	}
}

func TestGenerateInvalidLength(t *testing.T) {
	g := newTestGenerator(charset.Default(), 3)

	_, err := g.Generate(0, []charset.Tag{charset.English})
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, err = g.Generate(-5, []charset.Tag{charset.English})
	assert.ErrorIs(t, err, ErrInvalidLength)

	_, _, err = g.GenerateMixed(0)
	assert.ErrorIs(t, err, ErrInvalidLength)
}

func TestGenerateMixed(t *testing.T) {
	reg := charset.Default()
	g := newTestGenerator(reg, 4)

	for i := 0; i < 100; i++ {
		pw, used, err := g.GenerateMixed(14)
		require.NoError(t, err)

		runes := []rune(pw)
		require.Len(t, runes, 14)
		require.True(t, len(used) == 2 || len(used) == 3, "selected %d tags", len(used))

		seen := make(map[charset.Tag]struct{}, len(used))
		union := make(map[rune]struct{})
		for _, tag := range used {
			_, dup := seen[tag]
			require.False(t, dup, "tag %s selected twice", tag)
			seen[tag] = struct{}{}
			require.True(t, reg.Has(tag))
			for r := range runeSet(reg.Charset(tag)) {
				union[r] = struct{}{}
			}
		}
		for _, r := range runes {
			_, ok := union[r]
			require.True(t, ok, "rune %q outside selected charsets %v", r, used)
		}
	}
}

func TestGenerateMixedClampsToRegistrySize(t *testing.T) {
	reg := charset.New(
		charset.Pair{Tag: charset.English, Runes: "ab"},
		charset.Pair{Tag: charset.Greek, Runes: "αβ"},
	)
	g := newTestGenerator(reg, 5)

	_, used, err := g.GenerateMixed(8)
	require.NoError(t, err)
	assert.Len(t, used, 2)
}

func TestGenerateDistributionNonDegenerate(t *testing.T) {
	reg := charset.New(charset.Pair{Tag: charset.English, Runes: "abc"})
	g := newTestGenerator(reg, 6)

	counts := make(map[rune]int)
	for i := 0; i < 1000; i++ {
		pw, err := g.Generate(5, []charset.Tag{charset.English})
		require.NoError(t, err)
		require.Len(t, []rune(pw), 5)
		for _, r := range pw {
			require.Contains(t, "abc", string(r))
			counts[r]++
		}
	}
	for _, r := range "abc" {
		assert.Positive(t, counts[r], "character %q never produced", r)
	}
}

func TestDefaultLength(t *testing.T) {
	g := newTestGenerator(charset.Default(), 7)
	for i := 0; i < 200; i++ {
		n := g.DefaultLength()
		assert.GreaterOrEqual(t, n, DefaultMinLength)
		assert.LessOrEqual(t, n, DefaultMaxLength)
	}

	fixed := New(charset.Default(),
		WithSource(rand.New(rand.NewPCG(8, 8))),
		WithDefaultLengthRange(10, 10),
	)
	assert.Equal(t, 10, fixed.DefaultLength())
}
