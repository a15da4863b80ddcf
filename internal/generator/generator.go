// Package generator produces passwords over the charset registry.
//
// Two modes exist on purpose and weigh languages differently: Generate draws
// from one concatenated pool (bigger alphabets dominate proportionally),
// GenerateMixed gives every selected language the same per-character
// probability. Unifying them would change observable password statistics.
package generator

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/babelpass/babelpass/internal/charset"
)

// ErrInvalidLength reports a non-positive requested password length.
var ErrInvalidLength = errors.New("generator: password length must be at least 1")

const (
	// DefaultMinLength and DefaultMaxLength bound the length picked when the
	// user does not request one explicitly.
	DefaultMinLength = 12
	DefaultMaxLength = 16

	// MaxLength caps user-requested lengths.
	MaxLength = 128
)

// Source supplies random integers. *rand.Rand satisfies it; the default
// implementation delegates to math/rand/v2 package-level functions, which
// are safe for concurrent use.
type Source interface {
	IntN(n int) int
}

type globalSource struct{}

func (globalSource) IntN(n int) int { return rand.IntN(n) }

// Generator builds passwords from a charset registry and a random source.
type Generator struct {
	reg *charset.Registry
	src Source

	minLen int
	maxLen int
}

// Option customises a Generator.
type Option func(*Generator)

// WithSource replaces the random source, mainly for deterministic tests.
func WithSource(src Source) Option {
	return func(g *Generator) {
		if src != nil {
			g.src = src
		}
	}
}

// WithDefaultLengthRange overrides the [min, max] default length range.
// Invalid ranges are ignored.
func WithDefaultLengthRange(min, max int) Option {
	return func(g *Generator) {
		if min >= 1 && max >= min {
			g.minLen = min
			g.maxLen = max
		}
	}
}

// New returns a Generator over reg. A nil registry is replaced with the
// default eight-category registry.
func New(reg *charset.Registry, opts ...Option) *Generator {
	if reg == nil {
		reg = charset.Default()
	}
	g := &Generator{
		reg:    reg,
		src:    globalSource{},
		minLen: DefaultMinLength,
		maxLen: DefaultMaxLength,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Registry exposes the registry the generator draws from.
func (g *Generator) Registry() *charset.Registry {
	return g.reg
}

// DefaultLength picks a length uniformly from the configured default range.
func (g *Generator) DefaultLength() int {
	return g.minLen + g.src.IntN(g.maxLen-g.minLen+1)
}

// Generate returns a password of exactly length runes drawn uniformly from
// the concatenation of the given tags' charsets. Unknown tags contribute
// nothing; when the pool ends up empty the english charset is used instead,
// so the pool is never empty. Duplicated tags weigh their alphabet twice.
func (g *Generator) Generate(length int, tags []charset.Tag) (string, error) {
	if length < 1 {
		return "", ErrInvalidLength
	}

	var pool []rune
	for _, tag := range tags {
		pool = append(pool, g.reg.Charset(tag)...)
	}
	if len(pool) == 0 {
		pool = g.reg.Charset(charset.English)
	}
	if len(pool) == 0 {
		return "", fmt.Errorf("generator: no usable charset for tags %v", tags)
	}

	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		b.WriteRune(pool[g.src.IntN(len(pool))])
	}
	return b.String(), nil
}

// GenerateMixed returns a password of exactly length runes built from 2-3
// randomly selected distinct tags. Each position first picks one of the
// selected tags uniformly, then one rune uniformly from that tag's charset,
// so every selected language is equally represented per character no matter
// its alphabet size. The tags actually used are returned in selection order.
func (g *Generator) GenerateMixed(length int) (string, []charset.Tag, error) {
	if length < 1 {
		return "", nil, ErrInvalidLength
	}

	available := g.reg.Tags()
	if len(available) == 0 {
		return "", nil, fmt.Errorf("generator: registry has no charsets")
	}

	k := 2 + g.src.IntN(2)
	if k > len(available) {
		k = len(available)
	}

	// Partial Fisher-Yates: the first k positions become the sample.
	for i := 0; i < k; i++ {
		j := i + g.src.IntN(len(available)-i)
		available[i], available[j] = available[j], available[i]
	}
	selected := available[:k]

	var b strings.Builder
	b.Grow(length)
	for i := 0; i < length; i++ {
		set := g.reg.Charset(selected[g.src.IntN(k)])
		b.WriteRune(set[g.src.IntN(len(set))])
	}
	return b.String(), selected, nil
}
