// Package charset holds the fixed alphabets passwords are generated from.
// Each alphabet is keyed by a Tag naming its writing system or symbol group.
package charset

// Tag identifies one of the registered character categories.
type Tag string

const (
	English  Tag = "english"
	Russian  Tag = "russian"
	Greek    Tag = "greek"
	Arabic   Tag = "arabic"
	Japanese Tag = "japanese"
	Math     Tag = "math"
	Currency Tag = "currency"
	Arrows   Tag = "arrows"
)

// Registry maps tags to their alphabets. The ordering of both the tag list
// and each alphabet is significant: generation draws by index and menus
// render tags in registration order.
type Registry struct {
	order []Tag
	sets  map[Tag][]rune
}

// New builds a registry from tag/alphabet pairs given in order.
// Pairs with an empty alphabet are skipped.
func New(pairs ...Pair) *Registry {
	r := &Registry{sets: make(map[Tag][]rune, len(pairs))}
	for _, p := range pairs {
		if len(p.Runes) == 0 {
			continue
		}
		if _, exists := r.sets[p.Tag]; exists {
			continue
		}
		r.order = append(r.order, p.Tag)
		r.sets[p.Tag] = []rune(p.Runes)
	}
	return r
}

// Pair couples a tag with its alphabet for registry construction.
type Pair struct {
	Tag   Tag
	Runes string
}

// Charset returns the alphabet registered for tag. Unknown tags yield an
// empty slice; callers treat that as "contributes nothing".
func (r *Registry) Charset(tag Tag) []rune {
	return r.sets[tag]
}

// Has reports whether tag is registered.
func (r *Registry) Has(tag Tag) bool {
	_, ok := r.sets[tag]
	return ok
}

// Tags returns all registered tags in registration order.
func (r *Registry) Tags() []Tag {
	return append([]Tag(nil), r.order...)
}

// Len returns the number of registered tags.
func (r *Registry) Len() int {
	return len(r.order)
}

const asciiLetters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Default returns the standard eight-category registry. The literal
// sequences must not be reordered or edited: they define the character
// distribution of every generated password.
func Default() *Registry {
	return New(
		Pair{English, asciiLetters + "0123456789" + "!@#$%^&*()_+-=[]{}|;:,.<>?"},
		Pair{Russian, "абвгдеёжзийклмнопрстуфхцчшщъыьэюяАБВГДЕЁЖЗИЙКЛМНОПРСТУФХЦЧШЩЪЫЬЭЮЯ"},
		Pair{Greek, "αβγδεζηθικλμνξοπρστυφχψωΑΒΓΔΕΖΗΘΙΚΛΜΝΞΟΠΡΣΤΥΦΧΨΩ"},
		Pair{Arabic, "ءآأؤإئابةتثجحخدذرزسشصضطظعغفقكلمنهوىي"},
		Pair{Japanese, "あいうえおかきくけこさしすせそたちつてとなにぬねのはひふへほまみむめもやゆよらりるれろわをん"},
		Pair{Math, "∀∁∂∃∄∅∆∇∈∉∊∋∌∍∎∏∐∑−∓∔∕∖∗∘∙√∛∜∝∞∟∠∡∢∣∤∥∦∧∨∩∪∫∬∭∮∯"},
		Pair{Currency, "€£¥¢$₽₹₩₺₴₸₼₿"},
		Pair{Arrows, "←↑→↓↔↕↖↗↘↙"},
	)
}
