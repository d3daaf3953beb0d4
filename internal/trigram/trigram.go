// Package trigram encodes three-character windows of canonical text as
// dense integer ordinals.
//
// Only the 36 symbols 0-9 and a-z survive normalization, so there are
// 36^3 = 46656 possible trigrams. That fits in a uint16, which keeps the
// per-ordinal tables of the index small and directly addressable.
package trigram

import (
	"math"
	"sort"

	"github.com/gcbaptista/go-instant-search/internal/errors"
	"github.com/gcbaptista/go-instant-search/internal/normalize"
)

const (
	// Alphabet lists the canonical symbols in digit order.
	Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	// Base is the number of canonical symbols.
	Base = len(Alphabet)
	// Space is the number of distinct trigram ordinals.
	Space = Base * Base * Base
)

// Trigram is the ordinal of a three-symbol window, in [0, Space).
type Trigram uint16

// Invalid marks an absent trigram. It lies outside [0, Space).
const Invalid Trigram = math.MaxUint16

// Digit converts a canonical byte into its base-36 digit.
func Digit(b byte) (int, error) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), nil
	case b >= 'a' && b <= 'z':
		return int(b-'a') + 10, nil
	default:
		return 0, errors.NewInvalidSymbolError(b)
	}
}

// Encode packs three canonical bytes into a Trigram.
func Encode(c0, c1, c2 byte) (Trigram, error) {
	d0, err := Digit(c0)
	if err != nil {
		return Invalid, err
	}
	d1, err := Digit(c1)
	if err != nil {
		return Invalid, err
	}
	d2, err := Digit(c2)
	if err != nil {
		return Invalid, err
	}
	return Trigram(d0*Base*Base + d1*Base + d2), nil
}

// FromOrdinal validates an ordinal and wraps it. The Invalid sentinel is not
// accepted here; use the constant directly.
func FromOrdinal(ordinal int) (Trigram, error) {
	if ordinal < 0 || ordinal >= Space {
		return Invalid, errors.NewInvalidOrdinalError(ordinal)
	}
	return Trigram(ordinal), nil
}

// Ordinal returns the trigram as an int, suitable for table indexing.
func (t Trigram) Ordinal() int {
	return int(t)
}

// Valid reports whether t is a real trigram rather than the sentinel.
func (t Trigram) Valid() bool {
	return int(t) < Space
}

// Decode returns the three canonical bytes of t. Decoding Invalid yields "???".
func (t Trigram) Decode() (byte, byte, byte) {
	if !t.Valid() {
		return '?', '?', '?'
	}
	o := int(t)
	return Alphabet[o/(Base*Base)%Base], Alphabet[o/Base%Base], Alphabet[o%Base]
}

func (t Trigram) String() string {
	c0, c1, c2 := t.Decode()
	return string([]byte{c0, c1, c2})
}

// Set is a set of trigrams. Duplicates collapse.
type Set map[Trigram]struct{}

// NewSet returns an empty set.
func NewSet() Set {
	return make(Set)
}

// Add inserts t.
func (s Set) Add(t Trigram) {
	s[t] = struct{}{}
}

// Contains reports whether t is in the set.
func (s Set) Contains(t Trigram) bool {
	_, ok := s[t]
	return ok
}

// Len returns the number of distinct trigrams.
func (s Set) Len() int {
	return len(s)
}

// Sorted returns the members in ascending ordinal order.
func (s Set) Sorted() []Trigram {
	out := make([]Trigram, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// AppendWord adds every sliding window of width 3 in a normalized word to s.
// Words shorter than three bytes contribute nothing.
func AppendWord(s Set, word []byte) error {
	for start := 0; start+3 <= len(word); start++ {
		t, err := Encode(word[start], word[start+1], word[start+2])
		if err != nil {
			return err
		}
		s.Add(t)
	}
	return nil
}

// Extract splits text into whitespace-delimited words, normalizes each one
// and pools their trigrams. Trigrams never span a word boundary.
func Extract(text string) (Set, error) {
	set := NewSet()
	for _, word := range normalize.Words(text) {
		if err := AppendWord(set, normalize.Normalize(word)); err != nil {
			return nil, err
		}
	}
	return set, nil
}
