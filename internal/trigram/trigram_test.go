package trigram

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalErrors "github.com/gcbaptista/go-instant-search/internal/errors"
)

func toStrings(ts []Trigram) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.String()
	}
	return out
}

func TestEncodeDecode_AllTriples(t *testing.T) {
	for i := 0; i < Base; i++ {
		for j := 0; j < Base; j++ {
			for k := 0; k < Base; k++ {
				c0, c1, c2 := Alphabet[i], Alphabet[j], Alphabet[k]
				tri, err := Encode(c0, c1, c2)
				require.NoError(t, err)

				d0, d1, d2 := tri.Decode()
				if d0 != c0 || d1 != c1 || d2 != c2 {
					t.Fatalf("decode(encode(%c%c%c)) = %c%c%c", c0, c1, c2, d0, d1, d2)
				}
			}
		}
	}
}

func TestOrdinalRoundTrip(t *testing.T) {
	for o := 0; o < Space; o++ {
		tri, err := FromOrdinal(o)
		require.NoError(t, err)

		c0, c1, c2 := tri.Decode()
		back, err := Encode(c0, c1, c2)
		require.NoError(t, err)
		if back.Ordinal() != o {
			t.Fatalf("encode(decode(%d)) = %d", o, back.Ordinal())
		}
	}
}

func TestEncode_Bounds(t *testing.T) {
	lo, err := Encode('0', '0', '0')
	require.NoError(t, err)
	assert.Equal(t, 0, lo.Ordinal())

	hi, err := Encode('z', 'z', 'z')
	require.NoError(t, err)
	assert.Equal(t, Space-1, hi.Ordinal())
	assert.Equal(t, 46655, hi.Ordinal())

	mid, err := Encode('a', '1', 'b')
	require.NoError(t, err)
	assert.Equal(t, 10*36*36+1*36+11, mid.Ordinal())
	assert.Equal(t, "a1b", mid.String())
}

func TestEncode_InvalidSymbol(t *testing.T) {
	for _, b := range []byte{'A', 'Z', ' ', '-', 0xe9, '{', '/'} {
		_, err := Encode('a', b, 'c')
		require.Error(t, err)
		assert.True(t, errors.Is(err, internalErrors.ErrInvalidSymbol), "byte %q", b)
	}
}

func TestFromOrdinal_Invalid(t *testing.T) {
	for _, o := range []int{-1, Space, Space + 1, int(Invalid)} {
		tri, err := FromOrdinal(o)
		require.Error(t, err)
		assert.True(t, errors.Is(err, internalErrors.ErrInvalidOrdinal))
		assert.Equal(t, Invalid, tri)
	}
}

func TestInvalidSentinel(t *testing.T) {
	assert.False(t, Invalid.Valid())
	assert.Equal(t, "???", Invalid.String())
	assert.GreaterOrEqual(t, int(Invalid), Space)
}

func TestAppendWord(t *testing.T) {
	tests := []struct {
		name string
		word string
		want []string
	}{
		{"empty", "", []string{}},
		{"two bytes", "ab", []string{}},
		{"exactly three", "abc", []string{"abc"}},
		{"asdf", "asdf", []string{"asd", "sdf"}},
		{"repeated collapses", "zzzzz", []string{"zzz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSet()
			require.NoError(t, AppendWord(s, []byte(tt.word)))
			assert.ElementsMatch(t, tt.want, toStrings(s.Sorted()))
		})
	}
}

func TestAppendWord_RejectsRawInput(t *testing.T) {
	err := AppendWord(NewSet(), []byte("aB c"))
	assert.True(t, errors.Is(err, internalErrors.ErrInvalidSymbol))
}

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", []string{}},
		{"short words only", "ab cd", []string{}},
		{"no cross-word trigrams", "ab cd ef", []string{}},
		{"query from scenario", "zzzzz qwer", []string{"zzz", "qwe", "wer"}},
		{"normalized per word", "Café-au lait", []string{"caf", "afe", "fea", "eau", "lai", "ait"}},
		{"duplicates collapse across words", "abcd abcd", []string{"abc", "bcd"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Extract(tt.text)
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, toStrings(s.Sorted()))
		})
	}
}

func TestSetSorted(t *testing.T) {
	s := NewSet()
	for _, w := range []string{"zzz", "aaa", "m0m"} {
		tri, err := Encode(w[0], w[1], w[2])
		require.NoError(t, err)
		s.Add(tri)
	}
	assert.Equal(t, []string{"aaa", "m0m", "zzz"}, toStrings(s.Sorted()))
	assert.Equal(t, 3, s.Len())
}
