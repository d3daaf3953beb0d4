package dataset

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-instant-search/internal/normalize"
	"github.com/gcbaptista/go-instant-search/model"
)

func TestRandomStrings(t *testing.T) {
	docs := RandomStrings(100, 5, 15, 42)
	require.Len(t, docs, 100)

	for i, doc := range docs {
		assert.Equal(t, uint32(i), doc.ID)
		assert.GreaterOrEqual(t, len(doc.Value), 5)
		assert.LessOrEqual(t, len(doc.Value), 15)
		// Values are already canonical.
		assert.Equal(t, doc.Value, string(normalize.Normalize(doc.Value)))
	}
}

func TestRandomStrings_Deterministic(t *testing.T) {
	assert.Equal(t, RandomStrings(20, 15, 15, 7), RandomStrings(20, 15, 15, 7))
	assert.NotEqual(t, RandomStrings(20, 15, 15, 7), RandomStrings(20, 15, 15, 8))
}

func TestRandomStrings_EdgeCases(t *testing.T) {
	assert.Empty(t, RandomStrings(0, 1, 2, 1))
	assert.Empty(t, RandomStrings(-3, 1, 2, 1))

	docs := RandomStrings(3, 10, 4, 1)
	for _, doc := range docs {
		assert.Len(t, doc.Value, 10)
	}
}

func TestLoadLines(t *testing.T) {
	input := "first line\n\n  second line  \r\nthird\n"
	docs, err := LoadLines(strings.NewReader(input), 100)
	require.NoError(t, err)

	assert.Equal(t, []model.Document{
		model.NewDocument(100, "first line"),
		model.NewDocument(101, "second line"),
		model.NewDocument(102, "third"),
	}, docs)
}

func TestLoadLines_Empty(t *testing.T) {
	docs, err := LoadLines(strings.NewReader(""), 0)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("read failure")
}

func TestLoadLines_ReadError(t *testing.T) {
	_, err := LoadLines(failingReader{}, 0)
	assert.Error(t, err)
}
