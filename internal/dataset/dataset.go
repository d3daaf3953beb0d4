// Package dataset builds document corpora for seeding and benchmarking indexes.
package dataset

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"strings"

	"github.com/gcbaptista/go-instant-search/internal/trigram"
	"github.com/gcbaptista/go-instant-search/model"
)

// maxLineBytes bounds a single line read by LoadLines.
const maxLineBytes = 1 << 20

// RandomStrings returns n documents with ids 0..n-1 whose values are random
// strings over the trigram alphabet, each between minLen and maxLen bytes.
// The same seed always yields the same corpus.
func RandomStrings(n, minLen, maxLen int, seed int64) []model.Document {
	if n <= 0 {
		return []model.Document{}
	}
	if minLen < 0 {
		minLen = 0
	}
	if maxLen < minLen {
		maxLen = minLen
	}

	rng := rand.New(rand.NewSource(seed))
	docs := make([]model.Document, n)
	buf := make([]byte, maxLen)
	for i := range docs {
		length := minLen + rng.Intn(maxLen-minLen+1)
		for j := 0; j < length; j++ {
			buf[j] = trigram.Alphabet[rng.Intn(trigram.Base)]
		}
		docs[i] = model.NewDocument(uint32(i), string(buf[:length]))
	}
	return docs
}

// LoadLines reads one document per non-blank line of r, numbering them
// consecutively from firstID. Surrounding whitespace is trimmed.
func LoadLines(r io.Reader, firstID uint32) ([]model.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	docs := make([]model.Document, 0)
	id := firstID
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		docs = append(docs, model.NewDocument(id, line))
		id++
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read documents after %d documents: %w", len(docs), err)
	}
	return docs, nil
}
