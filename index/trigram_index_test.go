package index

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gcbaptista/go-instant-search/internal/trigram"
)

func mustTrigram(t *testing.T, s string) trigram.Trigram {
	t.Helper()
	tri, err := trigram.Encode(s[0], s[1], s[2])
	require.NoError(t, err)
	return tri
}

func TestTrigramIndex_InsertAndCount(t *testing.T) {
	ti := NewTrigramIndex(nil)
	abc := mustTrigram(t, "abc")

	assert.Nil(t, ti.Postings(abc))
	assert.Equal(t, 0, ti.Count(abc))

	assert.True(t, ti.Insert(abc, 1))
	assert.True(t, ti.Insert(abc, 2))
	assert.False(t, ti.Insert(abc, 1))
	assert.Equal(t, 0, ti.Count(abc), "count refreshes lazily")

	ti.RefreshCount(abc)
	assert.Equal(t, 2, ti.Count(abc))
	assert.True(t, ti.Contains(abc, 2))
	assert.False(t, ti.Contains(abc, 3))
	assert.Equal(t, 1, ti.Vocabulary())
	assert.Equal(t, 2, ti.TotalPostings())
}

func TestTrigramIndex_InvalidTrigram(t *testing.T) {
	ti := NewTrigramIndex(nil)

	assert.False(t, ti.Insert(trigram.Invalid, 1))
	ti.RefreshCount(trigram.Invalid)
	assert.Equal(t, 0, ti.Count(trigram.Invalid))
	assert.Nil(t, ti.Postings(trigram.Invalid))
	assert.False(t, ti.Contains(trigram.Invalid, 1))
}

func TestTrigramIndex_CountInvariant(t *testing.T) {
	for _, kind := range []StoreKind{StoreCompact, StoreMap, StoreRoaring} {
		t.Run(string(kind), func(t *testing.T) {
			factory, err := NewStoreFactory(kind, 8)
			require.NoError(t, err)
			ti := NewTrigramIndex(factory)

			rng := rand.New(rand.NewSource(7))
			for i := 0; i < 3000; i++ {
				tri := trigram.Trigram(rng.Intn(50))
				ti.Insert(tri, DocID(rng.Intn(300)))
				ti.RefreshCount(tri)
			}

			for o := 0; o < trigram.Space; o++ {
				tri := trigram.Trigram(o)
				store := ti.Postings(tri)
				if store == nil {
					require.Equal(t, 0, ti.Count(tri))
					continue
				}
				require.Equal(t, store.Len(), ti.Count(tri), "ordinal %d", o)
			}
		})
	}
}

func TestTrigramIndex_PostingBytes(t *testing.T) {
	abc := mustTrigram(t, "abc")
	xyz := mustTrigram(t, "xyz")

	tests := []struct {
		kind      StoreKind
		wantBytes bool
	}{
		{StoreCompact, true},
		{StoreRoaring, true},
		{StoreMap, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			factory, err := NewStoreFactory(tt.kind, 4)
			require.NoError(t, err)
			ti := NewTrigramIndex(factory)
			assert.Zero(t, ti.PostingBytes())

			for id := DocID(0); id < 10; id++ {
				ti.Insert(abc, id)
				ti.Insert(xyz, id*1000)
			}

			if tt.wantBytes {
				assert.Positive(t, ti.PostingBytes())
			} else {
				assert.Zero(t, ti.PostingBytes())
			}
		})
	}
}
