package index

import (
	"math/rand"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompactSet_AddReportsNewness(t *testing.T) {
	s := NewCompactSet(4)

	assert.True(t, s.Add(5))
	assert.False(t, s.Add(5), "duplicate while buffered")
	assert.True(t, s.Add(1))
	assert.True(t, s.Add(3))
	assert.Equal(t, 3, s.Buffered())

	assert.True(t, s.Add(2)) // fills the buffer and triggers compaction
	assert.Equal(t, 0, s.Buffered())
	assert.False(t, s.Add(3), "duplicate after compaction")
	assert.Equal(t, 4, s.Len())
}

func TestCompactSet_Contains(t *testing.T) {
	s := NewCompactSet(3)
	for _, id := range []DocID{10, 20, 30, 40} {
		s.Add(id)
	}
	// 10, 20, 30 compacted; 40 still buffered
	assert.Equal(t, 1, s.Buffered())

	for _, id := range []DocID{10, 20, 30, 40} {
		assert.True(t, s.Contains(id), "id %d", id)
	}
	for _, id := range []DocID{0, 15, 41} {
		assert.False(t, s.Contains(id), "id %d", id)
	}
}

func TestCompactSet_IterateSortsAndCompacts(t *testing.T) {
	s := NewCompactSet(DefaultBufferCapacity)
	for _, id := range []DocID{9, 2, 7, 2, 5} {
		s.Add(id)
	}
	assert.Equal(t, 4, s.Buffered())

	assert.Equal(t, []DocID{2, 5, 7, 9}, s.Iterate())
	assert.Equal(t, 0, s.Buffered())

	s.Add(1)
	assert.Equal(t, []DocID{1, 2, 5, 7, 9}, s.Iterate())
	assert.Equal(t, []DocID{1, 2, 5, 7, 9}, s.Iterate(), "restartable")
}

func TestCompactSet_EmptyIterate(t *testing.T) {
	s := NewCompactSet(0)
	assert.Empty(t, s.Iterate())
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, DefaultBufferCapacity, s.BufferCapacity())
}

func TestCompactSet_SetBufferCapacity(t *testing.T) {
	s := NewCompactSet(100)
	for id := DocID(0); id < 10; id++ {
		s.Add(id)
	}
	require.Equal(t, 10, s.Buffered())

	s.SetBufferCapacity(5)
	assert.Equal(t, 0, s.Buffered())
	assert.Equal(t, 10, s.Len())
	assert.Equal(t, 5, s.BufferCapacity())
}

// Any insertion order, duplicates and compaction timing must yield exactly
// the distinct ids, ascending.
func TestCompactSet_EquivalentToReference(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, capacity := range []int{1, 2, 7, 64, DefaultBufferCapacity} {
		s := NewCompactSet(capacity)
		ref := map[DocID]struct{}{}

		for i := 0; i < 5000; i++ {
			id := DocID(rng.Intn(2000))
			_, existed := ref[id]
			ref[id] = struct{}{}

			if added := s.Add(id); added == existed {
				t.Fatalf("capacity %d: Add(%d) = %v, existed %v", capacity, id, added, existed)
			}
			if i%997 == 0 {
				_ = s.Iterate()
			}
		}

		want := make([]DocID, 0, len(ref))
		for id := range ref {
			want = append(want, id)
		}
		slices.Sort(want)

		assert.Equal(t, len(want), s.Len(), "capacity %d", capacity)
		assert.Equal(t, want, s.Iterate(), "capacity %d", capacity)
	}
}

func TestPostingStores_SameBehaviour(t *testing.T) {
	kinds := []StoreKind{StoreCompact, StoreMap, StoreRoaring}
	ids := []DocID{7, 3, 3, 100000, 0, 7, 42}

	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			factory, err := NewStoreFactory(kind, 2)
			require.NoError(t, err)
			s := factory()

			added := 0
			for _, id := range ids {
				if s.Add(id) {
					added++
				}
			}
			assert.Equal(t, 5, added)
			assert.Equal(t, 5, s.Len())
			assert.True(t, s.Contains(100000))
			assert.False(t, s.Contains(1))
			assert.Equal(t, []DocID{0, 3, 7, 42, 100000}, s.Iterate())
		})
	}
}

func TestNewStoreFactory_UnknownKind(t *testing.T) {
	_, err := NewStoreFactory("btree", 0)
	assert.Error(t, err)
}

func BenchmarkCompactSet_Add(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	ids := make([]DocID, b.N)
	for i := range ids {
		ids[i] = DocID(rng.Intn(1 << 20))
	}
	s := NewCompactSet(DefaultBufferCapacity)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		s.Add(ids[i])
	}
}
