package index

import (
	"github.com/gcbaptista/go-instant-search/internal/trigram"
)

// TrigramIndex maps every possible trigram ordinal to the posting store of
// documents containing it, alongside a table of posting-store sizes.
//
// Both tables are sized to the full ordinal space and indexed directly, so
// Count is an O(1) array read: the query planner learns a trigram's
// selectivity without touching its posting store.
//
// TrigramIndex does no locking. Callers serialize access; note that
// iterating a CompactSet compacts it, so even reads mutate.
type TrigramIndex struct {
	postings [trigram.Space]PostingStore
	counts   [trigram.Space]int
	newStore StoreFactory
}

// NewTrigramIndex creates an empty index whose posting stores come from factory.
func NewTrigramIndex(factory StoreFactory) *TrigramIndex {
	if factory == nil {
		factory = func() PostingStore { return NewCompactSet(DefaultBufferCapacity) }
	}
	return &TrigramIndex{newStore: factory}
}

// Insert adds id to the posting store of t, allocating the store on first use.
// It does not update the count table; call RefreshCount once all inserts for
// a document are done.
func (ti *TrigramIndex) Insert(t trigram.Trigram, id DocID) bool {
	if !t.Valid() {
		return false
	}
	store := ti.postings[t]
	if store == nil {
		store = ti.newStore()
		ti.postings[t] = store
	}
	return store.Add(id)
}

// RefreshCount syncs the count table entry for t with its posting store size.
func (ti *TrigramIndex) RefreshCount(t trigram.Trigram) {
	if !t.Valid() {
		return
	}
	if store := ti.postings[t]; store != nil {
		ti.counts[t] = store.Len()
	}
}

// Count returns the number of documents containing t. Invalid trigrams count zero.
func (ti *TrigramIndex) Count(t trigram.Trigram) int {
	if !t.Valid() {
		return 0
	}
	return ti.counts[t]
}

// Postings returns the posting store for t, or nil if t was never indexed.
func (ti *TrigramIndex) Postings(t trigram.Trigram) PostingStore {
	if !t.Valid() {
		return nil
	}
	return ti.postings[t]
}

// Contains reports whether document id contains trigram t.
func (ti *TrigramIndex) Contains(t trigram.Trigram, id DocID) bool {
	store := ti.Postings(t)
	return store != nil && store.Contains(id)
}

// Vocabulary returns the number of trigrams with at least one posting.
func (ti *TrigramIndex) Vocabulary() int {
	n := 0
	for _, c := range &ti.counts {
		if c > 0 {
			n++
		}
	}
	return n
}

// PostingBytes sums the estimated memory of all posting stores that implement
// Sizer. Stores that cannot estimate their size contribute nothing.
func (ti *TrigramIndex) PostingBytes() uint64 {
	var total uint64
	for _, store := range &ti.postings {
		if sizer, ok := store.(Sizer); ok {
			total += sizer.SizeInBytes()
		}
	}
	return total
}

// TotalPostings returns the sum of all posting store sizes.
func (ti *TrigramIndex) TotalPostings() int {
	total := 0
	for _, c := range &ti.counts {
		total += c
	}
	return total
}
