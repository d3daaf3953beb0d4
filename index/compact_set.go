package index

import (
	"slices"
)

// DefaultBufferCapacity is the default size of a CompactSet's unsorted buffer.
const DefaultBufferCapacity = 1024

// CompactSet stores a set of document IDs with far less per-element overhead
// than a hash set. An index holds up to one of these per trigram ordinal, and
// common trigrams collect very large sets, so bookkeeping per element would
// dominate total memory.
//
// Elements live in a sorted slice (the stable part) plus a small unsorted
// buffer of IDs known not to be in the stable part. Inserts append to the
// buffer; when it fills up, Compact merges it into the stable part with one
// sort. Amortized insert cost is O(log n); a compaction costs O(n log n).
type CompactSet struct {
	sorted   []DocID
	unsorted []DocID
	capacity int
}

// NewCompactSet creates an empty set. capacity <= 0 selects DefaultBufferCapacity.
func NewCompactSet(capacity int) *CompactSet {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}
	return &CompactSet{capacity: capacity}
}

// BufferCapacity returns the unsorted buffer capacity.
func (s *CompactSet) BufferCapacity() int {
	return s.capacity
}

// SetBufferCapacity changes the unsorted buffer capacity, compacting first if
// the buffer already holds more than the new capacity.
func (s *CompactSet) SetBufferCapacity(capacity int) {
	if capacity <= 0 {
		capacity = DefaultBufferCapacity
	}
	s.capacity = capacity
	if len(s.unsorted) >= s.capacity {
		s.Compact()
	}
}

// Add inserts id. It returns false if id was already present.
func (s *CompactSet) Add(id DocID) bool {
	if s.inSorted(id) {
		return false
	}
	// The buffer must stay duplicate-free or Len would overcount.
	if slices.Contains(s.unsorted, id) {
		return false
	}

	if s.unsorted == nil {
		s.unsorted = make([]DocID, 0, min(s.capacity, 16))
	}
	s.unsorted = append(s.unsorted, id)

	if len(s.unsorted) >= s.capacity {
		s.Compact()
	}
	return true
}

// Compact moves the buffer into the stable part and sorts it.
func (s *CompactSet) Compact() {
	if len(s.unsorted) == 0 {
		return
	}
	s.sorted = slices.Grow(s.sorted, len(s.unsorted))
	s.sorted = append(s.sorted, s.unsorted...)
	slices.Sort(s.sorted)
	s.unsorted = s.unsorted[:0]
}

// Contains reports whether id is in the set.
func (s *CompactSet) Contains(id DocID) bool {
	if s.inSorted(id) {
		return true
	}
	return slices.Contains(s.unsorted, id)
}

// Len returns the number of elements.
func (s *CompactSet) Len() int {
	return len(s.sorted) + len(s.unsorted)
}

// Buffered returns the number of elements waiting in the unsorted buffer.
func (s *CompactSet) Buffered() int {
	return len(s.unsorted)
}

// Iterate compacts the set and returns its elements in ascending order.
// Calling it repeatedly only re-sorts when something was added in between.
func (s *CompactSet) Iterate() []DocID {
	s.Compact()
	return s.sorted
}

// SizeInBytes returns the bytes reserved by both slices.
func (s *CompactSet) SizeInBytes() uint64 {
	return uint64(cap(s.sorted)+cap(s.unsorted)) * 4
}

func (s *CompactSet) inSorted(id DocID) bool {
	_, found := slices.BinarySearch(s.sorted, id)
	return found
}
