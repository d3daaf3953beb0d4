package index

import (
	"slices"
)

// MapSet is a hash-set PostingStore. It trades memory for O(1) inserts and is
// mostly useful as a reference implementation in tests.
type MapSet struct {
	ids    map[DocID]struct{}
	sorted []DocID
	dirty  bool
}

// NewMapSet creates an empty MapSet.
func NewMapSet() *MapSet {
	return &MapSet{ids: make(map[DocID]struct{})}
}

func (s *MapSet) Add(id DocID) bool {
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	s.dirty = true
	return true
}

func (s *MapSet) Contains(id DocID) bool {
	_, ok := s.ids[id]
	return ok
}

func (s *MapSet) Len() int {
	return len(s.ids)
}

func (s *MapSet) Iterate() []DocID {
	if s.dirty || s.sorted == nil {
		s.sorted = make([]DocID, 0, len(s.ids))
		for id := range s.ids {
			s.sorted = append(s.sorted, id)
		}
		slices.Sort(s.sorted)
		s.dirty = false
	}
	return s.sorted
}
