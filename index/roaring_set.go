package index

import (
	"github.com/RoaringBitmap/roaring/v2"
)

// RoaringSet is a PostingStore backed by a compressed roaring bitmap.
// Dense posting lists for common trigrams compress well here.
type RoaringSet struct {
	rb *roaring.Bitmap
}

// NewRoaringSet creates an empty RoaringSet.
func NewRoaringSet() *RoaringSet {
	return &RoaringSet{rb: roaring.New()}
}

func (s *RoaringSet) Add(id DocID) bool {
	return s.rb.CheckedAdd(id)
}

func (s *RoaringSet) Contains(id DocID) bool {
	return s.rb.Contains(id)
}

func (s *RoaringSet) Len() int {
	return int(s.rb.GetCardinality())
}

// Iterate materializes the bitmap. Roaring already keeps ids ordered, so
// this is a straight copy.
func (s *RoaringSet) Iterate() []DocID {
	return s.rb.ToArray()
}

// SizeInBytes estimates the in-memory size of the bitmap.
func (s *RoaringSet) SizeInBytes() uint64 {
	return s.rb.GetSizeInBytes()
}
