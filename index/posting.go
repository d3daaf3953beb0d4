package index

import (
	"fmt"
)

// DocID is the internal numeric document identifier held in posting sets.
type DocID = uint32

// PostingStore is the set of documents containing one trigram.
// Implementations differ only in their memory/latency tradeoff.
type PostingStore interface {
	// Add inserts id and reports whether it was not already present.
	Add(id DocID) bool
	// Contains reports whether id is present.
	Contains(id DocID) bool
	// Len returns the number of distinct ids.
	Len() int
	// Iterate returns the ids in ascending order. The returned slice is owned
	// by the store and must not be modified.
	Iterate() []DocID
}

// Sizer is implemented by posting stores that can estimate their memory use.
type Sizer interface {
	SizeInBytes() uint64
}

// StoreKind names a PostingStore implementation.
type StoreKind string

const (
	// StoreCompact is the sorted-slice-plus-buffer CompactSet (default).
	StoreCompact StoreKind = "compact"
	// StoreMap is a plain hash set.
	StoreMap StoreKind = "map"
	// StoreRoaring is a compressed roaring bitmap.
	StoreRoaring StoreKind = "roaring"
)

// StoreFactory creates empty posting stores.
type StoreFactory func() PostingStore

// NewStoreFactory returns a factory for the given kind. bufferCapacity only
// applies to StoreCompact; values <= 0 select DefaultBufferCapacity.
func NewStoreFactory(kind StoreKind, bufferCapacity int) (StoreFactory, error) {
	switch kind {
	case StoreCompact, "":
		return func() PostingStore { return NewCompactSet(bufferCapacity) }, nil
	case StoreMap:
		return func() PostingStore { return NewMapSet() }, nil
	case StoreRoaring:
		return func() PostingStore { return NewRoaringSet() }, nil
	default:
		return nil, fmt.Errorf("unknown posting store kind '%s'", kind)
	}
}
