package store

import (
	"github.com/gcbaptista/go-instant-search/index"
)

// DocumentStore holds the original text of every indexed document.
// Re-adding an id overwrites its text but keeps its original position in
// iteration order.
type DocumentStore struct {
	Docs  map[index.DocID]string
	order []index.DocID
}

// NewDocumentStore creates an empty store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{Docs: make(map[index.DocID]string)}
}

// Put stores value as the current text for id. It reports whether id is new.
func (ds *DocumentStore) Put(id index.DocID, value string) bool {
	if ds.Docs == nil {
		ds.Docs = make(map[index.DocID]string)
	}
	_, exists := ds.Docs[id]
	ds.Docs[id] = value
	if !exists {
		ds.order = append(ds.order, id)
	}
	return !exists
}

// Get returns the current text for id.
func (ds *DocumentStore) Get(id index.DocID) (string, bool) {
	value, ok := ds.Docs[id]
	return value, ok
}

// Len returns the number of stored documents.
func (ds *DocumentStore) Len() int {
	return len(ds.Docs)
}

// Range calls fn for each document in first-insertion order until fn returns false.
func (ds *DocumentStore) Range(fn func(id index.DocID, value string) bool) {
	for _, id := range ds.order {
		if !fn(id, ds.Docs[id]) {
			return
		}
	}
}
