package model

// Document is a short text record to be indexed for instant search.
// ID is chosen by the caller; adding a document with an existing ID replaces
// its stored value.
type Document struct {
	ID    uint32 `json:"id"`
	Value string `json:"value"`
}

// NewDocument is a convenience constructor.
func NewDocument(id uint32, value string) Document {
	return Document{ID: id, Value: value}
}
