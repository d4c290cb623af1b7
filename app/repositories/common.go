package repositories

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when no document has been stored yet.
	ErrNotFound = errors.New("record not found")
	// ErrInvalidDocument is returned when a document to be stored is not valid JSON.
	ErrInvalidDocument = errors.New("document is not valid JSON")
)

const (
	// Key prefixes for different entity types
	DocumentKeyPrefix = "document:"
	MetaKeyPrefix     = "meta:"

	// PostsDocumentKey holds the posts document served by the badger source.
	PostsDocumentKey = DocumentKeyPrefix + "posts"
	// ImportedAtKey records when the posts document was last replaced.
	ImportedAtKey = MetaKeyPrefix + "imported_at"
)

// validateDocument rejects input that is not a single JSON value. Shape is
// checked later, when the document is loaded.
func validateDocument(doc []byte) error {
	if !json.Valid(doc) {
		return fmt.Errorf("%w (%d bytes)", ErrInvalidDocument, len(doc))
	}
	return nil
}
