package repositories

import (
	"context"
	"io"
)

// Source fetches the raw posts document.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// DocumentRepository stores the posts document for the badger source.
type DocumentRepository interface {
	Source
	Put(doc []byte) error
	Get() ([]byte, error)
	Delete() error
	Backup(w io.Writer) error
	Restore(r io.Reader) error
}
