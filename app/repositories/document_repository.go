package repositories

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// BadgerDocumentRepository implements DocumentRepository using BadgerDB
type BadgerDocumentRepository struct {
	db  *badger.DB
	now func() time.Time
}

// OpenBadger opens a Badger store at path. An empty path opens an in-memory store.
func OpenBadger(path string) (*badger.DB, error) {
	opts := badger.DefaultOptions(path).
		WithLogger(nil).
		WithNumVersionsToKeep(1)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger at %q: %w", path, err)
	}
	return db, nil
}

// NewBadgerDocumentRepository creates a new BadgerDocumentRepository
func NewBadgerDocumentRepository(db *badger.DB) *BadgerDocumentRepository {
	return &BadgerDocumentRepository{db: db, now: time.Now}
}

// Fetch returns the stored posts document.
func (r *BadgerDocumentRepository) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.Get()
}

// Put replaces the posts document
func (r *BadgerDocumentRepository) Put(doc []byte) error {
	if err := validateDocument(doc); err != nil {
		return err
	}
	stamp := []byte(r.now().UTC().Format(time.RFC3339))
	return r.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set([]byte(PostsDocumentKey), doc); err != nil {
			return err
		}
		return txn.Set([]byte(ImportedAtKey), stamp)
	})
}

// Get retrieves the posts document
func (r *BadgerDocumentRepository) Get() ([]byte, error) {
	var doc []byte
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(PostsDocumentKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		doc, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// ImportedAt returns when the posts document was last replaced.
func (r *BadgerDocumentRepository) ImportedAt() (time.Time, error) {
	var stamp time.Time
	err := r.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(ImportedAtKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			stamp, err = time.Parse(time.RFC3339, string(val))
			return err
		})
	})
	return stamp, err
}

// Delete removes the posts document
func (r *BadgerDocumentRepository) Delete() error {
	return r.db.Update(func(txn *badger.Txn) error {
		// Verify document exists
		_, err := txn.Get([]byte(PostsDocumentKey))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		if err := txn.Delete([]byte(PostsDocumentKey)); err != nil {
			return err
		}
		return txn.Delete([]byte(ImportedAtKey))
	})
}

// Backup writes a full backup of the store to w.
func (r *BadgerDocumentRepository) Backup(w io.Writer) error {
	if _, err := r.db.Backup(w, 0); err != nil {
		return fmt.Errorf("failed to backup store: %w", err)
	}
	return nil
}

// Restore loads a backup produced by Backup.
func (r *BadgerDocumentRepository) Restore(src io.Reader) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic occurred during restore: %v", rec)
		}
	}()
	if err := r.db.Load(src, 4); err != nil {
		return fmt.Errorf("failed to restore store: %w", err)
	}
	return nil
}
