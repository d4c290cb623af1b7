package repositories

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRepository(t *testing.T) *BadgerDocumentRepository {
	db, err := OpenBadger("")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewBadgerDocumentRepository(db)
}

func TestBadgerDocumentRepository(t *testing.T) {
	repo := setupTestRepository(t)
	fixed := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return fixed }

	t.Run("get before put", func(t *testing.T) {
		_, err := repo.Get()
		assert.ErrorIs(t, err, ErrNotFound)
		_, err = repo.Fetch(context.Background())
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("put rejects invalid json", func(t *testing.T) {
		err := repo.Put([]byte(`{"posts":`))
		assert.ErrorIs(t, err, ErrInvalidDocument)
	})

	t.Run("put then fetch", func(t *testing.T) {
		doc := []byte(`{"posts":[{"title":"Stored"}]}`)
		require.NoError(t, repo.Put(doc))

		got, err := repo.Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, doc, got)

		stamp, err := repo.ImportedAt()
		require.NoError(t, err)
		assert.True(t, fixed.Equal(stamp))
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete())
		_, err := repo.Get()
		assert.ErrorIs(t, err, ErrNotFound)
		assert.ErrorIs(t, repo.Delete(), ErrNotFound)
	})
}

func TestBackupAndRestore(t *testing.T) {
	src := setupTestRepository(t)
	doc := []byte(`{"posts":[{"title":"Backed up"}]}`)
	require.NoError(t, src.Put(doc))

	path := filepath.Join(t.TempDir(), "backup.db")
	sumPath, err := WriteBackup(src, path)
	require.NoError(t, err)
	assert.Equal(t, path+ChecksumSuffix, sumPath)
	assert.FileExists(t, sumPath)

	t.Run("restore into empty store", func(t *testing.T) {
		dst := setupTestRepository(t)
		require.NoError(t, ReadBackup(dst, path))
		got, err := dst.Get()
		require.NoError(t, err)
		assert.Equal(t, doc, got)
	})

	t.Run("tampered backup is rejected", func(t *testing.T) {
		data, err := os.ReadFile(path)
		require.NoError(t, err)
		tampered := filepath.Join(t.TempDir(), "tampered.db")
		require.NoError(t, os.WriteFile(tampered, append(data, 0x00), 0o644))
		sum, err := os.ReadFile(sumPath)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(tampered+ChecksumSuffix, sum, 0o644))

		err = ReadBackup(setupTestRepository(t), tampered)
		assert.ErrorIs(t, err, ErrChecksumMismatch)
	})

	t.Run("empty backup is rejected", func(t *testing.T) {
		empty := filepath.Join(t.TempDir(), "empty.db")
		require.NoError(t, os.WriteFile(empty, nil, 0o644))
		err := ReadBackup(setupTestRepository(t), empty)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "empty")
	})
}

type failingBackupRepository struct {
	*BadgerDocumentRepository
}

func (r failingBackupRepository) Backup(w io.Writer) error {
	if _, err := w.Write([]byte("partial")); err != nil {
		return err
	}
	return errors.New("stream interrupted")
}

func TestWriteBackupFailureLeavesNoFile(t *testing.T) {
	repo := failingBackupRepository{setupTestRepository(t)}
	path := filepath.Join(t.TempDir(), "backup.db")

	sumPath, err := WriteBackup(repo, path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stream interrupted")
	assert.Empty(t, sumPath)
	assert.NoFileExists(t, path)
	assert.NoFileExists(t, path+ChecksumSuffix)
}
