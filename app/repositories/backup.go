package repositories

import (
	"bytes"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/crypto/blake2b"
)

// ChecksumSuffix is appended to a backup path to name its checksum sidecar.
const ChecksumSuffix = ".b2sum"

// ErrChecksumMismatch is returned when a backup does not match its sidecar.
var ErrChecksumMismatch = errors.New("backup checksum mismatch")

// WriteBackup writes a backup of repo to path and a BLAKE2b-256 sidecar next
// to it. A failed backup leaves no file behind.
func WriteBackup(repo DocumentRepository, path string) (sumPath string, err error) {
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create backup file: %w", err)
	}
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(path)
		}
	}()

	h, err := blake2b.New256(nil)
	if err != nil {
		return "", err
	}
	if err := repo.Backup(io.MultiWriter(f, h)); err != nil {
		return "", err
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to close backup file: %w", err)
	}

	sumPath = path + ChecksumSuffix
	line := hex.EncodeToString(h.Sum(nil)) + "\n"
	if err := os.WriteFile(sumPath, []byte(line), 0o644); err != nil {
		return "", fmt.Errorf("failed to write checksum: %w", err)
	}
	return sumPath, nil
}

// ReadBackup verifies path against its sidecar, when one exists, and restores it into repo.
func ReadBackup(repo DocumentRepository, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to open backup file: %w", err)
	}
	if len(data) == 0 {
		return fmt.Errorf("backup file is empty: %s", path)
	}

	want, err := os.ReadFile(path + ChecksumSuffix)
	switch {
	case err == nil:
		got := blake2b.Sum256(data)
		if hex.EncodeToString(got[:]) != strings.TrimSpace(string(want)) {
			return fmt.Errorf("%w: %s", ErrChecksumMismatch, path)
		}
	case !errors.Is(err, os.ErrNotExist):
		return fmt.Errorf("failed to read checksum: %w", err)
	}

	return repo.Restore(bytes.NewReader(data))
}
