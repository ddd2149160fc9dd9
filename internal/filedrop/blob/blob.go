// Package blob stores uploaded byte content under a content root directory,
// addressed by generated identifier. The id is never derived from the
// client filename, so filenames cannot influence storage paths.
package blob

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	// ErrConflict reports that the destination path for an id already
	// exists. Ids are generated fresh per upload, so this is practically
	// unreachable, but the store refuses to overwrite rather than guess.
	ErrConflict = errors.New("blob: id already exists")

	// ErrInvalidID reports an id unsafe to use as a path component.
	ErrInvalidID = errors.New("blob: invalid id")

	// ErrNotFound reports that no blob is stored under the id.
	ErrNotFound = errors.New("blob: not found")
)

// Store writes and reads blobs below a single content root. Blobs are
// sharded into two-character prefix directories to keep directory sizes
// manageable.
type Store struct {
	root string
}

// NewStore creates the content root if needed and returns the store.
func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0750); err != nil {
		return nil, fmt.Errorf("blob: create content root: %w", err)
	}
	return &Store{root: root}, nil
}

// Create writes the stream verbatim to the location keyed by id and returns
// the number of bytes written. The destination must not exist; an existing
// path fails with ErrConflict instead of overwriting. On a failed write the
// partial file is removed.
func (s *Store) Create(id string, r io.Reader) (int64, error) {
	path, err := s.path(id)
	if err != nil {
		return 0, err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return 0, fmt.Errorf("blob: create shard dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		if os.IsExist(err) {
			return 0, ErrConflict
		}
		return 0, fmt.Errorf("blob: create %s: %w", id, err)
	}

	n, err := io.Copy(f, r)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return 0, fmt.Errorf("blob: write %s: %w", id, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return 0, fmt.Errorf("blob: close %s: %w", id, err)
	}

	return n, nil
}

// Open returns a reader over the stored bytes for id.
func (s *Store) Open(id string) (*os.File, error) {
	path, err := s.path(id)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("blob: open %s: %w", id, err)
	}
	return f, nil
}

// Remove deletes the blob for id. Removing a missing blob is not an error;
// it is used for best-effort cleanup after a failed catalog insert.
func (s *Store) Remove(id string) error {
	path, err := s.path(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("blob: remove %s: %w", id, err)
	}
	return nil
}

// Exists reports whether a blob is stored under id.
func (s *Store) Exists(id string) bool {
	path, err := s.path(id)
	if err != nil {
		return false
	}
	_, statErr := os.Stat(path)
	return statErr == nil
}

// Check verifies the content root is still present and a directory. Used by
// readiness probes.
func (s *Store) Check() error {
	info, err := os.Stat(s.root)
	if err != nil {
		return fmt.Errorf("blob: stat content root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("blob: content root %s is not a directory", s.root)
	}
	return nil
}

func (s *Store) path(id string) (string, error) {
	if len(id) < 2 ||
		strings.ContainsAny(id, `/\`) ||
		strings.Contains(id, "..") {
		return "", ErrInvalidID
	}
	return filepath.Join(s.root, id[:2], id), nil
}
