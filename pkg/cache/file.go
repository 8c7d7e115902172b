package cache

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/matzehuels/mermaid-filter/pkg/errors"
)

// DefaultDir is the cache directory used when none is configured. It is
// relative so that image paths written into documents stay relative too.
const DefaultDir = "generated_diagrams"

// FileStore stores each entry as a plain file named after its key.
// The directory is created on first write.
type FileStore struct {
	dir string
}

// NewFileStore creates a file store rooted at dir.
// An empty dir selects [DefaultDir].
func NewFileStore(dir string) *FileStore {
	if dir == "" {
		dir = DefaultDir
	}
	return &FileStore{dir: dir}
}

// Dir returns the root directory of the store.
func (s *FileStore) Dir() string {
	return s.dir
}

// Path returns the file path for key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key)
}

// Has reports whether a file exists for key.
func (s *FileStore) Has(ctx context.Context, key string) (bool, error) {
	_, err := os.Stat(s.Path(key))
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, errors.Wrap(errors.ErrCodeFilesystem, err, "stat %s", s.Path(key))
	}
	return true, nil
}

// Get reads the file for key.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.Path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrCodeFilesystem, err, "read %s", s.Path(key))
	}
	return data, true, nil
}

// Set writes data for key. The file is written under a temporary name and
// renamed into place, so a reader never sees a partial entry.
func (s *FileStore) Set(ctx context.Context, key string, data []byte) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "create cache dir %s", s.dir)
	}

	tmp, err := os.CreateTemp(s.dir, ".tmp-*")
	if err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "create temp file in %s", s.dir)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errors.Wrap(errors.ErrCodeFilesystem, err, "write %s", tmp.Name())
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "close %s", tmp.Name())
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "chmod %s", tmp.Name())
	}
	if err := os.Rename(tmp.Name(), s.Path(key)); err != nil {
		return errors.Wrap(errors.ErrCodeFilesystem, err, "store %s", s.Path(key))
	}
	return nil
}

// Delete removes the file for key.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.Path(key))
	if err == nil || os.IsNotExist(err) {
		return nil
	}
	return errors.Wrap(errors.ErrCodeFilesystem, err, "delete %s", s.Path(key))
}

// Entries lists the keys of all entries in the store, skipping
// subdirectories and in-flight temporary files.
func (s *FileStore) Entries() ([]string, error) {
	dirEntries, err := os.ReadDir(s.dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFilesystem, err, "list %s", s.dir)
	}

	var keys []string
	for _, e := range dirEntries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".tmp-") {
			continue
		}
		keys = append(keys, e.Name())
	}
	return keys, nil
}

// Clear removes every entry and returns how many were deleted.
func (s *FileStore) Clear(ctx context.Context) (int, error) {
	keys, err := s.Entries()
	if err != nil {
		return 0, err
	}

	count := 0
	for _, key := range keys {
		if err := s.Delete(ctx, key); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// Close does nothing for file store.
func (s *FileStore) Close() error {
	return nil
}

// Ensure FileStore implements Store.
var _ Store = (*FileStore)(nil)
