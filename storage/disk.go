package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// DiskStore implements Source, reading blobs from files in a directory.
type DiskStore struct {
	dir string
}

func NewDiskStore(dir string) *DiskStore {
	return &DiskStore{dir: dir}
}

func (s *DiskStore) Open(name string) (io.ReadCloser, error) {
	pathname, ok := s.pathFor(name)
	if !ok {
		return nil, fmt.Errorf("%.40q: %w", name, ErrNotFound)
	}
	f, err := os.Open(pathname)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%.40q: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", pathname, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("could not stat %q: %w", pathname, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%.40q: %w", name, ErrNotFound)
	}
	return f, nil
}

// Only the last element of name is used, so that names can't reach outside
// the directory.
func (s *DiskStore) pathFor(name string) (string, bool) {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." || base == ".." {
		return "", false
	}
	return filepath.Join(s.dir, base), true
}
