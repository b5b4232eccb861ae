package storage

import (
	"errors"
	"io"
)

// Store represents a mapping from names to blobs.
type Store interface {
	// Put stores a copy of value under name, replacing any prior value. The
	// prior value, if any, is returned with replaced set to true. A first
	// insert for a name is not an error.
	Put(name string, value []byte) (prior []byte, replaced bool, err error)

	// Get should return ErrNotFound if the name is not in the store.
	Get(name string) (value []byte, err error)
}

// Source is something blobs can be streamed from, without materializing them
// first.
type Source interface {
	// Open should return ErrNotFound if the name is not available.
	Open(name string) (io.ReadCloser, error)
}

var (
	// ErrNotFound indicates a name is not in the store.
	ErrNotFound = errors.New("not found")

	// ErrEmptyName is returned when putting a blob with no name.
	ErrEmptyName = errors.New("empty name")
)
