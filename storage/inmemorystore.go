package storage

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"sync"
)

// InMemoryStore is a Store implementation powered by a map. It is also a
// Source, streaming blobs through a cursor over the stored bytes.
//
// Stored slices are never written to after insertion, so values handed out by
// Get and Open remain valid after the name is overwritten.
type InMemoryStore struct {
	sync.Mutex
	m map[string][]byte
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		m: make(map[string][]byte),
	}
}

func (s *InMemoryStore) Put(name string, value []byte) (prior []byte, replaced bool, err error) {
	if name == "" {
		return nil, false, ErrEmptyName
	}
	// Copy outside the critical section, the lock only covers the swap.
	value = dup(value)
	s.Lock()
	prior, replaced = s.m[name]
	s.m[name] = value
	s.Unlock()
	return prior, replaced, nil
}

func (s *InMemoryStore) Get(name string) (value []byte, err error) {
	s.Lock()
	value, ok := s.m[name]
	s.Unlock()
	if !ok {
		return nil, fmt.Errorf("%.40q: %w", name, ErrNotFound)
	}
	return value, nil
}

func (s *InMemoryStore) Open(name string) (io.ReadCloser, error) {
	value, err := s.Get(name)
	if err != nil {
		return nil, err
	}
	return ioutil.NopCloser(bytes.NewReader(value)), nil
}

// Len returns the number of names in the store.
func (s *InMemoryStore) Len() int {
	s.Lock()
	defer s.Unlock()
	return len(s.m)
}

func dup(b []byte) []byte {
	c := make([]byte, len(b))
	copy(c, b)
	return c
}
