package storage

import (
	"errors"
	"io"

	log "github.com/sirupsen/logrus"
)

// Paired implements Source wrapping a pair of sources, one fast, one slow. It
// will open blobs from the fast source if possible, otherwise from the slow
// one. Nothing is propagated between the two, the fast source is typically
// the in-memory store fed by uploads and the slow one a directory on disk.
type Paired struct {
	fast Source
	slow Source
}

func NewPaired(fast, slow Source) Paired {
	return Paired{
		fast: fast,
		slow: slow,
	}
}

func (s Paired) Open(name string) (io.ReadCloser, error) {
	rc, err := s.fast.Open(name)
	if err == nil {
		return rc, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}
	rc, err = s.slow.Open(name)
	if err != nil {
		return nil, err
	}
	log.WithField("name", name).Debug("Served from slow source")
	return rc, nil
}
