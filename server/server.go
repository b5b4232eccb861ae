package server

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/nicolagi/vidcast/storage"
	"github.com/nicolagi/vidcast/transport"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultAddress = "0.0.0.0:3000"

	// DefaultMaxUploadBytes is far too small for actual videos, it is kept
	// as the default for compatibility. See WithMaxUploadBytes.
	DefaultMaxUploadBytes = 4096

	shutdownGrace = 5 * time.Second
)

// BlobStore is what the server needs from its store: puts for uploads, and
// lazy reads for downloads.
type BlobStore interface {
	storage.Store
	storage.Source
}

type Option func(*options)

type options struct {
	address        string
	store          BlobStore
	videoDir       string
	maxUploadBytes int64
}

func WithAddress(value string) Option {
	return func(o *options) {
		o.address = value
	}
}

func WithStore(value BlobStore) Option {
	return func(o *options) {
		o.store = value
	}
}

// WithVideoDir makes videos in the given directory available to the video
// endpoints, for names that aren't in the store.
func WithVideoDir(value string) Option {
	return func(o *options) {
		o.videoDir = value
	}
}

func WithMaxUploadBytes(value int64) Option {
	return func(o *options) {
		o.maxUploadBytes = value
	}
}

type Server struct {
	opts   options
	source storage.Source
	ln     net.Listener
	srv    *http.Server
}

func New(opts ...Option) *Server {
	s := &Server{}
	s.opts.address = DefaultAddress
	s.opts.maxUploadBytes = DefaultMaxUploadBytes
	for _, o := range opts {
		o(&s.opts)
	}
	if s.opts.store == nil {
		s.opts.store = storage.NewInMemoryStore()
	}
	s.source = s.opts.store
	if s.opts.videoDir != "" {
		s.source = storage.NewPaired(s.opts.store, storage.NewDiskStore(s.opts.videoDir))
	}
	s.srv = &http.Server{Handler: s.Handler()}
	return s
}

func (s *Server) Listen() (addr string, err error) {
	s.ln, err = net.Listen("tcp", s.opts.address)
	if err != nil {
		return
	}
	addr = s.ln.Addr().String()
	return
}

// Serve serves HTTP on the listener opened by Listen. The function will
// return nil (some time after) shutdown is called.
func (s *Server) Serve() error {
	if s.ln == nil {
		return errors.New("serve called before listen")
	}
	err := s.srv.Serve(s.ln)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown stops accepting connections and waits a little for in-flight
// requests, then closes whatever is left.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := s.srv.Shutdown(ctx); err != nil {
		log.WithField("err", err).Warn("Could not shut down gracefully, closing connections")
		return s.srv.Close()
	}
	return nil
}

// Handler returns the full handler chain: CORS outermost, then the body
// limit, then the routes.
func (s *Server) Handler() http.Handler {
	return cors(transport.LimitBody(s.routes(), s.opts.maxUploadBytes))
}
