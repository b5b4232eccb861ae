package main

import (
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/google/gops/agent"
	"github.com/nicolagi/vidcast/server"
	"github.com/nicolagi/vidcast/storage"
	log "github.com/sirupsen/logrus"
)

func main() {
	var params cli
	kong.Parse(&params,
		kong.Name("vidcast"),
		kong.Description("Serve a video player page, accept uploads, stream them back."),
		kong.Vars{
			"default_listen":     server.DefaultAddress,
			"default_max_upload": strconv.Itoa(server.DefaultMaxUploadBytes),
		},
	)

	opts := new(config)
	if params.Config != "" {
		var err error
		opts, err = loadConfig(params.Config)
		if err != nil {
			log.WithFields(log.Fields{
				"err":  err,
				"path": params.Config,
			}).Fatal("Could not load configuration")
		}
	}
	opts.overrideWith(params)
	opts.applyDefaultsForMissingProperties()

	if opts.Debug {
		log.SetLevel(log.DebugLevel)
	}

	if err := agent.Listen(agent.Options{}); err != nil {
		log.WithField("err", err).Warn("Could not start gops agent")
	} else {
		defer agent.Close()
	}

	store := storage.NewInMemoryStore()
	srvopts := []server.Option{
		server.WithAddress(opts.Listen),
		server.WithStore(store),
		server.WithMaxUploadBytes(opts.MaxUploadBytes),
	}
	if opts.VideoPath != "" {
		srvopts = append(srvopts, server.WithVideoDir(opts.VideoPath))
		log.Infof("Will fall back to videos in %s", opts.VideoPath)
	}
	srv := server.New(srvopts...)
	addr, err := srv.Listen()
	if err != nil {
		log.WithFields(log.Fields{
			"err":  err,
			"addr": opts.Listen,
		}).Fatal("Could not listen")
	}
	log.WithFields(log.Fields{
		"addr":             addr,
		"max_upload_bytes": opts.MaxUploadBytes,
	}).Info("Listening")

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	if err := run(srv, c); err != nil {
		log.WithField("err", err).Fatal("Could not serve")
	}
	log.WithField("blobs", store.Len()).Info("Discarding in-memory store")
}

// run serves until a signal arrives on c, then shuts the server down. It
// returns only once in-flight requests have been drained (or given up on).
func run(srv *server.Server, c <-chan os.Signal) error {
	// srv.Serve() returns as soon as srv.Shutdown() starts, so wait for the
	// latter separately.
	done := make(chan struct{})
	go func() {
		defer close(done)
		sig := <-c
		log.WithField("signal", sig).Info("Shutting down server")
		if err := srv.Shutdown(); err != nil {
			log.WithFields(log.Fields{"err": err}).Warn("Could not shut down the server cleanly")
		}
	}()
	if err := srv.Serve(); err != nil {
		return err
	}
	<-done
	return nil
}
