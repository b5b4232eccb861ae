package main

import (
	"os"

	"github.com/nicolagi/vidcast/server"
	"github.com/rogpeppe/rjson"
)

type cli struct {
	VideoPath      string `short:"v" help:"Directory of videos to stream for names that were not uploaded."`
	Config         string `help:"Location of an optional configuration file." type:"path"`
	Listen         string `help:"Address to listen on (default ${default_listen})."`
	MaxUploadBytes int64  `help:"Maximum size of an upload request body (default ${default_max_upload}, too small for most videos)."`
	Debug          bool   `help:"Log at debug level."`
}

type config struct {
	Listen         string `json:"listen"`
	VideoPath      string `json:"video_path"`
	MaxUploadBytes int64  `json:"max_upload_bytes"`
	Debug          bool   `json:"debug"`
}

func loadConfig(pathname string) (*config, error) {
	f, err := os.Open(pathname)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var c *config
	err = rjson.NewDecoder(f).Decode(&c)
	if c == nil {
		c = new(config)
	}
	return c, err
}

// Command line flags take precedence over the configuration file.
func (c *config) overrideWith(params cli) {
	if params.Listen != "" {
		c.Listen = params.Listen
	}
	if params.VideoPath != "" {
		c.VideoPath = params.VideoPath
	}
	if params.MaxUploadBytes != 0 {
		c.MaxUploadBytes = params.MaxUploadBytes
	}
	if params.Debug {
		c.Debug = true
	}
}

func (c *config) applyDefaultsForMissingProperties() {
	if c.Listen == "" {
		c.Listen = server.DefaultAddress
	}
	if c.MaxUploadBytes <= 0 {
		c.MaxUploadBytes = server.DefaultMaxUploadBytes
	}
	if c.VideoPath != "" {
		c.VideoPath = os.ExpandEnv(c.VideoPath)
	}
}
