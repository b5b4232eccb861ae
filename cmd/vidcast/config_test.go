package main

import (
	"io/ioutil"
	"path/filepath"
	"testing"

	"github.com/nicolagi/vidcast/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig(t *testing.T) {
	t.Run("loads relaxed json", func(t *testing.T) {
		pathname := filepath.Join(t.TempDir(), "vidcast.config")
		require.Nil(t, ioutil.WriteFile(pathname, []byte(`{
	listen: "127.0.0.1:4000"
	video_path: "/srv/videos"
	max_upload_bytes: 1048576
	debug: true
}`), 0600))
		c, err := loadConfig(pathname)
		require.Nil(t, err)
		assert.Equal(t, "127.0.0.1:4000", c.Listen)
		assert.Equal(t, "/srv/videos", c.VideoPath)
		assert.EqualValues(t, 1<<20, c.MaxUploadBytes)
		assert.True(t, c.Debug)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := loadConfig(filepath.Join(t.TempDir(), "nope"))
		assert.NotNil(t, err)
	})
	t.Run("defaults", func(t *testing.T) {
		var c config
		c.applyDefaultsForMissingProperties()
		assert.Equal(t, server.DefaultAddress, c.Listen)
		assert.EqualValues(t, server.DefaultMaxUploadBytes, c.MaxUploadBytes)
		assert.Empty(t, c.VideoPath)
		assert.False(t, c.Debug)
	})
	t.Run("flags win over the file", func(t *testing.T) {
		c := config{Listen: "127.0.0.1:4000", VideoPath: "/srv/videos", MaxUploadBytes: 10}
		c.overrideWith(cli{VideoPath: "/tmp/videos", MaxUploadBytes: 20, Debug: true})
		c.applyDefaultsForMissingProperties()
		assert.Equal(t, "127.0.0.1:4000", c.Listen)
		assert.Equal(t, "/tmp/videos", c.VideoPath)
		assert.EqualValues(t, 20, c.MaxUploadBytes)
		assert.True(t, c.Debug)
	})
	t.Run("video path expands environment", func(t *testing.T) {
		t.Setenv("VIDCAST_TEST_DIR", "/data")
		c := config{VideoPath: "$VIDCAST_TEST_DIR/videos"}
		c.applyDefaultsForMissingProperties()
		assert.Equal(t, "/data/videos", c.VideoPath)
	})
}
