package transport

import (
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	// ContentType is set on every video response, the transport never sniffs.
	ContentType = "video/mp4"

	// FileName is the filename hint the player frontend expects, regardless
	// of the blob name.
	FileName = "lmao.mp4"

	// ChunkSize is the amount of bytes written between flushes.
	ChunkSize = 32 << 10
)

var (
	// ErrStreamAborted indicates the status line was already sent when
	// streaming failed. The only thing left to do is to drop the connection.
	ErrStreamAborted = errors.New("stream aborted")
)

// Stream writes src as a 200 response with video headers. No Content-Length
// is set, so the body goes out chunked, one flush per ChunkSize bytes at
// most. It returns the number of body bytes written.
func Stream(w http.ResponseWriter, src io.Reader, filename string) (int64, error) {
	h := w.Header()
	h.Set("Content-Type", ContentType)
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	h.Del("Content-Length")
	w.WriteHeader(http.StatusOK)

	flusher, _ := w.(http.Flusher)
	buf := make([]byte, ChunkSize)
	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			m, werr := w.Write(buf[:n])
			written += int64(m)
			if werr != nil {
				return written, fmt.Errorf("%w: write: %v", ErrStreamAborted, werr)
			}
			if flusher != nil {
				flusher.Flush()
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, fmt.Errorf("%w: read: %v", ErrStreamAborted, rerr)
		}
	}
}
