// Package transport moves blobs between HTTP messages and byte buffers. The
// download side wraps a byte source as a chunked video/mp4 response, flushing
// as it goes. The upload side turns a multipart/form-data body into a
// sequence of named fields, each drained in full before the next is read.
package transport
