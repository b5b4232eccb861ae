// Command vidcast serves a Video.js player page, accepts multipart uploads
// into an in-memory store, and streams stored blobs back as video/mp4.
//
// Requests are GET /, GET /video?name=<name>, GET /video/<name> and
// POST /upload. Every multipart field of an upload is stored under its form
// field name, and answered with 201. A name that is neither in memory nor in
// the directory given with --video-path returns 404, a missing name 400.
// Bodies larger than --max-upload-bytes get 413.
//
// The store lives only as long as the process. Restarting loses all uploads.
package main // import "github.com/nicolagi/vidcast/cmd/vidcast"
