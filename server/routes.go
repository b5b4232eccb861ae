package server

import (
	"io"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/nicolagi/vidcast/transport"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

func (s *Server) routes() http.Handler {
	router := httprouter.New()
	router.GET("/", s.handle("page", nil, s.getPage))
	router.GET("/video", s.handle("video", metricDownloadsTotal, s.getVideo))
	// Path variant kept for the original player page, which linked to
	// /video/stutter.mp4.
	router.GET("/video/:file", s.handle("video", metricDownloadsTotal, s.getVideo))
	router.POST("/upload", s.handle("upload", metricUploadsTotal, s.postUpload))
	router.Handler(http.MethodGet, "/metrics", promhttp.Handler())
	return router
}

func (s *Server) getPage(w http.ResponseWriter, r *http.Request, _ httprouter.Params) error {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, err := io.WriteString(w, page)
	return err
}

func (s *Server) getVideo(w http.ResponseWriter, r *http.Request, ps httprouter.Params) error {
	name := ps.ByName("file")
	if name == "" {
		name = r.URL.Query().Get("name")
	}
	if name == "" {
		return errMissingName
	}
	rc, err := s.source.Open(name)
	if err != nil {
		return err
	}
	defer func() {
		if err := rc.Close(); err != nil {
			log.WithFields(log.Fields{
				"op":   "video",
				"name": name,
				"err":  err,
			}).Warn("Could not close video source")
		}
	}()
	n, err := transport.Stream(w, rc, transport.FileName)
	metricDownloadBytesTotal.Add(float64(n))
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{
		"op":    "video",
		"name":  name,
		"bytes": n,
	}).Debug("Streamed")
	return nil
}

// All fields are drained before any is stored, so that a body cut off at the
// size cap leaves the store untouched. Fields are then stored in wire order.
func (s *Server) postUpload(w http.ResponseWriter, r *http.Request, _ httprouter.Params) error {
	fr, err := transport.NewFieldReader(r)
	if err != nil {
		return err
	}
	var fields []transport.Field
	for {
		field, err := fr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		fields = append(fields, field)
	}
	for _, field := range fields {
		_, replaced, err := s.opts.store.Put(field.Name, field.Data)
		if err != nil {
			return err
		}
		metricUploadBytesTotal.Add(float64(len(field.Data)))
		if replaced {
			metricReplacedBlobsTotal.Inc()
		}
		log.WithFields(log.Fields{
			"op":       "upload",
			"name":     field.Name,
			"bytes":    len(field.Data),
			"replaced": replaced,
		}).Debug("Stored")
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusCreated)
	_, err = io.WriteString(w, "OK")
	return err
}
