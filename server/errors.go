package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/julienschmidt/httprouter"
	"github.com/nicolagi/vidcast/storage"
	"github.com/nicolagi/vidcast/transport"
	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

var (
	errMissingName = errors.New("missing name")
)

type handlerFunc func(http.ResponseWriter, *http.Request, httprouter.Params) error

// statusFor maps errors coming out of handlers to one of four outcomes: not
// found, bad request, payload too large, internal error.
func statusFor(err error) int {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errMissingName),
		errors.Is(err, storage.ErrEmptyName),
		errors.Is(err, transport.ErrMissingFieldName),
		errors.Is(err, transport.ErrMalformed):
		return http.StatusBadRequest
	case errors.Is(err, transport.ErrTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// handle adapts fn to httprouter. Errors returned before anything was written
// become a status code and a short plain-text body. A failed stream can't be
// reported anymore, so the connection is dropped instead.
func (s *Server) handle(op string, results *prometheus.CounterVec, fn handlerFunc) httprouter.Handle {
	count := func(result string) {
		if results != nil {
			results.WithLabelValues(result).Inc()
		}
	}
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		err := fn(w, r, ps)
		if err == nil {
			count("ok")
			return
		}
		logger := log.WithFields(log.Fields{
			"op":     op,
			"remote": r.RemoteAddr,
			"err":    err,
		})
		if errors.Is(err, transport.ErrStreamAborted) {
			count("aborted")
			logger.Warn("Stream aborted")
			panic(http.ErrAbortHandler)
		}
		status := statusFor(err)
		count(strconv.Itoa(status))
		switch {
		case status == http.StatusNotFound:
			logger.Debug("Not found")
		case status == http.StatusRequestEntityTooLarge:
			logger.Warn("Payload too large")
		case status >= http.StatusInternalServerError:
			logger.Error()
		default:
			logger.Warn("Bad request")
		}
		http.Error(w, http.StatusText(status), status)
	}
}
