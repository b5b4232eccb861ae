package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricUploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vidcast",
		Subsystem: "server",
		Name:      "uploads_total",
	}, []string{"result"})
	metricDownloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "vidcast",
		Subsystem: "server",
		Name:      "downloads_total",
	}, []string{"result"})
	metricUploadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vidcast",
		Subsystem: "server",
		Name:      "upload_bytes_total",
	})
	metricReplacedBlobsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vidcast",
		Subsystem: "server",
		Name:      "replaced_blobs_total",
	})
	metricDownloadBytesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "vidcast",
		Subsystem: "server",
		Name:      "download_bytes_total",
	})
)
