package library

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	uploadedFiles = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "piratelibrary_uploaded_files_total",
		Help: "Number of files written by uploads.",
	})

	uploadedBytes = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "piratelibrary_uploaded_bytes_total",
		Help: "Number of bytes written by uploads.",
	})

	downloads = promauto.NewCounter(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "piratelibrary_downloads_total",
		Help: "Number of files served.",
	})
)
