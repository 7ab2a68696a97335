package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	importsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paisebook_imports_total",
		Help: "Number of statement imports processed.",
	})

	rowsImported = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paisebook_import_rows_imported_total",
		Help: "Statement rows that produced a canonical transaction.",
	})

	rowsSkipped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paisebook_import_rows_skipped_total",
		Help: "Statement rows skipped as unmappable or zero-amount.",
	})
)
