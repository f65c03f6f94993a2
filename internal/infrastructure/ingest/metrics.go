package ingest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var ingestedRows = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "credit_ingested_rows_total",
		Help: "Rows successfully imported from data files, by record kind.",
	},
	[]string{"kind"},
)
