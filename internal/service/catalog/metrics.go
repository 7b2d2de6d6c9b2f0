package catalog

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	catalogMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "food_catalog_mutations_total",
			Help: "Total number of catalog mutations by operation and result",
		},
		[]string{"op", "result"},
	)

	catalogItems = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "food_catalog_items",
			Help: "Number of items currently stored in the catalog",
		},
	)
)
