package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Cart mutation operation labels.
const (
	opAdd    = "add"
	opRemove = "remove"
	opUpdate = "update"
	opClear  = "clear"
)

var cartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "storefront_cart_mutations_total",
		Help: "Total number of persisted cart mutations",
	},
	[]string{"operation"},
)
