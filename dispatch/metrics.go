package dispatch

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jonwraymond/toolalgo/catalog"
)

// Call outcomes recorded in callsTotal.
const (
	outcomeSuccess       = "success"
	outcomeInvalidParams = "invalid_params"
	outcomeDomainError   = "domain_error"
	outcomeUnknown       = "unknown_operation"
	outcomeCanceled      = "canceled"
)

// unknownOperation labels calls whose name is not in the catalog, keeping
// label cardinality bounded by the catalog size.
const unknownOperation = "unknown"

var (
	// callsTotal counts dispatched calls by canonical operation and outcome.
	callsTotal = promauto.NewCounterVec(prometheus.CounterOpts{ //nolint:gochecknoglobals
		Name: "toolalgo_dispatch_calls_total",
		Help: "Dispatched operation calls by outcome",
	}, []string{"operation", "outcome"})

	// callDuration observes routine run time, argument decoding included.
	callDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{ //nolint:gochecknoglobals
		Name:    "toolalgo_dispatch_duration_seconds",
		Help:    "Time spent serving a dispatched call",
		Buckets: []float64{.00001, .0001, .001, .01, .1, 1, 10},
	}, []string{"operation"})
)

// init pre-creates the success series for every declared operation so
// dashboards see zeros before the first call.
func init() {
	for _, op := range catalog.MustLoad().Operations() {
		callsTotal.WithLabelValues(op.Name, outcomeSuccess).Add(0)
	}
}
