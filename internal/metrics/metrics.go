package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "grocery"

var (
	CartMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "mutations_total",
		Help:      "Cart mutations by operation and outcome.",
	}, []string{"operation", "outcome"})

	CartConflictRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "cart",
		Name:      "conflict_retries_total",
		Help:      "Cart transactions retried after lock contention.",
	})

	ImageDerivations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "product",
		Name:      "image_derivations_total",
		Help:      "Image variant derivations by outcome.",
	}, []string{"outcome"})

	ImageDerivationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "product",
		Name:      "image_derivation_duration_seconds",
		Help:      "Time spent deriving all variants of one original.",
		Buckets:   prometheus.DefBuckets,
	})
)

const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

func Outcome(err error) string {
	if err != nil {
		return OutcomeFailure
	}
	return OutcomeSuccess
}
