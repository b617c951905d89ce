package recommender

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeSuccess           = "success"
	outcomeRoleNotFound      = "role_not_found"
	outcomeDecodeFailure     = "decode_failure"
	outcomeLaptopUnavailable = "laptop_unavailable"
	outcomeCatalogError      = "catalog_error"
)

var (
	RecommendOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "laptop_recommend_outcomes_total",
			Help: "Count of laptop recommendations by outcome.",
		},
		[]string{"outcome"},
	)

	RecommendLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "laptop_recommend_latency_seconds",
		Help:    "Latency of the recommendation pipeline including the catalog check.",
		Buckets: prometheus.DefBuckets,
	})

	HeldOutAccuracy = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "laptop_recommend_held_out_accuracy",
		Help: "Classifier accuracy on the held-out partition at the last fit.",
	})
)

func init() {
	prometheus.MustRegister(RecommendOutcomesTotal, RecommendLatency, HeldOutAccuracy)
}
