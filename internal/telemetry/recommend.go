package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recommendation pipeline metrics.
var (
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skincare_recommendations_total",
			Help: "Recommendation requests by outcome",
		},
		[]string{"outcome"},
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skincare_recommendation_duration_seconds",
			Help:    "Time spent filtering, scoring and merging one request",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
	)

	ContentFallbackTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skincare_content_fallback_total",
			Help: "Content scorer runs that fell back to rating order",
		},
		[]string{"reason"},
	)

	CollaborativeNeighbors = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "skincare_collaborative_neighbors",
			Help:    "Neighbours used per collaborative scoring pass",
			Buckets: []float64{0, 1, 2, 5, 10},
		},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skincare_cache_lookups_total",
			Help: "Response cache lookups by result",
		},
		[]string{"result"},
	)

	UpstreamRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "skincare_upstream_requests_total",
			Help: "Calls to downstream services by target and result",
		},
		[]string{"target", "result"},
	)
)
