package discovery

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	recommendationRequestsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "discovery_recommendation_requests_total",
			Help: "Total number of recommendation computations",
		},
	)

	similarityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "discovery_similarity_scores",
			Help:    "Distribution of Jaccard similarity scores",
			Buckets: prometheus.LinearBuckets(0, 0.1, 11),
		},
	)
)

func recordRecommendationRequest() {
	recommendationRequestsTotal.Inc()
}

func recordSimilarityScore(score float64) {
	similarityScores.Observe(score)
}
