package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	FeedQueries = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "extopy_feed_queries_total",
		Help: "Total feed listing queries by feed kind",
	}, []string{"feed"})
	PostMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "extopy_post_mutations_total",
		Help: "Total post create/update/delete operations",
	}, []string{"op"})
	EdgeMutations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "extopy_edge_mutations_total",
		Help: "Total like/follow edge mutations",
	}, []string{"edge", "op"})
	HttpRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "extopy_http_requests_total",
		Help: "Total HTTP requests by method and status",
	}, []string{"method", "status"})
	QueryDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "extopy_feed_query_duration_seconds",
		Help:    "Feed query duration seconds",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(FeedQueries, PostMutations, EdgeMutations, HttpRequests, QueryDuration)
}

// Handler returns the scrape endpoint handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveQueryDuration records one feed query duration.
func ObserveQueryDuration(start time.Time) {
	QueryDuration.Observe(time.Since(start).Seconds())
}
