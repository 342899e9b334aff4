// Package metrics holds the Prometheus collectors shared by handlers and services.
// Collectors are constructed eagerly so they are safe to use before Register.
package metrics

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "topictube_api_request_duration_seconds",
			Help:    "HTTP request duration in seconds, by endpoint and method.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "method", "status"},
	)

	RequestsInFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "topictube_requests_in_flight",
			Help: "Number of HTTP requests currently being served.",
		},
	)

	IngestTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "topictube_ingest_batches_total",
			Help: "Ingestion batches, by outcome.",
		},
		[]string{"outcome"},
	)

	VideosUpserted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "topictube_videos_upserted_total",
			Help: "Feed entries written to the store.",
		},
	)

	FeedFetchDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "topictube_feed_fetch_duration_seconds",
			Help:    "Duration of channel feed downloads.",
			Buckets: prometheus.DefBuckets,
		},
	)

	TopicPassDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "topictube_topic_pass_duration_seconds",
			Help:    "Duration of corpus-wide clustering and theme passes.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"pass"},
	)

	CacheHits = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "topictube_cache_hits_total",
			Help: "Total Redis cache hits.",
		},
	)

	CacheMisses = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "topictube_cache_misses_total",
			Help: "Total Redis cache misses.",
		},
	)
)

// Register registers all collectors with the default registry. Call once at startup.
// pool may be nil when the SQLite store is in use.
func Register(pool *pgxpool.Pool) {
	if pool != nil {
		prometheus.MustRegister(
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "topictube_db_connection_pool_active",
					Help: "Number of active database connections.",
				},
				func() float64 { return float64(pool.Stat().AcquiredConns()) },
			),
			prometheus.NewGaugeFunc(
				prometheus.GaugeOpts{
					Name: "topictube_db_connection_pool_idle",
					Help: "Number of idle database connections.",
				},
				func() float64 { return float64(pool.Stat().IdleConns()) },
			),
		)
	}

	prometheus.MustRegister(
		RequestDuration,
		RequestsInFlight,
		IngestTotal,
		VideosUpserted,
		FeedFetchDuration,
		TopicPassDuration,
		CacheHits,
		CacheMisses,
	)
}
