// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP metrics track HTTP request patterns and performance
var (
	// HTTPRequestsTotal counts total HTTP requests by method, path, and status
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// HTTPRequestDuration measures HTTP request duration in seconds
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// HTTPResponseSize measures HTTP response body size in bytes
	HTTPResponseSize = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_response_size_bytes",
			Help:    "HTTP response size in bytes",
			Buckets: prometheus.ExponentialBuckets(100, 10, 8),
		},
		[]string{"method", "path"},
	)

	// HTTPRequestsInFlight tracks requests currently being served
	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Number of HTTP requests currently being served",
		},
	)
)

// Content metrics track the synchronization layer
var (
	// ContentMutationsTotal counts create/delete operations per collection
	ContentMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "content_mutations_total",
			Help: "Total number of content mutations by collection, operation and result",
		},
		[]string{"collection", "operation", "result"},
	)

	// CollectionSize tracks the number of records last seen per collection
	CollectionSize = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "content_collection_records",
			Help: "Number of records in the collection after the last read or write",
		},
		[]string{"collection"},
	)

	// ObjectStoreDuration measures remote object store calls
	ObjectStoreDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "object_store_operation_duration_seconds",
			Help:    "Duration of object store operations in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"operation", "result"},
	)

	// FallbackCacheOperationsTotal counts fallback cache reads and writes
	FallbackCacheOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fallback_cache_operations_total",
			Help: "Total number of fallback cache operations by operation and result",
		},
		[]string{"operation", "result"},
	)

	// StoreLoadsTotal counts where each collection load got its data from
	StoreLoadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "site_store_loads_total",
			Help: "Total number of store loads by collection and data source (remote, cache, seed)",
		},
		[]string{"collection", "source"},
	)
)

// Relay metrics track contact mail and media uploads
var (
	// ContactSubmissionsTotal counts contact form submissions by result
	ContactSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "contact_submissions_total",
			Help: "Total number of contact submissions by result",
		},
		[]string{"result"},
	)

	// UploadsTotal counts media uploads by result
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Total number of media uploads by result",
		},
		[]string{"result"},
	)

	// UploadSize measures accepted upload sizes in bytes
	UploadSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "media_upload_size_bytes",
			Help:    "Size of accepted media uploads in bytes",
			Buckets: prometheus.ExponentialBuckets(10_000, 4, 8),
		},
	)
)
