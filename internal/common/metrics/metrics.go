package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	AggregationRequests = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "aggregation_requests_total",
			Help: "Total number of aggregated job listing requests",
		},
	)

	AggregationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "aggregation_duration_seconds",
			Help: "End-to-end duration of listing aggregation in seconds",
		},
	)

	ProviderFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_fetches_total",
			Help: "Total external listing fetches by provider and outcome",
		},
		[]string{"provider", "outcome"},
	)

	ProviderJobsFetched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "provider_jobs_fetched_total",
			Help: "Total jobs returned by each external provider",
		},
		[]string{"provider"},
	)

	RemoteFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_remote_fallbacks_total",
			Help: "Reads served from the local cache because the remote store was unreachable",
		},
		[]string{"entity"},
	)

	RemoteSyncFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "store_remote_sync_failures_total",
			Help: "Writes that landed in the local cache but failed to reach the remote store",
		},
		[]string{"entity", "op"},
	)
)
