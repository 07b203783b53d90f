package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus instruments for the analytics pipeline.
type Metrics struct {
	EventsRecorded   *prometheus.CounterVec
	DuplicateEvents  *prometheus.CounterVec
	AttributionGaps  prometheus.Counter
	AggregateUpserts *prometheus.CounterVec
	UpsertRetries    prometheus.Counter
	QueryDuration    *prometheus.HistogramVec
	WebhooksEnqueued *prometheus.CounterVec
	ArchiveBatchSize prometheus.Histogram
}

// New creates and registers all metrics on the given registerer.
func New(namespace string, reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		EventsRecorded: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_recorded_total",
				Help:      "Total number of engagement events recorded",
			},
			[]string{"event_type", "platform"},
		),
		DuplicateEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "duplicate_events_total",
				Help:      "Total number of duplicate deliveries absorbed as no-ops",
			},
			[]string{"platform"},
		),
		AttributionGaps: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "attribution_gaps_total",
				Help:      "Total number of events recorded without a resolvable scheduled post",
			},
		),
		AggregateUpserts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "aggregate_upserts_total",
				Help:      "Total number of aggregate increments applied",
			},
			[]string{"platform"},
		),
		UpsertRetries: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "aggregate_upsert_retries_total",
				Help:      "Total number of aggregate upserts retried after a conflict",
			},
		),
		QueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "query_duration_seconds",
				Help:      "Latency of analytics read operations",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		WebhooksEnqueued: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "webhooks_enqueued_total",
				Help:      "Total number of webhook payloads enqueued for ingestion",
			},
			[]string{"platform"},
		),
		ArchiveBatchSize: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "archive_batch_size",
				Help:      "Number of events per archive batch",
				Buckets:   []float64{1, 10, 50, 100, 500, 1000, 2000},
			},
		),
	}
}
