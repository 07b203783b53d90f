package consumer

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/domain"
	"github.com/postpulse/analytics-service/internal/metrics"
	"github.com/postpulse/analytics-service/internal/repository"
)

// ArchiveWriterConfig configures the archive writer
type ArchiveWriterConfig struct {
	MaxBatchSize int
	FlushTimeout time.Duration
}

// ArchiveWriter batches recorded events and writes them to the audit archive.
// Archiving is best effort: the events are already durable in the primary
// store, so a failed batch is logged and dropped rather than retried.
type ArchiveWriter struct {
	archive repository.ArchiveRepository
	config  ArchiveWriterConfig
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewArchiveWriter creates a new archive writer
func NewArchiveWriter(archive repository.ArchiveRepository, config ArchiveWriterConfig, m *metrics.Metrics, log *zap.Logger) *ArchiveWriter {
	return &ArchiveWriter{
		archive: archive,
		config:  config,
		metrics: m,
		log:     log,
	}
}

// Start begins batching events and writing them to the archive
func (w *ArchiveWriter) Start(ctx context.Context, in <-chan *domain.EngagementEvent) {
	ticker := time.NewTicker(w.config.FlushTimeout)
	defer ticker.Stop()

	batch := make([]*domain.EngagementEvent, 0, w.config.MaxBatchSize)

	for {
		select {
		case <-ctx.Done():
			w.log.Info("Archive writer shutting down")
			if len(batch) > 0 {
				w.flush(context.Background(), batch)
			}
			return

		case event, ok := <-in:
			if !ok {
				w.log.Info("Archive writer input channel closed")
				if len(batch) > 0 {
					w.flush(ctx, batch)
				}
				return
			}

			batch = append(batch, event)

			if len(batch) >= w.config.MaxBatchSize {
				w.flush(ctx, batch)
				batch = make([]*domain.EngagementEvent, 0, w.config.MaxBatchSize)
				ticker.Reset(w.config.FlushTimeout)
			}

		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(ctx, batch)
				batch = make([]*domain.EngagementEvent, 0, w.config.MaxBatchSize)
			}
		}
	}
}

// flush writes one batch to the archive
func (w *ArchiveWriter) flush(ctx context.Context, batch []*domain.EngagementEvent) {
	w.metrics.ArchiveBatchSize.Observe(float64(len(batch)))

	inserted, err := w.archive.InsertBatch(ctx, batch)
	if err != nil {
		w.log.Error("Failed to archive event batch",
			zap.Int("event_count", len(batch)),
			zap.Error(err))
		return
	}

	w.log.Info("Archived event batch", zap.Int("event_count", inserted))
}
