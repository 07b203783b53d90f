package consumer

import (
	"context"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/config"
	"github.com/postpulse/analytics-service/internal/domain"
	"github.com/postpulse/analytics-service/internal/metrics"
	"github.com/postpulse/analytics-service/internal/queue"
	"github.com/postpulse/analytics-service/internal/repository"
	"github.com/postpulse/analytics-service/internal/service"
)

// Consumer orchestrates a pipeline of stages to process webhook messages:
// receive from SQS, parse, record through the event service, and archive.
type Consumer struct {
	receiver      *Receiver
	parser        *ParserStage
	recorder      *Recorder
	archiveWriter *ArchiveWriter
}

// NewConsumer creates a new consumer with a pipeline architecture. The archive
// repository may be nil, in which case the archive stage is skipped.
func NewConsumer(cfg *config.Config, queueConsumer queue.QueueConsumer, events service.EventServicer, archive repository.ArchiveRepository, m *metrics.Metrics, log *zap.Logger) *Consumer {
	receiver := NewReceiver(queueConsumer, ReceiverConfig{
		MaxMessages:     10,
		WaitTimeSeconds: 20,
		BufferSize:      100,
	}, log)

	parser := NewParserStage(queueConsumer, NewJSONWebhookParser(), log)

	recorder := NewRecorder(events, log)

	var archiveWriter *ArchiveWriter
	if archive != nil {
		archiveWriter = NewArchiveWriter(archive, ArchiveWriterConfig{
			MaxBatchSize: cfg.Consumer.ArchiveBatchSizeMax,
			FlushTimeout: time.Duration(cfg.Consumer.ArchiveFlushSec) * time.Second,
		}, m, log)
	}

	return &Consumer{
		receiver:      receiver,
		parser:        parser,
		recorder:      recorder,
		archiveWriter: archiveWriter,
	}
}

// Start begins the consumer pipeline and blocks until it drains
func (c *Consumer) Start(ctx context.Context) error {
	messageChan := make(chan types.Message, 100)
	envelopeChan := make(chan *Envelope, 100)

	var archiveChan chan *domain.EngagementEvent
	if c.archiveWriter != nil {
		archiveChan = make(chan *domain.EngagementEvent, 100)
	}

	var wg sync.WaitGroup

	wg.Add(2)

	// Stage 1: Receive messages from SQS
	go func() {
		defer wg.Done()
		c.receiver.Start(ctx, messageChan)
	}()

	// Stage 2: Parse messages into envelopes
	go func() {
		defer wg.Done()
		c.parser.Start(ctx, messageChan, envelopeChan)
	}()

	// Stage 3: Record events and ack/nack
	wg.Add(1)
	go func() {
		defer wg.Done()
		c.recorder.Start(ctx, envelopeChan, archiveChan)
	}()

	// Stage 4: Batch recorded events into the audit archive
	if c.archiveWriter != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.archiveWriter.Start(ctx, archiveChan)
		}()
	}

	wg.Wait()
	return nil
}
