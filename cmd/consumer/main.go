package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/internal/config"
	"github.com/postpulse/analytics-service/internal/consumer"
	"github.com/postpulse/analytics-service/internal/idempotency"
	"github.com/postpulse/analytics-service/internal/logger"
	"github.com/postpulse/analytics-service/internal/metrics"
	"github.com/postpulse/analytics-service/internal/queue/sqs"
	"github.com/postpulse/analytics-service/internal/repository"
	"github.com/postpulse/analytics-service/internal/repository/clickhouse"
	"github.com/postpulse/analytics-service/internal/repository/memory"
	"github.com/postpulse/analytics-service/internal/repository/postgres"
	"github.com/postpulse/analytics-service/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger
	log, err := logger.New(cfg.Service.Environment)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer func(log *zap.Logger) {
		err := log.Sync()
		if err != nil {
			log.Error("Failed to sync logger", zap.Error(err))
		}
	}(log)

	log.Info("Starting webhook consumer",
		zap.String("environment", cfg.Service.Environment))

	if cfg.SQS.QueueURL == "" {
		log.Fatal("SQS_QUEUE_URL is required for the consumer")
	}

	ctx := context.Background()

	m := metrics.New("analytics_consumer", prometheus.DefaultRegisterer)

	// Initialize repositories. An empty Postgres DSN falls back to in-memory
	// stores for local development.
	var (
		events     repository.EventRepository
		aggregates repository.AggregateRepository
		lookups    repository.LookupRepository
	)
	if cfg.Postgres.DSN != "" {
		pool, err := postgres.NewPool(ctx, &cfg.Postgres, log)
		if err != nil {
			log.Fatal("Failed to connect to Postgres", zap.Error(err))
		}
		defer pool.Close()

		if err := postgres.InitSchema(ctx, pool); err != nil {
			log.Fatal("Failed to initialize schema", zap.Error(err))
		}
		log.Info("Database schema initialized")

		events = postgres.NewEventRepository(pool, log)
		aggregates = postgres.NewAggregateRepository(pool, log)
		lookups = postgres.NewLookupRepository(pool)
	} else {
		log.Warn("POSTGRES_DSN is empty, using in-memory repositories")
		events = memory.NewEventRepository()
		aggregates = memory.NewAggregateRepository()
		lookups = memory.NewLookupRepository()
	}

	// Optional event archive
	var archive repository.ArchiveRepository
	if cfg.ClickHouse.Host != "" {
		chClient, err := clickhouse.NewClient(ctx, &cfg.ClickHouse, log)
		if err != nil {
			log.Fatal("Failed to create ClickHouse client", zap.Error(err))
		}
		defer func() {
			if err := chClient.Close(); err != nil {
				log.Error("Failed to close ClickHouse client", zap.Error(err))
			}
		}()

		archiveRepo := clickhouse.NewArchiveRepository(chClient, log)
		if err := archiveRepo.InitSchema(ctx); err != nil {
			log.Fatal("Failed to initialize archive schema", zap.Error(err))
		}
		log.Info("Archive schema initialized")
		archive = archiveRepo
	} else {
		log.Warn("CLICKHOUSE_HOST is empty, event archiving disabled")
	}

	// Optional duplicate-delivery fast path
	var guard service.DedupGuard
	if cfg.Valkey.Host != "" && cfg.Valkey.IdempotencyEnabled {
		g, err := idempotency.NewGuard(ctx, &cfg.Valkey, log)
		if err != nil {
			log.Fatal("Failed to connect to Valkey", zap.Error(err))
		}
		defer func() {
			if err := g.Close(); err != nil {
				log.Error("Failed to close Valkey client", zap.Error(err))
			}
		}()
		guard = g
	}

	// Initialize SQS client
	sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
	if err != nil {
		log.Fatal("Failed to create SQS client", zap.Error(err))
	}

	resolver := service.NewAttributionResolver(lookups, log)
	aggregator := service.NewAggregator(aggregates, m, log)
	eventService := service.NewEventService(events, resolver, aggregator, guard, m, log)

	c := consumer.NewConsumer(cfg, sqsClient, eventService, archive, m, log)

	// Start health check endpoint
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			if err := events.Ping(r.Context()); err != nil {
				log.Warn("Health check failed", zap.Error(err))
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			w.WriteHeader(http.StatusOK)
		})

		addr := ":" + cfg.Consumer.HealthCheckPort
		log.Info("Health check server starting", zap.String("address", addr))
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.Error("Health check server error", zap.Error(err))
		}
	}()

	// Start consumer
	consumerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	log.Info("Consumer starting")

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := c.Start(consumerCtx); err != nil {
			log.Error("Consumer error", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	log.Info("Shutting down consumer gracefully")
	cancel()
	<-done
}
