package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/postpulse/analytics-service/docs"
	"github.com/postpulse/analytics-service/internal/config"
	"github.com/postpulse/analytics-service/internal/handler"
	"github.com/postpulse/analytics-service/internal/idempotency"
	"github.com/postpulse/analytics-service/internal/logger"
	"github.com/postpulse/analytics-service/internal/metrics"
	"github.com/postpulse/analytics-service/internal/queue"
	"github.com/postpulse/analytics-service/internal/queue/sqs"
	"github.com/postpulse/analytics-service/internal/repository"
	"github.com/postpulse/analytics-service/internal/repository/memory"
	"github.com/postpulse/analytics-service/internal/repository/postgres"
	"github.com/postpulse/analytics-service/internal/service"
)

// @title PostPulse Analytics Service API
// @version 1.0
// @description Tenant-scoped engagement event ingestion, aggregation, and attribution
// @host localhost:8080
// @BasePath /
// @schemes http https
func main() {
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

	log.Info("Starting API service",
		zap.String("environment", cfg.Service.Environment),
		zap.String("port", cfg.Service.APIPort))

	// Configure Swagger host dynamically
	docs.SwaggerInfo.Host = cfg.Service.Host

	ctx := context.Background()

	m := metrics.New("analytics", prometheus.DefaultRegisterer)

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

		events = postgres.NewEventRepository(pool, log)
		aggregates = postgres.NewAggregateRepository(pool, log)
		lookups = postgres.NewLookupRepository(pool)
	} else {
		log.Warn("POSTGRES_DSN is empty, using in-memory repositories")
		events = memory.NewEventRepository()
		aggregates = memory.NewAggregateRepository()
		lookups = memory.NewLookupRepository()
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

	// Optional webhook intake queue
	var publisher queue.QueuePublisher
	if cfg.SQS.QueueURL != "" {
		sqsClient, err := sqs.NewClient(ctx, cfg.SQS, log)
		if err != nil {
			log.Fatal("Failed to create SQS client", zap.Error(err))
		}
		publisher = sqsClient
	} else {
		log.Warn("SQS_QUEUE_URL is empty, webhook intake disabled")
	}

	resolver := service.NewAttributionResolver(lookups, log)
	aggregator := service.NewAggregator(aggregates, m, log)
	eventService := service.NewEventService(events, resolver, aggregator, guard, m, log)
	analyticsService := service.NewAnalyticsService(aggregates, lookups, m, log)

	h := handler.NewHandler(eventService, analyticsService, publisher, m, log)

	addr := fmt.Sprintf(":%s", cfg.Service.APIPort)
	log.Info("API server starting", zap.String("address", addr))

	if err := http.ListenAndServe(addr, h); err != nil {
		log.Fatal("Failed to start API server", zap.Error(err))
	}
}
