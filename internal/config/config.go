package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Service holds process-level settings.
type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
	Host        string `envconfig:"SERVICE_HOST" default:"localhost:8080"`
}

// Postgres configures the primary relational store. An empty DSN switches the
// service to in-memory repositories, which are not durable and intended for
// local development and tests.
type Postgres struct {
	DSN      string `envconfig:"POSTGRES_DSN" default:""`
	MaxConns int32  `envconfig:"POSTGRES_MAX_CONNS" default:"10"`
}

// ClickHouse configures the optional event archive. An empty host disables
// archiving.
type ClickHouse struct {
	Host            string `envconfig:"CLICKHOUSE_HOST" default:""`
	Port            string `envconfig:"CLICKHOUSE_PORT" default:"9000"`
	Database        string `envconfig:"CLICKHOUSE_DB" default:"analytics"`
	User            string `envconfig:"CLICKHOUSE_USER" default:""`
	Password        string `envconfig:"CLICKHOUSE_PASSWORD" default:""`
	UseTLS          bool   `envconfig:"CLICKHOUSE_USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"CLICKHOUSE_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"CLICKHOUSE_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CLICKHOUSE_CONN_MAX_LIFETIME_SEC" default:"3600"`
}

// SQS configures the webhook intake queue. Endpoint is only set for local
// development against ElasticMQ.
type SQS struct {
	Endpoint string `envconfig:"SQS_ENDPOINT" default:""`
	QueueURL string `envconfig:"SQS_QUEUE_URL" default:""`
	Region   string `envconfig:"SQS_REGION" default:"eu-central-1"`
}

// Valkey configures the duplicate-delivery fast path. The real idempotency
// guarantee is the unique index on the event log; Valkey only short-circuits
// known duplicates before they reach the database.
type Valkey struct {
	Host                string `envconfig:"VALKEY_HOST" default:""`
	Port                string `envconfig:"VALKEY_PORT" default:"6379"`
	IdempotencyEnabled  bool   `envconfig:"VALKEY_IDEMPOTENCY_ENABLED" default:"true"`
	IdempotencyFailOpen bool   `envconfig:"VALKEY_IDEMPOTENCY_FAIL_OPEN" default:"true"`
	IdempotencyTTLSec   int    `envconfig:"VALKEY_IDEMPOTENCY_TTL_SEC" default:"86400"`
}

// Consumer configures the webhook consumer pipeline.
type Consumer struct {
	ArchiveBatchSizeMax int    `envconfig:"CONSUMER_ARCHIVE_BATCH_SIZE_MAX" default:"2000"`
	ArchiveFlushSec     int    `envconfig:"CONSUMER_ARCHIVE_FLUSH_SEC" default:"10"`
	HealthCheckPort     string `envconfig:"CONSUMER_HEALTH_CHECK_PORT" default:"8081"`
}

// Config is the full service configuration, loaded from the environment.
type Config struct {
	Service    Service
	Postgres   Postgres
	ClickHouse ClickHouse
	SQS        SQS
	Valkey     Valkey
	Consumer   Consumer
}

// Load reads configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
