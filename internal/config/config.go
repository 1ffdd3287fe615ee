package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Service holds service-level settings shared by the API and the CLI
type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" default:"development"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
	Host        string `envconfig:"SERVICE_HOST" default:"localhost:8080"`
}

// ClickHouse holds connection settings for the analytics store
type ClickHouse struct {
	Host            string `envconfig:"CLICKHOUSE_HOST" default:"localhost"`
	Port            string `envconfig:"CLICKHOUSE_PORT" default:"9000"`
	Database        string `envconfig:"CLICKHOUSE_DB" default:"retail"`
	User            string `envconfig:"CLICKHOUSE_USER" default:"default"`
	Password        string `envconfig:"CLICKHOUSE_PASSWORD" default:""`
	UseTLS          bool   `envconfig:"CLICKHOUSE_USE_TLS" default:"false"`
	MaxOpenConns    int    `envconfig:"CLICKHOUSE_MAX_OPEN_CONNS" default:"5"`
	MaxIdleConns    int    `envconfig:"CLICKHOUSE_MAX_IDLE_CONNS" default:"2"`
	ConnMaxLifetime int    `envconfig:"CLICKHOUSE_CONN_MAX_LIFETIME_SEC" default:"3600"`
}

// Loader holds settings for the CSV ingestion pipeline
type Loader struct {
	BatchSize       int    `envconfig:"LOADER_BATCH_SIZE" default:"2000"`
	FlushTimeoutSec int    `envconfig:"LOADER_FLUSH_TIMEOUT_SEC" default:"5"`
	CancelPrefix    string `envconfig:"LOADER_CANCEL_PREFIX" default:"C"`
}

// Report holds settings for the JSON report exporter
type Report struct {
	OutputDir string `envconfig:"REPORT_OUTPUT_DIR" default:"reports"`
}

type Config struct {
	Service    Service
	ClickHouse ClickHouse
	Loader     Loader
	Report     Report
}

// Load reads configuration from the environment. A .env file in the
// working directory or one of its parents is applied first when present.
func Load() (*Config, error) {
	for _, envFile := range []string{".env", "../.env", "../../.env"} {
		if err := godotenv.Load(envFile); err == nil {
			break
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
