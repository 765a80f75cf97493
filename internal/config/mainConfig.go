// Package config main config
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v7"
)

// MainConfig with init data
type MainConfig struct {
	PostgresPort     string `env:"POSTGRES_PORT,notEmpty" envDefault:"5432"`
	PostgresHost     string `env:"POSTGRES_HOST,notEmpty" envDefault:"localhost"`
	PostgresPassword string `env:"POSTGRES_PASSWORD,notEmpty" envDefault:"postgres"`
	PostgresUser     string `env:"POSTGRES_USER,notEmpty" envDefault:"postgres"`
	PostgresDB       string `env:"POSTGRES_DB,notEmpty" envDefault:"postgres"`

	RedisAddr     string `env:"REDIS_ADDR,notEmpty" envDefault:"localhost:6379"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`

	// CommandStream is the matching engine input stream.
	CommandStream string `env:"COMMAND_STREAM,notEmpty" envDefault:"matching_engine:input"`

	OperationIDDivisor int64         `env:"OPERATION_ID_DIVISOR,notEmpty" envDefault:"1000000000"`
	CacheRepairTTL     time.Duration `env:"CACHE_REPAIR_TTL,notEmpty" envDefault:"24h"`
	StoreTimeout       time.Duration `env:"STORE_TIMEOUT,notEmpty" envDefault:"5s"`
	PublishTimeout     time.Duration `env:"PUBLISH_TIMEOUT,notEmpty" envDefault:"3s"`
	CloseConcurrency   int           `env:"CLOSE_CONCURRENCY,notEmpty" envDefault:"8"`
	BotSuspendTTL      time.Duration `env:"BOT_SUSPEND_TTL,notEmpty" envDefault:"30s"`

	RelayInterval  time.Duration `env:"RELAY_INTERVAL,notEmpty" envDefault:"200ms"`
	RelayBatchSize int           `env:"RELAY_BATCH_SIZE,notEmpty" envDefault:"100"`

	// RelayPublishBudget bounds publishing inside one relay transaction.
	RelayPublishBudget time.Duration `env:"RELAY_PUBLISH_BUDGET,notEmpty" envDefault:"4s"`

	MetricsPort string `env:"METRICS_PORT,notEmpty" envDefault:"9100"`
	LogLevel    string `env:"LOG_LEVEL,notEmpty" envDefault:"info"`
}

// NewMainConfig parsing config from environment
func NewMainConfig() (*MainConfig, error) {
	mainConfig := &MainConfig{}

	err := env.Parse(mainConfig)
	if err != nil {
		return nil, fmt.Errorf("config - NewMainConfig - Parse:%w", err)
	}
	if mainConfig.OperationIDDivisor <= 0 {
		return nil, fmt.Errorf("config - NewMainConfig: OPERATION_ID_DIVISOR must be positive")
	}
	if mainConfig.CloseConcurrency <= 0 {
		return nil, fmt.Errorf("config - NewMainConfig: CLOSE_CONCURRENCY must be positive")
	}
	if mainConfig.RelayPublishBudget < mainConfig.PublishTimeout || mainConfig.RelayPublishBudget >= mainConfig.StoreTimeout {
		return nil, fmt.Errorf("config - NewMainConfig: RELAY_PUBLISH_BUDGET must be within [PUBLISH_TIMEOUT, STORE_TIMEOUT)")
	}

	return mainConfig, nil
}
