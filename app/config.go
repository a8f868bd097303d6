package main

import (
	"time"

	"github.com/osmosis-labs/limitswap/domain"
	"github.com/osmosis-labs/limitswap/events"
	limitorderrepository "github.com/osmosis-labs/limitswap/limitorder/repository"
)

// DefaultConfig defines the default config for the limit order engine server.
var DefaultConfig = NewDefaultConfig()

// NewDefaultConfig returns a default config that shares no state with DefaultConfig.
func NewDefaultConfig() domain.Config {
	return domain.Config{
		ServerAddress: ":9092",

		LoggerFilename:     "limitswap.log",
		LoggerIsProduction: true,
		LoggerLevel:        "info",

		EngineAddress: "limitswap-engine",
		GenesisFile:   "genesis.yaml",

		Storage: &domain.StorageConfig{
			Type:      domain.StorageTypeMemory,
			Path:      "data/orders",
			CacheSize: limitorderrepository.DefaultCacheSize,
		},

		Events: &domain.EventsConfig{
			Kafka: &domain.KafkaConfig{
				Brokers: []string{},
				Topic:   events.DefaultKafkaTopic,
			},
			JournalPath:      "data/events.db",
			WebsocketEnabled: true,
			BufferSize:       events.DefaultBufferSize,
		},

		FillBot: &domain.FillBotConfig{
			Enabled:       false,
			Address:       "limitswap-fill-bot",
			Interval:      5 * time.Second,
			MinProfit:     "1.001",
			NumWorkers:    4,
			FillBatchSize: 10,
		},

		CORS: &domain.CORSConfig{
			AllowedHeaders: "Origin, Accept, Content-Type, X-Requested-With",
			AllowedMethods: "HEAD, GET, POST, OPTIONS",
			AllowedOrigin:  "*",
		},

		OTEL: &domain.OTELConfig{
			DSN:                "",
			SampleRate:         0.1,
			EnableTracing:      false,
			ProfilesSampleRate: 0.0,
			Environment:        "local",
		},
	}
}
