package domain

import "time"

// Config defines the config for the limit order engine server.
type Config struct {
	// Defines the web server configuration.
	ServerAddress string `mapstructure:"server-address"`

	// Defines the logger configuration.
	LoggerFilename     string `mapstructure:"logger-filename"`
	LoggerIsProduction bool   `mapstructure:"logger-is-production"`
	LoggerLevel        string `mapstructure:"logger-level"`

	// EngineAddress is the account that custodies order positions and maker credits.
	EngineAddress string `mapstructure:"engine-address"`

	// GenesisFile is the YAML file with tokens, pools, liquidity and balances loaded at start.
	GenesisFile string `mapstructure:"genesis-file"`

	Storage *StorageConfig `mapstructure:"storage"`

	Events *EventsConfig `mapstructure:"events"`

	FillBot *FillBotConfig `mapstructure:"fill-bot"`

	CORS *CORSConfig `mapstructure:"cors"`

	OTEL *OTELConfig `mapstructure:"otel"`
}

const (
	StorageTypeMemory = "memory"
	StorageTypePebble = "pebble"
)

// StorageConfig defines where orders are persisted.
type StorageConfig struct {
	// Type is either "memory" or "pebble".
	Type string `mapstructure:"type"`
	// Path is the pebble directory.
	Path string `mapstructure:"path"`
	// CacheSize is the number of orders kept in the LRU read cache.
	CacheSize int `mapstructure:"cache-size"`
}

// EventsConfig defines the event sinks. The in-memory sink is always enabled.
type EventsConfig struct {
	Kafka *KafkaConfig `mapstructure:"kafka"`
	// JournalPath is the sqlite file of the event journal. Empty disables the journal.
	JournalPath string `mapstructure:"journal-path"`
	// WebsocketEnabled serves the live stream at /ws/events.
	WebsocketEnabled bool `mapstructure:"websocket-enabled"`
	// BufferSize is the number of events kept by the in-memory sink.
	BufferSize int `mapstructure:"buffer-size"`
}

// KafkaConfig defines the kafka publisher. No brokers disables it.
type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
	Topic   string   `mapstructure:"topic"`
}

// FillBotConfig defines the order filling bot.
type FillBotConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Address is the account the bot fills from. It must have funds and have approved the engine.
	Address  string        `mapstructure:"address"`
	Interval time.Duration `mapstructure:"interval"`
	// MinProfit is the minimum ratio of value received over value paid, for example 1.001.
	MinProfit string `mapstructure:"min-profit"`
	// NumWorkers is the number of concurrent order quoting workers.
	NumWorkers int `mapstructure:"num-workers"`
	// FillBatchSize is the number of fills sent before checking for shutdown.
	FillBatchSize int `mapstructure:"fill-batch-size"`
}

// CORSConfig defines the allowed cross-origin requests.
type CORSConfig struct {
	AllowedHeaders string `mapstructure:"allowed-headers"`
	AllowedMethods string `mapstructure:"allowed-methods"`
	AllowedOrigin  string `mapstructure:"allowed-origin"`
}

// OTELConfig defines tracing and error reporting.
type OTELConfig struct {
	// DSN is the sentry DSN. Empty disables sentry.
	DSN                string  `mapstructure:"dsn"`
	SampleRate         float64 `mapstructure:"sample-rate"`
	EnableTracing      bool    `mapstructure:"enable-tracing"`
	ProfilesSampleRate float64 `mapstructure:"profiles-sample-rate"`
	Environment        string  `mapstructure:"environment"`
	// StdoutTracing exports spans to stdout.
	StdoutTracing bool `mapstructure:"stdout-tracing"`
}
