package tempo

import (
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// Config is the daemon configuration, loaded from the environment once at
// startup.
type Config struct {
	// RedisAddress is the address of the redis server backing persistence.
	RedisAddress string `env:"TEMPO_REDIS_ADDRESS" envDefault:"localhost:6379"`
	// RedisPassword is the password for the redis server. Can be empty for
	// local development; never run production without one.
	RedisPassword string `env:"TEMPO_REDIS_PASSWORD"`
	// Namespace prefixes every redis key so multiple deployments can share a
	// server.
	Namespace string `env:"TEMPO_NAMESPACE" envDefault:"tempo"`
	// Port is the HTTP port the server listens on.
	Port string `env:"TEMPO_PORT" envDefault:"4040"`
	// LogLevel controls the zerolog global level.
	LogLevel string `env:"TEMPO_LOG_LEVEL" envDefault:"info"`
	// StatsdAddress is the statsd agent address. Empty disables metrics.
	StatsdAddress string `env:"TEMPO_STATSD_ADDRESS"`
	// TraceEnabled turns on APM tracing of the game loop.
	TraceEnabled bool `env:"TEMPO_TRACE_ENABLED" envDefault:"false"`
	// TickIntervalSeconds is how often the game loop ticks resident entities.
	TickIntervalSeconds int `env:"TEMPO_TICK_INTERVAL_SECONDS" envDefault:"60"`
	// JournalSize is how many recent results are retained per entity.
	JournalSize int `env:"TEMPO_JOURNAL_SIZE" envDefault:"16"`
}

// LoadConfig reads and validates the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to parse environment config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, eris.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

// Validate rejects configurations the daemon cannot run with.
func (cfg Config) Validate() error {
	if cfg.Namespace == "" || strings.ContainsAny(cfg.Namespace, ": ") {
		return eris.Errorf("namespace %q must be non-empty and free of colons and spaces", cfg.Namespace)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return eris.Wrapf(err, "log level %q is invalid", cfg.LogLevel)
	}
	if cfg.TickIntervalSeconds <= 0 {
		return eris.New("tick interval must be positive")
	}
	return nil
}
