// Package statsd emits engine timing metrics to a statsd agent. Until Init
// is called (or when no agent is configured) every emit is a no-op, so callers
// never guard their metric calls.
package statsd

import (
	"time"

	"github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

var client statsd.ClientInterface = &statsd.NoOpClient{}

// Client returns the active statsd client.
func Client() statsd.ClientInterface {
	return client
}

// Init connects the package to a statsd agent at the given address, tagging
// every metric with the namespace.
func Init(address, namespace string) error {
	newClient, err := statsd.New(address, statsd.WithTags([]string{"namespace:" + namespace}))
	if err != nil {
		return eris.Wrap(err, "error creating statsd client")
	}
	client = newClient
	return nil
}

// Close flushes and shuts down the client.
func Close() {
	if err := client.Close(); err != nil {
		log.Warn().Err(err).Msg("failed to close statsd client")
	}
	client = &statsd.NoOpClient{}
}

// EmitTickStat records how long one stage of tick processing took.
func EmitTickStat(start time.Time, stage string) {
	duration := time.Since(start)
	if err := client.Timing("tick", duration, []string{"stage:" + stage}, 1); err != nil {
		log.Debug().Err(err).Str("stage", stage).Msg("failed to emit tick stat")
	}
}

// EmitCatchupStat records the size of a settled catchup.
func EmitCatchupStat(game string, ticks int64) {
	if err := client.Histogram("catchup.ticks", float64(ticks), []string{"game:" + game}, 1); err != nil {
		log.Debug().Err(err).Str("game", game).Msg("failed to emit catchup stat")
	}
}
