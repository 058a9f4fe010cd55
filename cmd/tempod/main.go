// Command tempod runs the tempo daemon: redis-backed persistence, the game
// loop for resident entities, and the HTTP surface.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/tempoforge/tempo"
	"github.com/tempoforge/tempo/games/ascension"
	"github.com/tempoforge/tempo/games/province"
	"github.com/tempoforge/tempo/server"
	"github.com/tempoforge/tempo/statsd"
	storage "github.com/tempoforge/tempo/storage/redis"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("tempod exited")
	}
}

func run() error {
	cfg, err := tempo.LoadConfig()
	if err != nil {
		return err
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	if cfg.TraceEnabled {
		tracer.Start(tracer.WithService("tempod"), tracer.WithEnv(cfg.Namespace))
		defer tracer.Stop()
	}
	if cfg.StatsdAddress != "" {
		if err := statsd.Init(cfg.StatsdAddress, cfg.Namespace); err != nil {
			return err
		}
		defer statsd.Close()
	}

	store := storage.NewStorage(log.Logger, cfg.Namespace, storage.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
	})
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn().Err(err).Msg("failed to close storage")
		}
	}()
	if err := store.Ping(context.Background()); err != nil {
		return err
	}

	world := tempo.NewWorld(store,
		tempo.WithTickInterval(time.Duration(cfg.TickIntervalSeconds)*time.Second),
		tempo.WithJournalSize(cfg.JournalSize),
	)
	if err := world.RegisterEngine(tempo.New(province.NewDomain())); err != nil {
		return err
	}
	if err := world.RegisterEngine(tempo.New(ascension.NewDomain())); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go world.StartGameLoop(ctx)

	srv := server.New(world, server.WithPort(cfg.Port))
	go func() {
		<-ctx.Done()
		if err := srv.Shutdown(); err != nil {
			log.Warn().Err(err).Msg("failed to shut down server")
		}
	}()
	return srv.Serve()
}
