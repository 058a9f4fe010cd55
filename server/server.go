// Package server exposes the world over HTTP with fiber.
package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"

	"github.com/tempoforge/tempo"
	"github.com/tempoforge/tempo/server/handler"
)

// DefaultPort is used when no port is configured.
const DefaultPort = "4040"

// Server wraps the fiber app serving the world's operations.
type Server struct {
	app  *fiber.App
	port string
}

// Option configures a Server at construction.
type Option func(*Server)

// WithPort sets the listen port.
func WithPort(port string) Option {
	return func(s *Server) { s.port = port }
}

// New builds the HTTP server around the world and mounts every route.
func New(world *tempo.World, opts ...Option) *Server {
	app := fiber.New(fiber.Config{
		Network:               "tcp",
		DisableStartupMessage: true,
	})
	s := &Server{app: app, port: DefaultPort}
	for _, opt := range opts {
		opt(s)
	}
	s.mountRoutes(world)
	return s
}

func (s *Server) mountRoutes(world *tempo.World) {
	s.app.Get("/health", handler.GetHealth(world))
	game := s.app.Group("/:game")
	game.Get("/ladder", handler.GetLadder())
	game.Post("/entities", handler.PostCreateEntity(world))
	game.Get("/state/:id", handler.GetState(world))
	game.Post("/tick/:id", handler.PostTick(world))
	game.Post("/catchup/:id", handler.PostCatchup(world))
	game.Post("/release/:id", handler.PostRelease(world))
	game.Post("/trial/:id", handler.PostTrial(world))
	game.Get("/journal/:id", handler.GetJournal(world))
	game.Get("/leaderboard", handler.GetLeaderboard(world))
}

// App returns the underlying fiber app, used by tests to issue in-process
// requests.
func (s *Server) App() *fiber.App {
	return s.app
}

// Serve blocks listening on the configured port.
func (s *Server) Serve() error {
	log.Info().Str("port", s.port).Msg("serving tempo")
	if err := s.app.Listen(":" + s.port); err != nil {
		return eris.Wrap(err, "error starting http server")
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown() error {
	if err := s.app.Shutdown(); err != nil {
		return eris.Wrap(err, "error shutting down http server")
	}
	return nil
}
