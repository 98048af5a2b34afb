// Package server provides the HTTP transport around the flow service:
// health check, chat submission with incremental delivery, Prometheus
// metrics, and graceful shutdown.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/eshvartz/pharmacy-agent/pharmacy"
)

type Config struct {
	Address string  `envconfig:"ADDRESS" split_words:"true" default:"0.0.0.0"`
	Port    string  `envconfig:"PORT" split_words:"true" default:"8080"`
	Rate    float64 `envconfig:"RATE" split_words:"true" default:"3"`
	Burst   int64   `envconfig:"BURST" split_words:"true" default:"60"`
}

type Server struct {
	server    *http.Server
	router    chi.Router
	agent     Responder
	directory pharmacy.Directory
	startedAt time.Time
}

func New(cfg Config, agent Responder, directory pharmacy.Directory) *Server {
	router := chi.NewRouter()

	s := &Server{
		server: &http.Server{
			Handler:      router,
			Addr:         cfg.Address + ":" + cfg.Port,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 120 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		router:    router,
		agent:     agent,
		directory: directory,
		startedAt: time.Now(),
	}

	limiter := newClientLimiter(cfg.Rate, cfg.Burst)

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(requestLogger)
	router.Use(middleware.Recoverer)
	router.Use(limiter.middleware)
	router.Use(metricsMiddleware)

	router.Get("/health", s.handleHealth)
	router.Post("/chat", s.handleChat)
	router.Handle("/metrics", promhttp.Handler())

	return s
}

// Start serves until the listener fails or Shutdown runs.
func (s *Server) Start() error {
	log.Info().Str("addr", s.server.Addr).Msg("http server listening")
	err := s.server.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
