package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/leondli/npsboard/internal/adapter/handler"
	"github.com/leondli/npsboard/internal/adapter/repository"
	"github.com/leondli/npsboard/internal/adapter/seed"
	"github.com/leondli/npsboard/internal/infrastructure/config"
	"github.com/leondli/npsboard/internal/infrastructure/events"
	"github.com/leondli/npsboard/internal/infrastructure/logger"
	"github.com/leondli/npsboard/internal/infrastructure/server"
	"github.com/leondli/npsboard/internal/usecase/dashboard"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		return serve(cfg)
	},
}

// buildPublisher fans events out to every configured sink. The hub is
// returned separately so the router can mount it.
func buildPublisher(cfg *config.EventsConfig) (events.Publisher, *events.Hub) {
	var (
		sinks events.Multi
		hub   *events.Hub
	)
	if cfg.WebSocket {
		hub = events.NewHub()
		sinks = append(sinks, hub)
	}
	if cfg.NATSURL != "" {
		pub, err := events.NewNATSPublisher(cfg.NATSURL, cfg.NATSSubjectPrefix)
		if err != nil {
			log.Warn().Err(err).Msg("NATS unavailable, change events will not be published there")
		} else {
			log.Info().Str("url", cfg.NATSURL).Str("prefix", cfg.NATSSubjectPrefix).Msg("Publishing change events to NATS")
			sinks = append(sinks, pub)
		}
	}

	switch len(sinks) {
	case 0:
		return &events.NoopPublisher{}, nil
	case 1:
		return sinks[0], hub
	default:
		return sinks, hub
	}
}

func serve(cfg *config.Config) error {
	logger.Init(&cfg.Log)
	logger.Watch()
	log.Info().Msg("Starting NPS dashboard...")

	publisher, hub := buildPublisher(&cfg.Events)
	dash := dashboard.New(repository.NewMemory(), publisher)
	defer func() {
		if err := dash.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close event publisher")
		}
	}()

	if cfg.Seed.Path != "" {
		f, err := seed.LoadFile(cfg.Seed.Path)
		if err != nil {
			return err
		}
		res, err := f.Apply(context.Background(), dash)
		if err != nil {
			return fmt.Errorf("apply seed: %w", err)
		}
		log.Info().
			Str("file", cfg.Seed.Path).
			Int("tags", res.Tags).
			Int("surveys", res.Surveys).
			Int("responses", res.Responses).
			Int("widgets", res.Widgets).
			Msg("Seed data loaded")
	}

	srv := server.New(&cfg.Server)
	handler.RegisterRoutes(srv.Router(), handler.NewHandlers(dash, hub))

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("start server: %w", err)
		}
		return nil
	case <-quit:
	}

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
	return nil
}
