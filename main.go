package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	flowx "github.com/eshvartz/pharmacy-agent/agent/flow"
	llmx "github.com/eshvartz/pharmacy-agent/agent/llm"
	promptx "github.com/eshvartz/pharmacy-agent/agent/prompt"
	"github.com/eshvartz/pharmacy-agent/pharmacy"
	configx "github.com/eshvartz/pharmacy-agent/pkg/config"
	_ "github.com/eshvartz/pharmacy-agent/pkg/logger/autoload"
	openrouterx "github.com/eshvartz/pharmacy-agent/pkg/openrouter"
	serverx "github.com/eshvartz/pharmacy-agent/server"
)

type AppConfig struct {
	// DatabaseURL selects the Postgres-backed directory; when empty the
	// seeded in-memory directory serves instead.
	DatabaseURL     string        `envconfig:"DATABASE_URL"`
	SnapshotRefresh time.Duration `envconfig:"SNAPSHOT_REFRESH" split_words:"true" default:"10m"`
}

func main() {
	ctx := context.Background()

	appCfg := configx.MustNew[AppConfig]("")
	llmCfg := configx.MustNew[llmx.Config]("LLM")
	serverCfg := configx.MustNew[serverx.Config]("SERVER")

	if err := llmCfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid llm config")
	}

	directory, cleanup, err := buildDirectory(ctx, appCfg)
	if err != nil {
		log.Fatal().Err(err).Msg("build pharmacy directory")
	}
	defer cleanup()

	prompts := promptx.LoadPromptSet()

	classifierModelCfg := llmCfg.OpenRouterFor(llmx.CapabilityClassifier)
	classifier, err := llmx.NewClassifier(ctx, &classifierModelCfg, prompts.Classifier)
	if err != nil {
		log.Fatal().Err(err).Msg("build classifier")
	}

	composerModelCfg := llmCfg.OpenRouterFor(llmx.CapabilityComposer)
	composer, err := llmx.NewComposer(openrouterx.NewClient(composerModelCfg), composerModelCfg.Model, prompts.Composer)
	if err != nil {
		log.Fatal().Err(err).Msg("build composer")
	}

	agent, err := flowx.New(directory, classifier, composer)
	if err != nil {
		log.Fatal().Err(err).Msg("build flow service")
	}

	srv := serverx.New(*serverCfg, agent, directory)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil {
			log.Fatal().Err(err).Msg("http server failed")
		}
	case sig := <-stop:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}
}

func buildDirectory(ctx context.Context, cfg *AppConfig) (pharmacy.Directory, func(), error) {
	if cfg.DatabaseURL == "" {
		log.Info().Msg("no database configured, serving seeded in-memory directory")
		return pharmacy.SeedDirectory(), func() {}, nil
	}

	source, err := pharmacy.NewPostgresDirectory(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := source.Ping(pingCtx); err != nil {
		_ = source.Close()
		return nil, nil, err
	}

	snapshot := pharmacy.NewSnapshotDirectory(source, nil)
	if err := snapshot.Start(ctx, cfg.SnapshotRefresh); err != nil {
		_ = source.Close()
		return nil, nil, err
	}

	cleanup := func() {
		snapshot.Stop()
		_ = source.Close()
	}
	return snapshot, cleanup, nil
}
