package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/classical-cipher-go/internal/cipher"
	"github.com/classical-cipher-go/internal/config"
	"github.com/classical-cipher-go/internal/server"
)

func main() {
	// Load configuration first
	cfg := config.Load()

	// Setup logging based on config
	setupLogging(cfg)

	log.Info().Str("version", config.Version).Msg("Starting classical-cipher")
	log.Info().
		Str("http_addr", cfg.GetHTTPAddr()).
		Bool("h2c", cfg.Scheme.EnableH2C).
		Bool("https", cfg.IsHTTPSEnabled()).
		Str("audit", cfg.Audit.Driver).
		Msg("Configuration loaded")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	srv, err := server.New(ctx, cfg, cipher.DefaultKeySource)
	cancel()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create server")
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info().Msg("Received shutdown signal")
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("Error during shutdown")
		}
		os.Exit(0)
	}()

	// Start server
	if err := srv.Start(); err != nil {
		log.Fatal().Err(err).Msg("Server error")
	}
}

func setupLogging(cfg *config.Config) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	level, err := zerolog.ParseLevel(cfg.Log.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if cfg.Log.Format == "console" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
