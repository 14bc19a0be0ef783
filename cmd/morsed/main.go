package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"github.com/kumarlokesh/morse-tree/internal/api"
	"github.com/kumarlokesh/morse-tree/internal/config"
	"github.com/kumarlokesh/morse-tree/internal/logging"
	"github.com/kumarlokesh/morse-tree/internal/morse"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	addr := flag.String("addr", "", "server address (overrides config)")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	logger, err := logging.Stderr(cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to configure logging")
	}

	table, err := cfg.LoadTable()
	if err != nil {
		logger.Fatal().Err(err).Str("path", cfg.Table.Path).Msg("failed to load code table")
	}

	codec, err := morse.NewCodec(table,
		morse.WithPolicy(cfg.Policy()),
		morse.WithLogger(logger.With().Str("component", "codec").Logger()),
	)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to build code tree")
	}

	server := api.NewServer(cfg.Server.Addr, codec,
		api.WithLogger(logger.With().Str("component", "api").Logger()),
		api.WithMaxBodyBytes(cfg.Server.MaxBodyBytes),
	)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil {
			logger.Fatal().Err(err).Msg("server error")
		}
		return
	case sig := <-stop:
		logger.Info().Stringer("signal", sig).Msg("received signal, shutting down")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("error during server shutdown")
		return
	}
	if err := <-serverErrors; err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		return
	}
	logger.Info().Msg("server stopped")
}
