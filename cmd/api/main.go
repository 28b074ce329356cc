package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"customer-directory/internal/config"
	"customer-directory/internal/httpserver"
	"customer-directory/internal/logx"
	customerrepo "customer-directory/internal/repository/customer"
	"customer-directory/internal/seed"
	customersvc "customer-directory/internal/service/customer"
	"github.com/rs/zerolog"
	"github.com/spf13/pflag"
)

func main() {
	var (
		envFile  string
		addr     string
		fixtures string
		noSeed   bool
	)
	flags := pflag.NewFlagSet("api", pflag.ExitOnError)
	flags.StringVar(&envFile, "env", "", "path to .env file")
	flags.StringVar(&addr, "addr", "", "listen address (overrides HTTP_ADDR)")
	flags.StringVar(&fixtures, "fixtures", "", "YAML fixture file (overrides FIXTURES_FILE)")
	flags.BoolVar(&noSeed, "no-seed", false, "start with an empty directory")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if addr != "" {
		cfg.HTTPAddr = addr
	}
	if fixtures != "" {
		cfg.FixturesFile = fixtures
	}
	if noSeed {
		cfg.SeedFixtures = false
	}

	logger := logx.New("customer-directory", logx.Config{Debug: cfg.LogDebug, Pretty: cfg.LogPretty})

	ctx := context.Background()
	repo := customerrepo.NewMemory(&logger)
	if err := seedDirectory(ctx, repo, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("seed directory")
	}

	service := customersvc.New(repo, customersvc.WithPageSizes(cfg.DefaultPageSize, cfg.MaxPageSize))

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		CustomerSvc:      service,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("init server")
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.HTTPAddr).Msg("starting http server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server error")
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown failed")
	} else {
		logger.Info().Msg("server stopped")
	}
}

func seedDirectory(ctx context.Context, repo customerrepo.Repository, cfg config.Config, logger zerolog.Logger) error {
	if !cfg.SeedFixtures {
		logger.Info().Msg("fixture seeding disabled")
		return nil
	}
	fixtures := seed.Defaults()
	if cfg.FixturesFile != "" {
		loaded, err := seed.LoadFile(cfg.FixturesFile)
		if err != nil {
			return err
		}
		fixtures = loaded
	}
	if err := seed.Apply(ctx, repo, fixtures, time.Now()); err != nil {
		return err
	}
	logger.Info().Int("customers", len(fixtures)).Str("file", cfg.FixturesFile).Msg("fixtures applied")
	return nil
}
