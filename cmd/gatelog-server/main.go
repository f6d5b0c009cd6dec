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

	"github.com/BrandonDHaskell/gatelog/server/internal/config"
	"github.com/BrandonDHaskell/gatelog/server/internal/db"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/export"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/service"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store/memory"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store/postgres"
	"github.com/BrandonDHaskell/gatelog/server/internal/gatelog/store/sqlite"
	"github.com/BrandonDHaskell/gatelog/server/internal/grpcapi"
	"github.com/BrandonDHaskell/gatelog/server/internal/httpapi"
	"github.com/BrandonDHaskell/gatelog/server/internal/logging"
	"github.com/BrandonDHaskell/gatelog/server/internal/notify"
)

func main() {
	cfg := config.FromEnv()
	logger := logging.New(os.Stdout, cfg.Env, cfg.LogLevel).With("app", "gatelog-server")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error(ctx, "fatal", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, logger logging.Logger) error {
	// Backing store
	backend, closeBackend, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeBackend()

	// Optional export archive
	var archiver service.Archiver
	s3a, err := export.NewS3Archiver(ctx, export.S3Config{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	switch {
	case err == nil:
		archiver = s3a
		logger.Info(ctx, "export archive enabled", "bucket", cfg.S3Bucket)
	case errors.Is(err, export.ErrArchiveDisabled):
	default:
		return fmt.Errorf("s3 archiver: %w", err)
	}

	// Services
	gate := service.NewGateService(backend, service.Options{
		Location: cfg.Timezone,
		Archiver: archiver,
		Logger:   logger,
	})

	// gRPC health, NOT_SERVING until the gate book is loaded
	var health *grpcapi.Server
	if cfg.GRPCAddr != "" {
		health = grpcapi.NewServer(cfg.GRPCAddr, logger)
		go func() {
			if err := health.Run(ctx); err != nil {
				logger.Error(ctx, "grpc server error", "error", err)
			}
		}()
	}

	if err := gate.Load(ctx); err != nil {
		return fmt.Errorf("load gate book: %w", err)
	}
	if health != nil {
		health.SetServing(true)
	}

	// Change notifications
	if cfg.MQTTBroker != "" {
		pub, err := notify.Connect(ctx, notify.Config{
			Broker:   cfg.MQTTBroker,
			ClientID: cfg.MQTTClientID,
			Topic:    cfg.MQTTTopic,
		}, logger)
		if err != nil {
			return fmt.Errorf("mqtt: %w", err)
		}
		unsubscribe := gate.Subscribe(pub.Publish)
		defer func() {
			unsubscribe()
			pub.Close()
		}()
	}

	pruner := service.NewLogPruner(gate, service.PrunerConfig{
		RetentionDays: cfg.LogRetentionDays,
		IntervalHours: cfg.PruneIntervalHours,
	}, logger)
	pruner.Start(ctx)
	defer pruner.Stop()

	// HTTP
	srv := httpapi.NewServer(httpapi.Dependencies{
		Logger:    logger,
		Addr:      cfg.HTTPAddr,
		Gate:      gate,
		Location:  cfg.Timezone,
		JWTSecret: []byte(cfg.JWTSecret),
	})

	errc := make(chan error, 1)
	go func() {
		logger.Info(ctx, "listening", "addr", cfg.HTTPAddr, "backend", cfg.Backend)
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errc:
		return fmt.Errorf("http server: %w", err)
	}

	if health != nil {
		health.SetServing(false)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openBackend(ctx context.Context, cfg config.Config, logger logging.Logger) (store.Backend, func(), error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return memory.New(), func() {}, nil

	case config.BackendRemote:
		sqlDB, err := postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("postgres: %w", err)
		}
		return postgres.New(sqlDB), func() { _ = sqlDB.Close() }, nil

	default:
		sqlDB, err := db.Open(ctx, db.Config{Path: cfg.DBPath, Env: cfg.Env})
		if err != nil {
			return nil, nil, fmt.Errorf("sqlite: %w", err)
		}
		if cfg.Seed {
			if err := db.SeedDev(ctx, sqlDB, db.SeedDevOptions{}); err != nil {
				_ = sqlDB.Close()
				return nil, nil, fmt.Errorf("seed: %w", err)
			}
			logger.Debug(ctx, "demo persons seeded")
		}
		writer := db.NewWorker(sqlDB)
		return sqlite.New(sqlDB, writer), func() {
			writer.Close()
			_ = sqlDB.Close()
		}, nil
	}
}
