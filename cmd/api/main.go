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

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/zhouzirui/food-catalog/backend/internal/config"
	"github.com/zhouzirui/food-catalog/backend/internal/handler"
	"github.com/zhouzirui/food-catalog/backend/internal/logging"
	"github.com/zhouzirui/food-catalog/backend/internal/model/food"
	"github.com/zhouzirui/food-catalog/backend/internal/service/catalog"
	"github.com/zhouzirui/food-catalog/backend/internal/telemetry"
)

const serviceName = "food-catalog"

var version = "dev"

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanups execute before exit.
func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		return 1
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		return 1
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	if envErr != nil {
		logger.Debug("no .env file loaded, using process environment", zap.Error(envErr))
	}

	shutdownTracer, err := telemetry.InitTracer(cfg.Observability.TracingEnabled, os.Stdout, serviceName, version)
	if err != nil {
		logger.Error("failed to initialize tracing", zap.Error(err))
		return 1
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(flushCtx); err != nil {
			logger.Warn("tracer shutdown failed", zap.Error(err))
		}
	}()

	var seed []food.Item
	if cfg.Catalog.Seed {
		seed = food.Seed()
	}
	store := food.NewMemoryStore(seed)
	catalogSvc := catalog.NewService(store, logger)

	logger.Info("catalog initialized",
		zap.Int("items", store.Len()),
		zap.String("environment", cfg.Environment),
		zap.String("api_prefix", cfg.Catalog.APIPrefix),
		zap.Bool("metrics", cfg.Observability.MetricsEnabled),
		zap.Bool("tracing", cfg.Observability.TracingEnabled),
	)

	router := handler.NewRouter(catalogSvc, logger, cfg)

	if err := startServer(ctx, cfg.Server, router, logger); err != nil {
		logger.Error("server error", zap.Error(err))
		return 1
	}
	logger.Info("server stopped")
	return 0
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler, logger *zap.Logger) error {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	logger.Info("food catalog listening", zap.String("addr", serverCfg.Addr))
	return runServer(ctx, srv, serverCfg.ShutdownTimeout)
}

func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
