// cmd/audit-service/main.go
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

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"brand-audit/internal/analysis"
	"brand-audit/internal/common/camunda"
	"brand-audit/internal/common/config"
	"brand-audit/internal/common/database"
	"brand-audit/internal/common/logger"
	"brand-audit/internal/common/observability"
	"brand-audit/internal/httpapi"
	"brand-audit/internal/intake"

	ab "brand-audit/internal/workers/brand-audit/analyze-brand-audit"
	va "brand-audit/internal/workers/brand-audit/validate-audit-record"
)

// retryWithBackoff attempts operation with exponential backoff.
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "audit-service: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}

	zapLog := logger.NewWithFile(cfg.Logging.Level, cfg.Logging.Format, logger.FileOptions{
		Path:       cfg.Logging.File.Path,
		MaxSizeMB:  cfg.Logging.File.MaxSizeMB,
		MaxBackups: cfg.Logging.File.MaxBackups,
		MaxAgeDays: cfg.Logging.File.MaxAgeDays,
		Compress:   cfg.Logging.File.Compress,
	})
	defer func() { _ = zapLog.Sync() }()
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting audit service",
		zap.String("version", cfg.App.Version),
		zap.String("environment", cfg.App.Environment),
		zap.String("backend", cfg.Analysis.Backend),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var obs *observability.Observability
	if cfg.Observability.MetricsEnabled || cfg.Observability.TracingEnabled {
		obs = observability.New(cfg.Observability.ServiceName)
		defer obs.Shutdown()
	}

	analyzer, err := analysis.NewAnalyzer(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("analyzer init failed: %w", err)
	}
	service := analysis.NewService(analyzer, obs, log)

	// --- Draft store ---
	var rdb *database.RedisClient
	err = retryWithBackoff(ctx, func() error {
		var err error
		rdb, err = database.Connect(ctx, cfg.Redis, 5*time.Second)
		return err
	}, 10, 2*time.Second, log, "Redis connection")
	if err != nil {
		return fmt.Errorf("redis failed after retries: %w", err)
	}
	defer func() { _ = rdb.Close() }()
	zapLog.Info("Redis connected successfully")

	drafts := intake.NewStore(rdb.Cmdable(), cfg.Intake.KeyPrefix, config.GetDuration(cfg.Intake.DraftTTL), log)
	ready := httpapi.ReadyFunc(rdb.Ping)

	// --- Workflow workers ---
	var zeebe *camunda.Client
	var workers []*camunda.Worker
	if cfg.Camunda.Enabled {
		zeebe, err = camunda.Connect(ctx, camunda.ConfigFromApp(cfg.Camunda), log)
		if err != nil {
			return fmt.Errorf("zeebe connection failed: %w", err)
		}
		defer func() { _ = zeebe.Close() }()

		workers, err = startWorkers(zeebe, cfg, service, obs, log)
		if err != nil {
			return err
		}
		ready = combineReady(ready, zeebe.HealthCheck)
	}

	// --- HTTP ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      httpapi.NewRouter(service, drafts, ready, log, httpapi.WithMaxBodyBytes(cfg.Server.MaxBodyBytes)),
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		zapLog.Info("HTTP server listening", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		zapLog.Info("Shutdown signal received, stopping...")

		for _, w := range workers {
			w.Stop()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	zapLog.Info("Audit service stopped gracefully")
	return nil
}

func startWorkers(zeebe *camunda.Client, cfg *config.Config, service *analysis.Service, obs *observability.Observability, log logger.Logger) ([]*camunda.Worker, error) {
	validateHandler, err := va.NewHandler(va.HandlerOptions{
		AppConfig:     cfg,
		Service:       service,
		Observability: obs,
		Logger:        log,
	})
	if err != nil {
		return nil, err
	}
	analyzeHandler, err := ab.NewHandler(ab.HandlerOptions{
		AppConfig:     cfg,
		Service:       service,
		Observability: obs,
		Logger:        log,
	})
	if err != nil {
		return nil, err
	}

	var workers []*camunda.Worker
	if w := camunda.StartWorker(zeebe.GetClient(), va.TaskType, config.GetWorkerConfig(cfg, va.ConfigName), validateHandler, log); w != nil {
		workers = append(workers, w)
	}
	if w := camunda.StartWorker(zeebe.GetClient(), ab.TaskType, config.GetWorkerConfig(cfg, ab.ConfigName), analyzeHandler, log); w != nil {
		workers = append(workers, w)
	}
	return workers, nil
}

// combineReady reports the first failing check.
func combineReady(checks ...httpapi.ReadyFunc) httpapi.ReadyFunc {
	return func(ctx context.Context) error {
		for _, check := range checks {
			if check == nil {
				continue
			}
			if err := check(ctx); err != nil {
				return err
			}
		}
		return nil
	}
}
