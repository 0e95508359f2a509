//	@title			Cloud File Storage API
//	@version		1.0
//	@description	Per-user search, upload and download over a shared object storage bucket.
//
//	@host		localhost:8080
//	@BasePath	/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Optional JWT Bearer token whose subject must equal userName. Format: **Bearer {token}**

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cloudfilestorage/service/internal/config"
	"github.com/cloudfilestorage/service/internal/file"
	"github.com/cloudfilestorage/service/internal/logger"
	"github.com/cloudfilestorage/service/internal/metrics"
	"github.com/cloudfilestorage/service/internal/storage"
)

const shutdownTimeout = 30 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server exited with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.Setup(os.Stderr, cfg.LogLevel, cfg.IsProduction())

	backend, err := newStorage(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("object storage init: %w", err)
	}

	m := metrics.New()
	store := storage.Instrument(backend, metrics.NewStorageMetrics(m.Registry()))

	// Wire dependencies: storage → service → handler
	fileHandler := file.NewHandler(file.NewService(store), log)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(cfg, log, m, fileHandler),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		<-ctx.Done()
		log.Info("shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	eg.Go(func() error {
		log.Info("server listening",
			"port", cfg.Port,
			"env", cfg.AppEnv,
			"storage", cfg.Storage.Driver,
			"bucket", cfg.Storage.Bucket,
			"auth", cfg.AuthEnabled(),
		)
		log.Info(fmt.Sprintf("swagger UI at http://localhost:%s/swagger/", cfg.Port))
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

// newStorage builds the backend selected by STORAGE_DRIVER.
func newStorage(ctx context.Context, cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Driver {
	case config.DriverS3:
		return storage.NewS3Storage(ctx, storage.S3Options{
			Region:       cfg.Region,
			Bucket:       cfg.Bucket,
			AccessKey:    cfg.AccessKey,
			SecretKey:    cfg.SecretKey,
			Endpoint:     cfg.Endpoint,
			UsePathStyle: cfg.UsePathStyle,
			CreateBucket: cfg.CreateBucket,
		})
	case config.DriverMinio:
		return storage.NewMinioStorage(ctx, storage.MinioOptions{
			Endpoint:     cfg.Endpoint,
			AccessKey:    cfg.AccessKey,
			SecretKey:    cfg.SecretKey,
			Bucket:       cfg.Bucket,
			Region:       cfg.Region,
			UseSSL:       cfg.UseSSL,
			CreateBucket: cfg.CreateBucket,
		})
	case config.DriverMemory:
		slog.Warn("using in-memory storage, objects are lost on restart")
		return storage.NewMemoryStorage(), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", cfg.Driver)
	}
}
