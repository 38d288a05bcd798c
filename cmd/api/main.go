package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	app "github.com/mohammadpnp/product-import/internal/application/product"
	"github.com/mohammadpnp/product-import/internal/bootstrap"
	"github.com/mohammadpnp/product-import/internal/config"
	domain "github.com/mohammadpnp/product-import/internal/domain/product"
	"github.com/mohammadpnp/product-import/internal/infrastructure/db"
	infrafile "github.com/mohammadpnp/product-import/internal/infrastructure/file"
	"github.com/mohammadpnp/product-import/internal/infrastructure/jobstatus"
	"github.com/mohammadpnp/product-import/internal/infrastructure/queue"
	"github.com/mohammadpnp/product-import/internal/infrastructure/repository"
	"github.com/mohammadpnp/product-import/internal/infrastructure/webhook"
	"github.com/mohammadpnp/product-import/internal/logger"
	"github.com/mohammadpnp/product-import/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zlog, err := logger.New(cfg.Env)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	if err := db.RunMigrations(cfg.DatabaseURL, cfg.MigrationsDir); err != nil {
		zlog.Fatal("failed to run migrations", zap.Error(err))
	}

	gdb, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		zlog.Fatal("failed to connect database", zap.Error(err))
	}

	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		zlog.Fatal("failed to create pgx pool", zap.Error(err))
	}
	defer pool.Close()

	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		zlog.Fatal("invalid REDIS_URL", zap.Error(err))
	}
	rdb := redis.NewClient(redisOpts)
	defer rdb.Close()

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 5*time.Second)
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		zlog.Fatal("failed to connect redis", zap.Error(err))
	}
	cancelPing()

	payloads, err := infrafile.NewLocalStore(cfg.StorageDir)
	if err != nil {
		zlog.Fatal("failed to prepare payload storage", zap.Error(err))
	}

	metrics := observability.NewMetrics()
	registry := jobstatus.NewRedisRegistry(rdb, jobstatus.RegistryConfig{
		ResultTTL: cfg.ResultTTL,
		ActiveTTL: cfg.ActiveTTL,
	})

	var jobQueue domain.JobQueue
	if cfg.Queue == config.QueueMemory {
		jobQueue = queue.NewMemoryQueue(0)
	} else {
		jobQueue = queue.NewRedisQueue(rdb, queue.DefaultQueueKey, time.Second)
	}

	notifier := app.NewNotifier(
		repository.NewWebhookRepository(gdb),
		webhook.NewHTTPDeliverer(cfg.WebhookTimeout),
		zlog.Named("notifier"),
		metrics,
	)
	importJob := app.NewImportJob(
		payloads,
		app.NewUpsertBatcher(repository.NewProductBulkUpsertRepository(pool), metrics),
		registry,
		notifier,
		zlog.Named("import"),
		metrics,
		app.ImportJobConfig{BatchSize: cfg.BatchSize},
	)

	workerCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()

	worker := app.NewImportWorker(jobQueue, importJob, zlog.Named("worker"), app.ImportWorkerConfig{
		Workers: cfg.Workers,
	})
	worker.Start(workerCtx)

	server := bootstrap.NewHTTPServer(bootstrap.ServerDeps{
		DB:             gdb,
		Payloads:       payloads,
		Registry:       registry,
		Queue:          jobQueue,
		Logger:         zlog.Named("http"),
		Metrics:        metrics,
		UploadMaxBytes: cfg.UploadMaxBytes,
	})

	go func() {
		zlog.Info("server starting", zap.String("port", cfg.Port), zap.Int("workers", cfg.Workers), zap.String("queue", cfg.Queue))
		if err := server.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			zlog.Fatal("server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	stopWorkers()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		zlog.Error("graceful shutdown failed", zap.Error(err))
	}

	zlog.Info("waiting for running import jobs")
	worker.Wait()
}
