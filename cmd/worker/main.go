package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/ridgeline-builders/ridgeline/internal/ai"
	"github.com/ridgeline-builders/ridgeline/internal/app"
	"github.com/ridgeline-builders/ridgeline/internal/blog"
	"github.com/ridgeline-builders/ridgeline/internal/contacts"
	"github.com/ridgeline-builders/ridgeline/internal/platform/cache"
	"github.com/ridgeline-builders/ridgeline/internal/platform/db"
	"github.com/ridgeline-builders/ridgeline/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	contactsService := contacts.NewService(logger, contacts.NewRepository(pool), nil)
	blogService := blog.NewService(blog.NewRepository(pool))
	aiClient := ai.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	aiService := ai.NewService(aiClient, contactsService)

	cleanupTask, err := jobs.NewContactCleanupTask(jobs.ContactCleanupPayload{
		RetentionHours: int64(cfg.ContactRetention.Hours()),
	})
	if err != nil {
		logger.Error("build cleanup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskContactNotify, Handler: jobs.NewContactNotifyHandler(logger, contactsService)},
			{Type: jobs.TaskContactCleanup, Handler: jobs.NewContactCleanupHandler(logger, contactsService)},
			{Type: jobs.TaskBlogDraft, Handler: jobs.NewBlogDraftHandler(logger, aiService, blogService)},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "30 3 * * *", Task: cleanupTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
		},
	})
	if err != nil {
		logger.Error("init worker", slog.Any("error", err))
		os.Exit(1)
	}

	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker run", slog.Any("error", err))
		os.Exit(1)
	}
}
