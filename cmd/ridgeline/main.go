package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/ridgeline-builders/ridgeline/internal/ai"
	"github.com/ridgeline-builders/ridgeline/internal/app"
	"github.com/ridgeline-builders/ridgeline/internal/auth"
	"github.com/ridgeline-builders/ridgeline/internal/blog"
	"github.com/ridgeline-builders/ridgeline/internal/contacts"
	"github.com/ridgeline-builders/ridgeline/internal/media"
	"github.com/ridgeline-builders/ridgeline/internal/observability"
	"github.com/ridgeline-builders/ridgeline/internal/platform/cache"
	"github.com/ridgeline-builders/ridgeline/internal/platform/db"
	"github.com/ridgeline-builders/ridgeline/internal/projects"
	"github.com/ridgeline-builders/ridgeline/internal/ratelimit"
	"github.com/ridgeline-builders/ridgeline/internal/rbac"
	"github.com/ridgeline-builders/ridgeline/internal/settings"
	"github.com/ridgeline-builders/ridgeline/internal/shared"
	"github.com/ridgeline-builders/ridgeline/internal/users"
	"github.com/ridgeline-builders/ridgeline/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	if err := db.Migrate(ctx, cfg.PGDSN); err != nil {
		logger.Error("run migrations", slog.Any("error", err))
		os.Exit(1)
	}

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

	sessionManager := shared.NewSessionManager(redisClient, "ridgeline_session", cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	auditLogger := shared.NewAuditLogger(pool)

	usersRepo := users.NewRepository(pool)
	resolver := rbac.NewResolver(usersRepo, logger)
	guard := rbac.NewGuard(resolver)
	rbacMiddleware := rbac.Middleware{Guard: guard, Logger: logger}

	limiter := ratelimit.New()

	authService := auth.NewService(auth.NewRepository(pool))
	authHandler := auth.NewHandler(logger, authService, sessionManager, csrfManager, resolver)

	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(logger, usersService, auditLogger, rbacMiddleware)

	projectsService := projects.NewService(projects.NewRepository(pool))
	projectsHandler := projects.NewHandler(logger, projectsService, auditLogger, rbacMiddleware)

	storage, err := media.NewStorage(ctx, media.StorageConfig{
		Bucket:    cfg.S3Bucket,
		Region:    cfg.S3Region,
		Endpoint:  cfg.S3Endpoint,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
	})
	if err != nil {
		logger.Error("init media storage", slog.Any("error", err))
		os.Exit(1)
	}
	mediaService := media.NewService(logger, media.NewRepository(pool), storage)
	mediaHandler := media.NewHandler(logger, mediaService, auditLogger, rbacMiddleware)

	blogService := blog.NewService(blog.NewRepository(pool))
	blogHandler := blog.NewHandler(logger, blogService, auditLogger, rbacMiddleware)

	jobsClient, err := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	if err != nil {
		logger.Error("init jobs client", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := jobsClient.Close(); err != nil {
			logger.Warn("jobs client close", slog.Any("error", err))
		}
	}()

	contactsService := contacts.NewService(logger, contacts.NewRepository(pool), jobsClient)
	contactsHandler := contacts.NewHandler(logger, contactsService, auditLogger, rbacMiddleware)

	settingsHandler := settings.NewHandler(logger, settings.NewRepository(pool), auditLogger, rbacMiddleware)

	aiClient := ai.NewClient(cfg.AnthropicAPIKey, cfg.AnthropicModel)
	aiService := ai.NewService(aiClient, contactsService)
	aiHandler := ai.NewHandler(logger, aiService, rbacMiddleware, limiter)

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobsHandler := jobs.NewHandler(inspector, logger)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Middleware: app.MiddlewareConfig{
			Logger:         logger,
			Config:         cfg,
			SessionManager: sessionManager,
			CSRFManager:    csrfManager,
			Metrics:        metrics,
			CSRFExempt:     app.CSRFExemptPaths(),
		},
		Limiter:  limiter,
		Auth:     authHandler,
		Users:    usersHandler,
		Projects: projectsHandler,
		Media:    mediaHandler,
		Blog:     blogHandler,
		Contacts: contactsHandler,
		Settings: settingsHandler,
		AI:       aiHandler,
		Jobs:     jobsHandler,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		limiter.Start(groupCtx)
		return nil
	})
	group.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("server exit", slog.Any("error", err))
		os.Exit(1)
	}
}
