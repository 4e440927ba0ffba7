package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	_ "github.com/noah-isme/classroom-portal/api/swagger"
	"github.com/noah-isme/classroom-portal/internal/handler"
	"github.com/noah-isme/classroom-portal/internal/repository"
	"github.com/noah-isme/classroom-portal/internal/service"
	"github.com/noah-isme/classroom-portal/internal/session"
	"github.com/noah-isme/classroom-portal/pkg/cache"
	"github.com/noah-isme/classroom-portal/pkg/config"
	"github.com/noah-isme/classroom-portal/pkg/database"
	"github.com/noah-isme/classroom-portal/pkg/export"
	"github.com/noah-isme/classroom-portal/pkg/jobs"
	"github.com/noah-isme/classroom-portal/pkg/logger"
	"github.com/noah-isme/classroom-portal/pkg/storage"
)

// @title Classroom Portal API
// @version 1.0.0
// @description Seating layout, student profiles, gallery and slides for one classroom
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if err := run(cfg, logr); err != nil {
		logr.Fatal("server failed", zap.Error(err))
	}
}

func run(cfg *config.Config, logr *zap.Logger) error {
	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db, logr); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}

	redisClient, err := cache.NewRedis(ctx, cfg.Redis, logr)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	sessionStore, err := session.NewStore(cfg.Session, redisClient)
	if err != nil {
		return fmt.Errorf("session store: %w", err)
	}

	files, err := storage.NewLocalStorage(cfg.Uploads.Dir, cfg.Uploads.PublicPath)
	if err != nil {
		return fmt.Errorf("uploads dir: %w", err)
	}

	metrics := service.NewMetricsService()
	validate := service.NewValidator()
	cacheSvc := service.NewCacheService(
		repository.NewCacheRepository(redisClient, logr),
		metrics,
		cfg.Cache.TTL,
		logr,
		cfg.Cache.Enabled && redisClient != nil,
	)

	cleaner := service.NewUploadCleaner(files, metrics, logr)
	cleanupQueue := jobs.NewQueue("upload-cleanup", cleaner.Handle, jobs.QueueConfig{
		Workers:    cfg.Uploads.CleanupWorkers,
		MaxRetries: 3,
		RetryDelay: 2 * time.Second,
		Logger:     logr,
	})
	cleanupQueue.Start(ctx)
	defer cleanupQueue.Stop()

	studentSvc := service.NewStudentService(repository.NewStudentRepository(db), cacheSvc, validate, logr)
	gallerySvc := service.NewGalleryService(
		repository.NewGalleryRepository(db),
		files,
		cleanupQueue,
		cacheSvc,
		metrics,
		validate,
		logr,
		service.GalleryServiceConfig{
			MaxFileSize:       cfg.Uploads.MaxFileSizeBytes,
			AllowedExtensions: cfg.Uploads.AllowedExtensions,
			AllowedMIMEs:      cfg.Uploads.AllowedMIMEs,
		},
	)
	slideSvc := service.NewSlideService(repository.NewSlideRepository(db), cacheSvc, validate, logr)
	authSvc := service.NewAuthService(service.AdminCredentials{
		Username: cfg.Admin.Username,
		Password: cfg.Admin.Password,
	}, metrics, logr)
	exportSvc := service.NewExportService(studentSvc, export.NewCSVExporter(), export.NewPDFExporter(), logr)

	router := handler.NewRouter(handler.RouterDeps{
		Config:       cfg,
		Logger:       logr,
		SessionStore: sessionStore,
		Metrics:      metrics,
		Auth:         handler.NewAuthHandler(authSvc),
		Students:     handler.NewStudentHandler(studentSvc, exportSvc),
		Gallery:      handler.NewGalleryHandler(gallerySvc),
		Slides:       handler.NewSlideHandler(slideSvc),
		Ops:          handler.NewMetricsHandler(metrics, db),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logr.Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logr.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
