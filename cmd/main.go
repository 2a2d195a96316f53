package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"submission-portal/internal/config"
	"submission-portal/internal/infrastructure/database/postgres"
	"submission-portal/internal/logger"
	"submission-portal/internal/routes"
	"submission-portal/pkg/filestore"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
	)

	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		logger.Fatal("Database configuration is missing. Please set DB_HOST and DB_NAME environment variables.")
	}
	if cfg.JWT.Secret == "" {
		logger.Fatal("JWT secret is missing. Please set JWT_SECRET environment variable.")
	}

	db, err := postgres.NewDB(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", zap.Error(err))
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run database migrations", zap.Error(err))
	}

	store, err := newFileStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize file storage", zap.Error(err))
	}

	router := routes.SetupRoutes(cfg, db, store)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Failed to shutdown server", zap.Error(err))
	}

	log.Println("Server exited properly")
}

// newFileStore builds the storage driver selected by UPLOAD_DRIVER.
func newFileStore(cfg *config.Config) (filestore.Store, error) {
	switch cfg.Upload.Driver {
	case "s3":
		store, err := filestore.NewMinIOStore(
			cfg.Upload.MinIO.Endpoint,
			cfg.Upload.MinIO.AccessKey,
			cfg.Upload.MinIO.SecretKey,
			cfg.Upload.MinIO.Bucket,
			cfg.Upload.MinIO.UseSSL,
		)
		if err != nil {
			return nil, err
		}

		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := store.EnsureBucket(ctx); err != nil {
			return nil, err
		}

		logger.Info("File storage initialized",
			zap.String("driver", "s3"),
			zap.String("endpoint", cfg.Upload.MinIO.Endpoint),
		)
		return store, nil
	default:
		store, err := filestore.NewLocalStore(cfg.Upload.Dir)
		if err != nil {
			return nil, err
		}

		logger.Info("File storage initialized",
			zap.String("driver", "local"),
			zap.String("dir", cfg.Upload.Dir),
		)
		return store, nil
	}
}
