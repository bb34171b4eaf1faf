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

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Ms-You/poje-remind/apps/remind-service/internal/di"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/event"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/handler"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/middleware"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/repository"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/security"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/service"
	"github.com/Ms-You/poje-remind/apps/remind-service/internal/storage"
	"github.com/Ms-You/poje-remind/migrations"
	"github.com/Ms-You/poje-remind/pkg/config"
	"github.com/Ms-You/poje-remind/pkg/database"
	"github.com/Ms-You/poje-remind/pkg/logger"
	"github.com/Ms-You/poje-remind/pkg/redis"
	"github.com/Ms-You/poje-remind/pkg/telemetry"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			return serve(cfg)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Read configuration from this env file instead of .env")
	return cmd
}

func serve(cfg *config.Config) error {
	appLog, err := initLogger(cfg)
	if err != nil {
		return err
	}
	defer logger.Sync()

	appLog.Info("Starting Remind Service...",
		zap.String("environment", cfg.App.Environment),
		zap.String("version", cfg.App.Version),
	)

	ctx := context.Background()

	if _, err := telemetry.Init(ctx, &telemetry.Config{
		Enabled:        cfg.OTel.Enabled,
		ServiceName:    cfg.OTel.ServiceName,
		ServiceVersion: cfg.App.Version,
		Environment:    cfg.App.Environment,
		CollectorAddr:  cfg.OTel.CollectorAddr,
		SampleRatio:    cfg.OTel.SampleRatio,
	}); err != nil {
		appLog.Warn("Telemetry disabled", zap.Error(err))
	}

	db, err := connectPostgres(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()
	appLog.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := db.Migrate(ctx, migrations.FS, database.MigrateUp); err != nil {
			return fmt.Errorf("auto-migrate failed: %w", err)
		}
		appLog.Info("Migrations applied")
	}

	redisClient, err := redis.NewClient(ctx, &redis.Config{
		Host:          cfg.Redis.Host,
		Port:          cfg.Redis.Port,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		PoolSize:      cfg.Redis.PoolSize,
		MinIdleConns:  cfg.Redis.MinIdleConns,
		DialTimeout:   cfg.Redis.DialTimeout,
		ReadTimeout:   cfg.Redis.ReadTimeout,
		WriteTimeout:  cfg.Redis.WriteTimeout,
		MaxRetries:    3,
		RetryInterval: time.Second,
	})
	if err != nil {
		return err
	}
	defer redisClient.Close()
	appLog.Info("Redis connected", zap.String("addr", cfg.Redis.Addr()))

	var tokenStore repository.TokenStore = repository.NewRedisTokenStore(redisClient)
	if cfg.IsTest() {
		tokenStore = repository.NewMemoryTokenStore(time.Now)
		appLog.Warn("Using in-memory token store")
	}

	tokens, err := security.NewTokenProvider(security.TokenConfig{
		Secret:          cfg.JWT.Secret,
		AccessTokenTTL:  cfg.JWT.AccessTokenTTL,
		RefreshTokenTTL: cfg.JWT.RefreshTokenTTL,
		Issuer:          cfg.JWT.Issuer,
	})
	if err != nil {
		return err
	}

	publisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	presigner, err := newPresigner(ctx, cfg)
	if err != nil {
		return err
	}

	container := di.NewContainer(&di.ContainerConfig{
		ServiceName:  cfg.App.Name,
		Repositories: di.NewPostgresRepositories(db.Pool(), redisClient),
		TokenStore:   tokenStore,
		Tx:           db,
		Tokens:       tokens,
		Passwords:    security.NewPasswordEncoder(cfg.JWT.BcryptCost),
		Publisher:    publisher,
		Presigner:    presigner,
		Paging:       service.PagingConfig{Size: cfg.Paging.Size, PageNum: cfg.Paging.PageNum},
		Cookie: handler.CookieConfig{
			Secure: cfg.Cookie.Secure,
			Domain: cfg.Cookie.Domain,
			MaxAge: cfg.JWT.RefreshTokenTTL,
		},
		CORS: middleware.DefaultCORSConfig(cfg.CORS.AllowOrigins...),
		HealthChecks: map[string]handler.HealthChecker{
			"database": db,
			"redis":    redisClient,
		},
		Idempotency: redisClient,
		Logger:      appLog,
	})

	if cfg.IsDevelopment() {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	srv := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           container.Router(),
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		ReadHeaderTimeout: 2 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		appLog.Info(fmt.Sprintf("Remind Service listening on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	}
	appLog.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	if err := telemetry.Shutdown(shutdownCtx); err != nil {
		appLog.Warn("Telemetry shutdown failed", zap.Error(err))
	}

	appLog.Info("Server exited gracefully")
	return nil
}

func newPublisher(cfg *config.Config) (event.Publisher, error) {
	if !cfg.Kafka.Enabled {
		return event.NewNoOpPublisher(), nil
	}
	publisher, err := event.NewKafkaPublisher(&event.KafkaConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    cfg.Kafka.Topic,
		ClientID: cfg.Kafka.ClientID,
		Source:   cfg.App.Name,
	})
	if err != nil {
		return nil, fmt.Errorf("kafka publisher: %w", err)
	}
	return publisher, nil
}

func newPresigner(ctx context.Context, cfg *config.Config) (storage.Presigner, error) {
	if !cfg.Storage.Enabled {
		return storage.DisabledPresigner{}, nil
	}
	presigner, err := storage.NewS3Presigner(ctx, &storage.Config{
		Endpoint:       cfg.Storage.Endpoint,
		Region:         cfg.Storage.Region,
		Bucket:         cfg.Storage.Bucket,
		AccessKey:      cfg.Storage.AccessKey,
		SecretKey:      cfg.Storage.SecretKey,
		PublicBaseURL:  cfg.Storage.PublicBaseURL,
		PresignTTL:     cfg.Storage.PresignTTL,
		ForcePathStyle: cfg.Storage.ForcePathStyle,
	})
	if err != nil {
		return nil, fmt.Errorf("s3 presigner: %w", err)
	}
	return presigner, nil
}
