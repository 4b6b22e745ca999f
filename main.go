package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devpatel66/golden-sleek-vision/auth"
	"github.com/devpatel66/golden-sleek-vision/cliparse"
	"github.com/devpatel66/golden-sleek-vision/db"
	"github.com/devpatel66/golden-sleek-vision/handlers"
	"github.com/devpatel66/golden-sleek-vision/media"
	"github.com/devpatel66/golden-sleek-vision/notify"
	"github.com/devpatel66/golden-sleek-vision/realtime"
	"github.com/devpatel66/golden-sleek-vision/router"
	"github.com/devpatel66/golden-sleek-vision/store"
	"github.com/devpatel66/golden-sleek-vision/web"
)

func main() {
	var err error

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Connect to the database
	dbConn, err := db.Open(cfg.DatabaseType, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.PingContext(ctx); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables) and default settings
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	if err := db.SeedSettings(ctx, dbConn); err != nil {
		slog.Error("seeding settings failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready", "type", cfg.DatabaseType)

	st := store.New(dbConn)
	cache := store.NewSettingsCache(st.Settings, cfg.CacheTTL)
	hub := realtime.NewHub()

	// Sessions and settings events stay in process unless Redis is configured
	var sessions auth.SessionRepository = auth.NewMemorySessions()
	var publisher realtime.Publisher = hub
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			slog.Error("invalid redis URL", "error", err)
			os.Exit(1)
		}
		rdb := redis.NewClient(opts)
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			slog.Error("redis ping failed", "error", err)
			os.Exit(1)
		}

		broker := realtime.NewRedisBroker(rdb, hub)
		broker.OnReceive(handlers.InvalidateOnChange(cache))
		if err := broker.Start(ctx); err != nil {
			slog.Error("redis subscribe failed", "error", err)
			os.Exit(1)
		}
		sessions = auth.NewRedisSessions(rdb)
		publisher = broker
		slog.Info("Using redis for sessions and settings events")
	}

	// Upload storage
	deps := router.Deps{
		Config:    cfg,
		Store:     st,
		Settings:  cache,
		Hub:       hub,
		Publisher: publisher,
	}
	if cfg.S3Bucket != "" {
		awsCfg, err := media.LoadAWSConfig(ctx, cfg.S3Region, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey)
		if err != nil {
			slog.Error("aws config failed", "error", err)
			os.Exit(1)
		}
		deps.Blobs = media.NewS3Store(awsCfg, cfg.S3Bucket, cfg.S3PublicURL)
		slog.Info("Storing uploads in S3", "bucket", cfg.S3Bucket)
	} else {
		local, err := media.NewLocalStore(cfg.MediaDir, cfg.PublicBaseURL+cfg.MediaURLPath)
		if err != nil {
			slog.Error("media directory unavailable", "dir", cfg.MediaDir, "error", err)
			os.Exit(1)
		}
		deps.Blobs = local
		deps.LocalMedia = local
		slog.Info("Storing uploads on disk", "dir", local.Dir())
	}

	// Email alerts
	var notifier notify.Notifier = notify.LogNotifier{}
	if cfg.SESRegion != "" && cfg.MailFrom != "" {
		awsCfg, err := media.LoadAWSConfig(ctx, cfg.SESRegion, cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey)
		if err != nil {
			slog.Error("aws config failed", "error", err)
			os.Exit(1)
		}
		notifier = notify.NewSESNotifier(awsCfg, cfg.MailFrom)
	}
	deps.Alerts = notify.NewAlerts(notifier, cache, cfg.NotifyTo)

	creds := auth.Credentials{Email: cfg.AdminEmail, Password: cfg.AdminPassword, Name: cfg.AdminName}
	deps.Auth = auth.NewAuthenticator(creds, sessions, cfg.SessionTTL, st.Users)

	deps.Renderer, err = web.NewRenderer()
	if err != nil {
		slog.Error("template parsing failed", "error", err)
		os.Exit(1)
	}

	// Create server
	server := http.Server{
		Handler:           router.NewRouter(deps),
		Addr:              ":" + strconv.Itoa(cfg.Port),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		// Wait for Ctrl-C or SIGTERM
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Warn("graceful shutdown failed", "error", err)
			server.Close()
		}
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port, "url", cfg.PublicBaseURL)
	err = server.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed")
	}
}
