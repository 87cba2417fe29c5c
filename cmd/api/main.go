package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/redis/go-redis/v9"

	"github.com/briefly-app/briefly/internal/api"
	"github.com/briefly-app/briefly/internal/config"
	"github.com/briefly-app/briefly/internal/gemini"
	"github.com/briefly-app/briefly/internal/middleware"
	"github.com/briefly-app/briefly/internal/server"
	"github.com/briefly-app/briefly/internal/session"
	"github.com/briefly-app/briefly/internal/summarize"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("loading config", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.Log)

	if err := cfg.Validate(); err != nil {
		slog.Error("validating config", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Sessions
	registry := session.NewRegistry(cfg.Quota.DailyLimit, cfg.Session.TTL)
	registry.StartSweeper(ctx, cfg.Session.SweepInterval)
	sessionHandler := session.NewHandler(registry, cfg.Upload.MaxBytes)

	// Summarization
	client := gemini.NewClient(gemini.Config{
		APIKey:  cfg.Gemini.APIKey,
		Model:   cfg.Gemini.Model,
		BaseURL: cfg.Gemini.BaseURL,
		Timeout: cfg.Gemini.Timeout,
	})
	summarizeSvc := summarize.NewService(client)
	summarizeHandler := summarize.NewHandler(summarizeSvc)

	// Optional per-IP rate limiting in front of the summarize route
	routerCfg := api.RouterConfig{
		CORSAllowedOrigins: cfg.CORS.AllowedOrigins,
	}
	if cfg.RateLimit.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr(),
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			slog.Error("pinging redis", "error", err)
			os.Exit(1)
		}
		defer redisClient.Close()
		slog.Info("connected to Redis", "addr", cfg.Redis.Addr())

		limiter := middleware.NewRateLimiter(redisClient, cfg.RateLimit.MaxReqs, cfg.RateLimit.WindowSec)
		routerCfg.SummarizeRateLimiter = limiter.Middleware
		routerCfg.RedisHealthy = func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		}
	}

	// Router
	router := api.NewRouter(routerCfg, api.HandlerSet{
		CreateSession: sessionHandler.Create,
		GetSession:    sessionHandler.Get,
		DeleteSession: sessionHandler.Delete,

		SetText:        sessionHandler.SetText,
		LoadSampleText: sessionHandler.LoadSampleText,
		UploadDocument: sessionHandler.UploadDocument,
		GetQuota:       sessionHandler.GetQuota,
		GetHistory:     sessionHandler.GetHistory,
		ClearHistory:   sessionHandler.ClearHistory,

		Generate:        summarizeHandler.Generate,
		DownloadSummary: summarizeHandler.DownloadSummary,

		SessionMiddleware: sessionHandler.Middleware,
	})

	// Start server
	srv := server.New(cfg.Server, router)
	if err := srv.Start(); err != nil {
		slog.Error("server error", "error", err)
		os.Exit(1)
	}
}

func setupLogger(cfg config.LogConfig) {
	var handler slog.Handler

	opts := &slog.HandlerOptions{}
	switch cfg.Level {
	case "debug":
		opts.Level = slog.LevelDebug
	case "info":
		opts.Level = slog.LevelInfo
	case "warn":
		opts.Level = slog.LevelWarn
	case "error":
		opts.Level = slog.LevelError
	default:
		opts.Level = slog.LevelInfo
	}

	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	slog.SetDefault(slog.New(handler))
}
