package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/dotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	Server    ServerConfig
	Gemini    GeminiConfig
	Quota     QuotaConfig
	Session   SessionConfig
	Upload    UploadConfig
	RateLimit RateLimitConfig
	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host string
	Port int
}

// GeminiConfig holds the upstream API credential and tuning. APIKey is the
// single secret this service needs, supplied by the hosting environment.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration
}

type QuotaConfig struct {
	DailyLimit int
}

type SessionConfig struct {
	TTL           time.Duration
	SweepInterval time.Duration
}

type UploadConfig struct {
	MaxBytes int64
}

type RateLimitConfig struct {
	Enabled   bool
	MaxReqs   int
	WindowSec int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

func (c RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	k := koanf.New(".")

	// Load .env file if it exists (ignore error if missing)
	_ = k.Load(file.Provider(".env"), dotenv.Parser())

	// Load environment variables (override .env)
	err := k.Load(env.Provider("", ".", func(s string) string {
		return strings.ToLower(strings.ReplaceAll(s, "_", "."))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: k.String("server.host"),
			Port: k.Int("server.port"),
		},
		Gemini: GeminiConfig{
			APIKey:  k.String("gemini.api.key"),
			Model:   k.String("gemini.model"),
			BaseURL: k.String("gemini.base.url"),
		},
		Quota: QuotaConfig{
			DailyLimit: k.Int("quota.daily.limit"),
		},
		Upload: UploadConfig{
			MaxBytes: k.Int64("upload.max.bytes"),
		},
		RateLimit: RateLimitConfig{
			Enabled:   k.Bool("ratelimit.enabled"),
			MaxReqs:   k.Int("ratelimit.max.reqs"),
			WindowSec: k.Int("ratelimit.window.secs"),
		},
		Redis: RedisConfig{
			Host:     k.String("redis.host"),
			Port:     k.Int("redis.port"),
			Password: k.String("redis.password"),
			DB:       k.Int("redis.db"),
		},
		CORS: CORSConfig{
			AllowedOrigins: k.Strings("cors.allowed.origins"),
		},
		Log: LogConfig{
			Level:  k.String("log.level"),
			Format: k.String("log.format"),
		},
	}

	// Apply defaults
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Gemini.Model == "" {
		cfg.Gemini.Model = "gemini-2.5-flash"
	}
	if cfg.Quota.DailyLimit == 0 {
		cfg.Quota.DailyLimit = 50
	}
	if cfg.Upload.MaxBytes == 0 {
		cfg.Upload.MaxBytes = 10 << 20
	}
	if cfg.RateLimit.MaxReqs == 0 {
		cfg.RateLimit.MaxReqs = 10
	}
	if cfg.RateLimit.WindowSec == 0 {
		cfg.RateLimit.WindowSec = 60
	}
	if cfg.Redis.Host == "" {
		cfg.Redis.Host = "localhost"
	}
	if cfg.Redis.Port == 0 {
		cfg.Redis.Port = 6379
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	// Parse durations
	timeoutStr := k.String("gemini.timeout")
	if timeoutStr == "" {
		timeoutStr = "60s"
	}
	cfg.Gemini.Timeout, err = time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("parsing gemini timeout: %w", err)
	}

	ttlStr := k.String("session.ttl")
	if ttlStr == "" {
		ttlStr = "24h"
	}
	cfg.Session.TTL, err = time.ParseDuration(ttlStr)
	if err != nil {
		return nil, fmt.Errorf("parsing session ttl: %w", err)
	}

	sweepStr := k.String("session.sweep.interval")
	if sweepStr == "" {
		sweepStr = "10m"
	}
	cfg.Session.SweepInterval, err = time.ParseDuration(sweepStr)
	if err != nil {
		return nil, fmt.Errorf("parsing session sweep interval: %w", err)
	}

	return cfg, nil
}
