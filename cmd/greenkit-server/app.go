package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	jsonfileAdapter "greenkit/adapters/jsonfile"
	mem "greenkit/adapters/memory"
	redisAdapter "greenkit/adapters/redis"
	sqlxAdapter "greenkit/adapters/sqlx"
	"greenkit/analytics"
	"greenkit/api/httpapi"
	"greenkit/config"
	"greenkit/engine"
	"greenkit/green"
	"greenkit/integrations/webhook"
	"greenkit/leaderboard"
	"greenkit/realtime"

	// SQL drivers registered for the sqlx adapter.
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
)

// App aggregates the assembled server components.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Hub     *realtime.Hub
	Board   leaderboard.Board
	Tracker *analytics.Tracker
	Service *engine.Service
	Handler http.Handler
	Server  *http.Server
}

func provideConfig(ctx context.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.Environment == config.EnvProduction {
		if err := cfg.LoadSecretsFromEnv(ctx); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

func provideLogger(cfg *config.Config) *slog.Logger {
	return setupLogging(cfg)
}

func provideHub() *realtime.Hub {
	return realtime.NewHub()
}

func provideBoard(cfg *config.Config) leaderboard.Board {
	if !cfg.Features.Leaderboard {
		return nil
	}
	return leaderboard.NewSkipList()
}

func provideTracker(cfg *config.Config) *analytics.Tracker {
	if !cfg.Features.Analytics {
		return nil
	}
	return analytics.NewTracker()
}

func provideStorage(ctx context.Context, cfg *config.Config) (engine.KV, error) {
	return setupStorage(ctx, cfg)
}

func provideService(cfg *config.Config, hub *realtime.Hub, board leaderboard.Board, tracker *analytics.Tracker, kv engine.KV, logger *slog.Logger) *engine.Service {
	opts := []green.Option{
		green.WithRealtime(hub),
		green.WithKV(kv),
		green.WithLogger(logger),
		green.WithDispatchMode(engine.DispatchAsync),
	}
	if board != nil {
		opts = append(opts, green.WithLeaderboard(board))
	}
	if tracker != nil {
		opts = append(opts, green.WithAnalytics(tracker))
	}
	svc := green.New(opts...)

	if eps := cfg.Integrations.WebhookEndpoints; len(eps) > 0 {
		sink := webhook.New(eps, webhook.WithSecret(cfg.Integrations.WebhookSecret))
		sink.Attach(svc)
	}
	return svc
}

func provideHandler(svc *engine.Service, hub *realtime.Hub, board leaderboard.Board, tracker *analytics.Tracker, cfg *config.Config) http.Handler {
	return httpapi.NewMux(svc, hub, httpapi.Options{
		PathPrefix:       cfg.Server.PathPrefix,
		AllowCORSOrigin:  cfg.Server.CORSOrigin,
		APIKeys:          cfg.Security.APIKeys,
		RateLimitEnabled: cfg.Security.EnableRateLimit,
		RateLimitRPM:     cfg.Security.RateLimit.RequestsPerMinute,
		RateLimitBurst:   cfg.Security.RateLimit.BurstSize,
		Leaderboard:      board,
		Tracker:          tracker,
	})
}

func provideServer(cfg *config.Config, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           handler,
		ReadHeaderTimeout: cfg.Server.ReadHeaderTimeout,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
	}
}

// setupLogging configures the logger based on configuration.
func setupLogging(cfg *config.Config) *slog.Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Logging.Level),
	}

	out := os.Stdout
	if cfg.Logging.Output == "stderr" {
		out = os.Stderr
	}

	switch cfg.Logging.Format {
	case "text":
		handler = slog.NewTextHandler(out, opts)
	case "json":
		handler = slog.NewJSONHandler(out, opts)
	default:
		handler = slog.NewJSONHandler(out, opts)
	}

	if len(cfg.Logging.Attributes) > 0 {
		handler = handler.WithAttrs(convertAttributes(cfg.Logging.Attributes))
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// convertAttributes converts map[string]string to []slog.Attr.
func convertAttributes(attrs map[string]string) []slog.Attr {
	var result []slog.Attr
	for k, v := range attrs {
		result = append(result, slog.String(k, v))
	}
	return result
}

// setupStorage creates the appropriate storage adapter based on configuration.
func setupStorage(_ context.Context, cfg *config.Config) (engine.KV, error) {
	switch cfg.Storage.Adapter {
	case "memory":
		return mem.New(), nil
	case "redis":
		return redisAdapter.New(cfg.Storage.Redis)
	case "sql":
		return sqlxAdapter.New(cfg.Storage.SQL)
	case "file":
		return jsonfileAdapter.New(cfg.Storage.File.Path)
	default:
		return nil, fmt.Errorf("unknown storage adapter: %s", cfg.Storage.Adapter)
	}
}
