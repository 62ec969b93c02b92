package app

import (
	"context"
	"log/slog"

	"ArticleRater/internal/config"
	"ArticleRater/internal/infrastructure/cache"
	"ArticleRater/internal/infrastructure/fetcher"
	"ArticleRater/internal/infrastructure/llm"
	"ArticleRater/internal/infrastructure/web"
	"ArticleRater/internal/logging"
	"ArticleRater/internal/ports"
	"ArticleRater/internal/usecase"
)

// Application wires configuration to adapters, the scoring pipeline,
// and the HTTP server.
type Application struct {
	cfg    config.Config
	server *web.Server
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) *Application {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	articleFetcher := fetcher.NewHTMLFetcher(nil, cfg.Fetcher, baseLogger.With("component", "fetcher"))

	var detector ports.GenerationDetector
	if cfg.Detector.APIKey != "" {
		detector = llm.NewDetector(cfg.Detector, baseLogger.With("component", "detector"))
	} else {
		baseLogger.Info("generation detector disabled: no API key configured")
	}

	var resultCache ports.ResultCache
	switch cfg.Cache.Backend {
	case "redis":
		resultCache = cache.NewRedis(cfg.Cache.Redis, cfg.Cache.TTL())
	default:
		resultCache = cache.NewMemory(cfg.Cache.TTL())
	}

	evaluator := usecase.NewEvaluator(usecase.EvaluatorDeps{
		Fetcher:  articleFetcher,
		Detector: detector,
		Cache:    resultCache,
		CacheTTL: cfg.Cache.TTL(),
		Logger:   baseLogger.With("component", "evaluator"),
	})

	server := web.New(evaluator, baseLogger.With("component", "web"))

	return &Application{cfg: cfg, server: server}
}

// Run serves HTTP until the context is cancelled.
func (a *Application) Run(ctx context.Context) error {
	return a.server.Run(ctx, a.cfg.Server.Address)
}
