package bootstrap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"strconv"

	"github.com/gin-gonic/gin"

	"resume-review/internal/analyses"
	"resume-review/internal/extract"
	"resume-review/internal/history"
	"resume-review/internal/llm"
	"resume-review/internal/llm/gemini"
	"resume-review/internal/services/health"
	"resume-review/internal/shared/config"
	"resume-review/internal/shared/server"
	"resume-review/internal/shared/storage/db"
	"resume-review/internal/shared/storage/kv"
	localkv "resume-review/internal/shared/storage/kv/local"
	rediskv "resume-review/internal/shared/storage/kv/redis"
	s3kv "resume-review/internal/shared/storage/kv/s3"
	"resume-review/internal/shared/storage/kv/sqlstore"
)

// App holds shared dependencies.
type App struct {
	Config          config.Config
	Router          *gin.Engine
	DB              *sql.DB
	KV              kv.Store
	History         *history.Store
	Extractor       extract.Extractor
	LLM             llm.Client
	AnalysesService *analyses.Service
	AnalysisHandler *analyses.Handler
	HistoryHandler  *history.Handler
	Health          *health.Service

	closers []func() error
}

// Build wires every dependency from cfg and loads the persisted history.
func Build(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg}

	store, err := app.buildKV(ctx)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.KV = store

	app.History = history.NewStore(store, cfg.HistoryKey)
	if err := app.History.Load(ctx); err != nil {
		app.Close()
		return nil, err
	}
	log.Printf("bootstrap: history backend=%s entries=%d", cfg.HistoryBackend, app.History.Len())

	app.Extractor = extract.New(cfg.Extractor)

	client, err := buildLLM(cfg)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.LLM = llm.WithRateLimitRetry(client, llm.RetryPolicy{
		BaseDelay:  cfg.RetryBaseDelay,
		MaxRetries: cfg.MaxRetries,
	})

	app.AnalysesService = analyses.NewService(app.Extractor, app.LLM, app.History, cfg.MaxUploadBytes)
	app.AnalysisHandler = analyses.NewHandler(app.AnalysesService)
	app.HistoryHandler = history.NewHandler(app.History)

	app.Health = health.NewService().
		AddInfo("llm", func() string { return llmStatus(cfg) }).
		AddInfo("historyEntries", func() string { return strconv.Itoa(app.History.Len()) })
	if app.DB != nil {
		app.Health.AddCheck("history", app.pingDB)
	}

	app.Router = server.NewRouter(cfg, server.Deps{
		Analyses: app.AnalysisHandler,
		History:  app.HistoryHandler,
		Health:   app.Health,
	})
	return app, nil
}

// Close releases backend connections.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}

func (a *App) pingDB(ctx context.Context) error {
	if err := a.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("database unavailable: %w", err)
	}
	return nil
}

func llmStatus(cfg config.Config) string {
	if cfg.GeminiAPIKey == "" {
		return "not configured"
	}
	return cfg.LLMModel
}

func (a *App) buildKV(ctx context.Context) (kv.Store, error) {
	cfg := a.Config
	switch cfg.HistoryBackend {
	case "memory":
		log.Printf("bootstrap: HISTORY_BACKEND=memory; history is lost on restart")
		return kv.NewMemoryStore(), nil
	case "sqlite":
		dsn, err := db.SQLiteDSN(cfg.LocalStoreDir)
		if err != nil {
			return nil, err
		}
		return a.buildSQL(ctx, db.SQLite, dsn)
	case "postgres":
		return a.buildSQL(ctx, db.Postgres, cfg.DatabaseURL)
	case "s3":
		store, err := s3kv.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
		if err != nil {
			return nil, fmt.Errorf("s3 history backend: %w", err)
		}
		return store, nil
	case "redis":
		store, err := rediskv.New(ctx, rediskv.Options{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			Namespace: "resume-review:",
		})
		if err != nil {
			return nil, fmt.Errorf("redis history backend: %w", err)
		}
		a.closers = append(a.closers, store.Close)
		return store, nil
	default:
		return localkv.New(cfg.LocalStoreDir), nil
	}
}

func (a *App) buildSQL(ctx context.Context, dialect db.Dialect, dsn string) (kv.Store, error) {
	sqlDB, err := db.Connect(ctx, dialect, dsn, db.OptionsFromEnv(db.DefaultServerOptions()))
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, sqlDB.Close)
	if err := db.RunMigrations(ctx, dialect, sqlDB); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	a.DB = sqlDB
	return sqlstore.New(sqlDB, dialect), nil
}

func buildLLM(cfg config.Config) (llm.Client, error) {
	if cfg.GeminiAPIKey == "" {
		log.Printf("bootstrap: GEMINI_API_KEY empty; analyses will fail until it is set")
		return llm.PlaceholderClient{}, nil
	}
	return gemini.NewClient(gemini.Options{
		APIKey:  cfg.GeminiAPIKey,
		Model:   cfg.LLMModel,
		BaseURL: cfg.LLMBaseURL,
		Timeout: cfg.LLMTimeout,
	})
}
