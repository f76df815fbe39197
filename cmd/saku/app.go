package main

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"

	"saku/internal/candidate/service"
	candidatestore "saku/internal/candidate/store"
	coveragemetrics "saku/internal/coverage/metrics"
	eligibilitymetrics "saku/internal/eligibility/metrics"
	"saku/internal/ingest"
	"saku/internal/platform/config"
	"saku/internal/platform/logger"
	"saku/internal/platform/metrics"
	"saku/internal/platform/postgres"
	platformredis "saku/internal/platform/redis"
	"saku/internal/platform/tracing"
	"saku/internal/rules"
	rulestore "saku/internal/rules/store"
)

// ruleStore is both ends of a rule backend.
type ruleStore interface {
	rules.Source
	rules.Writer
}

// app holds the dependencies shared by all commands of one invocation.
// Connections are opened lazily and closed by close.
type app struct {
	stdout io.Writer
	stderr io.Writer

	cfg      config.Config
	logger   *slog.Logger
	registry *metrics.Registry

	db    *sql.DB
	redis *platformredis.Client

	shutdownTracing tracing.Shutdown
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout:   stdout,
		stderr:   stderr,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		registry: metrics.NewRegistry(),
	}
}

// configure loads the environment configuration, applies flag overrides and
// builds the logger and tracer provider.
func (a *app) configure(o rootOptions) error {
	cfg := config.FromEnv()
	if o.root != "" {
		cfg.Root = o.root
		if os.Getenv("SAKU_RULES_PATH") == "" {
			cfg.RulesPath = rules.ProjectRulesPath(o.root)
		}
	}
	if o.rulesPath != "" {
		cfg.RulesPath = o.rulesPath
	}
	if o.rulesSource != "" {
		cfg.RulesSource = o.rulesSource
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return &usageError{err: err}
	}
	a.cfg = cfg
	a.logger = logger.New(cfg.Log, a.stderr)

	shutdown, err := tracing.Init(cfg.Trace, a.stderr)
	if err != nil {
		return err
	}
	a.shutdownTracing = shutdown
	return nil
}

func (a *app) layout() ingest.Layout {
	return ingest.Layout{Root: a.cfg.Root}
}

func (a *app) database(ctx context.Context) (*sql.DB, error) {
	if a.db != nil {
		return a.db, nil
	}
	if a.cfg.Database.URL == "" {
		return nil, usageErrorf("DATABASE_URL is not set")
	}
	db, err := postgres.Open(ctx, a.cfg.Database)
	if err != nil {
		return nil, err
	}
	if err := postgres.CreateSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	a.db = db
	return db, nil
}

func (a *app) redisClient(ctx context.Context) (*platformredis.Client, error) {
	if a.redis != nil {
		return a.redis, nil
	}
	client, err := platformredis.New(ctx, a.cfg.Redis)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, usageErrorf("REDIS_URL is not set")
	}
	a.redis = client
	return client, nil
}

// ruleBackend returns the configured rule source and writer.
func (a *app) ruleBackend(ctx context.Context) (ruleStore, error) {
	switch a.cfg.RulesSource {
	case config.RulesSourcePostgres:
		db, err := a.database(ctx)
		if err != nil {
			return nil, err
		}
		return rulestore.NewPostgres(db), nil
	case config.RulesSourceRedis:
		client, err := a.redisClient(ctx)
		if err != nil {
			return nil, err
		}
		return rulestore.NewRedis(client, a.cfg.Redis.RulesKey), nil
	default:
		return rulestore.NewFile(a.cfg.RulesPath), nil
	}
}

func (a *app) ruleLoader(ctx context.Context) (*rules.Loader, error) {
	src, err := a.ruleBackend(ctx)
	if err != nil {
		return nil, err
	}
	return rules.NewLoader(src, rules.WithLogger(a.logger)), nil
}

// candidates returns the candidate store: the JSON file at path when given,
// otherwise PostgreSQL.
func (a *app) candidates(ctx context.Context, path string) (service.Store, *candidatestore.InMemory, error) {
	if path != "" {
		mem, err := candidatestore.LoadJSONFile(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return mem, mem, nil
	}
	if a.cfg.Database.URL == "" {
		return nil, nil, usageErrorf("--candidates is required when DATABASE_URL is not set")
	}
	db, err := a.database(ctx)
	if err != nil {
		return nil, nil, err
	}
	return candidatestore.NewPostgres(db), nil, nil
}

func (a *app) newService(ctx context.Context, store service.Store) (*service.Service, error) {
	loader, err := a.ruleLoader(ctx)
	if err != nil {
		return nil, err
	}
	return service.New(store, loader,
		service.WithLogger(a.logger),
		service.WithMetrics(eligibilitymetrics.New(a.registry)),
		service.WithCoverageMetrics(coveragemetrics.New(a.registry)),
	)
}

func (a *app) writeMetrics(path string) error {
	if path == "" {
		return nil
	}
	return a.registry.WriteTextfile(path)
}

func (a *app) close() {
	var errs []error
	if a.shutdownTracing != nil {
		errs = append(errs, a.shutdownTracing(context.Background()))
	}
	if a.db != nil {
		errs = append(errs, a.db.Close())
	}
	if a.redis != nil {
		errs = append(errs, a.redis.Close())
	}
	if err := errors.Join(errs...); err != nil {
		a.logger.Warn("closing connections", "error", err)
	}
}
