package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/aretw0/incorporate"
	"github.com/aretw0/incorporate/internal/config"
	"github.com/aretw0/incorporate/internal/logging"
	"github.com/aretw0/incorporate/internal/metrics"
	"github.com/aretw0/incorporate/pkg/adapters/file"
	"github.com/aretw0/incorporate/pkg/adapters/memory"
	"github.com/aretw0/incorporate/pkg/adapters/mongo"
	"github.com/aretw0/incorporate/pkg/adapters/redis"
	"github.com/aretw0/incorporate/pkg/domain"
	"github.com/aretw0/incorporate/pkg/leads"
	"github.com/aretw0/incorporate/pkg/persistence/middleware"
	"github.com/aretw0/incorporate/pkg/ports"
	"github.com/aretw0/incorporate/pkg/session"
	"github.com/spf13/cobra"
)

// lockPrefix keeps lock keys apart from session keys.
const lockPrefix = "incorporate:"

// app holds the wired components shared by the commands.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	engine   *incorporate.Engine
	store    ports.SessionStore
	sessions *session.Manager
	leads    *leads.Service
	sink     ports.LeadStore

	metricsHandler http.Handler
	checks         map[string]func(context.Context) error
	closers        []func(context.Context) error
}

// newApp loads the configuration and wires store, sink, metrics and engine.
func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.Log.Level = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.Log.Format = v
	}
	if v, _ := cmd.Flags().GetString("catalog"); v != "" {
		cfg.Catalog.Path = v
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:    cfg,
		logger: logging.New(level, logging.Format(cfg.Log.Format)).With("env", cfg.Env),
		checks: make(map[string]func(context.Context) error),
	}

	var hooks domain.LifecycleHooks
	var leadOpts []leads.Option
	if cfg.Metrics.Enabled {
		reg, m := metrics.NewRegistry()
		a.metricsHandler = metrics.HandlerFor(reg)
		hooks = m.Hooks()
		leadOpts = append(leadOpts, leads.WithCaptureHook(m.CaptureHook()))
	}

	if err := a.openStore(ctx); err != nil {
		return nil, err
	}
	if err := a.openSink(ctx); err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	a.leads = leads.NewService(a.sink, append(leadOpts, leads.WithLogger(a.logger))...)

	opts := []incorporate.Option{
		incorporate.WithLogger(a.logger),
		incorporate.WithLifecycleHooks(hooks),
	}
	if cfg.Catalog.Path != "" {
		opts = append(opts, incorporate.WithCatalogFile(cfg.Catalog.Path))
	}
	if cfg.Greeting != "" {
		opts = append(opts, incorporate.WithGreeting(cfg.Greeting))
	}
	a.engine, err = incorporate.New(opts...)
	if err != nil {
		_ = a.Close(ctx)
		return nil, err
	}
	return a, nil
}

func (a *app) openStore(ctx context.Context) error {
	cfg := a.cfg.Store
	managerOpts := []session.Option{
		session.WithLogger(a.logger),
		session.WithLockTTL(cfg.LockTTL),
	}

	switch cfg.Driver {
	case config.DriverFile:
		a.store = file.New(cfg.Path)
	case config.DriverRedis:
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithTTL(cfg.Redis.TTL),
		)
		if err := rs.Ping(ctx); err != nil {
			_ = rs.Close()
			return fmt.Errorf("redis store: %w", err)
		}
		a.store = rs
		a.checks["redis"] = rs.Ping
		a.closers = append(a.closers, func(context.Context) error { return rs.Close() })
		if !cfg.Redis.NoLocking {
			managerOpts = append(managerOpts, session.WithLocker(redis.NewLocker(rs.Client(), lockPrefix)))
		}
	default:
		a.store = memory.NewStore()
	}

	a.sessions = session.NewManager(a.store, managerOpts...)
	a.logger.Debug("session store ready", "driver", cfg.Driver)
	return nil
}

func (a *app) openSink(ctx context.Context) error {
	cfg := a.cfg.Leads
	switch cfg.Driver {
	case config.DriverFile:
		a.sink = file.NewLeadSink(cfg.Path)
	case config.DriverMongo:
		ms, err := mongo.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Mongo.Collection)
		if err != nil {
			return fmt.Errorf("mongo lead sink: %w", err)
		}
		a.sink = ms
		a.checks["mongo"] = ms.Ping
		a.closers = append(a.closers, ms.Close)
	default:
		a.sink = memory.NewLeadSink()
	}

	mws, err := sinkMiddlewares(a.cfg)
	if err != nil {
		return err
	}
	a.sink = middleware.Chain(a.sink, mws...)
	a.logger.Debug("lead sink ready", "driver", cfg.Driver, "encrypted", cfg.EncryptionKey != "", "redacted", cfg.Redact)
	return nil
}

func sinkMiddlewares(cfg *config.Config) ([]middleware.Middleware, error) {
	if cfg.Leads.Redact {
		return []middleware.Middleware{middleware.NewPIIMiddleware()}, nil
	}
	if cfg.Leads.EncryptionKey == "" {
		return nil, nil
	}
	active, err := middleware.ParseKey(cfg.Leads.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("leads encryption key: %w", err)
	}
	enc := middleware.EncryptionConfig{ActiveKey: active}
	for i, k := range cfg.Leads.FallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("leads fallback key %d: %w", i, err)
		}
		enc.FallbackKeys = append(enc.FallbackKeys, key)
	}
	return []middleware.Middleware{middleware.NewEncryptionMiddleware(enc)}, nil
}

// Close releases external connections.
func (a *app) Close(ctx context.Context) error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c(ctx))
	}
	return errors.Join(errs...)
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "err", err)
	os.Exit(1)
}

// bootLogger is used before the configuration is loaded.
func bootLogger() *slog.Logger {
	return logging.New(slog.LevelInfo, logging.FormatText)
}
