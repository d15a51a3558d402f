package app

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/yungbote/repeat-backend/internal/data/db"
	apphttp "github.com/yungbote/repeat-backend/internal/http"
	"github.com/yungbote/repeat-backend/internal/observability"
	"github.com/yungbote/repeat-backend/internal/platform/logger"
	"github.com/yungbote/repeat-backend/internal/realtime"
	"github.com/yungbote/repeat-backend/internal/services"
)

// Core is the storage and service graph without HTTP. The CLI runs on it
// directly; App builds on top of it.
type Core struct {
	Log      *logger.Logger
	Cfg      Config
	DB       *db.DatabaseService
	Clients  Clients
	Repos    Repos
	Services Services
}

// NewCore opens the database, migrates it and wires services. A nil hub
// means events only leave the process through Redis, if configured.
func NewCore(ctx context.Context, log *logger.Logger, cfg Config, hub *realtime.SSEHub) (*Core, error) {
	dbs, err := db.Open(log, cfg.DBConfig())
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := db.AutoMigrateAll(dbs.DB()); err != nil {
		_ = dbs.Close()
		return nil, fmt.Errorf("automigrate: %w", err)
	}

	clients, err := wireClients(ctx, log, cfg)
	if err != nil {
		_ = dbs.Close()
		return nil, err
	}

	reposet := wireRepos(dbs.DB(), log)
	serviceset := wireServices(dbs.DB(), log, services.SystemClock, reposet, newEmitter(log, clients, hub))

	return &Core{
		Log:      log,
		Cfg:      cfg,
		DB:       dbs,
		Clients:  clients,
		Repos:    reposet,
		Services: serviceset,
	}, nil
}

func (c *Core) Close() {
	if c == nil {
		return
	}
	c.Clients.Close()
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			c.Log.Warn("database close failed", "error", err)
		}
	}
}

type App struct {
	*Core
	Hub          *realtime.SSEHub
	Metrics      *observability.Metrics
	Server       *apphttp.Server
	otelShutdown func(context.Context) error
}

func New(ctx context.Context, log *logger.Logger, cfg Config) (*App, error) {
	otelShutdown := observability.InitOTel(ctx, log, cfg.OtelConfig())
	metrics := observability.Init(log, cfg.MetricsEnabled)

	hub := realtime.NewSSEHub(log)
	core, err := NewCore(ctx, log, cfg, hub)
	if err != nil {
		_ = otelShutdown(ctx)
		return nil, err
	}

	gdb := core.DB.DB()
	ping := func(ctx context.Context) error {
		sqlDB, err := gdb.DB()
		if err != nil {
			return err
		}
		return sqlDB.PingContext(ctx)
	}
	handlerset := wireHandlers(log, core.Services, ping, hub)
	server := wireServer(log, cfg, handlerset, metrics)

	return &App{
		Core:         core,
		Hub:          hub,
		Metrics:      metrics,
		Server:       server,
		otelShutdown: otelShutdown,
	}, nil
}

// Run serves HTTP and the background loops until ctx is cancelled or the
// server fails.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Server == nil {
		return fmt.Errorf("app not initialized")
	}
	g, gctx := errgroup.WithContext(ctx)

	if a.Clients.Bus != nil {
		if err := a.Clients.Bus.StartForwarder(gctx, a.Hub.Broadcast); err != nil {
			return fmt.Errorf("start SSE bus forwarder: %w", err)
		}
	}
	a.Metrics.StartDBCollector(gctx, a.Log, a.DB.DB(), a.DB.Driver())
	a.Metrics.StartRedisCollector(gctx, a.Log, a.Clients.Redis)

	g.Go(func() error {
		a.Log.Info("HTTP server listening", "addr", a.Cfg.Addr())
		return a.Server.Run()
	})
	g.Go(func() error {
		<-gctx.Done()
		a.Log.Info("Shutting down HTTP server...")
		a.Hub.CloseAll()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout())
		defer cancel()
		return a.Server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.otelShutdown != nil {
		ctx, cancel := context.WithTimeout(context.Background(), a.Cfg.ShutdownTimeout())
		if err := a.otelShutdown(ctx); err != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		cancel()
	}
	a.Core.Close()
	a.Log.Sync()
}
