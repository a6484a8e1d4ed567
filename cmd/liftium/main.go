package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/liftium/internal/config"
	"github.com/claude/liftium/internal/localdb"
	liftiummcp "github.com/claude/liftium/internal/mcp"
	"github.com/claude/liftium/internal/seed"
	"github.com/claude/liftium/internal/server"
	"github.com/claude/liftium/internal/storage"
	"tailscale.com/tsnet"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	migrateOnly := flag.Bool("migrate-only", false, "run migrations and exit")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	log.Info("Liftium starting", "version", Version)

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	loc, err := cfg.Tracker.Location()
	if err != nil {
		log.Error("invalid timezone", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	store, closeStore, err := openStore(ctx, cfg, *migrateOnly, log)
	if err != nil {
		log.Error("failed to open store", "driver", cfg.Database.Driver, "error", err)
		os.Exit(1)
	}
	if store == nil {
		log.Info("migrate-only: exiting")
		return
	}
	defer closeStore()

	checkDataset(ctx, store, cfg.Tracker.UserID, log)

	srv := server.New(store, cfg.Tracker.UserID, loc, cfg.Auth.APIKey, log)

	mcpSrv := liftiummcp.New(store, liftiummcp.Options{UserID: cfg.Tracker.UserID, Location: loc, Version: Version}, log)
	srv.SetMCP(liftiummcp.NewHTTPHandler(mcpSrv, server.UserIDFromRequest))

	// Start server: tsnet or plain HTTP
	var listener net.Listener
	var tsServer *tsnet.Server

	if cfg.Tailscale.Enabled {
		tsServer = &tsnet.Server{
			Hostname: cfg.Tailscale.Hostname,
			Dir:      cfg.Tailscale.StateDir,
		}
		if err := tsServer.Start(); err != nil {
			log.Error("tsnet start failed", "error", err)
			os.Exit(1)
		}
		defer tsServer.Close()

		lc, err := tsServer.LocalClient()
		if err != nil {
			log.Error("tsnet local client failed", "error", err)
			os.Exit(1)
		}
		srv.SetTailscale(lc)

		listener, err = tsServer.Listen("tcp", ":80")
		if err != nil {
			log.Error("tsnet listen failed", "error", err)
			os.Exit(1)
		}
		log.Info("tsnet server starting", "hostname", cfg.Tailscale.Hostname)
	} else {
		addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
		listener, err = net.Listen("tcp", addr)
		if err != nil {
			log.Error("listen failed", "addr", addr, "error", err)
			os.Exit(1)
		}
		log.Info("server starting", "addr", addr, "mode", "dev (no tailscale)", "user", cfg.Tracker.UserID)
	}

	httpSrv := &http.Server{Handler: srv}

	go func() {
		if err := httpSrv.Serve(listener); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutting down", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Error("shutdown error", "error", err)
	}
	log.Info("server stopped")
}

// openStore connects the configured backend. With migrateOnly it applies
// Postgres migrations and returns a nil store.
func openStore(ctx context.Context, cfg *config.Config, migrateOnly bool, log *slog.Logger) (server.Store, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		dsn := cfg.Database.DSN()
		if err := storage.RunMigrations(dsn, "migrations"); err != nil {
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		log.Info("migrations applied")
		if migrateOnly {
			return nil, nil, nil
		}
		db, err := storage.New(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		log.Info("database connected")
		return db, db.Close, nil

	case config.DriverSQLite:
		db, err := localdb.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		if migrateOnly {
			db.Close()
			return nil, nil, nil
		}
		log.Info("database opened", "path", cfg.Database.Path)
		return db, func() { db.Close() }, nil

	case config.DriverMemory:
		if migrateOnly {
			return nil, nil, nil
		}
		log.Info("serving sample dataset from memory")
		return seed.NewStore(seed.Dataset(time.Now())), func() {}, nil
	}
	return nil, nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
}

// checkDataset logs invariant violations in the served user's data. They are
// reported, not fatal: queries tolerate dangling rows.
func checkDataset(ctx context.Context, store server.Store, userID string, log *slog.Logger) {
	ds, err := store.LoadDataset(ctx, userID)
	if err != nil {
		log.Warn("dataset check skipped", "error", err)
		return
	}
	if len(ds.Users) == 0 {
		log.Warn("configured user not found", "user", userID)
	}
	if err := ds.Validate(); err != nil {
		for _, e := range unjoin(err) {
			log.Warn("dataset invariant violated", "error", e)
		}
		return
	}
	log.Info("dataset loaded",
		"splits", len(ds.Splits),
		"exercises", len(ds.Exercises),
		"sessions", len(ds.Sessions),
		"sets", len(ds.Sets),
	)
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
