package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/claude/liftium/internal/config"
	"github.com/claude/liftium/internal/ingest/alpha"
	"github.com/claude/liftium/internal/localdb"
	"github.com/claude/liftium/internal/models"
	"github.com/claude/liftium/internal/seed"
	"github.com/claude/liftium/internal/storage"
)

type store interface {
	LoadDataset(ctx context.Context, userID string) (*models.Dataset, error)
	InsertDataset(ctx context.Context, ds *models.Dataset) (int64, error)
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	filePath := flag.String("file", "", "dataset JSON (as served by /api/v1/dataset); defaults to the built-in sample")
	alphaPath := flag.String("alpha", "", "Alpha Progression CSV export to import as sessions of the configured user")
	dryRun := flag.Bool("dry-run", false, "validate and report counts without writing to the database")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *filePath != "" && *alphaPath != "" {
		fmt.Fprintf(os.Stderr, "Usage: liftium-seed -config config.yaml [-file dataset.json | -alpha export.csv] [-dry-run]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}

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

	if *dryRun {
		log.Info("DRY RUN mode: nothing will be written")
	}

	var db store
	if *alphaPath != "" || !*dryRun {
		var closeDB func()
		db, closeDB, err = openStore(ctx, cfg, log)
		if err != nil {
			log.Error("failed to open database", "driver", cfg.Database.Driver, "error", err)
			os.Exit(1)
		}
		defer closeDB()
	}

	var ds *models.Dataset
	if *alphaPath != "" {
		ds, err = importAlpha(ctx, db, *alphaPath, cfg.Tracker.UserID, loc, log)
	} else {
		ds, err = loadDataset(*filePath, loc)
		if err == nil {
			err = ds.Validate()
		}
	}
	if err != nil {
		log.Error("dataset rejected", "error", err)
		os.Exit(1)
	}
	printCounts(log, ds)

	if *dryRun {
		return
	}

	inserted, err := db.InsertDataset(ctx, ds)
	if err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}
	log.Info("seed complete", "rows_inserted", inserted)
}

func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store, func(), error) {
	switch cfg.Database.Driver {
	case config.DriverPostgres:
		dsn := cfg.Database.DSN()
		if err := storage.RunMigrations(dsn, "migrations"); err != nil {
			return nil, nil, fmt.Errorf("run migrations: %w", err)
		}
		log.Info("migrations applied")
		db, err := storage.New(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return db, db.Close, nil
	case config.DriverSQLite:
		db, err := localdb.Open(cfg.Database.Path)
		if err != nil {
			return nil, nil, err
		}
		return db, func() { db.Close() }, nil
	}
	return nil, nil, fmt.Errorf("driver %q has no persistent storage", cfg.Database.Driver)
}

func loadDataset(path string, loc *time.Location) (*models.Dataset, error) {
	if path == "" {
		return seed.Dataset(time.Now().In(loc)), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var ds models.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, fmt.Errorf("decode dataset: %w", err)
	}
	return &ds, nil
}

// importAlpha converts an export against the user's stored split and checks
// the result together with the existing rows.
func importAlpha(ctx context.Context, db store, path, userID string, loc *time.Location, log *slog.Logger) (*models.Dataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sessions, err := alpha.Parse(f, loc)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	existing, err := db.LoadDataset(ctx, userID)
	if err != nil {
		return nil, err
	}
	out, rep, err := alpha.Convert(sessions, existing, userID)
	if err != nil {
		return nil, err
	}
	log.Info("alpha export converted",
		"sessions", rep.Sessions,
		"sets", rep.Sets,
		"warmups_skipped", rep.WarmupsSkipped,
		"already_imported", rep.AlreadyImported,
	)
	if len(rep.SkippedSessions) > 0 {
		log.Warn("sessions without a matching split day", "sessions", rep.SkippedSessions)
	}
	if len(rep.SkippedExercises) > 0 {
		log.Warn("exercises not in the split", "exercises", rep.SkippedExercises)
	}

	merged := *existing
	merged.Sessions = append(append([]models.Session(nil), existing.Sessions...), out.Sessions...)
	merged.Sets = append(append([]models.WorkoutSet(nil), existing.Sets...), out.Sets...)
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func printCounts(log *slog.Logger, ds *models.Dataset) {
	log.Info("dataset",
		"users", len(ds.Users),
		"splits", len(ds.Splits),
		"split_days", len(ds.SplitDays),
		"exercises", len(ds.Exercises),
		"sessions", len(ds.Sessions),
		"sets", len(ds.Sets),
	)
}
