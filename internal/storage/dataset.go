package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftium/internal/models"
	"github.com/jackc/pgx/v5"
)

// LoadDataset reads everything owned by userID inside one read-only
// transaction, so the collections are mutually consistent.
func (db *DB) LoadDataset(ctx context.Context, userID string) (*models.Dataset, error) {
	ds := &models.Dataset{}
	err := pgx.BeginTxFunc(ctx, db.Pool, pgx.TxOptions{AccessMode: pgx.ReadOnly}, func(tx pgx.Tx) error {
		var err error
		if ds.Users, err = queryUsers(ctx, tx, userID); err != nil {
			return err
		}
		if ds.Splits, err = querySplits(ctx, tx, userID); err != nil {
			return err
		}
		if ds.SplitDays, err = querySplitDays(ctx, tx, userID); err != nil {
			return err
		}
		if ds.Exercises, err = queryExercises(ctx, tx, userID); err != nil {
			return err
		}
		if ds.Sessions, err = querySessions(ctx, tx, userID); err != nil {
			return err
		}
		ds.Sets, err = queryWorkoutSets(ctx, tx, userID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return ds, nil
}

// InsertDataset writes ds in dependency order within one transaction.
// Existing rows are left untouched. Returns the number of rows inserted.
func (db *DB) InsertDataset(ctx context.Context, ds *models.Dataset) (int64, error) {
	var total int64
	err := pgx.BeginFunc(ctx, db.Pool, func(tx pgx.Tx) error {
		steps := []func() (int64, error){
			func() (int64, error) { return insertUsers(ctx, tx, ds.Users) },
			func() (int64, error) { return insertSplits(ctx, tx, ds.Splits) },
			func() (int64, error) { return insertSplitDays(ctx, tx, ds.SplitDays) },
			func() (int64, error) { return insertExercises(ctx, tx, ds.Exercises) },
			func() (int64, error) { return insertSessions(ctx, tx, ds.Sessions) },
			func() (int64, error) { return insertWorkoutSets(ctx, tx, ds.Sets) },
		}
		for _, step := range steps {
			n, err := step()
			if err != nil {
				return err
			}
			total += n
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("inserting dataset: %w", err)
	}
	return total, nil
}
