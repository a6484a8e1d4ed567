package storage

import (
	"context"
	"fmt"
	"time"
)

// DataStats holds row counts and the logged date range for one user.
type DataStats struct {
	TotalSplits    int64      `json:"total_splits"`
	TotalExercises int64      `json:"total_exercises"`
	TotalSessions  int64      `json:"total_sessions"`
	TotalSets      int64      `json:"total_sets"`
	EarliestData   *time.Time `json:"earliest_data"`
	LatestData     *time.Time `json:"latest_data"`
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (db *DB) GetDataStats(ctx context.Context, userID string) (*DataStats, error) {
	stats := &DataStats{}

	err := db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM splits WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSplits)
	if err != nil {
		return nil, fmt.Errorf("counting splits: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM exercises e
		 JOIN split_days sd ON sd.id = e.split_day_id
		 JOIN splits s ON s.id = sd.split_id
		 WHERE s.user_id = $1`, userID,
	).Scan(&stats.TotalExercises)
	if err != nil {
		return nil, fmt.Errorf("counting exercises: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*), MIN(date)::timestamptz, MAX(date)::timestamptz FROM sessions WHERE user_id = $1`, userID,
	).Scan(&stats.TotalSessions, &stats.EarliestData, &stats.LatestData)
	if err != nil {
		return nil, fmt.Errorf("counting sessions: %w", err)
	}

	err = db.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM workout_sets ws
		 JOIN sessions s ON s.id = ws.session_id
		 WHERE s.user_id = $1`, userID,
	).Scan(&stats.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}

	return stats, nil
}
