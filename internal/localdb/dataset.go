package localdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/claude/liftium/internal/models"
	"github.com/claude/liftium/internal/storage"
)

// UserIDByEmail finds a user by case-insensitive email.
func (d *DB) UserIDByEmail(ctx context.Context, email string) (string, bool, error) {
	var id string
	err := d.db.QueryRowContext(ctx, `SELECT id FROM users WHERE email = ?`, email).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("looking up user: %w", err)
	}
	return id, true, nil
}

// LoadDataset reads everything owned by userID in one transaction.
func (d *DB) LoadDataset(ctx context.Context, userID string) (*models.Dataset, error) {
	ds := &models.Dataset{}
	err := d.withTx(ctx, nil, func(tx *sql.Tx) error {
		loaders := []func(context.Context, *sql.Tx, string, *models.Dataset) error{
			loadUsers, loadSplits, loadSplitDays, loadExercises, loadSessions, loadSets,
		}
		for _, load := range loaders {
			if err := load(ctx, tx, userID, ds); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return ds, nil
}

// InsertDataset writes ds in dependency order within one transaction.
// Existing rows are left untouched. Returns the number of rows inserted.
func (d *DB) InsertDataset(ctx context.Context, ds *models.Dataset) (int64, error) {
	var total int64
	err := d.withTx(ctx, nil, func(tx *sql.Tx) error {
		exec := func(query string, args ...any) error {
			res, err := tx.ExecContext(ctx, query, args...)
			if err != nil {
				return err
			}
			n, err := res.RowsAffected()
			total += n
			return err
		}

		for _, u := range ds.Users {
			if err := exec(`INSERT OR IGNORE INTO users (id, email, created_at, user_name, remember_me_device)
				VALUES (?, ?, ?, ?, ?)`,
				u.ID, u.Email, formatTime(u.CreatedAt), u.UserName, u.RememberMeDevice); err != nil {
				return fmt.Errorf("inserting user %s: %w", u.ID, err)
			}
		}
		for _, s := range ds.Splits {
			if err := exec(`INSERT OR IGNORE INTO splits (id, user_id, name, created_at) VALUES (?, ?, ?, ?)`,
				s.ID, s.UserID, s.Name, formatTime(s.CreatedAt)); err != nil {
				return fmt.Errorf("inserting split %s: %w", s.ID, err)
			}
		}
		for _, sd := range ds.SplitDays {
			if err := exec(`INSERT OR IGNORE INTO split_days (id, split_id, day_of_week, name, is_rest_day)
				VALUES (?, ?, ?, ?, ?)`,
				sd.ID, sd.SplitID, int(sd.DayOfWeek), sd.Name, sd.IsRestDay); err != nil {
				return fmt.Errorf("inserting split day %s: %w", sd.ID, err)
			}
		}
		for _, e := range ds.Exercises {
			if err := exec(`INSERT OR IGNORE INTO exercises (id, split_day_id, name, default_sets,
				rest_time_sec, note, exercise_order, muscle_groups) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				e.ID, e.SplitDayID, e.Name, e.DefaultSets, e.RestTimeSec, e.Note,
				e.ExerciseOrder, e.MuscleGroups); err != nil {
				return fmt.Errorf("inserting exercise %s: %w", e.ID, err)
			}
		}
		for _, s := range ds.Sessions {
			if err := exec(`INSERT OR IGNORE INTO sessions (id, user_id, split_day_id, date, created_at, finished_at)
				VALUES (?, ?, ?, ?, ?, ?)`,
				s.ID, s.UserID, s.SplitDayID, s.Date.Format(dateLayout), formatTime(s.CreatedAt),
				formatTimePtr(s.FinishedAt)); err != nil {
				return fmt.Errorf("inserting session %s: %w", s.ID, err)
			}
		}
		for _, ws := range ds.Sets {
			if err := exec(`INSERT OR IGNORE INTO workout_sets (id, session_id, exercise_id, set_number, reps, weight)
				VALUES (?, ?, ?, ?, ?, ?)`,
				ws.ID, ws.SessionID, ws.ExerciseID, ws.SetNumber, ws.Reps, ws.Weight); err != nil {
				return fmt.Errorf("inserting workout set %s: %w", ws.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("inserting dataset: %w", err)
	}
	return total, nil
}

// GetDataStats returns aggregate statistics for a user's stored data.
func (d *DB) GetDataStats(ctx context.Context, userID string) (*storage.DataStats, error) {
	stats := &storage.DataStats{}

	err := d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM splits WHERE user_id = ?`, userID,
	).Scan(&stats.TotalSplits)
	if err != nil {
		return nil, fmt.Errorf("counting splits: %w", err)
	}

	err = d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM exercises e
		 JOIN split_days sd ON sd.id = e.split_day_id
		 JOIN splits s ON s.id = sd.split_id
		 WHERE s.user_id = ?`, userID,
	).Scan(&stats.TotalExercises)
	if err != nil {
		return nil, fmt.Errorf("counting exercises: %w", err)
	}

	var earliest, latest sql.NullString
	err = d.db.QueryRowContext(ctx,
		`SELECT COUNT(*), MIN(date), MAX(date) FROM sessions WHERE user_id = ?`, userID,
	).Scan(&stats.TotalSessions, &earliest, &latest)
	if err != nil {
		return nil, fmt.Errorf("counting sessions: %w", err)
	}
	if stats.EarliestData, err = parseDatePtr(earliest); err != nil {
		return nil, err
	}
	if stats.LatestData, err = parseDatePtr(latest); err != nil {
		return nil, err
	}

	err = d.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM workout_sets ws
		 JOIN sessions s ON s.id = ws.session_id
		 WHERE s.user_id = ?`, userID,
	).Scan(&stats.TotalSets)
	if err != nil {
		return nil, fmt.Errorf("counting sets: %w", err)
	}
	return stats, nil
}

func parseDatePtr(ns sql.NullString) (*time.Time, error) {
	if !ns.Valid {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, ns.String)
	if err != nil {
		return nil, fmt.Errorf("parsing date %q: %w", ns.String, err)
	}
	return &t, nil
}
