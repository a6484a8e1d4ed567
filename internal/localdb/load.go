package localdb

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/claude/liftium/internal/models"
)

func loadUsers(ctx context.Context, tx *sql.Tx, userID string, ds *models.Dataset) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, email, created_at, user_name, remember_me_device FROM users WHERE id = ?`, userID)
	if err != nil {
		return fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var u models.User
		var created string
		var device sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &created, &u.UserName, &device); err != nil {
			return fmt.Errorf("scanning user: %w", err)
		}
		if u.CreatedAt, err = parseTime(created); err != nil {
			return fmt.Errorf("user %s created_at: %w", u.ID, err)
		}
		u.RememberMeDevice = stringPtr(device)
		ds.Users = append(ds.Users, u)
	}
	return rows.Err()
}

func loadSplits(ctx context.Context, tx *sql.Tx, userID string, ds *models.Dataset) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, user_id, name, created_at FROM splits WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return fmt.Errorf("querying splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Split
		var created string
		if err := rows.Scan(&s.ID, &s.UserID, &s.Name, &created); err != nil {
			return fmt.Errorf("scanning split: %w", err)
		}
		if s.CreatedAt, err = parseTime(created); err != nil {
			return fmt.Errorf("split %s created_at: %w", s.ID, err)
		}
		ds.Splits = append(ds.Splits, s)
	}
	return rows.Err()
}

func loadSplitDays(ctx context.Context, tx *sql.Tx, userID string, ds *models.Dataset) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT sd.id, sd.split_id, sd.day_of_week, sd.name, sd.is_rest_day
		 FROM split_days sd
		 JOIN splits s ON s.id = sd.split_id
		 WHERE s.user_id = ?
		 ORDER BY sd.split_id, sd.day_of_week, sd.id`, userID)
	if err != nil {
		return fmt.Errorf("querying split days: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var sd models.SplitDay
		var dow int
		if err := rows.Scan(&sd.ID, &sd.SplitID, &dow, &sd.Name, &sd.IsRestDay); err != nil {
			return fmt.Errorf("scanning split day: %w", err)
		}
		sd.DayOfWeek = models.Weekday(dow)
		ds.SplitDays = append(ds.SplitDays, sd)
	}
	return rows.Err()
}

func loadExercises(ctx context.Context, tx *sql.Tx, userID string, ds *models.Dataset) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT e.id, e.split_day_id, e.name, e.default_sets, e.rest_time_sec,
		 e.note, e.exercise_order, e.muscle_groups
		 FROM exercises e
		 JOIN split_days sd ON sd.id = e.split_day_id
		 JOIN splits s ON s.id = sd.split_id
		 WHERE s.user_id = ?
		 ORDER BY e.split_day_id, e.exercise_order, e.id`, userID)
	if err != nil {
		return fmt.Errorf("querying exercises: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.Exercise
		var note sql.NullString
		if err := rows.Scan(&e.ID, &e.SplitDayID, &e.Name, &e.DefaultSets, &e.RestTimeSec,
			&note, &e.ExerciseOrder, &e.MuscleGroups); err != nil {
			return fmt.Errorf("scanning exercise: %w", err)
		}
		e.Note = stringPtr(note)
		ds.Exercises = append(ds.Exercises, e)
	}
	return rows.Err()
}

func loadSessions(ctx context.Context, tx *sql.Tx, userID string, ds *models.Dataset) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, user_id, split_day_id, date, created_at, finished_at
		 FROM sessions WHERE user_id = ?
		 ORDER BY date DESC, created_at DESC, id`, userID)
	if err != nil {
		return fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var s models.Session
		var date, created string
		var finished sql.NullString
		if err := rows.Scan(&s.ID, &s.UserID, &s.SplitDayID, &date, &created, &finished); err != nil {
			return fmt.Errorf("scanning session: %w", err)
		}
		if s.Date, err = time.Parse(dateLayout, date); err != nil {
			return fmt.Errorf("session %s date: %w", s.ID, err)
		}
		if s.CreatedAt, err = parseTime(created); err != nil {
			return fmt.Errorf("session %s created_at: %w", s.ID, err)
		}
		if s.FinishedAt, err = parseTimePtr(finished); err != nil {
			return fmt.Errorf("session %s finished_at: %w", s.ID, err)
		}
		ds.Sessions = append(ds.Sessions, s)
	}
	return rows.Err()
}

func loadSets(ctx context.Context, tx *sql.Tx, userID string, ds *models.Dataset) error {
	rows, err := tx.QueryContext(ctx,
		`SELECT ws.id, ws.session_id, ws.exercise_id, ws.set_number, ws.reps, ws.weight
		 FROM workout_sets ws
		 JOIN sessions s ON s.id = ws.session_id
		 WHERE s.user_id = ?
		 ORDER BY s.date DESC, ws.session_id, ws.exercise_id, ws.set_number`, userID)
	if err != nil {
		return fmt.Errorf("querying workout sets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ws models.WorkoutSet
		if err := rows.Scan(&ws.ID, &ws.SessionID, &ws.ExerciseID, &ws.SetNumber, &ws.Reps, &ws.Weight); err != nil {
			return fmt.Errorf("scanning workout set: %w", err)
		}
		ds.Sets = append(ds.Sets, ws)
	}
	return rows.Err()
}
