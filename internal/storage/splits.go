package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftium/internal/models"
	"github.com/jackc/pgx/v5"
)

func querySplits(ctx context.Context, q querier, userID string) ([]models.Split, error) {
	rows, err := q.Query(ctx,
		`SELECT id, user_id, name, created_at
		 FROM splits WHERE user_id = $1
		 ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying splits: %w", err)
	}
	splits, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Split, error) {
		var s models.Split
		err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.CreatedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning split: %w", err)
	}
	return splits, nil
}

func querySplitDays(ctx context.Context, q querier, userID string) ([]models.SplitDay, error) {
	rows, err := q.Query(ctx,
		`SELECT sd.id, sd.split_id, sd.day_of_week, sd.name, sd.is_rest_day
		 FROM split_days sd
		 JOIN splits s ON s.id = sd.split_id
		 WHERE s.user_id = $1
		 ORDER BY sd.split_id, sd.day_of_week, sd.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying split days: %w", err)
	}
	days, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.SplitDay, error) {
		var sd models.SplitDay
		var dow int16
		err := row.Scan(&sd.ID, &sd.SplitID, &dow, &sd.Name, &sd.IsRestDay)
		sd.DayOfWeek = models.Weekday(dow)
		return sd, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning split day: %w", err)
	}
	return days, nil
}

func queryExercises(ctx context.Context, q querier, userID string) ([]models.Exercise, error) {
	rows, err := q.Query(ctx,
		`SELECT e.id, e.split_day_id, e.name, e.default_sets, e.rest_time_sec,
		 e.note, e.exercise_order, e.muscle_groups
		 FROM exercises e
		 JOIN split_days sd ON sd.id = e.split_day_id
		 JOIN splits s ON s.id = sd.split_id
		 WHERE s.user_id = $1
		 ORDER BY e.split_day_id, e.exercise_order, e.id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying exercises: %w", err)
	}
	exercises, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Exercise, error) {
		var e models.Exercise
		err := row.Scan(&e.ID, &e.SplitDayID, &e.Name, &e.DefaultSets, &e.RestTimeSec,
			&e.Note, &e.ExerciseOrder, &e.MuscleGroups)
		return e, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning exercise: %w", err)
	}
	return exercises, nil
}

func insertSplits(ctx context.Context, q querier, splits []models.Split) (int64, error) {
	rows := make([][]any, len(splits))
	for i, s := range splits {
		rows[i] = []any{s.ID, s.UserID, s.Name, s.CreatedAt}
	}
	return batchInsert(ctx, q, "splits", []string{"id", "user_id", "name", "created_at"}, rows)
}

func insertSplitDays(ctx context.Context, q querier, days []models.SplitDay) (int64, error) {
	rows := make([][]any, len(days))
	for i, sd := range days {
		rows[i] = []any{sd.ID, sd.SplitID, int16(sd.DayOfWeek), sd.Name, sd.IsRestDay}
	}
	return batchInsert(ctx, q, "split_days",
		[]string{"id", "split_id", "day_of_week", "name", "is_rest_day"}, rows)
}

func insertExercises(ctx context.Context, q querier, exercises []models.Exercise) (int64, error) {
	rows := make([][]any, len(exercises))
	for i, e := range exercises {
		rows[i] = []any{e.ID, e.SplitDayID, e.Name, e.DefaultSets, e.RestTimeSec,
			e.Note, e.ExerciseOrder, e.MuscleGroups}
	}
	return batchInsert(ctx, q, "exercises",
		[]string{"id", "split_day_id", "name", "default_sets", "rest_time_sec",
			"note", "exercise_order", "muscle_groups"}, rows)
}
