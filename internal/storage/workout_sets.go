package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftium/internal/models"
	"github.com/jackc/pgx/v5"
)

// queryWorkoutSets retrieves a user's sets, ordered the way sessions display
// them.
func queryWorkoutSets(ctx context.Context, q querier, userID string) ([]models.WorkoutSet, error) {
	rows, err := q.Query(ctx,
		`SELECT ws.id, ws.session_id, ws.exercise_id, ws.set_number, ws.reps, ws.weight
		 FROM workout_sets ws
		 JOIN sessions s ON s.id = ws.session_id
		 WHERE s.user_id = $1
		 ORDER BY s.date DESC, ws.session_id, ws.exercise_id, ws.set_number`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying workout sets: %w", err)
	}
	sets, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.WorkoutSet, error) {
		var ws models.WorkoutSet
		err := row.Scan(&ws.ID, &ws.SessionID, &ws.ExerciseID, &ws.SetNumber, &ws.Reps, &ws.Weight)
		return ws, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning workout set: %w", err)
	}
	return sets, nil
}

// insertWorkoutSets batch-inserts sets. Returns count inserted.
func insertWorkoutSets(ctx context.Context, q querier, sets []models.WorkoutSet) (int64, error) {
	rows := make([][]any, len(sets))
	for i, ws := range sets {
		rows[i] = []any{ws.ID, ws.SessionID, ws.ExerciseID, ws.SetNumber, ws.Reps, ws.Weight}
	}
	return batchInsert(ctx, q, "workout_sets",
		[]string{"id", "session_id", "exercise_id", "set_number", "reps", "weight"}, rows)
}
