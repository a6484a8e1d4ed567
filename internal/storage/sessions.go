package storage

import (
	"context"
	"fmt"

	"github.com/claude/liftium/internal/models"
	"github.com/jackc/pgx/v5"
)

func querySessions(ctx context.Context, q querier, userID string) ([]models.Session, error) {
	rows, err := q.Query(ctx,
		`SELECT id, user_id, split_day_id, date, created_at, finished_at
		 FROM sessions WHERE user_id = $1
		 ORDER BY date DESC, created_at DESC, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	sessions, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Session, error) {
		var s models.Session
		err := row.Scan(&s.ID, &s.UserID, &s.SplitDayID, &s.Date, &s.CreatedAt, &s.FinishedAt)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	return sessions, nil
}

func insertSessions(ctx context.Context, q querier, sessions []models.Session) (int64, error) {
	rows := make([][]any, len(sessions))
	for i, s := range sessions {
		rows[i] = []any{s.ID, s.UserID, s.SplitDayID, models.Day(s.Date), s.CreatedAt, s.FinishedAt}
	}
	return batchInsert(ctx, q, "sessions",
		[]string{"id", "user_id", "split_day_id", "date", "created_at", "finished_at"}, rows)
}
