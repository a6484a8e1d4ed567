package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/claude/liftium/internal/models"
	"github.com/jackc/pgx/v5"
)

// UserIDByEmail finds a user by case-insensitive email.
func (db *DB) UserIDByEmail(ctx context.Context, email string) (string, bool, error) {
	var id string
	err := db.Pool.QueryRow(ctx,
		`SELECT id FROM users WHERE LOWER(email) = LOWER($1)`, email,
	).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("looking up user: %w", err)
	}
	return id, true, nil
}

func queryUsers(ctx context.Context, q querier, userID string) ([]models.User, error) {
	rows, err := q.Query(ctx,
		`SELECT id, email, created_at, user_name, remember_me_device
		 FROM users WHERE id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.User, error) {
		var u models.User
		err := row.Scan(&u.ID, &u.Email, &u.CreatedAt, &u.UserName, &u.RememberMeDevice)
		return u, err
	})
	if err != nil {
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	return users, nil
}

func insertUsers(ctx context.Context, q querier, users []models.User) (int64, error) {
	rows := make([][]any, len(users))
	for i, u := range users {
		rows[i] = []any{u.ID, u.Email, u.CreatedAt, u.UserName, u.RememberMeDevice}
	}
	return batchInsert(ctx, q, "users",
		[]string{"id", "email", "created_at", "user_name", "remember_me_device"}, rows)
}
