package seed

import (
	"context"
	"strings"

	"github.com/claude/liftium/internal/models"
)

// Store serves a fixed in-memory dataset. It backs the "memory" database
// driver.
type Store struct {
	ds *models.Dataset
}

// NewStore wraps ds. The dataset must not be modified afterwards.
func NewStore(ds *models.Dataset) *Store {
	return &Store{ds: ds}
}

// LoadDataset returns the part of the dataset owned by userID.
func (s *Store) LoadDataset(_ context.Context, userID string) (*models.Dataset, error) {
	return s.ds.ForUser(userID), nil
}

// UserIDByEmail finds a user by case-insensitive email.
func (s *Store) UserIDByEmail(_ context.Context, email string) (string, bool, error) {
	for _, u := range s.ds.Users {
		if strings.EqualFold(u.Email, email) {
			return u.ID, true, nil
		}
	}
	return "", false, nil
}
