package mcp

import (
	"context"

	"github.com/claude/liftium/internal/localdb"
	"github.com/claude/liftium/internal/models"
	"github.com/claude/liftium/internal/seed"
	"github.com/claude/liftium/internal/storage"
)

// DataSource abstracts the data layer for MCP tools. The local stores and
// HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	LoadDataset(ctx context.Context, userID string) (*models.Dataset, error)
}

var (
	_ DataSource = (*storage.DB)(nil)
	_ DataSource = (*localdb.DB)(nil)
	_ DataSource = (*seed.Store)(nil)
	_ DataSource = (*HTTPClient)(nil)
)
