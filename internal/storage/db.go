package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DB wraps a pgxpool.Pool and provides repository methods.
type DB struct {
	Pool *pgxpool.Pool
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// New creates a new DB with a connection pool.
func New(ctx context.Context, dsn string) (*DB, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{Pool: pool}, nil
}

// Close closes the connection pool.
func (db *DB) Close() {
	db.Pool.Close()
}

// RunMigrations applies all pending migrations from the given directory.
func RunMigrations(dsn, migrationsPath string) error {
	m, err := migrate.New("file://"+migrationsPath, dsn)
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}

// maxParams is PostgreSQL's limit on bind parameters per statement.
const maxParams = 65535

// batchInsert inserts rows into table, skipping conflicts. Rows are sent in
// as few statements as the parameter limit allows. Returns the number of rows
// inserted.
func batchInsert(ctx context.Context, q querier, table string, cols []string, rows [][]any) (int64, error) {
	n := len(cols)
	chunk := maxParams / n
	var total int64
	for start := 0; start < len(rows); start += chunk {
		end := min(start+chunk, len(rows))

		args := make([]any, 0, (end-start)*n)
		valueStrings := make([]string, 0, end-start)
		for i, r := range rows[start:end] {
			ph := make([]string, n)
			for j := range ph {
				ph[j] = fmt.Sprintf("$%d", i*n+j+1)
			}
			valueStrings = append(valueStrings, "("+strings.Join(ph, ",")+")")
			args = append(args, r...)
		}

		query := "INSERT INTO " + table + " (" + strings.Join(cols, ", ") + ") VALUES " +
			strings.Join(valueStrings, ",") + " ON CONFLICT DO NOTHING"

		tag, err := q.Exec(ctx, query, args...)
		if err != nil {
			return total, fmt.Errorf("inserting %s: %w", table, err)
		}
		total += tag.RowsAffected()
	}
	return total, nil
}
