// README: Postgres connection pool initialization using pgxpool.
package infra

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// NewDB opens a pgx pool for the snapshot store and verifies the connection.
func NewDB(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
