package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/superstar-bot/config"
)

// NewPool opens the shared connection pool used by every chat identity and
// checks it is reachable before the bot starts polling.
func NewPool(ctx context.Context, c *config.Config) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(c.PostgresDSN())
	if err != nil {
		return nil, err
	}
	cfg.MaxConns = c.DBMaxConns
	cfg.MinConns = c.DBMinConns
	cfg.MaxConnLifetime = c.DBMaxConnLife
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
