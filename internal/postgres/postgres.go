package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	DSN         string
	MaxConns    int32
	PingTimeout time.Duration
}

func New(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	const op = "postgres.New"

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}

	poolCfg.MaxConnIdleTime = 5 * time.Minute
	poolCfg.HealthCheckPeriod = 30 * time.Second

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	ctxPing, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return pool, nil
}

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id          TEXT PRIMARY KEY,
	title       TEXT NOT NULL,
	description TEXT NOT NULL DEFAULT '',
	venue       TEXT NOT NULL DEFAULT '',
	date        TEXT NOT NULL,
	seat_rows   INTEGER NOT NULL CHECK (seat_rows > 0),
	seat_cols   INTEGER NOT NULL CHECK (seat_cols > 0),
	price       DOUBLE PRECISION NOT NULL CHECK (price >= 0),
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS event_seats (
	event_id    TEXT NOT NULL REFERENCES events(id) ON DELETE CASCADE,
	seat_key    TEXT NOT NULL,
	ticket_id   TEXT NOT NULL,
	reserved_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (event_id, seat_key)
);

CREATE TABLE IF NOT EXISTS tickets (
	id            TEXT PRIMARY KEY,
	event_id      TEXT NOT NULL,
	buyer_name    TEXT NOT NULL,
	buyer_email   TEXT NOT NULL,
	seats         TEXT[] NOT NULL CHECK (cardinality(seats) > 0),
	checked_in    BOOLEAN NOT NULL DEFAULT false,
	checked_in_at TIMESTAMPTZ,
	created_at    TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS tickets_event_id_idx ON tickets(event_id);

CREATE TABLE IF NOT EXISTS users (
	id            TEXT PRIMARY KEY,
	name          TEXT NOT NULL,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL CHECK (role IN ('user', 'admin')),
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate creates the tables when they do not exist yet.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	const op = "postgres.Migrate"

	if _, err := pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("%s:%w", op, err)
	}

	return nil
}
