// internal/database/schema.go
package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Schema creates the tables used by the session repository and the historian.
const Schema = `
CREATE TABLE IF NOT EXISTS game_sessions (
	id          UUID PRIMARY KEY,
	status      TEXT NOT NULL DEFAULT 'in_progress',
	phase       TEXT NOT NULL,
	version     INTEGER NOT NULL,
	state       JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	end_time    TIMESTAMPTZ
);

CREATE TABLE IF NOT EXISTS session_actions (
	session_id     UUID NOT NULL,
	version        INTEGER NOT NULL,
	actor_id       UUID NOT NULL,
	action_type    TEXT NOT NULL,
	action_payload JSONB NOT NULL,
	recorded_at    TIMESTAMPTZ NOT NULL,
	PRIMARY KEY (session_id, version)
);
`

// Migrate applies Schema. It is safe to run repeatedly.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
