package db

import (
	"context"
	"database/sql"
)

const portalMigration = `
CREATE TABLE IF NOT EXISTS identities (
    id text PRIMARY KEY,
    password_hash text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW(),
    updated_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS items (
    id bigserial PRIMARY KEY,
    identity_id text NOT NULL REFERENCES identities(id) ON DELETE CASCADE,
    name text NOT NULL,
    created_at timestamptz NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS items_identity_id_idx
ON items (identity_id);
`

func RunPortalMigration(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, portalMigration)
	return err
}
