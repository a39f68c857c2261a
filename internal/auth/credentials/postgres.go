package credentials

import (
	"context"
	"database/sql"

	"item-portal/internal/db"
)

// PostgresStore reads identities from the database. It satisfies the same
// lookup-only contract as MemoryStore; provisioning rows is an operational
// concern outside this service.
type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) Lookup(ctx context.Context, id string) (*Identity, error) {
	var identity Identity

	err := p.db.QueryRowContext(ctx, `
		SELECT id, password_hash
		FROM identities
		WHERE id = $1
	`, id).Scan(&identity.ID, &identity.PasswordHash)

	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &identity, nil
}
