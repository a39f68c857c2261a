package items

import (
	"context"

	"item-portal/internal/db"
)

type PostgresStore struct {
	db *db.DB
}

func NewPostgresStore(db *db.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (p *PostgresStore) ListFor(ctx context.Context, identityID string) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT name
		FROM items
		WHERE identity_id = $1
		ORDER BY id
	`, identityID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}
