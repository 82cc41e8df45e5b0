package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

type OwnerRepo struct {
	db DBTX
}

func NewOwnerRepo(db DBTX) *OwnerRepo {
	return &OwnerRepo{db: db}
}

func (r *OwnerRepo) Get(ctx context.Context, id string) (*Owner, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM owners WHERE id = ?`, id)
	var o Owner
	if err := row.Scan(&o.ID, &o.Name, &o.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("owner get: %w", err)
	}
	return &o, nil
}

func (r *OwnerRepo) GetByName(ctx context.Context, name string) (*Owner, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, created_at FROM owners WHERE name = ?`, name)
	var o Owner
	if err := row.Scan(&o.ID, &o.Name, &o.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("owner get by name: %w", err)
	}
	return &o, nil
}

// GetOrCreateByName resolves an owner by name, creating it with a fresh
// UUID on first use.
func (r *OwnerRepo) GetOrCreateByName(ctx context.Context, name string) (*Owner, error) {
	o, err := r.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if o != nil {
		return o, nil
	}

	id := uuid.NewString()
	if _, err := r.db.ExecContext(ctx, `INSERT INTO owners (id, name) VALUES (?, ?)`, id, name); err != nil {
		return nil, fmt.Errorf("owner insert: %w", err)
	}
	return r.Get(ctx, id)
}

func (r *OwnerRepo) List(ctx context.Context) ([]Owner, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, created_at FROM owners ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("owner list: %w", err)
	}
	defer rows.Close()

	var out []Owner
	for rows.Next() {
		var o Owner
		if err := rows.Scan(&o.ID, &o.Name, &o.CreatedAt); err != nil {
			return nil, fmt.Errorf("owner scan: %w", err)
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("owner rows: %w", err)
	}
	return out, nil
}
