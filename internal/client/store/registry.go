package store

import (
	"context"
	"fmt"

	"perfectmatch/internal/dbx"
)

// RegistryRepo stores the ordered set of profile ids owned by this device.
// Order of insertion is preserved via a monotonically growing position.
type RegistryRepo struct {
	db dbx.DBTX
}

func NewRegistryRepo(db dbx.DBTX) *RegistryRepo {
	return &RegistryRepo{db: db}
}

// List returns all registered ids in insertion order.
func (r *RegistryRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT profile_id FROM registry ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("failed to list registry: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan registry row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate registry rows: %w", err)
	}
	return ids, nil
}

// Add inserts id at the end of the ordering. Inserting an id that is already
// present is a no-op and keeps its original position.
func (r *RegistryRepo) Add(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO registry (profile_id, position)
		VALUES (?, COALESCE((SELECT MAX(position) FROM registry), 0) + 1)
		ON CONFLICT(profile_id) DO NOTHING
	`, id)
	if err != nil {
		return fmt.Errorf("failed to add registry[%s]: %w", id, err)
	}
	return nil
}

// Remove deletes id from the registry. Removing an absent id is a no-op.
func (r *RegistryRepo) Remove(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM registry WHERE profile_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to remove registry[%s]: %w", id, err)
	}
	return nil
}
