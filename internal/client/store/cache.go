package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"perfectmatch/internal/dbx"
)

// CacheEntry is a cached profile payload plus its fetch time.
type CacheEntry struct {
	Payload   []byte
	FetchedAt time.Time
}

// CacheRepo stores the last-fetched JSON per profile id.
type CacheRepo struct {
	db dbx.DBTX
}

func NewCacheRepo(db dbx.DBTX) *CacheRepo {
	return &CacheRepo{db: db}
}

// Get returns the cached entry for id, or nil when nothing is cached.
func (r *CacheRepo) Get(ctx context.Context, id string) (*CacheEntry, error) {
	var payload []byte
	var fetchedAt int64
	err := r.db.QueryRowContext(ctx,
		`SELECT payload, fetched_at FROM cache WHERE profile_id = ?`, id).
		Scan(&payload, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get cache[%s]: %w", id, err)
	}
	return &CacheEntry{Payload: payload, FetchedAt: time.UnixMilli(fetchedAt)}, nil
}

// Set overwrites the entry for id with the given payload and fetch time.
func (r *CacheRepo) Set(ctx context.Context, id string, payload []byte, fetchedAt time.Time) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO cache (profile_id, payload, fetched_at) VALUES (?, ?, ?)
		ON CONFLICT(profile_id) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at
	`, id, payload, fetchedAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to set cache[%s]: %w", id, err)
	}
	return nil
}

// Delete removes the entry for id, if any.
func (r *CacheRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cache WHERE profile_id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete cache[%s]: %w", id, err)
	}
	return nil
}
