// Package store persists the device-local state of the Perfect Match client:
// the ordered registry of profile ids created on this device, the active
// profile pointer, a timestamped per-id cache of fetched profile JSON, and a
// small metadata key/value area (admin flags, template choice, device id).
//
// The store is a SQLite database in the user's data directory. Repositories
// return errors; the degrade-to-empty semantics live one level up, in
// services.DeviceService.
package store

import (
	"context"
	"database/sql"
	"fmt"

	"perfectmatch/internal/dbx"

	_ "modernc.org/sqlite"
)

// Metadata keys. Names are fixed: older installs already carry them.
const (
	MetaActiveProfile = "activeProfileId"
	MetaAdminLoggedIn = "adminLoggedIn"
	MetaAdminUser     = "adminUser"
	MetaTemplate      = "detailTemplate"
	MetaDeviceID      = "deviceId"
)

// Repos bundles the three repositories over one dbx.DBTX handle, so a caller
// can address all of them inside a single transaction.
type Repos struct {
	Registry *RegistryRepo
	Cache    *CacheRepo
	Metadata *MetadataRepo
}

func newRepos(db dbx.DBTX) *Repos {
	return &Repos{
		Registry: NewRegistryRepo(db),
		Cache:    NewCacheRepo(db),
		Metadata: NewMetadataRepo(db),
	}
}

// Store owns the SQLite handle and the default (non-transactional) repos.
type Store struct {
	db *sql.DB
	*Repos
}

// Open opens (creating if needed) the store at dsn and runs migrations.
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	return &Store{db: db, Repos: newRepos(db)}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// WithTx runs fn with a repo set bound to one transaction. Used where a
// logical operation must land atomically, e.g. removing a registry id and
// clearing the active pointer that referenced it.
func (s *Store) WithTx(ctx context.Context, fn func(ctx context.Context, r *Repos) error) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, newRepos(tx))
	})
}
