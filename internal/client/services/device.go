// Package services holds the client's behavior: the device registry facade,
// profile loaders with cancellation slots, the submission pipeline, and the
// admin dashboard logic.
package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"perfectmatch/internal/client/models"
	"perfectmatch/internal/client/store"
	"perfectmatch/internal/logging"
)

// DeviceService is the single gate to device-local state. Reads degrade to
// empty on any storage failure and cache writes are best-effort, so a corrupt
// store renders the empty-state UI instead of crashing.
type DeviceService struct {
	store    *store.Store
	cacheTTL time.Duration
	log      logging.Logger
}

func NewDeviceService(s *store.Store, cacheTTL time.Duration, log logging.Logger) *DeviceService {
	return &DeviceService{store: s, cacheTTL: cacheTTL, log: log}
}

// ListIDs returns the device's profile ids in insertion order. Never fails:
// a broken store reads as an empty registry.
func (d *DeviceService) ListIDs(ctx context.Context) []string {
	ids, err := d.store.Registry.List(ctx)
	if err != nil {
		d.log.Warn(ctx, "registry read failed, treating as empty", "err", err)
		return nil
	}
	return ids
}

// AddID records a profile id as owned by this device and is idempotent.
func (d *DeviceService) AddID(ctx context.Context, id string) error {
	return d.store.Registry.Add(ctx, id)
}

// RemoveID removes id from the registry; when it was the active id the
// pointer is reassigned to the last remaining id (or cleared) in the same
// transaction. Returns the remaining ids.
func (d *DeviceService) RemoveID(ctx context.Context, id string) ([]string, error) {
	var remaining []string
	err := d.store.WithTx(ctx, func(ctx context.Context, r *store.Repos) error {
		if err := r.Registry.Remove(ctx, id); err != nil {
			return err
		}
		ids, err := r.Registry.List(ctx)
		if err != nil {
			return err
		}
		remaining = ids

		active, err := r.Metadata.Get(ctx, store.MetaActiveProfile)
		if err != nil {
			return err
		}
		if string(active) != id {
			return nil
		}
		if len(ids) == 0 {
			return r.Metadata.Delete(ctx, store.MetaActiveProfile)
		}
		return r.Metadata.Set(ctx, store.MetaActiveProfile, []byte(ids[len(ids)-1]))
	})
	if err != nil {
		return nil, err
	}
	return remaining, nil
}

// ActiveID returns the stored active pointer, falling back to the most
// recently added registry id, or "" when the registry is empty.
func (d *DeviceService) ActiveID(ctx context.Context) string {
	v, err := d.store.Metadata.Get(ctx, store.MetaActiveProfile)
	if err != nil {
		d.log.Warn(ctx, "active pointer read failed", "err", err)
	}
	if len(v) > 0 {
		return string(v)
	}
	ids := d.ListIDs(ctx)
	if len(ids) == 0 {
		return ""
	}
	return ids[len(ids)-1]
}

// SetActiveID overwrites the active pointer; an empty id clears it.
func (d *DeviceService) SetActiveID(ctx context.Context, id string) error {
	if id == "" {
		return d.store.Metadata.Delete(ctx, store.MetaActiveProfile)
	}
	return d.store.Metadata.Set(ctx, store.MetaActiveProfile, []byte(id))
}

// Cached returns the cached profile for id regardless of staleness, or nil
// when never cached or the stored entry is malformed.
func (d *DeviceService) Cached(ctx context.Context, id string) *models.Profile {
	p, _ := d.cachedWithTime(ctx, id)
	return p
}

// CachedFresh returns the cached profile only when it is younger than the
// configured TTL. The bulk loader uses this to skip fetches.
func (d *DeviceService) CachedFresh(ctx context.Context, id string) *models.Profile {
	p, fetchedAt := d.cachedWithTime(ctx, id)
	if p == nil || time.Since(fetchedAt) > d.cacheTTL {
		return nil
	}
	return p
}

func (d *DeviceService) cachedWithTime(ctx context.Context, id string) (*models.Profile, time.Time) {
	entry, err := d.store.Cache.Get(ctx, id)
	if err != nil {
		d.log.Warn(ctx, "cache read failed", "id", id, "err", err)
		return nil, time.Time{}
	}
	if entry == nil {
		return nil, time.Time{}
	}
	var p models.Profile
	if err := json.Unmarshal(entry.Payload, &p); err != nil {
		d.log.Warn(ctx, "cache entry malformed", "id", id, "err", err)
		return nil, time.Time{}
	}
	return &p, entry.FetchedAt
}

// SetCached overwrites the cache entry for id with the current timestamp.
// Failures are swallowed: the cache is a fast path, not a correctness
// requirement.
func (d *DeviceService) SetCached(ctx context.Context, id string, p *models.Profile) {
	payload, err := json.Marshal(p)
	if err != nil {
		d.log.Warn(ctx, "cache encode failed", "id", id, "err", err)
		return
	}
	if err := d.store.Cache.Set(ctx, id, payload, time.Now()); err != nil {
		d.log.Warn(ctx, "cache write failed", "id", id, "err", err)
	}
}

// RemoveCached deletes the cache entry for id; used on profile delete.
func (d *DeviceService) RemoveCached(ctx context.Context, id string) {
	if err := d.store.Cache.Delete(ctx, id); err != nil {
		d.log.Warn(ctx, "cache delete failed", "id", id, "err", err)
	}
}

// DeviceID returns the stable identifier of this installation, generating
// and persisting one on first use.
func (d *DeviceService) DeviceID(ctx context.Context) string {
	v, err := d.store.Metadata.Get(ctx, store.MetaDeviceID)
	if err == nil && len(v) > 0 {
		return string(v)
	}
	id := uuid.NewString()
	if err := d.store.Metadata.Set(ctx, store.MetaDeviceID, []byte(id)); err != nil {
		d.log.Warn(ctx, "device id write failed", "err", err)
	}
	return id
}

// AdminLoggedIn reports whether the admin session flag is set.
func (d *DeviceService) AdminLoggedIn(ctx context.Context) bool {
	v, err := d.store.Metadata.Get(ctx, store.MetaAdminLoggedIn)
	if err != nil {
		d.log.Warn(ctx, "admin flag read failed", "err", err)
		return false
	}
	return string(v) == "true"
}

// SetAdminSession persists (or clears) the admin flag and display object.
func (d *DeviceService) SetAdminSession(ctx context.Context, user *models.AdminUser) error {
	return d.store.WithTx(ctx, func(ctx context.Context, r *store.Repos) error {
		if user == nil {
			if err := r.Metadata.Delete(ctx, store.MetaAdminLoggedIn); err != nil {
				return err
			}
			return r.Metadata.Delete(ctx, store.MetaAdminUser)
		}
		payload, err := json.Marshal(user)
		if err != nil {
			return err
		}
		if err := r.Metadata.Set(ctx, store.MetaAdminLoggedIn, []byte("true")); err != nil {
			return err
		}
		return r.Metadata.Set(ctx, store.MetaAdminUser, payload)
	})
}

// AdminUser returns the stored admin display object, or nil.
func (d *DeviceService) AdminUser(ctx context.Context) *models.AdminUser {
	v, err := d.store.Metadata.Get(ctx, store.MetaAdminUser)
	if err != nil || len(v) == 0 {
		return nil
	}
	var u models.AdminUser
	if err := json.Unmarshal(v, &u); err != nil {
		return nil
	}
	return &u
}

// Template returns the last-chosen detail template name, or "" for default.
func (d *DeviceService) Template(ctx context.Context) string {
	v, err := d.store.Metadata.Get(ctx, store.MetaTemplate)
	if err != nil {
		return ""
	}
	return string(v)
}

func (d *DeviceService) SetTemplate(ctx context.Context, name string) error {
	return d.store.Metadata.Set(ctx, store.MetaTemplate, []byte(name))
}
