package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"perfectmatch/internal/client/api"
	"perfectmatch/internal/client/models"
	"perfectmatch/internal/client/validation"
	"perfectmatch/internal/common"
	"perfectmatch/internal/logging"
)

// API is the backend surface the services depend on; *api.Client satisfies
// it, tests substitute fakes.
type API interface {
	Fetcher
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	Register(ctx context.Context, form *models.RegistrationForm, progress api.ProgressFunc) (*api.RegisterResult, error)
	Update(ctx context.Context, id string, form *models.RegistrationForm, progress api.ProgressFunc) error
	Delete(ctx context.Context, id string) error
	AdminLogin(ctx context.Context, username, password string) error
}

// ValidationError aggregates per-field failures; no network call was made.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

func (e *ValidationError) Unwrap() error { return common.ErrValidation }

// ProfileService drives the registration, update and delete pipelines,
// including the device-registry bookkeeping around them.
type ProfileService struct {
	api    API
	device *DeviceService
	log    logging.Logger
}

func NewProfileService(api API, device *DeviceService, log logging.Logger) *ProfileService {
	return &ProfileService{api: api, device: device, log: log}
}

// Register validates, normalizes and submits a new profile. On success the
// returned id is recorded in the device registry and made active.
func (s *ProfileService) Register(ctx context.Context, form *models.RegistrationForm, progress api.ProgressFunc) (string, error) {
	if errs := validation.Form(form, false, time.Now()); len(errs) > 0 {
		return "", &ValidationError{Fields: errs}
	}

	normalized := validation.Normalize(form)

	res, err := s.api.Register(ctx, normalized, progress)
	if err != nil {
		return "", err
	}

	if err := s.device.AddID(ctx, res.ID); err != nil {
		// the backend record exists; surface the local failure but keep the id
		return res.ID, fmt.Errorf("profile %s created but not recorded locally: %w", res.ID, err)
	}
	if err := s.device.SetActiveID(ctx, res.ID); err != nil {
		s.log.Warn(ctx, "active pointer write failed after register", "id", res.ID, "err", err)
	}
	if res.Profile != nil {
		s.device.SetCached(ctx, res.ID, res.Profile)
	}

	s.log.Info(ctx, "profile registered", "id", res.ID)
	return res.ID, nil
}

// Update validates and submits changes to an existing profile. Attachments
// are optional here; empty paths keep the server-side files. The cache entry
// is invalidated so the next view shows fresh data.
func (s *ProfileService) Update(ctx context.Context, id string, form *models.RegistrationForm, progress api.ProgressFunc) error {
	if errs := validation.Form(form, true, time.Now()); len(errs) > 0 {
		return &ValidationError{Fields: errs}
	}

	normalized := validation.Normalize(form)

	if err := s.api.Update(ctx, id, normalized, progress); err != nil {
		return err
	}

	s.device.RemoveCached(ctx, id)
	s.log.Info(ctx, "profile updated", "id", id)
	return nil
}

// Delete removes the profile on the backend and only then cascades locally:
// cache entry dropped, registry id removed, active pointer reassigned to the
// last remaining id or cleared. Returns the new active id ("" when none).
func (s *ProfileService) Delete(ctx context.Context, id string) (string, error) {
	if err := s.api.Delete(ctx, id); err != nil {
		return "", err
	}

	s.device.RemoveCached(ctx, id)
	if _, err := s.device.RemoveID(ctx, id); err != nil {
		return "", fmt.Errorf("profile %s deleted but local registry not updated: %w", id, err)
	}

	newActive := s.device.ActiveID(ctx)
	s.log.Info(ctx, "profile deleted", "id", id, "new_active", newActive)
	return newActive, nil
}
