package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"perfectmatch/internal/client/models"
	"perfectmatch/internal/logging"
)

// PageSize is the fixed admin listing page size.
const PageSize = 10

// adminImage is the display avatar stored with the session.
const adminImage = "/images/admin.jpeg"

// AdminService handles admin authentication and the dashboard listing.
type AdminService struct {
	api    API
	device *DeviceService
	log    logging.Logger

	list slot

	fallbackUser string
	fallbackHash []byte
}

// NewAdminService builds the service. The dev fallback pair is only honored
// when the remote login call fails outright; pass an empty password to
// disable it. The password is hashed immediately so it never sits in memory
// in the clear past construction.
func NewAdminService(api API, device *DeviceService, fallbackUser, fallbackPass string, log logging.Logger) *AdminService {
	s := &AdminService{api: api, device: device, log: log, fallbackUser: fallbackUser}
	if fallbackPass != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(fallbackPass), bcrypt.DefaultCost)
		if err == nil {
			s.fallbackHash = hash
		}
	}
	return s
}

// Login exchanges credentials for the local admin session flag. Remote
// rejection falls through to the dev fallback pair; cancellation is passed
// through untouched so the caller stays silent on it.
func (a *AdminService) Login(ctx context.Context, username, password string) error {
	err := a.api.AdminLogin(ctx, username, password)
	if err == nil {
		return a.persistSession(ctx, username)
	}
	if errors.Is(err, context.Canceled) {
		return err
	}

	if a.fallbackHash != nil && username == a.fallbackUser &&
		bcrypt.CompareHashAndPassword(a.fallbackHash, []byte(password)) == nil {
		a.log.Warn(ctx, "remote admin login failed, using development fallback", "err", err)
		return a.persistSession(ctx, username)
	}

	return err
}

func (a *AdminService) persistSession(ctx context.Context, username string) error {
	return a.device.SetAdminSession(ctx, &models.AdminUser{Username: username, Image: adminImage})
}

// Logout clears the admin flag and display object.
func (a *AdminService) Logout(ctx context.Context) error {
	return a.device.SetAdminSession(ctx, nil)
}

// LoggedIn reports the session flag.
func (a *AdminService) LoggedIn(ctx context.Context) bool {
	return a.device.AdminLoggedIn(ctx)
}

// FetchAll loads every backend profile. A newer call supersedes and cancels
// an older in-flight one.
func (a *AdminService) FetchAll(ctx context.Context) ([]models.Profile, error) {
	ctx, cancel := a.list.begin(ctx)
	defer cancel()

	list, err := a.api.ListProfiles(ctx)
	if cerr := ctx.Err(); cerr != nil {
		return nil, cerr
	}
	return list, err
}

// CancelList aborts the in-flight listing fetch, if any.
func (a *AdminService) CancelList() {
	a.list.Cancel()
}

// FilterProfiles applies the dashboard's search and gender filter. The query
// matches case-insensitively as a substring against name, profession and
// mobile; gender is "all", "male" or "female"; both combine with AND.
func FilterProfiles(list []models.Profile, query, gender string) []models.Profile {
	q := strings.ToLower(strings.TrimSpace(query))

	out := make([]models.Profile, 0, len(list))
	for _, p := range list {
		matchesSearch := q == "" ||
			strings.Contains(strings.ToLower(p.Name), q) ||
			strings.Contains(strings.ToLower(p.Profession), q) ||
			strings.Contains(p.Mobile, q)

		matchesGender := gender == "all" || gender == "" ||
			(gender == "male" && p.Gender == models.GenderMale) ||
			(gender == "female" && p.Gender == models.GenderFemale)

		if matchesSearch && matchesGender {
			out = append(out, p)
		}
	}
	return out
}

// Paginate slices the filtered list to the requested page. Total pages is
// ceil(len/PageSize) with a minimum of 1; the page number is clamped into
// range.
func Paginate(list []models.Profile, page int) ([]models.Profile, int) {
	totalPages := (len(list) + PageSize - 1) / PageSize
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * PageSize
	end := start + PageSize
	if start >= len(list) {
		return nil, totalPages
	}
	if end > len(list) {
		end = len(list)
	}
	return list[start:end], totalPages
}
