package services

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"perfectmatch/internal/client/api"
	"perfectmatch/internal/client/models"
	"perfectmatch/internal/client/store"
	"perfectmatch/internal/logging"
)

// fakeAPI is an in-memory stand-in for *api.Client.
type fakeAPI struct {
	mu sync.Mutex

	profiles map[string]*models.Profile
	getErr   map[string]error
	getCalls map[string]int
	// blockGet, when non-nil, makes GetProfile for blockOn wait until the
	// channel is closed or the context is canceled. An empty blockOn blocks
	// every id.
	blockGet chan struct{}
	blockOn  string
	// ignoreCancel makes GetProfile and ListProfiles answer even when the
	// context is already canceled, like a response that was in flight.
	ignoreCancel bool

	registerResult *api.RegisterResult
	registerErr    error
	registerCalls  int

	updateErr   error
	updateCalls int

	deleteErr   error
	deleteCalls int

	listResult []models.Profile
	listErr    error

	loginErr error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		profiles: make(map[string]*models.Profile),
		getErr:   make(map[string]error),
		getCalls: make(map[string]int),
	}
}

func (f *fakeAPI) GetProfile(ctx context.Context, id string) (*models.Profile, error) {
	f.mu.Lock()
	f.getCalls[id]++
	block := f.blockGet
	err := f.getErr[id]
	p := f.profiles[id]
	f.mu.Unlock()

	if block != nil && (f.blockOn == "" || f.blockOn == id) {
		if f.ignoreCancel {
			<-block
		} else {
			select {
			case <-block:
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	if !f.ignoreCancel {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, context.DeadlineExceeded
	}
	cp := *p
	return &cp, nil
}

func (f *fakeAPI) calls(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.getCalls[id]
}

func (f *fakeAPI) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	if !f.ignoreCancel {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return f.listResult, f.listErr
}

func (f *fakeAPI) Register(ctx context.Context, form *models.RegistrationForm, progress api.ProgressFunc) (*api.RegisterResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registerCalls++
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	return f.registerResult, nil
}

func (f *fakeAPI) Update(ctx context.Context, id string, form *models.RegistrationForm, progress api.ProgressFunc) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls++
	return f.updateErr
}

func (f *fakeAPI) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleteCalls++
	return f.deleteErr
}

func (f *fakeAPI) AdminLogin(ctx context.Context, username, password string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return f.loginErr
}

func testLogger() logging.Logger {
	return logging.NewTextLogger(io.Discard, slog.LevelError)
}

func testDevice(t *testing.T, ttl time.Duration) *DeviceService {
	t.Helper()
	s, err := store.Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return NewDeviceService(s, ttl, testLogger())
}
