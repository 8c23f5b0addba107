package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"perfectmatch/internal/client/api"
	"perfectmatch/internal/client/config"
	"perfectmatch/internal/client/services"
	"perfectmatch/internal/client/store"
	"perfectmatch/internal/logging"
)

// App wires the client services behind the interactive REPL. All command
// handlers are methods on App; the REPL only dispatches.
type App struct {
	config   *config.Config
	store    *store.Store
	device   *services.DeviceService
	profiles *services.ProfileService
	admin    *services.AdminService
	loader   *services.Loader
	search   *services.Debouncer
	api      services.API
	log      logging.Logger

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the on-device store and constructs the service graph on top of
// it. The device id stored alongside the registry is sent with every backend
// request.
func NewApp(cfg *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	st, err := store.Open(ctx, cfg.StorePath)
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}

	device := services.NewDeviceService(st, cfg.CacheTTL, log)
	apiClient := api.New(cfg.ServerBaseURL, cfg.RequestTimeout, device.DeviceID(ctx), log)

	return &App{
		config:   cfg,
		store:    st,
		device:   device,
		profiles: services.NewProfileService(apiClient, device, log),
		admin:    services.NewAdminService(apiClient, device, cfg.FallbackAdminUser, cfg.FallbackAdminPass, log),
		loader:   services.NewLoader(apiClient, device, log),
		search:   services.NewDebouncer(cfg.DebounceWindow),
		api:      apiClient,
		log:      log,
		reader:   bufio.NewReader(os.Stdin),
		out:      os.Stdout,
	}, nil
}

// Run starts the REPL and blocks until the user exits.
func (a *App) Run(ctx context.Context) {
	defer a.store.Close()
	defer a.search.Stop()
	a.Root(ctx)
}

func (a *App) hasProfiles() bool {
	return len(a.device.ListIDs(context.Background())) > 0
}

func (a *App) isAdmin() bool {
	return a.admin.LoggedIn(context.Background())
}

// Home prints a short device summary: how many profiles this device owns,
// which one is active and whether an admin session is open.
func (a *App) Home(ctx context.Context) error {
	ids := a.device.ListIDs(ctx)
	fmt.Fprintf(a.out, "Profiles on this device: %d\n", len(ids))

	if active := a.device.ActiveID(ctx); active != "" {
		if p := a.device.Cached(ctx, active); p != nil {
			fmt.Fprintf(a.out, "Active profile: %s (%s)\n", p.Name, active)
		} else {
			fmt.Fprintf(a.out, "Active profile: %s\n", active)
		}
	}

	if u := a.device.AdminUser(ctx); u != nil {
		fmt.Fprintf(a.out, "Admin session: %s\n", u.Username)
	}
	return nil
}
