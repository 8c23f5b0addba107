package cli

import (
	"context"
	"fmt"
	"slices"

	"perfectmatch/internal/client/services"
)

// Me shows the active profile. A cached copy is printed immediately when one
// exists; the fresh copy (or the failure) follows from the same call.
func (a *App) Me(ctx context.Context) error {
	id := a.device.ActiveID(ctx)
	if id == "" {
		fmt.Fprintln(a.out, "No active profile.")
		return nil
	}

	a.loader.LoadActive(ctx, id, func(e services.LoadEvent) {
		switch {
		case e.Err != nil:
			fmt.Fprintln(a.out, "Could not refresh profile:", e.Err)
		case e.Cached:
			fmt.Fprintln(a.out, "(showing saved copy, refreshing...)")
			_ = a.renderProfile(ctx, e.Profile)
		default:
			_ = a.renderProfile(ctx, e.Profile)
		}
	})
	return nil
}

// All lists every profile registered from this device, in registration order.
func (a *App) All(ctx context.Context) error {
	ids := a.device.ListIDs(ctx)
	active := a.device.ActiveID(ctx)

	rows := a.loader.LoadAll(ctx, ids)
	for _, row := range rows {
		marker := " "
		if row.ID == active {
			marker = "*"
		}
		if row.Err != nil {
			fmt.Fprintf(a.out, "%s %-6s <unavailable: %v>\n", marker, row.ID, row.Err)
			continue
		}
		fmt.Fprintf(a.out, "%s %-6s %s\n", marker, row.ID, row.Profile)
	}
	return nil
}

// Switch changes which of the device's profiles is active.
func (a *App) Switch(ctx context.Context) error {
	ids := a.device.ListIDs(ctx)
	fmt.Fprintf(a.out, "Profiles on this device: %v\n", ids)

	id, err := GetSimpleText(a.reader, "Enter profile id to activate", a.out)
	if err != nil {
		return err
	}
	if !slices.Contains(ids, id) {
		fmt.Fprintln(a.out, "That profile was not registered from this device.")
		return nil
	}

	if err := a.device.SetActiveID(ctx, id); err != nil {
		return err
	}
	return a.Me(ctx)
}

// Refresh discards the cached copy of the active profile and re-fetches it.
func (a *App) Refresh(ctx context.Context) error {
	id := a.device.ActiveID(ctx)
	if id == "" {
		fmt.Fprintln(a.out, "No active profile.")
		return nil
	}
	a.device.RemoveCached(ctx, id)
	return a.Me(ctx)
}
