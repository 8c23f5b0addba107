package cli

import (
	"context"
	"fmt"
)

// Show fetches and displays any profile by id. This is the public detail
// view, so it goes straight to the backend instead of the device cache.
func (a *App) Show(ctx context.Context) error {
	id, err := GetSimpleText(a.reader, "Enter profile id to show", a.out)
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}

	p, err := a.api.GetProfile(ctx, id)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load profile:", err)
		return err
	}
	return a.renderProfile(ctx, p)
}
