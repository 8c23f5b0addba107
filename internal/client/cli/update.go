package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"perfectmatch/internal/client/models"
	"perfectmatch/internal/client/services"
)

// Update edits the active profile. The form is pre-filled from the cached
// copy when available (fetched otherwise); pressing Enter keeps a value, and
// attachments are only re-sent when new paths are given.
func (a *App) Update(ctx context.Context) error {
	id := a.device.ActiveID(ctx)
	if id == "" {
		fmt.Fprintln(a.out, "No active profile.")
		return nil
	}

	current := a.device.Cached(ctx, id)
	if current == nil {
		var err error
		current, err = a.api.GetProfile(ctx, id)
		if err != nil {
			fmt.Fprintln(a.out, "Could not load the current profile:", err)
			return err
		}
	}

	form, err := collectForm(a.reader, a.out, time.Now(), true, models.FormFromProfile(current))
	if err != nil {
		return err
	}

	if err := a.profiles.Update(ctx, id, form, a.progressPrinter()); err != nil {
		var verr *services.ValidationError
		if errors.As(err, &verr) {
			for field, msg := range verr.Fields {
				fmt.Fprintf(a.out, "%s: %s\n", field, msg)
			}
			return err
		}
		fmt.Fprintln(a.out, "Update failed:", err)
		return err
	}

	fmt.Fprintln(a.out, "Profile updated.")
	return a.Me(ctx)
}
