package cli

import (
	"context"
	"fmt"
)

// Delete removes the active profile after an explicit confirmation. Local
// state is only touched once the backend confirms the removal.
func (a *App) Delete(ctx context.Context) error {
	id := a.device.ActiveID(ctx)
	if id == "" {
		fmt.Fprintln(a.out, "No active profile.")
		return nil
	}

	answer, err := GetSimpleText(a.reader, fmt.Sprintf("Delete profile %s permanently? Type 'yes' to confirm", id), a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Aborted.")
		return nil
	}

	newActive, err := a.profiles.Delete(ctx, id)
	if err != nil {
		fmt.Fprintln(a.out, "Delete failed:", err)
		return err
	}

	if newActive == "" {
		fmt.Fprintln(a.out, "Profile deleted. No profiles remain on this device.")
	} else {
		fmt.Fprintf(a.out, "Profile deleted. Active profile is now %s.\n", newActive)
	}
	return nil
}
