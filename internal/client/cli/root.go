package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
)

func (a *App) getStatus() string {
	ctx := context.Background()
	s := ""
	if active := a.device.ActiveID(ctx); active != "" {
		s = "#" + active
	}
	if a.isAdmin() {
		if s != "" {
			s += " "
		}
		s += "admin"
	}
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Root prints a greeting, shows the device summary and hands control to the
// REPL until the user exits.
func (a *App) Root(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to Perfect Match CLI (type 'help' for commands)")
	_ = a.Home(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
