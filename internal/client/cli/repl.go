package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	hasProfiles() bool
	isAdmin() bool
	Home(ctx context.Context) error
	Register(ctx context.Context) error
	Me(ctx context.Context) error
	All(ctx context.Context) error
	Switch(ctx context.Context) error
	Refresh(ctx context.Context) error
	Update(ctx context.Context) error
	Delete(ctx context.Context) error
	Show(ctx context.Context) error
	AdminLogin(ctx context.Context) error
	AdminLogout(ctx context.Context) error
	AdminList(ctx context.Context) error
	ChooseTemplate(ctx context.Context) error
}

// runREPL starts a simple read-eval-print loop for the Perfect Match CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands that operate on this device's own profiles (me, all, switch,
// refresh, update, delete) are only offered once at least one profile has
// been registered from the device; the admin listing requires an open admin
// session. "show" and "register" are always available.
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pm> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			printHelp(a)

		case "home":
			_ = a.Home(ctx)

		case "register":
			_ = a.Register(ctx)

		case "show":
			_ = a.Show(ctx)

		case "me":
			if requireProfiles(a) {
				_ = a.Me(ctx)
			}

		case "all":
			if requireProfiles(a) {
				_ = a.All(ctx)
			}

		case "switch":
			if requireProfiles(a) {
				_ = a.Switch(ctx)
			}

		case "refresh":
			if requireProfiles(a) {
				_ = a.Refresh(ctx)
			}

		case "update":
			if requireProfiles(a) {
				_ = a.Update(ctx)
			}

		case "delete":
			if requireProfiles(a) {
				_ = a.Delete(ctx)
			}

		case "template":
			_ = a.ChooseTemplate(ctx)

		case "login":
			_ = a.AdminLogin(ctx)

		case "logout":
			if requireAdmin(a) {
				_ = a.AdminLogout(ctx)
			}

		case "admin":
			if requireAdmin(a) {
				_ = a.AdminList(ctx)
			}

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(a execIface) {
	cmds := []string{"home", "register", "show", "template", "login"}
	if a.hasProfiles() {
		cmds = append(cmds, "me", "all", "switch", "refresh", "update", "delete")
	}
	if a.isAdmin() {
		cmds = append(cmds, "admin", "logout")
	}
	cmds = append(cmds, "exit")
	printlnFn("Available commands: " + strings.Join(cmds, ", "))
}

func requireProfiles(a execIface) bool {
	if !a.hasProfiles() {
		printlnFn("No profile registered from this device yet. Use 'register' first.")
		return false
	}
	return true
}

func requireAdmin(a execIface) bool {
	if !a.isAdmin() {
		printlnFn("Admin login required. Use 'login' first.")
		return false
	}
	return true
}
