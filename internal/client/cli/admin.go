package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"perfectmatch/internal/client/models"
)

// AdminLogin prompts for credentials and opens an admin session. The session
// survives restarts; use 'logout' to close it.
func (a *App) AdminLogin(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Admin username", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	if err := a.admin.Login(ctx, username, string(password)); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		fmt.Fprintln(a.out, "Login failed:", err)
		return err
	}

	fmt.Fprintln(a.out, "Logged in as admin.")
	return nil
}

// AdminLogout closes the admin session.
func (a *App) AdminLogout(ctx context.Context) error {
	if err := a.admin.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// AdminList fetches every profile and drops into a small browsing loop with
// search, gender filter and pagination. The search is debounced so the page
// redraws once per quiet period, not on every keystroke-like command.
//
// Sub-commands:
//
//	search <text>   filter by name, profession or mobile (debounced)
//	gender <male|female|all>
//	page <n> | next | prev
//	show <id>       full biodata for one row
//	print <id>      the printable biodata sheet for one row
//	reload          re-fetch the listing from the backend
//	back            return to the main prompt
func (a *App) AdminList(ctx context.Context) error {
	list, err := a.admin.FetchAll(ctx)
	if err != nil {
		fmt.Fprintln(a.out, "Could not load profiles:", err)
		return err
	}

	// The debounced search callback runs off the REPL goroutine, so every
	// read or write of the browsing state (and of a.out) goes through mu.
	var mu sync.Mutex
	query, gender := "", "all"
	page := 1
	totalPages := 1

	render := func() {
		mu.Lock()
		defer mu.Unlock()
		totalPages = renderAdminPage(a.out, list, query, gender, page)
	}
	render()

	scanner := bufio.NewScanner(a.reader)
	for {
		fmt.Fprint(a.out, "admin> ")
		if !scanner.Scan() {
			return nil
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "search":
			mu.Lock()
			query = strings.Join(args, " ")
			page = 1
			mu.Unlock()
			a.search.Trigger(render)

		case "gender":
			if len(args) != 1 || (args[0] != "male" && args[0] != "female" && args[0] != "all") {
				fmt.Fprintln(a.out, "Usage: gender <male|female|all>")
				continue
			}
			mu.Lock()
			gender = args[0]
			page = 1
			mu.Unlock()
			render()

		case "page":
			if len(args) != 1 {
				fmt.Fprintln(a.out, "Usage: page <n>")
				continue
			}
			n, err := strconv.Atoi(args[0])
			if err != nil {
				fmt.Fprintln(a.out, "Usage: page <n>")
				continue
			}
			mu.Lock()
			page = clampPage(n, totalPages)
			mu.Unlock()
			render()

		case "next":
			mu.Lock()
			page = clampPage(page+1, totalPages)
			mu.Unlock()
			render()

		case "prev":
			mu.Lock()
			page = clampPage(page-1, totalPages)
			mu.Unlock()
			render()

		case "show", "print":
			if len(args) != 1 {
				fmt.Fprintf(a.out, "Usage: %s <id>\n", cmd)
				continue
			}
			layout := a.device.Template(ctx)
			if cmd == "print" {
				layout = TemplatePrint
			}
			if p := findProfile(list, args[0]); p != nil {
				_ = renderProfile(a.out, layout, p)
			} else {
				fmt.Fprintln(a.out, "No such profile in the listing.")
			}

		case "reload":
			fresh, err := a.admin.FetchAll(ctx)
			if err != nil {
				fmt.Fprintln(a.out, "Could not reload:", err)
				continue
			}
			mu.Lock()
			list = fresh
			mu.Unlock()
			render()

		case "back", "exit":
			a.admin.CancelList()
			return nil

		default:
			fmt.Fprintln(a.out, "Unknown command:", cmd)
		}
	}
}

func findProfile(list []models.Profile, id string) *models.Profile {
	for i := range list {
		if list[i].ID == id {
			return &list[i]
		}
	}
	return nil
}

// ChooseTemplate persists the biodata layout used by 'me' and 'show'.
func (a *App) ChooseTemplate(ctx context.Context) error {
	name, err := GetSimpleText(a.reader,
		fmt.Sprintf("Layout (%s/%s/%s)", TemplateClassic, TemplateDetailed, TemplatePrint), a.out)
	if err != nil {
		return err
	}
	if _, ok := templates[name]; !ok {
		fmt.Fprintln(a.out, "Unknown layout:", name)
		return nil
	}
	if err := a.device.SetTemplate(ctx, name); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Layout set to", name)
	return nil
}
