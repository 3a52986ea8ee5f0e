package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	client "github.com/abisalde/povertyline-client/cmd"
	"github.com/abisalde/povertyline-client/internal/authz"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/internal/store"
	"github.com/urfave/cli/v2"
)

type action func(c *cli.Context, app *client.App) error

// withApp builds the client for one command and tears it down afterwards.
func withApp(fn action) cli.ActionFunc {
	return func(c *cli.Context) error {
		cfg, _, err := client.InitConfig()
		if err != nil {
			return cli.Exit(fmt.Sprintf("❌ Failed to initialize configuration: %v", err), 1)
		}
		if v := c.String("api"); v != "" {
			cfg.API.BaseURL = v
		}
		if v := c.String("storage"); v != "" {
			cfg.Storage.Driver = v
		}

		durable, err := client.SetupStorage(cfg)
		if err != nil {
			return cli.Exit(fmt.Sprintf("❌ Failed to open session storage: %v", err), 1)
		}

		nav := store.NavigatorFunc(func(path string) {
			fmt.Fprintf(os.Stderr, "↪ redirected to %s\n", path)
		})
		app, err := client.SetupClient(c.Context, cfg, durable, nav)
		if err != nil {
			durable.Close()
			return cli.Exit(fmt.Sprintf("❌ Failed to setup client: %v", err), 1)
		}
		defer app.Close()

		return fn(c, app)
	}
}

// gated runs fn only when the gate lets the session onto path.
func gated(path string, fn action) cli.ActionFunc {
	return withApp(func(c *cli.Context, app *client.App) error {
		if err := checkRoute(app, path); err != nil {
			return err
		}
		return fn(c, app)
	})
}

func checkRoute(app *client.App, path string) error {
	out := app.Guard.Check(path)
	switch out.Decision {
	case authz.Render:
		return nil
	case authz.RedirectToLogin:
		return cli.Exit(fmt.Sprintf("🔒 %s needs a signed-in user, run `povertyline login --next %s`", path, path), 1)
	case authz.RedirectToUnauthorized:
		return cli.Exit(fmt.Sprintf("⛔ Your role cannot open %s", path), 1)
	}
	return cli.Exit(fmt.Sprintf("❓ %s: %s", path, out.Decision), 1)
}

func failed(err error) error {
	return cli.Exit("❌ "+err.Error(), 1)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printResources(resources []model.Resource) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tCATEGORY\tSTATUS\tLOCATION")
	for _, r := range resources {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", r.ID, r.Title, r.Category, r.Status, r.Location)
	}
	w.Flush()
}

func printUsers(users []model.UserSummary) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tROLE\tSTATUS")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", u.ID, u.Name, u.Email, u.Role, u.Status)
	}
	w.Flush()
}

func printMessage(op store.OpState) {
	if op.Message != "" {
		fmt.Println("✅ " + op.Message)
	}
}
