package main

import (
	"fmt"

	client "github.com/abisalde/povertyline-client/cmd"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/internal/utils/validator"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
)

func adminCommand() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "user management and resource review",
		Subcommands: []*cli.Command{
			{
				Name: "users",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "role"},
					&cli.StringFlag{Name: "status"},
				},
				Action: gated("/admin", func(c *cli.Context, app *client.App) error {
					_, err := app.Store.FetchAllUsers(c.Context, model.UserFilters{
						Role:   model.Role(c.String("role")),
						Status: model.UserStatus(c.String("status")),
					})
					if err != nil {
						return failed(err)
					}
					printUsers(app.Store.State().Admin.Users)
					return nil
				}),
			},
			{
				Name: "user-status",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "status", Required: true, Usage: "active, inactive or suspended"},
				},
				Action: gated("/admin", func(c *cli.Context, app *client.App) error {
					status := model.UserStatus(c.String("status"))
					if !status.IsValid() {
						return cli.Exit("❌ status must be active, inactive or suspended", 1)
					}
					if _, err := app.Store.ChangeUserStatus(c.Context, c.Int64("id"), status); err != nil {
						return failed(err)
					}
					printMessage(app.Store.State().Admin.OpState)
					return nil
				}),
			},
			{
				Name: "user-update",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "name"},
					&cli.StringFlag{Name: "email"},
					&cli.StringFlag{Name: "role"},
				},
				Action: gated("/admin", func(c *cli.Context, app *client.App) error {
					var input model.UserUpdate
					if c.IsSet("name") {
						v := c.String("name")
						input.Name = &v
					}
					if c.IsSet("email") {
						v := c.String("email")
						if err := validator.ValidateEmail(v); err != nil {
							return failed(err)
						}
						input.Email = &v
					}
					if c.IsSet("role") {
						v := model.Role(c.String("role"))
						input.Role = &v
					}
					if _, err := app.Store.UpdateUser(c.Context, c.Int64("id"), input); err != nil {
						return failed(err)
					}
					printMessage(app.Store.State().Admin.OpState)
					return nil
				}),
			},
			{
				Name: "pending",
				Action: gated("/admin", func(c *cli.Context, app *client.App) error {
					if _, err := app.Store.FetchPendingResources(c.Context); err != nil {
						return failed(err)
					}
					printResources(app.Store.Select().PendingResources(app.Store.State()))
					return nil
				}),
			},
			{
				Name: "review",
				Flags: []cli.Flag{
					&cli.Int64Flag{Name: "id", Required: true},
					&cli.StringFlag{Name: "status", Required: true, Usage: "approved or rejected"},
					&cli.StringFlag{Name: "reason"},
				},
				Action: gated("/admin", func(c *cli.Context, app *client.App) error {
					input := model.ApprovalInput{
						Status:          model.ResourceStatus(c.String("status")),
						RejectionReason: c.String("reason"),
					}
					if err := validator.ValidateReview(input); err != nil {
						return failed(err)
					}
					_, err := app.Store.ApproveRejectResource(c.Context, c.Int64("id"), input.Status, input.RejectionReason)
					if err != nil {
						return failed(err)
					}
					printMessage(app.Store.State().Admin.OpState)
					return nil
				}),
			},
			{
				Name:   "dashboard",
				Usage:  "load users, pending and all resources in parallel",
				Action: gated("/admin", dashboard),
			},
		},
	}
}

func dashboard(c *cli.Context, app *client.App) error {
	g, ctx := errgroup.WithContext(c.Context)
	g.Go(func() error {
		_, err := app.Store.FetchAllUsers(ctx, model.UserFilters{})
		return err
	})
	g.Go(func() error {
		_, err := app.Store.FetchPendingResources(ctx)
		return err
	})
	g.Go(func() error {
		_, err := app.Store.FetchAllResources(ctx, model.ResourceFilters{})
		return err
	})
	if err := g.Wait(); err != nil {
		return failed(err)
	}

	st := app.Store.State()
	sel := app.Store.Select()
	fmt.Printf("👥 %d users\n", len(st.Admin.Users))
	fmt.Printf("📋 %d resources, %d pending review\n", len(sel.AdminResources(st)), len(sel.PendingResources(st)))
	printResources(sel.PendingResources(st))
	return nil
}
