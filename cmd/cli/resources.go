package main

import (
	"fmt"

	client "github.com/abisalde/povertyline-client/cmd"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/internal/store"
	"github.com/abisalde/povertyline-client/internal/utils/validator"
	"github.com/urfave/cli/v2"
)

func filterFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "category"},
		&cli.StringFlag{Name: "location"},
		&cli.StringFlag{Name: "search", Usage: "server-side search over title and description"},
		&cli.StringFlag{Name: "status"},
		&cli.Int64Flag{Name: "provider"},
		&cli.StringFlag{Name: "grep", Usage: "filter the loaded list locally"},
	}
}

func filtersFrom(c *cli.Context) model.ResourceFilters {
	return model.ResourceFilters{
		Category:   model.Category(c.String("category")),
		Location:   c.String("location"),
		Search:     c.String("search"),
		Status:     model.ResourceStatus(c.String("status")),
		ProviderID: c.Int64("provider"),
	}
}

func resourceFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "title"},
		&cli.StringFlag{Name: "description"},
		&cli.StringFlag{Name: "category"},
		&cli.StringFlag{Name: "location"},
		&cli.StringFlag{Name: "address"},
		&cli.StringFlag{Name: "city"},
		&cli.StringFlag{Name: "state"},
		&cli.StringFlag{Name: "zip"},
		&cli.StringFlag{Name: "contact-name"},
		&cli.StringFlag{Name: "contact-phone"},
		&cli.StringFlag{Name: "contact-email"},
		&cli.StringFlag{Name: "start-date"},
		&cli.StringFlag{Name: "end-date"},
		&cli.StringSliceFlag{Name: "requirement"},
		&cli.StringFlag{Name: "info"},
	}
}

func resourceInputFrom(c *cli.Context) model.ResourceInput {
	return model.ResourceInput{
		Title:          c.String("title"),
		Description:    c.String("description"),
		Category:       model.Category(c.String("category")),
		Location:       c.String("location"),
		Address:        c.String("address"),
		City:           c.String("city"),
		State:          c.String("state"),
		ZipCode:        c.String("zip"),
		ContactName:    c.String("contact-name"),
		ContactPhone:   c.String("contact-phone"),
		ContactEmail:   c.String("contact-email"),
		StartDate:      c.String("start-date"),
		EndDate:        c.String("end-date"),
		Requirements:   c.StringSlice("requirement"),
		AdditionalInfo: c.String("info"),
	}
}

func idFlag() cli.Flag {
	return &cli.Int64Flag{Name: "id", Required: true}
}

// listing loads a view with load, then prints it through the local search.
func listing(load func(c *cli.Context, app *client.App) error) action {
	return func(c *cli.Context, app *client.App) error {
		if err := load(c, app); err != nil {
			return failed(err)
		}
		st := app.Store.State()
		printResources(app.Store.Select().SearchResults(st, c.String("grep")))
		fmt.Printf("%d total\n", st.Resources.Count)
		return nil
	}
}

func resourcesCommand() *cli.Command {
	return &cli.Command{
		Name:  "resources",
		Usage: "browse and manage support resources",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "approved resources",
				Flags: filterFlags(),
				Action: gated("/dashboard", listing(func(c *cli.Context, app *client.App) error {
					_, err := app.Store.GetResources(c.Context, filtersFrom(c))
					return err
				})),
			},
			{
				Name:  "mine",
				Usage: "resources you provide",
				Flags: filterFlags(),
				Action: gated("/resources", listing(func(c *cli.Context, app *client.App) error {
					_, err := app.Store.GetMyResources(c.Context, filtersFrom(c))
					return err
				})),
			},
			{
				Name:  "all",
				Usage: "every resource in any state",
				Flags: filterFlags(),
				Action: gated("/admin", listing(func(c *cli.Context, app *client.App) error {
					_, err := app.Store.GetAllResources(c.Context, filtersFrom(c))
					return err
				})),
			},
			{
				Name:  "show",
				Flags: []cli.Flag{idFlag()},
				Action: gated("/dashboard", func(c *cli.Context, app *client.App) error {
					if _, err := app.Store.GetResource(c.Context, c.Int64("id")); err != nil {
						return failed(err)
					}
					r, _ := store.SelectResource(app.Store.State())
					return printJSON(r)
				}),
			},
			{
				Name:  "create",
				Flags: resourceFlags(),
				Action: gated("/resources", func(c *cli.Context, app *client.App) error {
					input := resourceInputFrom(c)
					if err := validator.ValidateResource(input); err != nil {
						return failed(err)
					}
					created, err := app.Store.CreateResource(c.Context, input)
					if err != nil {
						return failed(err)
					}
					printMessage(app.Store.State().Resources.OpState)
					fmt.Printf("Resource %d is %s\n", created.ID, created.Status)
					return nil
				}),
			},
			{
				Name:  "update",
				Flags: append([]cli.Flag{idFlag()}, resourceFlags()...),
				Action: gated("/resources", func(c *cli.Context, app *client.App) error {
					if _, err := app.Store.UpdateResource(c.Context, c.Int64("id"), resourceInputFrom(c)); err != nil {
						return failed(err)
					}
					printMessage(app.Store.State().Resources.OpState)
					return nil
				}),
			},
			{
				Name:  "delete",
				Flags: []cli.Flag{idFlag()},
				Action: gated("/resources", func(c *cli.Context, app *client.App) error {
					if err := app.Store.DeleteResource(c.Context, c.Int64("id")); err != nil {
						return failed(err)
					}
					printMessage(app.Store.State().Resources.OpState)
					return nil
				}),
			},
			{
				Name:   "approve",
				Flags:  []cli.Flag{idFlag()},
				Action: gated("/admin", review(model.ResourceStatusApproved)),
			},
			{
				Name:   "reject",
				Flags:  []cli.Flag{idFlag(), &cli.StringFlag{Name: "reason"}},
				Action: gated("/admin", review(model.ResourceStatusRejected)),
			},
		},
	}
}

func review(status model.ResourceStatus) action {
	return func(c *cli.Context, app *client.App) error {
		input := model.ApprovalInput{Status: status, RejectionReason: c.String("reason")}
		if err := validator.ValidateReview(input); err != nil {
			return failed(err)
		}
		if _, err := app.Store.ApproveOrRejectResource(c.Context, c.Int64("id"), input); err != nil {
			return failed(err)
		}
		printMessage(app.Store.State().Resources.OpState)
		return nil
	}
}
