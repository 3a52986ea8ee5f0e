package main

import (
	"fmt"

	client "github.com/abisalde/povertyline-client/cmd"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/urfave/cli/v2"
)

func profileCommand() *cli.Command {
	return &cli.Command{
		Name:  "profile",
		Usage: "show or edit your profile",
		Subcommands: []*cli.Command{
			{
				Name: "show",
				Action: gated("/profile", func(c *cli.Context, app *client.App) error {
					p, err := app.Store.GetCurrentProfile(c.Context)
					if err != nil {
						return failed(err)
					}
					return printJSON(p)
				}),
			},
			{
				Name: "update",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "phone"},
					&cli.StringFlag{Name: "bio"},
					&cli.StringFlag{Name: "address"},
					&cli.StringFlag{Name: "city"},
					&cli.StringFlag{Name: "state"},
					&cli.StringFlag{Name: "zip"},
					&cli.StringSliceFlag{Name: "need", Usage: "repeat for each need"},
				},
				Action: gated("/profile", func(c *cli.Context, app *client.App) error {
					current, err := app.Store.GetCurrentProfile(c.Context)
					if err != nil {
						return failed(err)
					}

					draft := model.DraftFrom(current)
					for flag, field := range map[string]**string{
						"phone":   &draft.Phone,
						"bio":     &draft.Bio,
						"address": &draft.Address,
						"city":    &draft.City,
						"state":   &draft.State,
						"zip":     &draft.ZipCode,
					} {
						if c.IsSet(flag) {
							v := c.String(flag)
							*field = &v
						}
					}
					if c.IsSet("need") {
						draft.Needs = c.StringSlice("need")
					}

					if _, err := app.Store.UpdateProfile(c.Context, draft); err != nil {
						return failed(err)
					}
					state := app.Store.State().Profile
					printMessage(state.OpState)
					fmt.Printf("Profile %d%% complete\n", state.CompletionPercentage)
					return nil
				}),
			},
		},
	}
}
