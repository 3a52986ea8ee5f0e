package main

import (
	"fmt"

	client "github.com/abisalde/povertyline-client/cmd"
	"github.com/abisalde/povertyline-client/internal/authz"
	"github.com/abisalde/povertyline-client/internal/model"
	"github.com/abisalde/povertyline-client/internal/utils/validator"
	"github.com/urfave/cli/v2"
)

func loginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "sign in and store the session",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "next", Usage: "page to continue to after signing in"},
		},
		Action: withApp(func(c *cli.Context, app *client.App) error {
			var outcome authz.Outcome
			if next := c.String("next"); next != "" {
				outcome = app.Guard.Check(next)
			}

			resp, err := app.Store.Login(c.Context, model.LoginInput{
				Email:    c.String("email"),
				Password: c.String("password"),
			})
			if err != nil {
				return failed(err)
			}

			fmt.Printf("✅ %s, signed in as %s (%s)\n", resp.Message, resp.User.Name, resp.User.Role)
			fmt.Printf("☞ continue at %s\n", authz.AfterLogin(outcome))
			return nil
		}),
	}
}

func registerCommand() *cli.Command {
	return &cli.Command{
		Name:  "register",
		Usage: "create an account",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Required: true},
			&cli.StringFlag{Name: "email", Required: true},
			&cli.StringFlag{Name: "password", Required: true},
			&cli.StringFlag{Name: "role", Value: string(model.RoleUser), Usage: "user or provider"},
		},
		Action: withApp(func(c *cli.Context, app *client.App) error {
			input := model.RegisterInput{
				Name:     c.String("name"),
				Email:    c.String("email"),
				Password: c.String("password"),
				Role:     model.Role(c.String("role")),
			}
			if err := validator.ValidateRegistration(input); err != nil {
				return failed(err)
			}

			resp, err := app.Store.Register(c.Context, input)
			if err != nil {
				return failed(err)
			}
			fmt.Printf("✅ %s, welcome %s\n", resp.Message, resp.User.Name)
			return nil
		}),
	}
}

func logoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "forget the stored session",
		Action: withApp(func(c *cli.Context, app *client.App) error {
			app.Store.Logout(c.Context)
			fmt.Println("👋 Signed out")
			return nil
		}),
	}
}

func whoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "revalidate the stored session and show the signed-in user",
		Action: withApp(func(c *cli.Context, app *client.App) error {
			user, err := app.Store.GetCurrentUser(c.Context)
			if err != nil {
				return failed(err)
			}
			if user == nil {
				fmt.Println("Not signed in")
				return nil
			}
			return printJSON(user)
		}),
	}
}

func passwordCommand() *cli.Command {
	return &cli.Command{
		Name:  "password",
		Usage: "change or reset your password",
		Subcommands: []*cli.Command{
			{
				Name: "change",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "current", Required: true},
					&cli.StringFlag{Name: "new", Required: true},
				},
				Action: gated("/profile", func(c *cli.Context, app *client.App) error {
					if err := validator.ValidatePasswordChange(c.String("current"), c.String("new")); err != nil {
						return failed(err)
					}
					_, err := app.Store.ChangePassword(c.Context, model.ChangePasswordInput{
						CurrentPassword: c.String("current"),
						NewPassword:     c.String("new"),
					})
					if err != nil {
						return failed(err)
					}
					printMessage(app.Store.State().Auth.OpState)
					return nil
				}),
			},
			{
				Name:  "forgot",
				Flags: []cli.Flag{&cli.StringFlag{Name: "email", Required: true}},
				Action: withApp(func(c *cli.Context, app *client.App) error {
					if err := validator.ValidateEmail(c.String("email")); err != nil {
						return failed(err)
					}
					if _, err := app.Store.RequestPasswordReset(c.Context, c.String("email")); err != nil {
						return failed(err)
					}
					printMessage(app.Store.State().Auth.OpState)
					return nil
				}),
			},
			{
				Name: "reset",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "token", Required: true},
					&cli.StringFlag{Name: "new", Required: true},
				},
				Action: withApp(func(c *cli.Context, app *client.App) error {
					if err := validator.ValidatePassword(c.String("new")); err != nil {
						return failed(err)
					}
					if _, err := app.Store.ResetPassword(c.Context, c.String("token"), c.String("new")); err != nil {
						return failed(err)
					}
					printMessage(app.Store.State().Auth.OpState)
					return nil
				}),
			},
		},
	}
}

func routeCommand() *cli.Command {
	return &cli.Command{
		Name:      "route",
		Usage:     "show what the navigation gate decides for a path",
		ArgsUsage: "<path>",
		Action: withApp(func(c *cli.Context, app *client.App) error {
			path := c.Args().First()
			if path == "" {
				return cli.Exit("usage: povertyline route <path>", 2)
			}
			out := app.Guard.Check(path)
			fmt.Printf("%s → %s", path, out.Decision)
			if out.Redirect != "" {
				fmt.Printf(" (%s)", out.Redirect)
			}
			fmt.Println()
			return nil
		}),
	}
}
