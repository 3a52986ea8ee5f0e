package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "povertyline",
		Usage: "PovertyLine client: sign in, manage your profile and browse or publish resources",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "api",
				Usage:   "API base URL",
				EnvVars: []string{"API_BASE_URL"},
			},
			&cli.StringFlag{
				Name:    "storage",
				Usage:   "session storage driver (memory, file, redis)",
				EnvVars: []string{"STORAGE_DRIVER"},
			},
		},
		Commands: []*cli.Command{
			loginCommand(),
			registerCommand(),
			logoutCommand(),
			whoamiCommand(),
			passwordCommand(),
			profileCommand(),
			resourcesCommand(),
			adminCommand(),
			routeCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
