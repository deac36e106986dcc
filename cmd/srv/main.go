package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	s := &srv{}

	app := &cli.App{
		Name:  "clanhub",
		Usage: "The clan membership backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "config",
				Value: "config.toml",
				Usage: "The configuration file",
			},
		},
		Commands: []*cli.Command{
			{
				Name:   "api",
				Usage:  "Start the api server",
				Action: s.startApi,
			},
			{
				Name:   "migrate",
				Usage:  "Migrate the database tables",
				Action: s.startMigrate,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
