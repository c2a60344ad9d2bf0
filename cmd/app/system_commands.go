package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/contacts/cmd/app/commands"
	"github.com/allisson/contacts/internal/app"
	"github.com/allisson/contacts/internal/config"
)

func getSystemCommands(version string) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "server",
			Usage: "Start the HTTP server",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				return commands.RunServer(ctx, version)
			},
		},
		{
			Name:  "migrate",
			Usage: "Run database migrations for the SQL store drivers",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.KVDriver, cfg.DBConnectionString)
			},
		},
	}
}
