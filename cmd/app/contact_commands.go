package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/allisson/contacts/cmd/app/commands"
	"github.com/allisson/contacts/internal/app"
	"github.com/allisson/contacts/internal/config"
	"github.com/allisson/contacts/internal/database"
	"github.com/allisson/contacts/internal/kvstore"
)

func getContactCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "export",
			Usage: "Export contacts as a CSV document",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "category",
					Aliases: []string{"c"},
					Value:   "all",
					Usage:   "Category to export: office, personal or all",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "",
					Usage:   "Output file path (omit to write to stdout)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				contactRepo, err := container.ContactRepository()
				if err != nil {
					return err
				}

				return commands.RunExport(
					ctx,
					contactRepo,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("category"),
					cmd.String("output"),
				)
			},
		},
		{
			Name:  "wipe",
			Usage: "Delete all contacts and the encryption key",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "yes",
					Aliases: []string{"y"},
					Value:   false,
					Usage:   "Skip the confirmation prompt",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				store, err := container.KVStore()
				if err != nil {
					return err
				}

				keyStore, err := container.KeyStore()
				if err != nil {
					return err
				}

				// The SQL drivers delete both entries atomically; badger has
				// no cross-key transaction manager here and deletes in order.
				var txManager database.TxManager
				if cfg.KVDriver != kvstore.DriverBadger {
					txManager, err = container.TxManager()
					if err != nil {
						return err
					}
				}

				return commands.RunWipe(
					ctx,
					store,
					txManager,
					keyStore,
					container.Logger(),
					commands.DefaultIO(),
					cmd.Bool("yes"),
				)
			},
		},
	}
}
