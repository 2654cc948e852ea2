// Package main provides the entry point for the application with CLI commands.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/EnvSync-Cloud/envsync/cmd/app/commands"
	"github.com/EnvSync-Cloud/envsync/internal/app"
	"github.com/EnvSync-Cloud/envsync/internal/config"
)

func main() {
	cmd := &cli.Command{
		Name:     "envsync",
		Usage:    "operational bootstrap tooling for the envsync encryption and authorization core",
		Version:  "1.0.0",
		Commands: getCommands(),
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		slog.Error("application error", slog.Any("error", err))
		os.Exit(1)
	}
}

func getCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "migrate",
			Usage: "Run database migrations",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				return commands.RunMigrations(container.Logger(), cfg.DBDriver, cfg.DBConnectionString)
			},
		},
		{
			Name:  "init-root-key",
			Usage: "Record the KEK fingerprint derived from the deployment's root key",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "root-key",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Base64-encoded 32-byte root key",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				rootKeyUseCase, err := container.RootKeyUseCase()
				if err != nil {
					return err
				}

				return commands.RunInitRootKey(ctx, rootKeyUseCase, container.Logger(), cmd.String("root-key"))
			},
		},
		{
			Name:  "init-root-ca",
			Usage: "Create the deployment's single root certificate authority",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "root-key",
					Aliases:  []string{"k"},
					Required: true,
					Usage:    "Base64-encoded 32-byte root key",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				pkiUseCase, err := container.PKIUseCase()
				if err != nil {
					return err
				}

				return commands.RunInitRootCA(ctx, pkiUseCase, container.Logger(), cmd.String("root-key"))
			},
		},
		{
			Name:  "seed-sequences",
			Usage: "Initialize the cert_serial and crl_number counters backing the PKI pipeline",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				sequenceUseCase, err := container.SequenceUseCase()
				if err != nil {
					return err
				}

				return commands.RunSeedSequences(ctx, sequenceUseCase, container.Logger())
			},
		},
		{
			Name:  "cleanup-old-responses",
			Usage: "Delete reducer_response rows older than the configured retention window",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				responseUseCase, err := container.ResponseUseCase()
				if err != nil {
					return err
				}

				return commands.RunCleanupOldResponses(ctx, responseUseCase, container.Logger(), cfg.ResponseMaxAge)
			},
		},
	}
}
