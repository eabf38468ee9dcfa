package main

import (
	"context"
	"os"

	"github.com/NathanBartolo/echo/internal/bootstrap"
	"github.com/NathanBartolo/echo/internal/config"
	"github.com/NathanBartolo/echo/internal/logging"
	"github.com/NathanBartolo/echo/internal/version"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

func main() {
	cmd := &cli.Command{
		Name:    "echo",
		Usage:   "Music playlist API backed by the iTunes catalog",
		Version: version.String(),
		Commands: []*cli.Command{
			serverCommand(),
			versionCommand(),
		},
		HideVersion: true,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("echo exited with error")
	}
}

func serverCommand() *cli.Command {
	return &cli.Command{
		Name:  "server",
		Usage: "Start the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Usage:   "listen address, overrides SERVER_ADDR and PORT",
				Sources: cli.EnvVars("ECHO_ADDR"),
			},
		},
		Action: runServer,
	}
}

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Show version information",
		Action: func(_ context.Context, cmd *cli.Command) error {
			version.Print(cmd.Root().Writer)
			return nil
		},
	}
}

func runServer(ctx context.Context, cmd *cli.Command) error {
	cfg := config.Load()
	if addr := cmd.String("addr"); addr != "" {
		cfg.ServerAddr = addr
	}

	logging.Setup(logging.Config{Level: cfg.LogLevel, Format: cfg.LogFormat})
	log.Info().
		Str("version", version.String()).
		Str("commit", version.ShortCommit()).
		Msg("starting Echo API")

	return bootstrap.Run(ctx, cfg)
}
