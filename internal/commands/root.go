// Package commands implements the whitespace command line.
package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/dshills/whitespace/internal/app"
	"github.com/dshills/whitespace/internal/config"
	"github.com/dshills/whitespace/internal/logging"
)

// NewRoot builds the root command with every subcommand registered.
func NewRoot(version string) *cli.Command {
	flags := &Flags{}
	var logCloser func()

	root := &cli.Command{
		Name:      "whitespace",
		Usage:     "Strip trailing whitespace and normalize indentation",
		UsageText: "whitespace [global options] command [command options]",
		Description: `whitespace applies editor save-time hygiene to files: trailing
whitespace is removed, files end in exactly one newline, and indentation can be
converted between tabs and spaces. Settings come from a TOML or YAML file and
WHITESPACE_* environment variables.`,
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (trace, debug, info, warn, error, disabled)",
				Sources:     cli.EnvVars("WHITESPACE_LOG_LEVEL"),
				Value:       "warn",
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("WHITESPACE_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Value:       DefaultConfigPath(),
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			console := term.IsTerminal(int(os.Stderr.Fd()))
			logger, closer, err := logging.New(flags.LogLevel, flags.LogFile, console)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			application, err := app.New(app.Options{
				ConfigPath: flags.configPath(),
				Env:        true,
				Settings: map[string]any{
					// There is no interactive cursor whose row should be spared.
					config.KeyIgnoreWhitespaceOnCurrentLine: false,
				},
				Logger: logger,
			})
			if err != nil {
				return ctx, err
			}
			flags.App = application
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if flags.App != nil {
				flags.App.Shutdown()
			}
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	root = NewFixCmd(flags).Register(root)
	root = NewConvertCmd(flags).Register(root)
	root = NewWatchCmd(flags).Register(root)
	root = NewRunCmd(flags).Register(root)
	return root
}
