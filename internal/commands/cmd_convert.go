package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	handlers "github.com/dshills/whitespace/internal/dispatcher/handlers/whitespace"
)

type ConvertCmd struct {
	flags *Flags
	all   bool
}

func NewConvertCmd(flags *Flags) *ConvertCmd {
	return &ConvertCmd{flags: flags}
}

func (cmd *ConvertCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands,
		&cli.Command{
			Name:      "tabs",
			Usage:     "Convert tabs to spaces",
			UsageText: "whitespace tabs [--all] <file>...",
			Description: `Replaces leading tabs with tab-length runs of spaces. With --all every tab
is replaced. The file is then saved with the usual save-time rules.`,
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:        "all",
					Aliases:     []string{"a"},
					Usage:       "convert tabs anywhere in the line",
					Destination: &cmd.all,
				},
			},
			Action: cmd.tabs,
		},
		&cli.Command{
			Name:      "spaces",
			Usage:     "Convert leading spaces to tabs",
			UsageText: "whitespace spaces <file>...",
			Action:    cmd.spaces,
		},
	)
	return app
}

func (cmd *ConvertCmd) tabs(ctx context.Context, c *cli.Command) error {
	name := handlers.CommandConvertTabsToSpaces
	if cmd.all {
		name = handlers.CommandConvertAllTabsToSpaces
	}
	return cmd.runCommand(ctx, c, name)
}

func (cmd *ConvertCmd) spaces(ctx context.Context, c *cli.Command) error {
	return cmd.runCommand(ctx, c, handlers.CommandConvertSpacesToTabs)
}

func (cmd *ConvertCmd) runCommand(ctx context.Context, c *cli.Command, name string) error {
	return eachFile(c, func(path string) (bool, error) {
		return cmd.flags.App.RunCommandOnFile(ctx, name, path)
	})
}
