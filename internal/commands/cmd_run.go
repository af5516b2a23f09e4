package commands

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

type RunCmd struct {
	flags *Flags
}

func NewRunCmd(flags *Flags) *RunCmd {
	return &RunCmd{flags: flags}
}

func (cmd *RunCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "run",
		Usage:     "Run a Lua script",
		UsageText: "whitespace run <script.lua> [file]...",
		Description: `Opens the given files, the last one focused, then runs the script. The
script drives the editor through the ws module; see ws.command, ws.insert
and ws.save.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *RunCmd) run(ctx context.Context, c *cli.Command) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("run: no script given")
	}
	ws := cmd.flags.App.Workspace()
	for _, path := range c.Args().Tail() {
		if _, err := ws.Open(path); err != nil {
			return err
		}
	}
	return cmd.flags.App.RunScript(ctx, c.Args().First())
}
