package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
)

type FixCmd struct {
	flags *Flags
}

func NewFixCmd(flags *Flags) *FixCmd {
	return &FixCmd{flags: flags}
}

func (cmd *FixCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "fix",
		Usage:     "Remove trailing whitespace and fix the final newline",
		UsageText: "whitespace fix <file>...",
		Description: `Applies the save-time rules to each file and writes it back when it
changed. Honors removeTrailingWhitespace, ensureSingleTrailingNewline,
ignoreWhitespaceOnlyLines and keepMarkdownLineBreakWhitespace.`,
		Action: cmd.run,
	})
	return app
}

func (cmd *FixCmd) run(ctx context.Context, c *cli.Command) error {
	return eachFile(c, func(path string) (bool, error) {
		return cmd.flags.App.FixFile(path)
	})
}

// eachFile runs fn on every file argument, printing the paths it changed.
// Every file is attempted; the errors are joined.
func eachFile(c *cli.Command, fn func(path string) (bool, error)) error {
	if c.Args().Len() == 0 {
		return fmt.Errorf("%s: no files given", c.Name)
	}

	var errs []error
	for _, path := range c.Args().Slice() {
		changed, err := fn(path)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if changed {
			fmt.Fprintln(c.Root().Writer, path)
		}
	}
	return errors.Join(errs...)
}
