package whitespace

import (
	"context"

	"github.com/dshills/whitespace/internal/dispatcher"
	ws "github.com/dshills/whitespace/internal/whitespace"
)

// Command names.
const (
	CommandRemoveTrailingWhitespace      = "whitespace:remove-trailing-whitespace"
	CommandSaveWithTrailingWhitespace    = "whitespace:save-with-trailing-whitespace"
	CommandSaveWithoutTrailingWhitespace = "whitespace:save-without-trailing-whitespace"
	CommandConvertTabsToSpaces           = "whitespace:convert-tabs-to-spaces"
	CommandConvertSpacesToTabs           = "whitespace:convert-spaces-to-tabs"
	CommandConvertAllTabsToSpaces        = "whitespace:convert-all-tabs-to-spaces"
)

// Commands lists every command Register installs.
var Commands = []string{
	CommandRemoveTrailingWhitespace,
	CommandSaveWithTrailingWhitespace,
	CommandSaveWithoutTrailingWhitespace,
	CommandConvertTabsToSpaces,
	CommandConvertSpacesToTabs,
	CommandConvertAllTabsToSpaces,
}

// Register installs the whitespace commands on d.
func Register(d *dispatcher.Dispatcher, w *ws.Whitespace, workspace ws.Workspace) {
	on := func(name string, fn func(ed ws.Editor) error) {
		d.RegisterFunc(name, func(context.Context, dispatcher.Command) error {
			ed := workspace.ActiveEditor()
			if ed == nil {
				return nil
			}
			return fn(ed)
		})
	}

	on(CommandRemoveTrailingWhitespace, w.RemoveTrailingWhitespace)
	on(CommandSaveWithTrailingWhitespace, w.SaveWithTrailingWhitespace)
	on(CommandSaveWithoutTrailingWhitespace, w.SaveWithoutTrailingWhitespace)
	on(CommandConvertTabsToSpaces, func(ed ws.Editor) error {
		return w.ConvertTabsToSpaces(ed, false)
	})
	on(CommandConvertSpacesToTabs, w.ConvertSpacesToTabs)
	on(CommandConvertAllTabsToSpaces, func(ed ws.Editor) error {
		return w.ConvertTabsToSpaces(ed, true)
	})
}
