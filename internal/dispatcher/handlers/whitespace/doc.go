// Package whitespace registers the whitespace:* commands with a dispatcher.
//
// Each command acts on the workspace's active editor and does nothing when
// no editor is open.
package whitespace
