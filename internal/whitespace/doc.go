// Package whitespace keeps editor buffers free of stray whitespace.
//
// A Whitespace component watches editors handed to HandleEvents. While the
// user works it remembers rows that held only indentation when the cursor
// left them or when text was about to be typed on them. After every buffer
// change those rows are renumbered through the change and, if still blank,
// have their indentation removed.
//
// On save, inside one transaction, it strips trailing whitespace and makes
// the buffer end in exactly one line break, as configured per grammar
// scope. Tab and space conversions are available as explicit operations.
//
// The package talks to its host through the Editor, Buffer, Workspace and
// Config interfaces; internal/app adapts the engine types to them.
package whitespace
