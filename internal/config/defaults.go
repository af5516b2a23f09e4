package config

// Setting keys.
const (
	KeyTabLength                       = "editor.tabLength"
	KeyRemoveTrailingWhitespace        = "whitespace.removeTrailingWhitespace"
	KeyEnsureSingleTrailingNewline     = "whitespace.ensureSingleTrailingNewline"
	KeyIgnoreWhitespaceOnCurrentLine   = "whitespace.ignoreWhitespaceOnCurrentLine"
	KeyIgnoreWhitespaceOnlyLines       = "whitespace.ignoreWhitespaceOnlyLines"
	KeyKeepMarkdownLineBreakWhitespace = "whitespace.keepMarkdownLineBreakWhitespace"
	KeyMarkdownScopes                  = "whitespace.markdownScopes"
)

// Defaults returns the builtin settings.
func Defaults() map[string]any {
	return map[string]any{
		"editor": map[string]any{
			"tabLength": 2,
		},
		"whitespace": map[string]any{
			"removeTrailingWhitespace":        true,
			"ensureSingleTrailingNewline":     true,
			"ignoreWhitespaceOnCurrentLine":   true,
			"ignoreWhitespaceOnlyLines":       false,
			"keepMarkdownLineBreakWhitespace": true,
			"markdownScopes":                  []any{"source.gfm", "text.md"},
		},
	}
}
