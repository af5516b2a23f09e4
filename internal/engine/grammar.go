package engine

import (
	"path/filepath"
	"strings"
)

// PlainTextScope is the grammar scope of files without a known extension.
const PlainTextScope = "text.plain"

var extensionScopes = map[string]string{
	".md":       "source.gfm",
	".markdown": "source.gfm",
	".mdown":    "text.md",
	".mkd":      "text.md",
	".txt":      PlainTextScope,
	".go":       "source.go",
	".js":       "source.js",
	".py":       "source.python",
	".rb":       "source.ruby",
	".yml":      "source.yaml",
	".yaml":     "source.yaml",
	".mk":       "source.makefile",
}

var nameScopes = map[string]string{
	"makefile":    "source.makefile",
	"gnumakefile": "source.makefile",
}

// GrammarForPath returns the grammar scope name for a file path.
func GrammarForPath(path string) string {
	if path == "" {
		return PlainTextScope
	}
	base := filepath.Base(path)
	if scope, ok := nameScopes[strings.ToLower(base)]; ok {
		return scope
	}
	ext := strings.ToLower(filepath.Ext(base))
	if ext == "" {
		return PlainTextScope
	}
	if scope, ok := extensionScopes[ext]; ok {
		return scope
	}
	return "source." + ext[1:]
}
