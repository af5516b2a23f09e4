// Package config provides layered, scope-aware settings.
//
// Values resolve through layers in priority order:
//
//  1. session: values set at runtime with Set or SetScoped
//  2. environment: WHITESPACE_* variables
//  3. user: the TOML or YAML file given with WithUserFile
//  4. builtin: Defaults
//
// Any layer may hold tables for a grammar scope, keyed with a leading dot:
//
//	[whitespace]
//	removeTrailingWhitespace = true
//
//	[".source.gfm".whitespace]
//	keepMarkdownLineBreakWhitespace = false
//
// A value found in a scope table for the requested scope wins over any
// unscoped value.
package config
