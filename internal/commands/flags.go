package commands

import (
	"os"
	"path/filepath"

	"github.com/dshills/whitespace/internal/app"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string

	// App is built in the Before hook and available to all commands
	App *app.Application
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "whitespace", "config.toml")
}

// configPath returns the config file to load. A missing default file
// means builtin settings; a missing explicit file is an error left to the
// loader.
func (f *Flags) configPath() string {
	if f.ConfigPath != DefaultConfigPath() {
		return f.ConfigPath
	}
	if _, err := os.Stat(f.ConfigPath); err != nil {
		return ""
	}
	return f.ConfigPath
}
