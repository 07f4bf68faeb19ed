// Package config loads the dashboard's settings from viper.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names the config directory and environment prefix.
const AppName = "erpdash"

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// Dir returns the directory holding config.yaml and the default database.
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	return ExpandPath(filepath.Join("~", ".config", AppName))
}
