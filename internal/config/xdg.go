package config

import (
	"path/filepath"

	"github.com/adrg/xdg"
)

const appName = "typeboard"

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, appName, appName+".db")
}

// DefaultLogPath returns the log file used while the terminal UI owns the screen.
func DefaultLogPath() string {
	return filepath.Join(xdg.StateHome, appName, appName+".log")
}

// DefaultWordListPath returns the word list used by the offline refresh source.
func DefaultWordListPath() string {
	return filepath.Join(xdg.ConfigHome, appName, "wordlists", "en.txt")
}
