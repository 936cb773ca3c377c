// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Practice PracticeConfig `toml:"practice"`
	Content  ContentConfig  `toml:"content"`
	Store    StoreConfig    `toml:"store"`
	Refresh  RefreshConfig  `toml:"refresh"`
	Serve    ServeConfig    `toml:"serve"`
}

// PracticeConfig maps practice-related settings.
type PracticeConfig struct {
	Duration   *int  `toml:"duration"`
	StripPunct *bool `toml:"strip-punct"`
}

// ContentConfig maps content cache settings.
type ContentConfig struct {
	RefreshInterval *string `toml:"refresh-interval"`
}

// StoreConfig maps persistence settings.
type StoreConfig struct {
	Driver        *string `toml:"driver"`
	Path          *string `toml:"path"`
	MongoURI      *string `toml:"mongo-uri"`
	MongoDatabase *string `toml:"mongo-database"`
}

// RefreshConfig maps refresh pipeline settings.
type RefreshConfig struct {
	Source   *string `toml:"source"`
	FeedURL  *string `toml:"feed-url"`
	Items    *int    `toml:"items"`
	Wordlist *string `toml:"wordlist"`
	Words    *int    `toml:"words"`
	Model    *string `toml:"model"`
	APIKey   *string `toml:"api-key"`
	Every    *string `toml:"every"`
}

// ServeConfig maps websocket server settings.
type ServeConfig struct {
	Addr *string `toml:"addr"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// ParseDuration parses an optional duration string, returning fallback when
// raw is nil or blank.
func ParseDuration(raw *string, fallback time.Duration) (time.Duration, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(strings.TrimSpace(*raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", *raw, err)
	}
	return d, nil
}
