package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeboard/internal/config"
	"github.com/verte-zerg/typeboard/internal/model"
	"github.com/verte-zerg/typeboard/internal/refresh"
	"github.com/verte-zerg/typeboard/internal/store"
)

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typeboard configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# duration = %d              # Countdown length in seconds
# strip-punct = true         # Strip , . : ; from the reference text

[content]
# refresh-interval = %q      # Minimum time between content reloads

[store]
# driver = %q            # sqlite or mongo
# path = %q
# mongo-uri = "mongodb://localhost:27017"
# mongo-database = %q

[refresh]
# source = %q              # feed or wordlist
# feed-url = %q
# items = %d                  # Feed items per story
# wordlist = %q
# words = %d                # Story length in words
# model = %q
# api-key = ""               # Falls back to OPENAI_API_KEY; empty keeps feed text as-is
# every = ""                 # Keep running, refreshing at this interval (e.g. "1h")

[serve]
# addr = %q
`,
		defaultDuration,
		defaultRefreshInterval.String(),
		model.DriverSQLite,
		config.DefaultDBPath(),
		store.DefaultMongoDatabase,
		model.SourceFeed,
		defaultFeedURL,
		refresh.DefaultFeedItems,
		config.DefaultWordListPath(),
		refresh.DefaultWordCount,
		refresh.DefaultModel,
		defaultServeAddr,
	)
}

func validateConfig(cfg model.Config, refreshInterval time.Duration) error {
	if cfg.Duration <= 0 {
		return fmt.Errorf("--duration must be > 0")
	}
	if refreshInterval < time.Second {
		return fmt.Errorf("--refresh-interval must be >= 1s")
	}
	return nil
}

func validateStoreConfig(cfg model.StoreConfig) error {
	switch cfg.Driver {
	case model.DriverSQLite:
		if cfg.Path == "" {
			return fmt.Errorf("--db must not be empty")
		}
	case model.DriverMongo:
		if cfg.MongoURI == "" {
			return fmt.Errorf("--mongo-uri (or MONGO_URI) is required for store=mongo")
		}
	default:
		return fmt.Errorf("--store must be %s or %s", model.DriverSQLite, model.DriverMongo)
	}
	return nil
}

func validateRefreshConfig(cfg model.RefreshConfig) error {
	switch cfg.Source {
	case model.SourceFeed:
		if cfg.FeedURL == "" {
			return fmt.Errorf("--feed-url must not be empty")
		}
		if cfg.Items <= 0 {
			return fmt.Errorf("--items must be > 0")
		}
	case model.SourceWordlist:
		if cfg.Wordlist == "" {
			return fmt.Errorf("--wordlist must not be empty")
		}
	default:
		return fmt.Errorf("--source must be %s or %s", model.SourceFeed, model.SourceWordlist)
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.Every < 0 {
		return fmt.Errorf("--every must be >= 0")
	}
	return nil
}
