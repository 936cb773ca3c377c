// Package main provides the CLI entrypoint for typeboard.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeboard/internal/config"
	"github.com/verte-zerg/typeboard/internal/content"
	"github.com/verte-zerg/typeboard/internal/model"
	"github.com/verte-zerg/typeboard/internal/session"
	"github.com/verte-zerg/typeboard/internal/store"
	"github.com/verte-zerg/typeboard/internal/tui"
)

const (
	defaultDuration        = session.DefaultDuration
	defaultRefreshInterval = content.DefaultRefreshInterval
	defaultLogLevel        = "info"
)

var (
	configPath string
	logLevel   string

	practiceDuration   int
	practiceStripPunct bool
	refreshIntervalRaw string

	storeDriver   string
	storePath     string
	mongoURI      string
	mongoDatabase string
)

func main() {
	// A local .env may carry OPENAI_API_KEY or a mongo uri.
	_ = godotenv.Load()

	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typeboard",
		Short:         "Typing trainer on a daily reference text",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/typeboard/config.toml)")
	flags.StringVar(&logLevel, "log-level", defaultLogLevel, "log level: debug, info, warn, error")
	flags.IntVar(&practiceDuration, "duration", defaultDuration, "countdown length in seconds")
	flags.BoolVar(&practiceStripPunct, "strip-punct", true, "strip , . : ; from the reference text")
	flags.StringVar(&refreshIntervalRaw, "refresh-interval", defaultRefreshInterval.String(), "minimum time between content reloads")
	flags.StringVar(&storeDriver, "store", model.DriverSQLite, "content store driver: sqlite or mongo")
	flags.StringVar(&storePath, "db", "", "sqlite database path (default: $XDG_DATA_HOME/typeboard/typeboard.db)")
	flags.StringVar(&mongoURI, "mongo-uri", "", "mongo connection uri (store=mongo)")
	flags.StringVar(&mongoDatabase, "mongo-database", store.DefaultMongoDatabase, "mongo database name")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newRefreshCmd())
	rootCmd.AddCommand(newImportCmd())
	rootCmd.AddCommand(newTextsCmd())

	return rootCmd
}

// settings is the resolved configuration shared by all commands.
type settings struct {
	file            config.FileConfig
	practice        model.Config
	refreshInterval time.Duration
	store           model.StoreConfig
}

func loadSettings(cmd *cobra.Command) (settings, error) {
	path := configPath
	if path == "" {
		path = config.DefaultConfigPath()
	}
	fileCfg, err := config.LoadConfig(path)
	if err != nil {
		return settings{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "duration", &practiceDuration, fileCfg.Practice.Duration)
	applyBoolConfig(cmd, "strip-punct", &practiceStripPunct, fileCfg.Practice.StripPunct)
	applyStringConfig(cmd, "refresh-interval", &refreshIntervalRaw, fileCfg.Content.RefreshInterval)
	applyStringConfig(cmd, "store", &storeDriver, fileCfg.Store.Driver)
	applyStringConfig(cmd, "db", &storePath, fileCfg.Store.Path)
	applyStringConfig(cmd, "mongo-uri", &mongoURI, fileCfg.Store.MongoURI)
	applyStringConfig(cmd, "mongo-database", &mongoDatabase, fileCfg.Store.MongoDatabase)

	interval, err := config.ParseDuration(&refreshIntervalRaw, defaultRefreshInterval)
	if err != nil {
		return settings{}, fmt.Errorf("--refresh-interval: %w", err)
	}
	s := settings{
		file: fileCfg,
		practice: model.Config{
			Duration:   practiceDuration,
			StripPunct: practiceStripPunct,
		},
		refreshInterval: interval,
		store: model.StoreConfig{
			Driver:        strings.ToLower(strings.TrimSpace(storeDriver)),
			Path:          storePath,
			MongoURI:      mongoURI,
			MongoDatabase: mongoDatabase,
		},
	}
	if s.store.Path == "" {
		s.store.Path = config.DefaultDBPath()
	}
	if s.store.MongoURI == "" {
		s.store.MongoURI = os.Getenv("MONGO_URI")
	}
	if err := validateConfig(s.practice, s.refreshInterval); err != nil {
		return settings{}, err
	}
	if err := validateStoreConfig(s.store); err != nil {
		return settings{}, err
	}
	return s, nil
}

func openRepository(ctx context.Context, cfg model.StoreConfig) (store.Repository, error) {
	if cfg.Driver == model.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	repo, err := store.OpenRepository(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	return repo, nil
}

func closeRepository(repo store.Repository) {
	if repo == nil {
		return
	}
	if err := repo.Close(); err != nil {
		logErrf("failed to close store: %v\n", err)
	}
}

// newContentCache opens the store behind the cache. When the store is
// unavailable the cache still serves the built-in text.
func newContentCache(ctx context.Context, s settings, logger *slog.Logger) (*content.Cache, store.Repository) {
	var fetcher content.Fetcher
	repo, err := openRepository(ctx, s.store)
	if err != nil {
		logger.Warn("content store unavailable, serving built-in text", "error", err)
	} else {
		fetcher = content.StoreFetcher{Store: repo}
	}
	cache := content.New(fetcher,
		content.WithInterval(s.refreshInterval),
		content.WithLogger(logger),
		content.WithStripPunctuation(s.practice.StripPunct),
	)
	return cache, repo
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	logFile, err := openLogFile(config.DefaultLogPath())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := logFile.Close(); cerr != nil {
			// Best-effort close.
			_ = cerr
		}
	}()
	logger, err := newLogger(logLevel, logFile)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cache, repo := newContentCache(ctx, s, logger)
	defer closeRepository(repo)

	return tui.Run(ctx, cache, tui.WithDuration(s.practice.Duration), tui.WithLogger(logger))
}

func openLogFile(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return f, nil
}

func newLogger(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := parseLogLevel(level)
	if err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}

func parseLogLevel(raw string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unsupported level %q", raw)
	}
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
