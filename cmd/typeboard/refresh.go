package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typeboard/internal/clock"
	"github.com/verte-zerg/typeboard/internal/config"
	"github.com/verte-zerg/typeboard/internal/model"
	"github.com/verte-zerg/typeboard/internal/refresh"
)

const defaultFeedURL = "https://hnrss.org/frontpage"

var (
	refreshSource   string
	refreshFeedURL  string
	refreshItems    int
	refreshWordlist string
	refreshWords    int
	refreshModel    string
	refreshEveryRaw string

	importTitle   string
	importSources []string
)

func newRefreshCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Harvest source text, write a story and store it",
		Args:  cobra.NoArgs,
		RunE:  runRefreshCmd,
	}
	cmd.Flags().StringVar(&refreshSource, "source", model.SourceFeed, "harvest source: feed or wordlist")
	cmd.Flags().StringVar(&refreshFeedURL, "feed-url", defaultFeedURL, "RSS or Atom feed to harvest")
	cmd.Flags().IntVar(&refreshItems, "items", refresh.DefaultFeedItems, "feed items per story")
	cmd.Flags().StringVar(&refreshWordlist, "wordlist", "", "word list for source=wordlist (default: $XDG_CONFIG_HOME/typeboard/wordlists/en.txt)")
	cmd.Flags().IntVar(&refreshWords, "words", refresh.DefaultWordCount, "story length in words")
	cmd.Flags().StringVar(&refreshModel, "model", refresh.DefaultModel, "OpenAI model used to write the story")
	cmd.Flags().StringVar(&refreshEveryRaw, "every", "", "keep running and refresh at this interval (e.g. 1h)")
	return cmd
}

func resolveRefreshConfig(cmd *cobra.Command, file config.RefreshConfig) (model.RefreshConfig, error) {
	applyStringConfig(cmd, "source", &refreshSource, file.Source)
	applyStringConfig(cmd, "feed-url", &refreshFeedURL, file.FeedURL)
	applyIntConfig(cmd, "items", &refreshItems, file.Items)
	applyStringConfig(cmd, "wordlist", &refreshWordlist, file.Wordlist)
	applyIntConfig(cmd, "words", &refreshWords, file.Words)
	applyStringConfig(cmd, "model", &refreshModel, file.Model)
	applyStringConfig(cmd, "every", &refreshEveryRaw, file.Every)

	every, err := config.ParseDuration(&refreshEveryRaw, 0)
	if err != nil {
		return model.RefreshConfig{}, fmt.Errorf("--every: %w", err)
	}
	cfg := model.RefreshConfig{
		Source:   strings.ToLower(strings.TrimSpace(refreshSource)),
		FeedURL:  strings.TrimSpace(refreshFeedURL),
		Items:    refreshItems,
		Wordlist: refreshWordlist,
		Words:    refreshWords,
		Model:    refreshModel,
		Every:    every,
	}
	if cfg.Wordlist == "" {
		cfg.Wordlist = config.DefaultWordListPath()
	}
	if file.APIKey != nil {
		cfg.APIKey = strings.TrimSpace(*file.APIKey)
	}
	if cfg.APIKey == "" {
		cfg.APIKey = strings.TrimSpace(os.Getenv("OPENAI_API_KEY"))
	}
	if err := validateRefreshConfig(cfg); err != nil {
		return model.RefreshConfig{}, err
	}
	return cfg, nil
}

func buildHarvester(cfg model.RefreshConfig) refresh.Harvester {
	if cfg.Source == model.SourceWordlist {
		return refresh.NewWordlistHarvester(cfg.Wordlist, cfg.Words, nil)
	}
	return refresh.NewFeedHarvester(cfg.FeedURL, cfg.Items)
}

func buildWriter(cfg model.RefreshConfig, logger *slog.Logger) (refresh.Writer, error) {
	if cfg.APIKey == "" {
		logger.Info("no OpenAI api key configured; storing harvested text as-is")
		return refresh.PassthroughWriter{}, nil
	}
	w, err := refresh.NewOpenAIWriter(refresh.OpenAIConfig{
		APIKey: cfg.APIKey,
		Model:  cfg.Model,
		Words:  cfg.Words,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create story writer: %w", err)
	}
	return w, nil
}

func runRefreshCmd(cmd *cobra.Command, _ []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cfg, err := resolveRefreshConfig(cmd, s.file.Refresh)
	if err != nil {
		return err
	}
	logger, err := newLogger(logLevel, os.Stderr)
	if err != nil {
		return err
	}
	writer, err := buildWriter(cfg, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openRepository(ctx, s.store)
	if err != nil {
		return err
	}
	defer closeRepository(repo)

	pipeline := refresh.NewPipeline(buildHarvester(cfg), writer, repo, refresh.WithLogger(logger))
	if cfg.Every > 0 {
		return pipeline.RunEvery(ctx, cfg.Every)
	}
	c, err := pipeline.Run(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh content: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Stored %q (%d words)\n", c.TitleOr("untitled"), c.WordCount())
	return err
}

func newImportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Store a local text as the newest content",
		Args:  cobra.ExactArgs(1),
		RunE:  runImportCmd,
	}
	cmd.Flags().StringVar(&importTitle, "title", "", "title shown with the text")
	cmd.Flags().StringSliceVar(&importSources, "source", nil, "source link (repeatable)")
	return cmd
}

func runImportCmd(cmd *cobra.Command, args []string) error {
	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read text: %w", err)
	}
	c := model.Content{
		Title:     strings.TrimSpace(importTitle),
		Body:      string(data),
		Sources:   importSources,
		FetchedAt: clock.Unix(clock.Real()),
	}
	if c.WordCount() == 0 {
		return fmt.Errorf("%s contains no words", args[0])
	}

	ctx := context.Background()
	if cmd.Context() != nil {
		ctx = cmd.Context()
	}
	repo, err := openRepository(ctx, s.store)
	if err != nil {
		return err
	}
	defer closeRepository(repo)

	if err := repo.InsertContent(ctx, c); err != nil {
		return fmt.Errorf("failed to store text: %w", err)
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "Stored %q (%d words)\n", c.TitleOr("untitled"), c.WordCount())
	return err
}
