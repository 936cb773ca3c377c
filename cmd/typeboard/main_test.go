package main

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/typeboard/internal/config"
	"github.com/verte-zerg/typeboard/internal/model"
)

func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func baseArgs(t *testing.T) []string {
	t.Helper()
	dir := t.TempDir()
	return []string{
		"--config", filepath.Join(dir, "config.toml"),
		"--db", filepath.Join(dir, "data", "typeboard.db"),
		"--log-level", "error",
	}
}

func TestParseLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for raw, want := range cases {
		got, err := parseLogLevel(raw)
		if err != nil || got != want {
			t.Fatalf("parseLogLevel(%q): expected %v, got %v (%v)", raw, want, got, err)
		}
	}
	if _, err := parseLogLevel("loud"); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(model.Config{Duration: 60}, time.Hour); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateConfig(model.Config{Duration: 0}, time.Hour); err == nil || !strings.Contains(err.Error(), "--duration") {
		t.Fatalf("expected duration error, got %v", err)
	}
	if err := validateConfig(model.Config{Duration: 60}, time.Millisecond); err == nil {
		t.Fatalf("expected refresh interval error")
	}
}

func TestValidateStoreConfig(t *testing.T) {
	if err := validateStoreConfig(model.StoreConfig{Driver: model.DriverSQLite, Path: "x.db"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := validateStoreConfig(model.StoreConfig{Driver: model.DriverMongo}); err == nil {
		t.Fatalf("expected error for mongo without uri")
	}
	if err := validateStoreConfig(model.StoreConfig{Driver: "redis"}); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}

func TestValidateRefreshConfig(t *testing.T) {
	valid := model.RefreshConfig{Source: model.SourceFeed, FeedURL: "https://a", Items: 5, Words: 200}
	if err := validateRefreshConfig(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	bad := valid
	bad.Source = "scraper"
	if err := validateRefreshConfig(bad); err == nil {
		t.Fatalf("expected error for unknown source")
	}
	bad = valid
	bad.Words = 0
	if err := validateRefreshConfig(bad); err == nil || !strings.Contains(err.Error(), "--words") {
		t.Fatalf("expected words error, got %v", err)
	}
}

func TestDefaultConfigTemplateDecodes(t *testing.T) {
	var cfg config.FileConfig
	if _, err := toml.Decode(defaultConfigTemplate(), &cfg); err != nil {
		t.Fatalf("expected template to be valid toml: %v", err)
	}
	if cfg.Practice.Duration != nil {
		t.Fatalf("expected all values commented out")
	}
	if !strings.Contains(defaultConfigTemplate(), "[refresh]") {
		t.Fatalf("expected refresh section in template")
	}
}

func TestImportThenListTexts(t *testing.T) {
	args := baseArgs(t)
	textPath := filepath.Join(t.TempDir(), "story.txt")
	if err := os.WriteFile(textPath, []byte("The quick brown fox\njumps over the lazy dog."), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := executeRoot(t, append(args, "import", textPath, "--title", "Fox", "--source", "https://example.com/fox")...)
	if err != nil {
		t.Fatalf("import: %v (%s)", err, out)
	}
	if !strings.Contains(out, `Stored "Fox" (9 words)`) {
		t.Fatalf("unexpected import output %q", out)
	}

	out, err = executeRoot(t, append(args, "texts", "--last", "5")...)
	if err != nil {
		t.Fatalf("texts: %v (%s)", err, out)
	}
	for _, want := range []string{"Fetched", "Fox", "https://example.com/fox", "1 texts, 9 words"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in texts output, got %q", want, out)
		}
	}
}

func TestImportRejectsEmptyFile(t *testing.T) {
	args := baseArgs(t)
	textPath := filepath.Join(t.TempDir(), "empty.txt")
	if err := os.WriteFile(textPath, []byte(" \n "), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := executeRoot(t, append(args, "import", textPath)...); err == nil {
		t.Fatalf("expected error for empty text")
	}
}

func TestRefreshFromWordlist(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	args := baseArgs(t)
	listPath := filepath.Join(t.TempDir(), "en.txt")
	if err := os.WriteFile(listPath, []byte("alpha\nbeta\ngamma\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	out, err := executeRoot(t, append(args, "refresh", "--source", "wordlist", "--wordlist", listPath, "--words", "20")...)
	if err != nil {
		t.Fatalf("refresh: %v (%s)", err, out)
	}
	if !strings.Contains(out, "(20 words)") {
		t.Fatalf("unexpected refresh output %q", out)
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfgPath, []byte("[practice]\nduration = 0\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	base := []string{"--config", cfgPath, "--db", filepath.Join(dir, "typeboard.db")}

	if _, err := executeRoot(t, append(base, "texts")...); err == nil || !strings.Contains(err.Error(), "--duration") {
		t.Fatalf("expected config duration to be validated, got %v", err)
	}
	if _, err := executeRoot(t, append(base, "--duration", "30", "texts")...); err != nil {
		t.Fatalf("expected flag to override config, got %v", err)
	}
}
