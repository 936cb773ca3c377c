package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if cfg.Practice.Duration != nil || cfg.Store.Driver != nil {
		t.Fatalf("expected zero config, got %+v", cfg)
	}
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[practice]
duration = 30
strip-punct = false

[content]
refresh-interval = "15m"

[store]
driver = "mongo"
mongo-uri = "mongodb://localhost:27017"

[refresh]
source = "wordlist"
items = 3
api-key = "sk-test"

[serve]
addr = "127.0.0.1:9000"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Practice.Duration == nil || *cfg.Practice.Duration != 30 {
		t.Fatalf("expected duration 30, got %v", cfg.Practice.Duration)
	}
	if cfg.Practice.StripPunct == nil || *cfg.Practice.StripPunct {
		t.Fatalf("expected strip-punct false")
	}
	if cfg.Store.Driver == nil || *cfg.Store.Driver != "mongo" {
		t.Fatalf("expected mongo driver")
	}
	if cfg.Store.Path != nil {
		t.Fatalf("expected unset path to stay nil")
	}
	if cfg.Refresh.Items == nil || *cfg.Refresh.Items != 3 {
		t.Fatalf("expected items 3")
	}
	if cfg.Serve.Addr == nil || *cfg.Serve.Addr != "127.0.0.1:9000" {
		t.Fatalf("expected serve addr")
	}
	d, err := ParseDuration(cfg.Content.RefreshInterval, time.Hour)
	if err != nil || d != 15*time.Minute {
		t.Fatalf("expected 15m, got %v (%v)", d, err)
	}
}

func TestLoadConfigInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nduration = \"soon\"\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestParseDuration(t *testing.T) {
	if d, err := ParseDuration(nil, time.Hour); err != nil || d != time.Hour {
		t.Fatalf("expected fallback, got %v (%v)", d, err)
	}
	blank := "  "
	if d, err := ParseDuration(&blank, time.Minute); err != nil || d != time.Minute {
		t.Fatalf("expected fallback for blank, got %v (%v)", d, err)
	}
	bad := "sometimes"
	if _, err := ParseDuration(&bad, time.Hour); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(dir, "state"))
	xdg.Reload()

	cases := map[string]string{
		DefaultConfigPath():   filepath.Join(dir, "config", "typeboard", "config.toml"),
		DefaultDBPath():       filepath.Join(dir, "data", "typeboard", "typeboard.db"),
		DefaultLogPath():      filepath.Join(dir, "state", "typeboard", "typeboard.log"),
		DefaultWordListPath(): filepath.Join(dir, "config", "typeboard", "wordlists", "en.txt"),
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
		if !strings.HasPrefix(got, dir) {
			t.Fatalf("expected path under %s, got %s", dir, got)
		}
	}
}
