package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadOrCreateWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}
	if cfg.UI.SplitRatio != 0.4 {
		t.Errorf("split_ratio = %v, want 0.4", cfg.UI.SplitRatio)
	}
	if cfg.Keys.Search != "/" {
		t.Errorf("search key = %q, want /", cfg.Keys.Search)
	}

	// A second load reads the file just written.
	again, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("reload: %v", err)
	}
	if again.Keys != cfg.Keys {
		t.Errorf("keys changed across round trip: %+v vs %+v", again.Keys, cfg.Keys)
	}
}

func TestLoadOrCreateReadsOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[ui]
split_ratio = 0.3
message_keypresses = 8
preview_scroll_step = 5
preview_scroll_buffer = 10
preview_header_lines = 3
markdown_buffer = 10

[keys]
quit = "q"
new = "o"
delete = "d"
edit = "e"
search = "/"
export = "x"
sort = "s"
goto_top = "g"
goto_bottom = "G"
move_down = "j"
move_up = "k"

[database]
wal_mode = false
cache_size_kb = -2000
synchronous = "FULL"
temp_store = "FILE"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadOrCreate(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.UI.SplitRatio != 0.3 || cfg.UI.MessageKeypresses != 8 {
		t.Errorf("ui overrides not applied: %+v", cfg.UI)
	}
	if cfg.Keys.New != "o" {
		t.Errorf("new key = %q, want o", cfg.Keys.New)
	}
	if cfg.Database.Synchronous != "FULL" || cfg.Database.WALMode {
		t.Errorf("database overrides not applied: %+v", cfg.Database)
	}
	if cfg.Database.Path == "" {
		t.Error("empty db path not defaulted")
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"split ratio too small", func(c *Config) { c.UI.SplitRatio = 0.05 }},
		{"split ratio too large", func(c *Config) { c.UI.SplitRatio = 0.95 }},
		{"zero message ttl", func(c *Config) { c.UI.MessageKeypresses = 0 }},
		{"zero scroll step", func(c *Config) { c.UI.PreviewScrollStep = 0 }},
		{"bad synchronous", func(c *Config) { c.Database.Synchronous = "TURBO" }},
		{"bad temp store", func(c *Config) { c.Database.TempStore = "CLOUD" }},
		{"multi-char key", func(c *Config) { c.Keys.Quit = "qq" }},
		{"empty key", func(c *Config) { c.Keys.Sort = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}
