package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

const (
	appDirName            = "qnote"
	DefaultConfigFileName = "config.toml"
	DefaultDBName         = "notes.db"
)

// Keymap assigns a single character to each list-screen action.
type Keymap struct {
	Quit       string `toml:"quit"`
	New        string `toml:"new"`
	Delete     string `toml:"delete"`
	Edit       string `toml:"edit"`
	Search     string `toml:"search"`
	Export     string `toml:"export"`
	Sort       string `toml:"sort"`
	GotoTop    string `toml:"goto_top"`
	GotoBottom string `toml:"goto_bottom"`
	MoveDown   string `toml:"move_down"`
	MoveUp     string `toml:"move_up"`
}

// UI holds the layout and timing numbers for the terminal interface.
type UI struct {
	// List pane width as a fraction of the terminal (0.1-0.9).
	SplitRatio float64 `toml:"split_ratio"`
	// Keypresses before a status message disappears.
	MessageKeypresses int `toml:"message_keypresses"`
	// Lines scrolled in the preview per ctrl+j/k.
	PreviewScrollStep int `toml:"preview_scroll_step"`
	// Kept-visible buffer subtracted from the maximum scroll.
	PreviewScrollBuffer int `toml:"preview_scroll_buffer"`
	// Header lines above the body in the preview (title, metadata, blank).
	PreviewHeaderLines int `toml:"preview_header_lines"`
	// Extra height allowance for markdown formatting when estimating scroll bounds.
	MarkdownBuffer int `toml:"markdown_buffer"`
}

type Editor struct {
	// Overrides $EDITOR when set.
	DefaultEditor string `toml:"default_editor"`
	// Create the scratch file with 0600 permissions.
	SecureTempFiles bool `toml:"secure_temp_files"`
}

// Theme holds lipgloss color values (named, ANSI or hex).
type Theme struct {
	Text               string `toml:"text"`
	DimmedText         string `toml:"dimmed_text"`
	Metadata           string `toml:"metadata"`
	HoverIndicator     string `toml:"hover_indicator"`
	SelectionIndicator string `toml:"selection_indicator"`
	ActiveIndicator    string `toml:"active_indicator"`
	SearchHighlight    string `toml:"search_highlight"`
}

type Database struct {
	Path        string `toml:"path"`
	WALMode     bool   `toml:"wal_mode"`
	CacheSizeKB int    `toml:"cache_size_kb"`
	Synchronous string `toml:"synchronous"`
	TempStore   string `toml:"temp_store"`
}

type Config struct {
	UI       UI       `toml:"ui"`
	Editor   Editor   `toml:"editor"`
	Keys     Keymap   `toml:"keys"`
	Theme    Theme    `toml:"theme"`
	Database Database `toml:"database"`
}

// LoadOrCreate reads the config at path, writing the defaults there on
// first run. Missing fields fall back to defaults before validation.
func LoadOrCreate(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = DefaultDBPath()
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func Write(path string, cfg Config) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (c Config) Validate() error {
	if c.UI.SplitRatio < 0.1 || c.UI.SplitRatio > 0.9 {
		return errors.New("ui.split_ratio must be between 0.1 and 0.9")
	}
	if c.UI.MessageKeypresses <= 0 {
		return errors.New("ui.message_keypresses must be greater than 0")
	}
	if c.UI.PreviewScrollStep <= 0 {
		return errors.New("ui.preview_scroll_step must be greater than 0")
	}
	if c.UI.PreviewScrollBuffer <= 0 {
		return errors.New("ui.preview_scroll_buffer must be greater than 0")
	}
	if c.UI.PreviewHeaderLines <= 0 {
		return errors.New("ui.preview_header_lines must be greater than 0")
	}
	switch c.Database.Synchronous {
	case "OFF", "NORMAL", "FULL", "EXTRA":
	default:
		return fmt.Errorf("database.synchronous must be OFF, NORMAL, FULL or EXTRA, got %q", c.Database.Synchronous)
	}
	switch c.Database.TempStore {
	case "DEFAULT", "FILE", "MEMORY":
	default:
		return fmt.Errorf("database.temp_store must be DEFAULT, FILE or MEMORY, got %q", c.Database.TempStore)
	}
	for name, key := range map[string]string{
		"quit": c.Keys.Quit, "new": c.Keys.New, "delete": c.Keys.Delete,
		"edit": c.Keys.Edit, "search": c.Keys.Search, "export": c.Keys.Export,
		"sort": c.Keys.Sort, "goto_top": c.Keys.GotoTop, "goto_bottom": c.Keys.GotoBottom,
		"move_down": c.Keys.MoveDown, "move_up": c.Keys.MoveUp,
	} {
		if len([]rune(key)) != 1 {
			return fmt.Errorf("keys.%s must be a single character, got %q", name, key)
		}
	}
	return nil
}

func Default() Config {
	return Config{
		UI: UI{
			SplitRatio:          0.4,
			MessageKeypresses:   5,
			PreviewScrollStep:   3,
			PreviewScrollBuffer: 10,
			PreviewHeaderLines:  3,
			MarkdownBuffer:      10,
		},
		Editor: Editor{
			DefaultEditor:   "",
			SecureTempFiles: true,
		},
		Keys: Keymap{
			Quit:       "q",
			New:        "n",
			Delete:     "d",
			Edit:       "e",
			Search:     "/",
			Export:     "x",
			Sort:       "s",
			GotoTop:    "g",
			GotoBottom: "G",
			MoveDown:   "j",
			MoveUp:     "k",
		},
		Theme: Theme{
			Text:               "15",
			DimmedText:         "250",
			Metadata:           "243",
			HoverIndicator:     "6",
			SelectionIndicator: "3",
			ActiveIndicator:    "10",
			SearchHighlight:    "11",
		},
		Database: Database{
			Path:        DefaultDBPath(),
			WALMode:     true,
			CacheSizeKB: -64000,
			Synchronous: "NORMAL",
			TempStore:   "MEMORY",
		},
	}
}

// ResolveConfigPath returns $XDG_CONFIG_HOME/qnote/config.toml, falling
// back to the platform config dir and finally the working directory.
func ResolveConfigPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName, DefaultConfigFileName)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName, DefaultConfigFileName)
	}
	return DefaultConfigFileName
}

// DefaultDBPath puts the database next to the config.
func DefaultDBPath() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName, DefaultDBName)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(dir, appDirName, DefaultDBName)
	}
	return DefaultDBName
}
