// Package config reads and writes the wakeep config file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents ~/.config/wakeep/config.toml. Flags override these
// values; these values override the built-in defaults.
type Config struct {
	// DBPath is the archive database file to use.
	DBPath string `toml:"db_path"`
	// MergeStrategy is the default strategy for imports into existing
	// chats: replace, amend or add.
	MergeStrategy string `toml:"merge_strategy"`
	// Backupless skips the pre-migration backup copy.
	Backupless bool `toml:"backupless"`
	// LogPath, when set, tees structured logs into a file.
	LogPath string `toml:"log_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DBPath:        "./whatsapp.db",
		MergeStrategy: "amend",
	}
}

// DefaultPath returns the conventional config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "wakeep", "config.toml")
}

// Load reads config from the given path, falling back to defaults for a
// missing file. Unset fields keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, cfg)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes config to the given path, creating parent dirs as needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	encErr := toml.NewEncoder(f).Encode(cfg)
	if closeErr := f.Close(); closeErr != nil && encErr == nil {
		return closeErr
	}
	return encErr
}
