package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope", "config.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DBPath != "./whatsapp.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.MergeStrategy != "amend" {
		t.Errorf("MergeStrategy = %q", cfg.MergeStrategy)
	}
	if cfg.Backupless {
		t.Error("Backupless should default to false")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wakeep", "config.toml")

	want := &Config{
		DBPath:        "/data/chats.db",
		MergeStrategy: "add",
		Backupless:    true,
		LogPath:       "/var/log/wakeep.log",
	}
	if err := Save(path, want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != *want {
		t.Errorf("round trip = %+v, want %+v", got, want)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("db_path = \"/data/chats.db\"\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.DBPath != "/data/chats.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	// Unset keys keep their defaults.
	if cfg.MergeStrategy != "amend" {
		t.Errorf("MergeStrategy = %q", cfg.MergeStrategy)
	}
}
