// Command wakeep keeps WhatsApp chat exports in a SQLite archive.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pboehm/wakeep/internal/archive"
	"github.com/pboehm/wakeep/internal/config"
	"github.com/pboehm/wakeep/internal/ingest"
	"github.com/pboehm/wakeep/internal/lock"
	"github.com/pboehm/wakeep/internal/logging"
	"github.com/pboehm/wakeep/internal/store"
)

var version = "dev"

var (
	flagDB      string
	flagConfig  string
	flagVerbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "wakeep",
		Short:         "Keep WhatsApp chat exports in a SQLite archive",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&flagDB, "db", "f", "", "database file to use (default from config, else ./whatsapp.db)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ~/.config/wakeep/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(importCmd())
	rootCmd.AddCommand(initCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(backupCmd())
	rootCmd.AddCommand(chatsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitCode(err))
	}
}

// exitCode distinguishes user-facing refusals (nothing was written, the
// invocation was declined up front) from everything else.
func exitCode(err error) int {
	var held *lock.HeldError
	switch {
	case errors.Is(err, ingest.ErrChatExists),
		errors.Is(err, archive.ErrUnknownFormat),
		errors.Is(err, store.ErrVersionTooNew),
		errors.Is(err, store.ErrAlreadyInitialized),
		errors.Is(err, store.ErrAlreadyLatest),
		errors.As(err, &held):
		return 9
	}
	return 1
}

func loadConfig() (*config.Config, error) {
	path := flagConfig
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if flagDB != "" {
		cfg.DBPath = flagDB
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	logger, err := logging.New(flagVerbose, cfg.LogPath)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}
	return logger, nil
}

// openStore takes the single-writer lock and opens the database. The caller
// must release the lock after closing the store.
func openStore(cfg *config.Config) (*store.DB, *lock.Lock, error) {
	lk, err := lock.Acquire(cfg.DBPath)
	if err != nil {
		return nil, nil, err
	}
	db, err := store.Open(cfg.DBPath)
	if err != nil {
		_ = lk.Release()
		return nil, nil, err
	}
	return db, lk, nil
}
