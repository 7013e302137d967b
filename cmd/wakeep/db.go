package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pboehm/wakeep/internal/store"
)

func initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the archive database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, lk, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = lk.Release() }()
			defer func() { _ = db.Close() }()

			if err := db.CheckInit(); err != nil {
				return fmt.Errorf("%s: %w", cfg.DBPath, err)
			}

			res, err := db.Migrate()
			if err != nil {
				return err
			}
			if err := db.Checkpoint(); err != nil {
				return err
			}

			fmt.Printf("Successfully initialized %s (version %d)\n", cfg.DBPath, res.Version)
			return nil
		},
	}
}

func migrateCmd() *cobra.Command {
	var backupless bool

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Upgrade the archive database to the latest schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			db, lk, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = lk.Release() }()
			defer func() { _ = db.Close() }()

			version, err := db.CheckMigrate()
			if err != nil {
				return fmt.Errorf("%s: %w", cfg.DBPath, err)
			}

			if version > 0 && !(cfg.Backupless || backupless) {
				if err := writeBackup(db, logger); err != nil {
					return err
				}
			}

			res, err := db.Migrate()
			if err != nil {
				return err
			}
			if err := db.Checkpoint(); err != nil {
				return err
			}

			fmt.Printf("Migrated %s from version %d to %d\n", cfg.DBPath, version, res.Version)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&backupless, "backupless", "B", false, "skip the backup copy before migrating")
	return cmd
}

func backupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "backup <dest>",
		Short: "Write a consistent copy of the archive database",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			db, lk, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = lk.Release() }()
			defer func() { _ = db.Close() }()

			version, err := db.CurrentVersion()
			if err != nil {
				return err
			}
			if version == 0 {
				return fmt.Errorf("%s is not initialized, nothing to back up", cfg.DBPath)
			}
			if version > store.LatestVersion {
				return fmt.Errorf("%s has schema version %d: %w", cfg.DBPath, version, store.ErrVersionTooNew)
			}

			if err := db.BackupTo(args[0]); err != nil {
				return err
			}
			fmt.Printf("Backed up %s to %s\n", cfg.DBPath, args[0])
			return nil
		},
	}
}

// ensureSchema brings the store to the latest schema before an import:
// a fresh store is initialized, an outdated one is upgraded after writing a
// backup copy, and a store from a newer build is refused.
func ensureSchema(db *store.DB, backupless bool, logger *zap.Logger) error {
	version, err := db.CurrentVersion()
	if err != nil {
		return err
	}
	switch {
	case version == store.LatestVersion:
		return nil
	case version > store.LatestVersion:
		return fmt.Errorf("%s has schema version %d: %w", db.Path, version, store.ErrVersionTooNew)
	}

	if version > 0 && !backupless {
		if err := writeBackup(db, logger); err != nil {
			return err
		}
	}

	res, err := db.Migrate()
	if err != nil {
		return err
	}
	if version == 0 {
		logger.Info("initialized database",
			zap.String("path", db.Path),
			zap.Uint("version", res.Version))
	} else {
		logger.Info("migrated database",
			zap.String("path", db.Path),
			zap.Uint("from", version),
			zap.Uint("to", res.Version))
	}
	return db.Checkpoint()
}

// writeBackup copies the database to <path>~ before a migration touches it.
func writeBackup(db *store.DB, logger *zap.Logger) error {
	backup := db.Path + "~"
	if err := os.Remove(backup); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("replace old backup: %w", err)
	}
	if err := db.BackupTo(backup); err != nil {
		return err
	}
	logger.Info("wrote pre-migration backup", zap.String("path", backup))
	return nil
}
