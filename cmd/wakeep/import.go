package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pboehm/wakeep/internal/archive"
	"github.com/pboehm/wakeep/internal/ingest"
)

func importCmd() *cobra.Command {
	var (
		name       string
		force      bool
		strategy   string
		backupless bool
	)

	cmd := &cobra.Command{
		Use:   "import <path>",
		Short: "Import a chat export (directory, chat text file or zip) into the archive",
		Args:  cobra.ExactArgs(1),
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

			if strategy == "" {
				strategy = cfg.MergeStrategy
			}
			strat, err := ingest.ParseStrategy(strategy)
			if err != nil {
				return err
			}

			arc, chatName, err := archive.Open(args[0])
			if err != nil {
				return err
			}
			if closer, ok := arc.(io.Closer); ok {
				defer func() { _ = closer.Close() }()
			}
			if name != "" {
				chatName = name
			}

			db, lk, err := openStore(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = lk.Release() }()
			defer func() { _ = db.Close() }()

			if err := ensureSchema(db, cfg.Backupless || backupless, logger); err != nil {
				return err
			}

			count, err := ingest.New(db, logger).ImportChat(arc, chatName, strat, force)
			if err != nil {
				return err
			}
			if err := db.Checkpoint(); err != nil {
				return err
			}

			if count > 0 {
				fmt.Printf("Inserted %d messages into %s.\n", count, chatName)
			} else {
				fmt.Printf("Chat %s: no messages inserted.\n", chatName)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "chat name (default derived from the export path)")
	cmd.Flags().BoolVar(&force, "force", false, "allow importing into an existing chat")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "", "merge strategy for existing chats: replace, amend or add (default amend)")
	cmd.Flags().BoolVarP(&backupless, "backupless", "B", false, "skip the backup copy before an automatic schema migration")
	return cmd
}
