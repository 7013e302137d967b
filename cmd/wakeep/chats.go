package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pboehm/wakeep/internal/store"
)

func chatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chats",
		Short: "List archived chats and their message counts",
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

			version, err := db.CurrentVersion()
			if err != nil {
				return err
			}
			if version > store.LatestVersion {
				return fmt.Errorf("%s has schema version %d: %w", cfg.DBPath, version, store.ErrVersionTooNew)
			}
			if version == 0 {
				fmt.Println("No chats (database not initialized).")
				return nil
			}

			chats, err := db.ListChats()
			if err != nil {
				return err
			}
			if len(chats) == 0 {
				fmt.Println("No chats.")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
			for _, c := range chats {
				fmt.Fprintf(w, "%s\t%d messages\n", c.Name, c.Messages)
			}
			return w.Flush()
		},
	}
}
