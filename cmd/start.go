package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/inovacc/clipd/internal/clipboard"
	"github.com/inovacc/clipd/internal/core"
	"github.com/inovacc/clipd/internal/watcher"
	"github.com/spf13/cobra"
)

var startMaxEntries int

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the clipboard watcher",
	Long: `Unlock the database and poll the clipboard for new content. Every new
item is deduplicated, encrypted and stored. Stop with Ctrl+C; the key
is wiped from memory on the way out.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openInitializedStore()
		if err != nil {
			return err
		}

		defer func() { _ = db.Close() }()

		key, err := core.Unlock(db)
		if err != nil {
			return err
		}

		// The watcher zeroizes the key when Run returns

		cfg, err := db.LoadConfig()
		if err != nil {
			key.Zero()

			return err
		}

		if cmd.Flags().Changed("max-entries") {
			cfg.MaxEntries = startMaxEntries
		}

		fmt.Println("Password verified.")

		if cfg.MaxEntries > 0 {
			fmt.Printf("Maximum entries: %d\n", cfg.MaxEntries)
		}

		fmt.Println("Clipboard watcher started. Press Ctrl+C to stop.")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		w := watcher.New(db, clipboard.System(), key, cfg)

		if err := w.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	startCmd.Flags().IntVarP(&startMaxEntries, "max-entries", "m", 0, "maximum number of entries to keep (oldest entries are pruned)")
}
