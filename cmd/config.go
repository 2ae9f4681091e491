package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	configInterval   int
	configMaxEntries int
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change watcher settings",
	Long:  `Without flags, print the saved watcher settings. Flags update them; the new values apply on the next 'clipd start'.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}

		defer func() { _ = db.Close() }()

		cfg, err := db.LoadConfig()
		if err != nil {
			return err
		}

		changed := false

		if cmd.Flags().Changed("poll-interval") {
			if configInterval <= 0 {
				return fmt.Errorf("poll interval must be positive, got %d", configInterval)
			}

			cfg.PollIntervalMS = configInterval
			changed = true
		}

		if cmd.Flags().Changed("max-entries") {
			if configMaxEntries < 0 {
				return fmt.Errorf("max entries must not be negative, got %d", configMaxEntries)
			}

			cfg.MaxEntries = configMaxEntries
			changed = true
		}

		if changed {
			if err := db.SaveConfig(cfg); err != nil {
				return err
			}

			fmt.Println("Configuration saved.")
		}

		fmt.Printf("Poll interval: %d ms\n", cfg.PollIntervalMS)

		if cfg.MaxEntries > 0 {
			fmt.Printf("Max entries: %d\n", cfg.MaxEntries)
		} else {
			fmt.Println("Max entries: unlimited")
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().IntVar(&configInterval, "poll-interval", 0, "clipboard polling interval in milliseconds")
	configCmd.Flags().IntVar(&configMaxEntries, "max-entries", 0, "maximum number of entries to keep (0 = unlimited)")
}
