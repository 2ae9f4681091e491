package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	listVerbose bool
	listLimit   int
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all stored clipboard entries",
	Long:  `Show the stored entries newest-first. Listing never decrypts anything; use 'clipd show' for content.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openInitializedStore()
		if err != nil {
			return err
		}

		defer func() { _ = db.Close() }()

		entries, corrupt, err := db.ListEntries()
		if err != nil {
			return err
		}

		for _, c := range corrupt {
			fmt.Printf("warning: %v\n", c)
		}

		if len(entries) == 0 {
			fmt.Println("No entries found. Start the watcher with 'clipd start'.")

			return nil
		}

		displayCount := len(entries)
		if listLimit > 0 && listLimit < displayCount {
			displayCount = listLimit
		}

		fmt.Printf("Clipboard history (%d entries, showing %d)\n\n", len(entries), displayCount)

		for _, entry := range entries[:displayCount] {
			if listVerbose {
				fmt.Printf("ID: %s\n", entry.ID)
				fmt.Printf("  Timestamp: %s\n", entry.Timestamp.Format("2006-01-02 15:04:05.000 MST"))
				fmt.Printf("  Type: %s\n", entry.ContentType)
				fmt.Printf("  Size: %d bytes (encrypted)\n", len(entry.Payload))
				fmt.Printf("  Hash: %s\n\n", entry.Hash)
			} else {
				fmt.Println(entry.Preview())
			}
		}

		if displayCount < len(entries) {
			fmt.Printf("\n... and %d more entries. Use --limit to show more or --verbose for details.\n", len(entries)-displayCount)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVarP(&listVerbose, "verbose", "v", false, "show full timestamps and hashes")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 0, "limit number of entries to display")
}
