package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show database statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openInitializedStore()
		if err != nil {
			return err
		}

		defer func() { _ = db.Close() }()

		st, err := db.Stats()
		if err != nil {
			return err
		}

		fmt.Println("Database statistics")
		fmt.Println()
		fmt.Printf("Total entries: %d\n", st.Total)

		if st.Total == 0 {
			fmt.Println("Start the watcher with 'clipd start' to begin collecting clipboard history.")

			return nil
		}

		fmt.Printf("  - Text: %d\n", st.TextCount)
		fmt.Printf("  - Images: %d\n", st.ImageCount)
		fmt.Println()
		fmt.Printf("Total encrypted size: %d bytes (%.2f KB)\n", st.PayloadBytes, float64(st.PayloadBytes)/1024.0)
		fmt.Printf("Average size per entry: %.2f bytes\n", float64(st.PayloadBytes)/float64(st.Total))
		fmt.Println()
		fmt.Printf("Oldest entry: %s\n", st.Oldest.Format("2006-01-02 15:04:05"))
		fmt.Printf("Newest entry: %s\n", st.Newest.Format("2006-01-02 15:04:05"))

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
