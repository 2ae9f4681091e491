package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var clearYes bool

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored entries",
	Long:  `Remove every entry from the database. The metadata (and the master password) stay intact.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openInitializedStore()
		if err != nil {
			return err
		}

		defer func() { _ = db.Close() }()

		count, err := db.Count()
		if err != nil {
			return err
		}

		if count == 0 {
			fmt.Println("Database is already empty.")

			return nil
		}

		if !clearYes && !confirm(fmt.Sprintf("Delete all %d entries? This cannot be undone!", count)) {
			fmt.Println("Clear cancelled.")

			return nil
		}

		if err := db.Clear(); err != nil {
			return err
		}

		fmt.Printf("Deleted %d entries.\n", count)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(clearCmd)
	clearCmd.Flags().BoolVarP(&clearYes, "yes", "y", false, "skip confirmation prompt")
}
