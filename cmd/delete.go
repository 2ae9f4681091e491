package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteYes bool

var deleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a specific entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		db, err := openInitializedStore()
		if err != nil {
			return err
		}

		defer func() { _ = db.Close() }()

		if !deleteYes && !confirm(fmt.Sprintf("Delete entry '%s'?", id)) {
			fmt.Println("Deletion cancelled.")

			return nil
		}

		if err := db.DeleteEntry(id); err != nil {
			return reportNotFound(err, id)
		}

		fmt.Printf("Entry '%s' deleted.\n", id)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "skip confirmation prompt")
}
