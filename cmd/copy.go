package cmd

import (
	"fmt"

	"github.com/inovacc/clipd/internal/clipboard"
	"github.com/inovacc/clipd/internal/core"
	"github.com/spf13/cobra"
)

var copyCmd = &cobra.Command{
	Use:   "copy <id>",
	Short: "Copy a specific entry back to the clipboard",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := args[0]

		db, err := openInitializedStore()
		if err != nil {
			return err
		}

		defer func() { _ = db.Close() }()

		key, err := core.Unlock(db)
		if err != nil {
			return err
		}

		defer key.Zero()

		entry, err := db.GetEntry(id)
		if err != nil {
			return reportNotFound(err, id)
		}

		if err := core.CopyToClipboard(clipboard.System(), key, entry); err != nil {
			return err
		}

		fmt.Printf("Copied %s entry %s to the clipboard.\n", entry.ContentType, entry.ID)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(copyCmd)
}
