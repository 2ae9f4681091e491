package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/inovacc/clipd/internal/core"
	"github.com/spf13/cobra"
)

var dumpYes bool

var dumpCmd = &cobra.Command{
	Use:   "dump <directory>",
	Short: "Decrypt and export all entries to a directory",
	Long: `Export the entire history in plaintext: text entries into a CSV file,
images as PNG files. This deliberately removes the encryption - treat
the output directory accordingly.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := args[0]

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
			fmt.Println("No entries to dump.")

			return nil
		}

		if info, err := os.Stat(dir); err == nil && info.IsDir() && !dumpYes {
			if !confirm(fmt.Sprintf("Directory '%s' already exists. Files may be overwritten. Continue?", dir)) {
				fmt.Println("Dump cancelled.")

				return nil
			}
		}

		key, err := core.Unlock(db)
		if err != nil {
			return err
		}

		defer key.Zero()

		fmt.Printf("Dumping %d entries to '%s'\n", count, dir)

		summary, err := core.DumpAll(db, key, dir)
		if err != nil {
			return err
		}

		fmt.Println("Dump complete.")
		fmt.Printf("  - Text entries: %d (saved to %s)\n", summary.TextEntries, filepath.Join(dir, core.TextDumpFileName))
		fmt.Printf("  - Images: %d (saved as PNG files)\n", summary.ImageEntries)

		if summary.Skipped > 0 {
			fmt.Printf("  - Skipped: %d (corrupt or undecryptable)\n", summary.Skipped)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().BoolVarP(&dumpYes, "yes", "y", false, "skip confirmation prompt")
}
