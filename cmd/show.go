package cmd

import (
	"fmt"
	"strings"

	"github.com/inovacc/clipd/internal/core"
	"github.com/inovacc/clipd/internal/crypto"
	"github.com/inovacc/clipd/internal/model"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Decrypt and display a specific entry",
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

		plaintext, err := crypto.Decrypt(key, entry.Payload)
		if err != nil {
			return fmt.Errorf("failed to decrypt entry %s: %w", id, err)
		}

		fmt.Printf("Entry: %s\n", entry.ID)
		fmt.Printf("Timestamp: %s\n", entry.Timestamp.Format("2006-01-02 15:04:05 MST"))
		fmt.Printf("Type: %s\n\n", entry.ContentType)

		switch entry.ContentType {
		case model.ContentTypeText:
			rule := strings.Repeat("-", 40)

			fmt.Println("Content:")
			fmt.Println(rule)
			fmt.Println(string(plaintext))
			fmt.Println(rule)

		case model.ContentTypeImage:
			img, err := core.DecodeImage(plaintext)
			if err != nil {
				return err
			}

			fmt.Println("Content: image")
			fmt.Printf("  Dimensions: %d x %d pixels\n", img.Width, img.Height)
			fmt.Printf("  Size: %d bytes (raw RGBA)\n", len(img.Bytes))
			fmt.Printf("Use 'clipd copy %s' to copy this image to the clipboard\n", entry.ID)

		default:
			return fmt.Errorf("unknown content type %v for entry %s", entry.ContentType, entry.ID)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
