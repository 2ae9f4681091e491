package cmd

import (
	"errors"
	"fmt"

	"github.com/inovacc/clipd/internal/core"
	"github.com/inovacc/clipd/internal/crypto"
	"github.com/inovacc/clipd/internal/store"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the encrypted database with a master password",
	Long: `Generate a fresh salt, derive the master key from your password and
write the database metadata. Must be run once before the watcher can
store anything.

Re-initializing requires --force and deletes all stored entries first:
entries were encrypted under the old key and would be unreadable under
the new one, so clipd refuses to orphan them silently.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openStore()
		if err != nil {
			return err
		}

		defer func() { _ = db.Close() }()

		initialized, err := db.IsInitialized()
		if err != nil {
			return err
		}

		if initialized {
			if !initForce {
				return fmt.Errorf("%w; use --force to wipe all entries and start over", store.ErrAlreadyInitialized)
			}

			count, err := db.Count()
			if err != nil {
				return err
			}

			if !confirm(fmt.Sprintf("Re-initializing deletes all %d stored entries. Continue?", count)) {
				fmt.Println("Initialization cancelled.")

				return nil
			}
		}

		password, err := core.NewMasterPassword()
		if err != nil {
			return err
		}

		salt, err := crypto.GenerateSalt()
		if err != nil {
			return err
		}

		fmt.Println("Deriving encryption key...")

		key := crypto.DeriveKey(password, salt)
		defer key.Zero()

		verification, err := crypto.Encrypt(key, store.VerificationPlaintext())
		if err != nil {
			return err
		}

		if initialized {
			// Forced path: drop entries and metadata, then write fresh
			if err := db.Clear(); err != nil {
				return err
			}

			if err := db.Reset(); err != nil {
				return err
			}
		}

		if err := db.Initialize(salt, verification); err != nil {
			if errors.Is(err, store.ErrAlreadyInitialized) {
				return err
			}

			return fmt.Errorf("failed to initialize database: %w", err)
		}

		fmt.Println("Database initialized successfully.")
		fmt.Println("Use 'clipd start' to begin watching your clipboard.")

		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initForce, "force", false, "wipe all entries and re-initialize with a new password")
}
