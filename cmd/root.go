package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/inovacc/clipd/internal/application"
	"github.com/inovacc/clipd/internal/store"
	"github.com/spf13/cobra"
)

var databasePath string

var rootCmd = &cobra.Command{
	Use:   application.AppName,
	Short: "An encrypted clipboard history manager",
	Long: `Clipd watches the system clipboard and keeps an encrypted history of
everything you copy. Entries are deduplicated, encrypted under a key
derived from your master password and stored locally. Nothing ever
leaves your machine.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&databasePath, "database", "d", "", "database path (defaults to the clipd data directory)")
}

// openStore opens the database at the --database path or the default
// location. The caller closes it.
func openStore() (*store.Store, error) {
	path := databasePath

	if path == "" {
		var err error

		path, err = application.DefaultDatabasePath()
		if err != nil {
			return nil, err
		}
	}

	return store.Open(path)
}

// openInitializedStore opens the database and refuses to continue when
// it has never been initialized.
func openInitializedStore() (*store.Store, error) {
	db, err := openStore()
	if err != nil {
		return nil, err
	}

	initialized, err := db.IsInitialized()
	if err != nil {
		_ = db.Close()

		return nil, err
	}

	if !initialized {
		_ = db.Close()

		return nil, store.ErrNotInitialized
	}

	return db, nil
}

// confirm asks a yes/no question on stdout and reads the answer from
// stdin. Anything but y/Y declines.
func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)

	var response string

	_, _ = fmt.Scanln(&response)

	return response == "y" || response == "Y"
}

// reportNotFound maps store errors to friendlier messages for id-based
// commands.
func reportNotFound(err error, id string) error {
	if errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("entry '%s' not found", id)
	}

	return err
}
