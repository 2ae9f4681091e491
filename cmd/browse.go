package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/clipd/internal/cli"
	"github.com/inovacc/clipd/internal/clipboard"
	"github.com/inovacc/clipd/internal/core"
	"github.com/spf13/cobra"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively browse clipboard history",
	Long:  `Open an interactive list of all entries. Enter copies the selected entry back to the clipboard, x deletes it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
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

		m, err := cli.NewBrowse(db, key, clipboard.System())
		if err != nil {
			return err
		}

		p := tea.NewProgram(m, tea.WithAltScreen())
		_, err = p.Run()

		return err
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
