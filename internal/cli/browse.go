// Package cli contains the interactive bubbletea models for browsing
// clipboard history.
package cli

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/inovacc/clipd/internal/clipboard"
	"github.com/inovacc/clipd/internal/core"
	"github.com/inovacc/clipd/internal/crypto"
	"github.com/inovacc/clipd/internal/model"
	"github.com/inovacc/clipd/internal/store"
)

var (
	docStyle    = lipgloss.NewStyle().Margin(1, 2)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

type entryItem struct {
	entry model.ClipboardEntry
}

func (i entryItem) Title() string {
	return i.entry.Preview()
}

func (i entryItem) Description() string {
	return fmt.Sprintf("%s | %d bytes encrypted | hash %s…", i.entry.ContentType, len(i.entry.Payload), i.entry.Hash[:12])
}

func (i entryItem) FilterValue() string {
	return i.entry.ID
}

// BrowseModel is the interactive history browser. Enter copies the
// selected entry back to the clipboard, x deletes it. Entries stay
// encrypted until an action needs the plaintext.
type BrowseModel struct {
	list     list.Model
	db       *store.Store
	key      *crypto.MasterKey
	provider clipboard.Provider
	status   string
	err      error
	quitting bool
}

// NewBrowse loads the entry listing and builds the browser model.
func NewBrowse(db *store.Store, key *crypto.MasterKey, provider clipboard.Provider) (BrowseModel, error) {
	entries, _, err := db.ListEntries()
	if err != nil {
		return BrowseModel{}, err
	}

	items := make([]list.Item, 0, len(entries))
	for _, e := range entries {
		items = append(items, entryItem{entry: e})
	}

	l := list.New(items, list.NewDefaultDelegate(), 0, 0)
	l.Title = fmt.Sprintf("Clipboard history (%d entries)", len(entries))
	l.AdditionalShortHelpKeys = browseHelpKeys

	return BrowseModel{
		list:     l,
		db:       db,
		key:      key,
		provider: provider,
	}, nil
}

func browseHelpKeys() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "copy to clipboard")),
		key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "delete entry")),
	}
}

func (m BrowseModel) Init() tea.Cmd {
	return nil
}

func (m BrowseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h, v := docStyle.GetFrameSize()
		m.list.SetSize(msg.Width-h, msg.Height-v)

		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}

		switch msg.String() {
		case "ctrl+c", "q", "esc":
			m.quitting = true

			return m, tea.Quit

		case "enter":
			i, ok := m.list.SelectedItem().(entryItem)
			if !ok {
				return m, nil
			}

			if err := core.CopyToClipboard(m.provider, m.key, i.entry); err != nil {
				m.err = err
				m.status = ""

				return m, nil
			}

			m.err = nil
			m.status = fmt.Sprintf("copied %s to clipboard", i.entry.ID)

			return m, nil

		case "x":
			i, ok := m.list.SelectedItem().(entryItem)
			if !ok {
				return m, nil
			}

			if err := m.db.DeleteEntry(i.entry.ID); err != nil {
				m.err = err
				m.status = ""

				return m, nil
			}

			m.list.RemoveItem(m.list.Index())
			m.err = nil
			m.status = fmt.Sprintf("deleted %s", i.entry.ID)

			return m, nil
		}
	}

	var cmd tea.Cmd

	m.list, cmd = m.list.Update(msg)

	return m, cmd
}

func (m BrowseModel) View() string {
	if m.quitting {
		return ""
	}

	view := m.list.View()

	if m.err != nil {
		view += "\n" + errorStyle.Render(m.err.Error())
	} else if m.status != "" {
		view += "\n" + statusStyle.Render(m.status)
	}

	return docStyle.Render(view)
}
