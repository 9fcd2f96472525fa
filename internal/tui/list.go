package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/phonebook/internal/contacts"
)

// contactItem remembers its position in the store so edits and deletes
// address the right contact while the list is filtered.
type contactItem struct {
	index   int
	contact contacts.Contact
}

func (i contactItem) Title() string       { return i.contact.Name }
func (i contactItem) Description() string { return i.contact.Phone }
func (i contactItem) FilterValue() string { return i.contact.Name + " " + i.contact.Phone }

func toItems(cs []contacts.Contact) []list.Item {
	items := make([]list.Item, len(cs))
	for i, c := range cs {
		items[i] = contactItem{index: i, contact: c}
	}
	return items
}

func newContactList() list.Model {
	d := list.NewDefaultDelegate()
	d.Styles.SelectedTitle = lipgloss.NewStyle().Foreground(Green).Border(lipgloss.NormalBorder(), false, false, false, true).BorderForeground(Green).PaddingLeft(1)
	d.Styles.SelectedDesc = d.Styles.SelectedTitle.Foreground(Cyan)

	l := list.New(nil, d, 40, 14)
	l.Title = "Contacts"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(true)
	l.SetStatusBarItemName("contact", "contacts")
	l.Styles.Title = TitleStyle
	return l
}
