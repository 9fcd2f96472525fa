// Package tui is the full-screen terminal front end and the shared
// colour palette used by the other front ends.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeanpaul/phonebook/internal/contacts"
)

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeConfirmDelete
)

const (
	headerHeight = 2
	footerHeight = 3
)

type loadedMsg struct {
	contacts []contacts.Contact
	err      error
}

type opDoneMsg struct {
	contact   contacts.Contact
	duplicate bool
	err       error
}

type fileChangedMsg struct{}

type Model struct {
	ctx      context.Context
	store    contacts.Store
	notifier *Notifier
	changes  <-chan struct{}

	list    list.Model
	form    FormModel
	mode    mode
	editing int // index being edited, -1 when adding
	target  contactItem

	status         string
	statusSeverity contacts.Severity

	width, height int
}

// New builds the TUI model. notifier and changes may be nil.
func New(ctx context.Context, store contacts.Store, notifier *Notifier, changes <-chan struct{}) Model {
	return Model{
		ctx:      ctx,
		store:    store,
		notifier: notifier,
		changes:  changes,
		list:     newContactList(),
		editing:  -1,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.notifier.wait(), m.waitChange())
}

func (m Model) load() tea.Cmd {
	return func() tea.Msg {
		cs, err := m.store.ReadAll(m.ctx)
		return loadedMsg{contacts: cs, err: err}
	}
}

func (m Model) waitChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-m.changes; !ok {
			return nil
		}
		return fileChangedMsg{}
	}
}

func (m Model) save(index int, c contacts.Contact) tea.Cmd {
	return func() tea.Msg {
		if index < 0 {
			ok, err := m.store.Create(m.ctx, c)
			return opDoneMsg{contact: c, duplicate: err == nil && !ok, err: err}
		}
		return opDoneMsg{contact: c, err: m.store.Update(m.ctx, index, c)}
	}
}

func (m Model) remove(item contactItem) tea.Cmd {
	return func() tea.Msg {
		return opDoneMsg{contact: item.contact, err: m.store.Delete(m.ctx, item.index)}
	}
}

func (m *Model) setStatus(message string, severity contacts.Severity) {
	m.status = message
	m.statusSeverity = severity
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, max(msg.Height-headerHeight-footerHeight, 1))
		return m, nil

	case loadedMsg:
		if msg.err != nil {
			m.setStatus(msg.err.Error(), contacts.SeverityError)
			return m, nil
		}
		return m, m.list.SetItems(toItems(msg.contacts))

	case opDoneMsg:
		switch {
		case msg.err != nil:
			m.setStatus(msg.err.Error(), contacts.SeverityError)
		case msg.duplicate:
			m.setStatus(fmt.Sprintf("%s already exists", msg.contact), contacts.SeverityError)
		}
		return m, m.load()

	case noticeMsg:
		m.setStatus(msg.message, msg.severity)
		return m, m.notifier.wait()

	case fileChangedMsg:
		return m, tea.Batch(m.load(), m.waitChange())

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch m.mode {
		case modeForm:
			return m.updateForm(msg)
		case modeConfirmDelete:
			return m.updateConfirm(msg)
		default:
			return m.updateBrowse(msg)
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.list.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "a":
		m.mode, m.editing = modeForm, -1
		m.form = newForm(contacts.Contact{})
		return m, nil
	case "e", "enter":
		if item, ok := m.list.SelectedItem().(contactItem); ok {
			m.mode, m.editing = modeForm, item.index
			m.form = newForm(item.contact)
		}
		return m, nil
	case "d", "delete":
		if item, ok := m.list.SelectedItem().(contactItem); ok {
			m.mode, m.target = modeConfirmDelete, item
		}
		return m, nil
	case "r":
		m.setStatus("", contacts.SeverityInfo)
		return m, m.load()
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.mode = modeBrowse
		return m, nil
	case "enter":
		c := m.form.Value()
		if c.Name == "" || c.Phone == "" {
			m.setStatus("Name and phone are both required", contacts.SeverityError)
			return m, nil
		}
		m.mode = modeBrowse
		return m, m.save(m.editing, c)
	}

	var cmd tea.Cmd
	m.form, cmd = m.form.Update(msg)
	return m, cmd
}

func (m Model) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		m.mode = modeBrowse
		return m, m.remove(m.target)
	case "n", "N", "esc":
		m.mode = modeBrowse
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(TitleStyle.Render("Phonebook"))
	b.WriteString("\n\n")

	switch m.mode {
	case modeForm:
		heading := "Add contact"
		if m.editing >= 0 {
			heading = "Edit contact"
		}
		b.WriteString(LabelStyle.Render(heading) + "\n")
		b.WriteString(m.form.View())
	case modeConfirmDelete:
		b.WriteString(m.list.View() + "\n")
		b.WriteString(ConfirmStyle.Render(fmt.Sprintf("Delete %s? (y/n)", m.target.contact)))
	default:
		b.WriteString(m.list.View())
	}

	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(SeverityStyle(m.statusSeverity).Render(m.status))
	}
	b.WriteString("\n" + HelpStyle.Render(m.help()))

	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func (m Model) help() string {
	switch m.mode {
	case modeForm:
		return "tab: switch field | enter: save | esc: cancel"
	case modeConfirmDelete:
		return "y: delete | n: keep"
	default:
		return "a: add | e: edit | d: delete | /: filter | r: reload | q: quit"
	}
}
