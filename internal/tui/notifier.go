package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/phonebook/internal/contacts"
)

const noticeBuffer = 16

type noticeMsg struct {
	message  string
	severity contacts.Severity
}

// Notifier forwards store change notifications into the TUI event loop.
// Register it with contacts.WithObserver and hand it to New.
type Notifier struct {
	ch chan noticeMsg
}

var _ contacts.Observer = (*Notifier)(nil)

func NewNotifier() *Notifier {
	return &Notifier{ch: make(chan noticeMsg, noticeBuffer)}
}

// DataChanged never blocks; notifications beyond the buffer are dropped.
func (n *Notifier) DataChanged(message string, severity contacts.Severity) {
	select {
	case n.ch <- noticeMsg{message: message, severity: severity}:
	default:
	}
}

func (n *Notifier) wait() tea.Cmd {
	if n == nil {
		return nil
	}
	return func() tea.Msg {
		return <-n.ch
	}
}
