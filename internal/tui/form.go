package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeanpaul/phonebook/internal/contacts"
)

// FormModel edits a single contact.
type FormModel struct {
	name  textinput.Model
	phone textinput.Model
	focus int
}

func newForm(c contacts.Contact) FormModel {
	name := textinput.New()
	name.Placeholder = "Name"
	name.Prompt = "Name  "
	name.SetValue(c.Name)

	phone := textinput.New()
	phone.Placeholder = "Phone"
	phone.Prompt = "Phone "
	phone.SetValue(c.Phone)

	f := FormModel{name: name, phone: phone}
	f.name.Focus()
	return f
}

func (f FormModel) Update(msg tea.Msg) (FormModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "tab", "shift+tab", "up", "down":
			f.focus = 1 - f.focus
			if f.focus == 0 {
				f.phone.Blur()
				return f, f.name.Focus()
			}
			f.name.Blur()
			return f, f.phone.Focus()
		}
	}

	var cmd tea.Cmd
	if f.focus == 0 {
		f.name, cmd = f.name.Update(msg)
	} else {
		f.phone, cmd = f.phone.Update(msg)
	}
	return f, cmd
}

func (f FormModel) Value() contacts.Contact {
	return contacts.Contact{
		Name:  strings.TrimSpace(f.name.Value()),
		Phone: strings.TrimSpace(f.phone.Value()),
	}
}

func (f FormModel) View() string {
	style := func(focused bool) func(...string) string {
		if focused {
			return InputActiveStyle.Render
		}
		return InputBorderStyle.Render
	}
	return style(f.focus == 0)(f.name.View()) + "\n" + style(f.focus == 1)(f.phone.View())
}
