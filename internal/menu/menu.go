// Package menu implements the numbered text menu used when no terminal UI
// is available. It reads one answer per line, which keeps it scriptable.
package menu

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jeanpaul/phonebook/internal/contacts"
	"github.com/jeanpaul/phonebook/internal/tui"
)

const options = `1. Add contact
2. View contacts
3. Edit contact
4. Delete contact
0. Exit`

type Menu struct {
	store contacts.Store
	in    *bufio.Scanner
	out   io.Writer
}

func New(store contacts.Store, in io.Reader, out io.Writer) *Menu {
	return &Menu{
		store: store,
		in:    bufio.NewScanner(in),
		out:   out,
	}
}

// Printer returns an observer that writes change notifications to out in
// the colour of their severity.
func Printer(out io.Writer) contacts.ObserverFunc {
	return func(message string, severity contacts.Severity) {
		fmt.Fprintln(out, tui.SeverityStyle(severity).Render(message))
	}
}

// Run shows the menu until the user picks 0 or input ends.
func (m *Menu) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		fmt.Fprintln(m.out)
		fmt.Fprintln(m.out, tui.TitleStyle.Render("Phonebook"))
		fmt.Fprintln(m.out, options)

		line, err := m.readLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		command, err := strconv.Atoi(line)
		if err != nil {
			m.errorf("Invalid input")
			continue
		}

		switch command {
		case 0:
			return nil
		case 1:
			err = m.add(ctx)
		case 2:
			err = m.view(ctx)
		case 3:
			err = m.edit(ctx)
		case 4:
			err = m.remove(ctx)
		default:
			m.errorf("Unknown option %d", command)
			continue
		}

		switch {
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return err
		case err != nil:
			m.errorf("error: %s", err)
		}
	}
}

func (m *Menu) add(ctx context.Context) error {
	fmt.Fprintln(m.out, tui.LabelStyle.Render("Add contact"))
	c, ok, err := m.readContact()
	if err != nil || !ok {
		return err
	}

	created, err := m.store.Create(ctx, c)
	if err != nil {
		return err
	}
	if !created {
		m.errorf("Contact already exists")
	}
	return nil
}

func (m *Menu) view(ctx context.Context) error {
	fmt.Fprintln(m.out, tui.LabelStyle.Render("Contacts"))
	_, err := m.list(ctx)
	return err
}

func (m *Menu) edit(ctx context.Context) error {
	fmt.Fprintln(m.out, tui.LabelStyle.Render("Edit contact"))
	index, ok, err := m.pick(ctx)
	if err != nil || !ok {
		return err
	}

	c, ok, err := m.readContact()
	if err != nil || !ok {
		return err
	}
	return m.store.Update(ctx, index, c)
}

func (m *Menu) remove(ctx context.Context) error {
	fmt.Fprintln(m.out, tui.LabelStyle.Render("Delete contact"))
	index, ok, err := m.pick(ctx)
	if err != nil || !ok {
		return err
	}
	return m.store.Delete(ctx, index)
}

func (m *Menu) list(ctx context.Context) ([]contacts.Contact, error) {
	list, err := m.store.ReadAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		fmt.Fprintln(m.out, tui.HelpStyle.Render("The phonebook is empty"))
		return list, nil
	}
	for i, c := range list {
		fmt.Fprintf(m.out, "%d. %s\n", i+1, c)
	}
	return list, nil
}

// pick lists the contacts and asks for a 1-based number, returning the
// 0-based index. ok is false when the answer was rejected.
func (m *Menu) pick(ctx context.Context) (int, bool, error) {
	list, err := m.list(ctx)
	if err != nil {
		return 0, false, err
	}
	if len(list) == 0 {
		return 0, false, nil
	}

	fmt.Fprintln(m.out, "Select contact number")
	line, err := m.readLine()
	if err != nil {
		return 0, false, err
	}
	n, err := strconv.Atoi(line)
	if err != nil || n < 1 || n > len(list) {
		m.errorf("Invalid input")
		return 0, false, nil
	}
	return n - 1, true, nil
}

func (m *Menu) readContact() (contacts.Contact, bool, error) {
	fmt.Fprintln(m.out, "Enter name")
	name, err := m.readLine()
	if err != nil {
		return contacts.Contact{}, false, err
	}
	fmt.Fprintln(m.out, "Enter phone")
	phone, err := m.readLine()
	if err != nil {
		return contacts.Contact{}, false, err
	}
	if name == "" || phone == "" {
		m.errorf("Name and phone are both required")
		return contacts.Contact{}, false, nil
	}
	return contacts.Contact{Name: name, Phone: phone}, true, nil
}

func (m *Menu) readLine() (string, error) {
	if !m.in.Scan() {
		if err := m.in.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimSpace(m.in.Text()), nil
}

func (m *Menu) errorf(format string, args ...any) {
	fmt.Fprintln(m.out, tui.ErrorStyle.Render(fmt.Sprintf(format, args...)))
}
