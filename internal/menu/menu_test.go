package menu

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/phonebook/internal/contacts"
)

func run(t *testing.T, seed []contacts.Contact, script ...string) (string, []contacts.Contact) {
	t.Helper()
	ctx := context.Background()
	var out bytes.Buffer

	store, err := contacts.NewFileStore(filepath.Join(t.TempDir(), "phonebook.txt"),
		contacts.WithObserver(Printer(&out)))
	require.NoError(t, err)
	for _, c := range seed {
		_, err := store.Create(ctx, c)
		require.NoError(t, err)
	}
	out.Reset()

	in := strings.NewReader(strings.Join(script, "\n") + "\n")
	require.NoError(t, New(store, in, &out).Run(ctx))

	list, err := store.ReadAll(ctx)
	require.NoError(t, err)
	return out.String(), list
}

func TestMenu_ExitImmediately(t *testing.T) {
	out, list := run(t, nil, "0")
	assert.Contains(t, out, "1. Add contact")
	assert.Empty(t, list)
}

func TestMenu_EndOfInputExits(t *testing.T) {
	var out bytes.Buffer
	store, err := contacts.NewFileStore(filepath.Join(t.TempDir(), "p.txt"))
	require.NoError(t, err)

	err = New(store, strings.NewReader(""), &out).Run(context.Background())
	assert.NoError(t, err)
}

func TestMenu_Add(t *testing.T) {
	out, list := run(t, nil, "1", "Alice", "123", "0")
	assert.Equal(t, []contacts.Contact{{Name: "Alice", Phone: "123"}}, list)
	assert.Contains(t, out, "Alice added")
}

func TestMenu_AddDuplicate(t *testing.T) {
	out, list := run(t, []contacts.Contact{{Name: "Alice", Phone: "123"}}, "1", "Alice", "123", "0")
	assert.Len(t, list, 1)
	assert.Contains(t, out, "Contact already exists")
}

func TestMenu_AddRequiresBothFields(t *testing.T) {
	out, list := run(t, nil, "1", "Alice", "", "0")
	assert.Empty(t, list)
	assert.Contains(t, out, "Name and phone are both required")
}

func TestMenu_AddRejectedByStore(t *testing.T) {
	out, list := run(t, nil, "1", "a:b", "1", "0")
	assert.Empty(t, list)
	assert.Contains(t, out, "error: ")
}

func TestMenu_View(t *testing.T) {
	out, _ := run(t, []contacts.Contact{{Name: "Alice", Phone: "123"}, {Name: "Bob", Phone: "456"}}, "2", "0")
	assert.Contains(t, out, "1. Alice:123\n2. Bob:456\n")
}

func TestMenu_ViewEmpty(t *testing.T) {
	out, _ := run(t, nil, "2", "0")
	assert.Contains(t, out, "The phonebook is empty")
}

func TestMenu_Edit(t *testing.T) {
	out, list := run(t, []contacts.Contact{{Name: "Alice", Phone: "123"}, {Name: "Bob", Phone: "456"}}, "3", "2", "Robert", "000", "0")
	assert.Equal(t, []contacts.Contact{{Name: "Alice", Phone: "123"}, {Name: "Robert", Phone: "000"}}, list)
	assert.Contains(t, out, "Robert updated")
}

func TestMenu_Delete(t *testing.T) {
	out, list := run(t, []contacts.Contact{{Name: "Alice", Phone: "123"}, {Name: "Bob", Phone: "456"}}, "4", "1", "0")
	assert.Equal(t, []contacts.Contact{{Name: "Bob", Phone: "456"}}, list)
	assert.Contains(t, out, "Alice deleted")
}

func TestMenu_RejectsOutOfRangeNumber(t *testing.T) {
	seed := []contacts.Contact{{Name: "Alice", Phone: "123"}}
	for _, answer := range []string{"0", "2", "-1", "x"} {
		t.Run(answer, func(t *testing.T) {
			out, list := run(t, seed, "4", answer, "0")
			assert.Equal(t, seed, list)
			assert.Contains(t, out, "Invalid input")
		})
	}
}

func TestMenu_EditEmptyPhonebook(t *testing.T) {
	out, list := run(t, nil, "3", "0")
	assert.Empty(t, list)
	assert.Contains(t, out, "The phonebook is empty")
	assert.NotContains(t, out, "Select contact number")
}

func TestMenu_InvalidCommand(t *testing.T) {
	out, _ := run(t, nil, "hello", "9", "0")
	assert.Contains(t, out, "Invalid input")
	assert.Contains(t, out, "Unknown option 9")
}

func TestMenu_EndOfInputMidPrompt(t *testing.T) {
	_, list := run(t, nil, "1", "Alice")
	assert.Empty(t, list)
}

func TestMenu_CancelledContext(t *testing.T) {
	store, err := contacts.NewFileStore(filepath.Join(t.TempDir(), "p.txt"))
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err = New(store, strings.NewReader("2\n"), &bytes.Buffer{}).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
