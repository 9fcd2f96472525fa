package main

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/phonebook/internal/config"
	"github.com/jeanpaul/phonebook/internal/contacts"
	"github.com/jeanpaul/phonebook/internal/transfer"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.DataFile = filepath.Join(t.TempDir(), "phonebook.txt")
	return cfg
}

func discard() *slog.Logger { return slog.New(slog.DiscardHandler) }

// captureStdout runs fn with os.Stdout redirected and returns what it wrote.
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	require.NoError(t, err)
	orig := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = orig }()

	done := make(chan string)
	go func() {
		data, _ := io.ReadAll(r)
		done <- string(data)
	}()
	fn()
	require.NoError(t, w.Close())
	return <-done
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"1", 0, false},
		{"12", 11, false},
		{"0", 0, true},
		{"-3", 0, true},
		{"two", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseIndex(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "parseIndex(%q)", tt.in)
			continue
		}
		require.NoError(t, err, "parseIndex(%q)", tt.in)
		assert.Equal(t, tt.want, got, "parseIndex(%q)", tt.in)
	}
}

func TestDescribe(t *testing.T) {
	assert.NoError(t, describe(nil))
	assert.EqualError(t, describe(&contacts.IndexError{Index: 4, Len: 2}), "no contact number 5 (have 1-2)")
	assert.EqualError(t, describe(&contacts.IndexError{Index: 0, Len: 0}), "the phonebook is empty")

	other := os.ErrPermission
	assert.Equal(t, other, describe(other))
}

func TestPrintList(t *testing.T) {
	var buf bytes.Buffer
	printList(&buf, []contacts.Contact{{Name: "Alice", Phone: "123"}, {Name: "Bob", Phone: "456"}})

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "1.")
	assert.Contains(t, lines[0], "Alice")
	assert.Contains(t, lines[1], "456")
}

func TestCommands_AddUpdateDelete(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	require.NoError(t, cmdAdd(ctx, cfg, discard(), []string{"Alice", "123"}))
	require.NoError(t, cmdAdd(ctx, cfg, discard(), []string{"Bob", "456"}))
	// duplicate is reported, not an error
	require.NoError(t, cmdAdd(ctx, cfg, discard(), []string{"Bob", "456"}))

	require.NoError(t, cmdUpdate(ctx, cfg, discard(), []string{"2", "Bob", "789"}))
	require.NoError(t, cmdDelete(ctx, cfg, discard(), []string{"1"}))

	data, err := os.ReadFile(cfg.DataFile)
	require.NoError(t, err)
	assert.Equal(t, "Bob:789\n", string(data))

	assert.EqualError(t, cmdDelete(ctx, cfg, discard(), []string{"3"}), "no contact number 3 (have 1-1)")
	assert.Error(t, cmdAdd(ctx, cfg, discard(), []string{"Alice"}))
	assert.Error(t, cmdAdd(ctx, cfg, discard(), []string{" ", "123"}))
	assert.Error(t, cmdUpdate(ctx, cfg, discard(), []string{"x", "a", "b"}))
}

func TestCommands_ExportImport(t *testing.T) {
	ctx := context.Background()
	src := testConfig(t)
	require.NoError(t, cmdAdd(ctx, src, discard(), []string{"Alice", "123"}))
	require.NoError(t, cmdAdd(ctx, src, discard(), []string{"Bob", "456"}))

	dir := t.TempDir()
	require.NoError(t, cmdExport(ctx, src, discard(), []string{filepath.Join(dir, "out.json")}))
	require.NoError(t, cmdExport(ctx, src, discard(), []string{filepath.Join(dir, "out.xlsx")}))

	dst := testConfig(t)
	require.NoError(t, cmdAdd(ctx, dst, discard(), []string{"Alice", "123"}))

	require.NoError(t, cmdImport(ctx, dst, discard(), []string{"--dry-run", filepath.Join(dir, "*.json")}))
	data, err := os.ReadFile(dst.DataFile)
	require.NoError(t, err)
	assert.Equal(t, "Alice:123\n", string(data), "dry run must not write")

	require.NoError(t, cmdImport(ctx, dst, discard(), []string{filepath.Join(dir, "out.*")}))
	data, err = os.ReadFile(dst.DataFile)
	require.NoError(t, err)
	assert.Equal(t, "Alice:123\nBob:456\n", string(data))

	assert.Error(t, cmdImport(ctx, dst, discard(), nil))
}

func TestCmdConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	require.NoError(t, cmdConfig(path, []string{"init"}))
	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, config.DefaultConfig().DataFile, cfg.DataFile)

	assert.Error(t, cmdConfig(path, []string{"init"}), "existing file needs --force")
	assert.NoError(t, cmdConfig(path, []string{"init", "--force"}))
	assert.Error(t, cmdConfig(path, nil))
}

func TestCmdDoctor(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	configPath := filepath.Join(t.TempDir(), "missing.yaml")

	assert.NoError(t, cmdDoctor(ctx, cfg, configPath), "missing data file is fine")

	require.NoError(t, os.WriteFile(cfg.DataFile, []byte("no separator\n"), 0644))
	assert.Error(t, cmdDoctor(ctx, cfg, configPath))
}

func TestCmdList(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	require.NoError(t, cmdAdd(ctx, cfg, discard(), []string{"Alice", "123"}))
	require.NoError(t, cmdAdd(ctx, cfg, discard(), []string{"Bob", "456"}))

	var err error
	out := captureStdout(t, func() { err = cmdList(ctx, cfg, discard(), nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "1.")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "456")

	out = captureStdout(t, func() { err = cmdList(ctx, cfg, discard(), []string{"--markdown"}) })
	require.NoError(t, err)
	assert.Contains(t, out, "Name")
	assert.Contains(t, out, "Phone")
	assert.Contains(t, out, "Alice")
	assert.Contains(t, out, "Bob")
	assert.Contains(t, out, "456")

	assert.Error(t, cmdList(ctx, cfg, discard(), []string{"--nope"}))
}

func TestCmdList_Empty(t *testing.T) {
	var err error
	out := captureStdout(t, func() { err = cmdList(context.Background(), testConfig(t), discard(), nil) })
	require.NoError(t, err)
	assert.Contains(t, out, "The phonebook is empty")
}

func TestOverrideDataFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := testConfig(t)
	orig := cfg.DataFile
	overrideDataFile(cfg, "")
	assert.Equal(t, orig, cfg.DataFile)

	overrideDataFile(cfg, "~/work.txt")
	assert.Equal(t, filepath.Join(home, "work.txt"), cfg.DataFile)
}

func TestCmdImport_UnstorableSpreadsheetRowChangesNothing(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)
	require.NoError(t, cmdAdd(ctx, cfg, discard(), []string{"Zed", "0"}))

	src := filepath.Join(t.TempDir(), "contacts.xlsx")
	require.NoError(t, transfer.ExportXLSX(src, []contacts.Contact{{Name: "Alice", Phone: "1"}, {Name: "Bob:Jr", Phone: "2"}, {Name: "Carol", Phone: "3"}}))

	err := cmdImport(ctx, cfg, discard(), []string{"--dry-run", src})
	assert.ErrorIs(t, err, contacts.ErrInvalidField)
	err = cmdImport(ctx, cfg, discard(), []string{src})
	assert.ErrorIs(t, err, contacts.ErrInvalidField)

	data, err := os.ReadFile(cfg.DataFile)
	require.NoError(t, err)
	assert.Equal(t, "Zed:0\n", string(data))
}
