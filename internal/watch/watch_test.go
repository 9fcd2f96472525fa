package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func waitSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case _, ok := <-ch:
		require.True(t, ok, "channel closed before a change was reported")
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
}

func TestFile_ReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phonebook.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := File(ctx, path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("Alice:123\n"), 0644))
	waitSignal(t, ch)
}

func TestFile_ReportsRenameOver(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phonebook.txt")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := File(ctx, path, nil)
	require.NoError(t, err)

	tmp := filepath.Join(dir, ".phonebook.txt.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("Bob:456\n"), 0644))
	require.NoError(t, os.Rename(tmp, path))
	waitSignal(t, ch)
}

func TestFile_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phonebook.txt")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ch, err := File(ctx, path, nil)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644))
	select {
	case <-ch:
		t.Fatal("unexpected change for unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestFile_ClosesOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ch, err := File(ctx, filepath.Join(t.TempDir(), "p.txt"), nil)
	require.NoError(t, err)

	cancel()
	select {
	case _, ok := <-ch:
		require.False(t, ok)
	case <-time.After(5 * time.Second):
		t.Fatal("channel not closed after cancel")
	}
}

func TestFile_MissingDirectory(t *testing.T) {
	_, err := File(context.Background(), filepath.Join(t.TempDir(), "no", "p.txt"), nil)
	require.Error(t, err)
}
