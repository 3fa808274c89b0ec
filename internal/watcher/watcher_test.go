package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/sdktable/internal/fileutil"
	"github.com/zjrosen/sdktable/internal/watcher"
)

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{Path: path, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err)
	return onChange
}

func requireSignal(t *testing.T, onChange <-chan struct{}) {
	t.Helper()
	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected change notification")
	}
}

func requireQuiet(t *testing.T, onChange <-chan struct{}, wait time.Duration) {
	t.Helper()
	select {
	case <-onChange:
		t.Fatal("unexpected change notification")
	case <-time.After(wait):
	}
}

func TestWatcher_CoalescesRapidWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdk.table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o600))

	onChange := startWatcher(t, path)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("version: 1\n# %d\n", i)), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	requireSignal(t, onChange)
	requireQuiet(t, onChange, 150*time.Millisecond)
}

func TestWatcher_AtomicReplace(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdk.table.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o600))

	onChange := startWatcher(t, path)

	require.NoError(t, fileutil.WriteAtomic(afero.NewOsFs(), path, []byte("version: 1\nsdks: []\n"), 0o600))

	requireSignal(t, onChange)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sdk.table.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("version: 1\n"), 0o600))
	require.NoError(t, os.WriteFile(other, []byte("initial"), 0o600))

	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(other, []byte("changed"), 0o600))

	requireQuiet(t, onChange, 150*time.Millisecond)
}

func TestWatcher_SQLiteWAL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sdktable.db")
	require.NoError(t, os.WriteFile(path, []byte("db"), 0o600))

	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path+"-wal", []byte("wal"), 0o600))

	requireSignal(t, onChange)
}

func TestWatcher_StopTwice(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdk.table.yaml")
	w, err := watcher.New(watcher.DefaultConfig(path))
	require.NoError(t, err)

	_, err = w.Start()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		_ = w.Stop()
		_ = w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop timed out")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.DefaultConfig(filepath.Join(t.TempDir(), "absent", "sdk.table.yaml")))
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.Error(t, err)
}

func TestDefaultConfig(t *testing.T) {
	cfg := watcher.DefaultConfig("/tables/sdk.table.yaml")

	require.Equal(t, "/tables/sdk.table.yaml", cfg.Path)
	require.Equal(t, watcher.DefaultDebounce, cfg.Debounce)
}
