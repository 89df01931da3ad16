package cmd

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/josephgoksu/taskvoice/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatchTaskFile_RefreshesOnSaveOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tasks.json")

	writer, err := store.NewFileTaskStore(path)
	require.NoError(t, err)
	defer func() { _ = writer.Close() }()

	watcher, err := newTaskFileWatcher(path)
	require.NoError(t, err)
	defer func() { _ = watcher.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var refreshes atomic.Int32
	changed := make(chan struct{}, 16)
	done := make(chan error, 1)
	go func() {
		done <- runTaskFileWatch(ctx, watcher, path, func() error {
			refreshes.Add(1)
			changed <- struct{}{}
			return nil
		})
	}()

	// Neighbouring files must not trigger a refresh.
	require.NoError(t, os.WriteFile(path+".lock", nil, 0o644))
	require.NoError(t, os.WriteFile(path+".0f8fad5b.tmp", []byte("{}"), 0o644))
	require.NoError(t, os.Remove(path+".0f8fad5b.tmp"))
	time.Sleep(3 * watchDebounce)
	assert.Equal(t, int32(0), refreshes.Load(), "lock and temp files should be ignored")

	other, err := store.NewFileTaskStore(path)
	require.NoError(t, err)
	defer func() { _ = other.Close() }()
	_, err = other.Add("buy milk", nil)
	require.NoError(t, err)

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a refresh after the task file was saved")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watch loop did not stop after cancellation")
	}
}
