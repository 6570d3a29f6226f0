package session

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatcher_RecordsWrites(t *testing.T) {
	root := t.TempDir()
	tracker := NewTracker()

	watcher, err := NewWatcher(tracker, root, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		watcher.Run(ctx)
	}()

	path := filepath.Join(root, "out.ts")
	require.NoError(t, os.WriteFile(path, []byte("export const a = 1;\n"), 0644))

	require.Eventually(t, func() bool {
		return tracker.WasWritten(path)
	}, 5*time.Second, 10*time.Millisecond, "watcher should record the write")

	cancel()
	require.NoError(t, watcher.Close())
	<-done
}

func TestWatcher_CloseStopsRun(t *testing.T) {
	root := t.TempDir()
	watcher, err := NewWatcher(NewTracker(), root, nil)
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		defer close(done)
		watcher.Run(context.Background())
	}()

	require.NoError(t, watcher.Close())
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after Close")
	}
}
