package out

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestFSNotifierDebouncesDatabaseWrites(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	dbPath := filepath.Join(dir, "leadtrack.db")
	require.NoError(t, os.WriteFile(dbPath, nil, 0o644))

	notifier := NewFSNotifier(dbPath, 30*time.Millisecond, zerolog.Nop())
	var calls atomic.Int32
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- notifier.Watch(ctx, func() { calls.Add(1) }) }()

	// give the watcher time to register the directory
	time.Sleep(50 * time.Millisecond)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "unrelated.txt"), []byte("x"), 0o644))
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(dbPath, []byte{byte(i)}, 0o644))
	}
	require.NoError(t, os.WriteFile(dbPath+"-journal", []byte("j"), 0o644))

	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.LessOrEqual(t, calls.Load(), int32(2))

	cancel()
	require.NoError(t, <-done)
}

func TestFSNotifierMissingDirectory(t *testing.T) {
	notifier := NewFSNotifier(filepath.Join(t.TempDir(), "missing", "leadtrack.db"), 0, zerolog.Nop())
	err := notifier.Watch(context.Background(), func() {})
	assert.Error(t, err)
}
