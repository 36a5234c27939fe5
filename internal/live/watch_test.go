package live

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sarchart/sarchart/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flag")

	assert.Equal(t, WatchState{}, Snapshot(path))

	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))
	first := Snapshot(path)
	assert.True(t, first.Exists)
	assert.True(t, first.Equal(Snapshot(path)))

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(path, later, later))
	assert.False(t, first.Equal(Snapshot(path)))
}

func TestWatchState_Equal(t *testing.T) {
	at := time.Unix(1000, 0)
	base := WatchState{Inode: 5, ModTime: at, Exists: true}

	tests := []struct {
		name  string
		other WatchState
		want  bool
	}{
		{"same", WatchState{Inode: 5, ModTime: at, Exists: true}, true},
		{"same instant other zone", WatchState{Inode: 5, ModTime: at.UTC(), Exists: true}, true},
		{"replaced", WatchState{Inode: 6, ModTime: at, Exists: true}, false},
		{"touched", WatchState{Inode: 5, ModTime: at.Add(time.Second), Exists: true}, false},
		{"removed", WatchState{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, base.Equal(tt.other))
		})
	}
}

func TestWatcher_WakesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "flag")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	w := newWatcher(path, logger.Noop())
	require.NotNil(t, w)
	defer w.Close()

	// other files in the directory are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other"), []byte("y"), 0644))
	select {
	case <-w.Wake():
		t.Fatal("woke for an unrelated file")
	case <-time.After(100 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("changed"), 0644))
	select {
	case <-w.Wake():
	case <-time.After(5 * time.Second):
		t.Fatal("no wake-up after the watched file changed")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	log := logger.NewBufferLogger()
	w := newWatcher(filepath.Join(t.TempDir(), "nope", "flag"), log)

	assert.Nil(t, w)
	assert.Nil(t, w.Wake())
	assert.True(t, log.HasLevel("warn"))
	w.Close()
}
