package watch

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/require"

	"ylwblog/internal/build"
	"ylwblog/internal/domain/config"
)

type fakeRebuilder struct {
	runs atomic.Int32
	err  error
}

func (f *fakeRebuilder) Run(ctx context.Context) (*build.Result, error) {
	f.runs.Add(1)
	if f.err != nil {
		return nil, f.err
	}
	return &build.Result{}, nil
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(root string) config.Config {
	cfg := config.Default()
	cfg.Posts.ContentRoot = root
	cfg.Watch.Debounce = 50 * time.Millisecond
	return cfg
}

func TestRelevant(t *testing.T) {
	root := t.TempDir()
	w, err := New(testConfig(root), &fakeRebuilder{}, quietLogger())
	require.NoError(t, err)

	post := filepath.Join(root, "posts", "a.md")
	cases := []struct {
		name string
		ev   fsnotify.Event
		want bool
	}{
		{"write post", fsnotify.Event{Name: post, Op: fsnotify.Write}, true},
		{"create post", fsnotify.Event{Name: post, Op: fsnotify.Create}, true},
		{"remove post", fsnotify.Event{Name: post, Op: fsnotify.Remove}, true},
		{"rename post", fsnotify.Event{Name: post, Op: fsnotify.Rename}, true},
		{"chmod post", fsnotify.Event{Name: post, Op: fsnotify.Chmod}, false},
		{"other dir", fsnotify.Event{Name: filepath.Join(root, "guide", "a.md"), Op: fsnotify.Write}, false},
		{"not markdown", fsnotify.Event{Name: filepath.Join(root, "posts", "a.png"), Op: fsnotify.Write}, false},
		{"nested too deep", fsnotify.Event{Name: filepath.Join(root, "posts", "x", "a.md"), Op: fsnotify.Write}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, w.Relevant(tc.ev))
		})
	}
}

func TestNew_FallsBackToIncludePatterns(t *testing.T) {
	cfg := testConfig(t.TempDir())
	cfg.Watch.Patterns = nil
	cfg.Posts.Include = []string{"notes/*.md"}

	w, err := New(cfg, &fakeRebuilder{}, nil)
	require.NoError(t, err)
	require.True(t, w.Relevant(fsnotify.Event{Name: filepath.Join(cfg.Posts.ContentRoot, "notes", "n.md"), Op: fsnotify.Write}))
}

func TestRun_InitialBuildErrorIsFatal(t *testing.T) {
	rb := &fakeRebuilder{err: errors.New("boom")}
	w, err := New(testConfig(t.TempDir()), rb, quietLogger())
	require.NoError(t, err)
	defer w.Close()

	err = w.Run(context.Background())
	require.EqualError(t, err, "boom")
	require.EqualValues(t, 1, rb.runs.Load())
}

func TestRun_DebouncesBurstIntoOneRebuild(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "posts"), 0o755))

	rb := &fakeRebuilder{}
	w, err := New(testConfig(root), rb, quietLogger())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// wait for the initial build and the watcher to come up
	require.Eventually(t, func() bool { return rb.runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	p := filepath.Join(root, "posts", "a.md")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(p, []byte("---\ntitle: A\n---\n"), 0o644))
		time.Sleep(5 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return rb.runs.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(200 * time.Millisecond)
	require.EqualValues(t, 2, rb.runs.Load())

	cancel()
	require.NoError(t, <-done)
}
