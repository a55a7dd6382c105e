package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// collector gathers handler invocations across goroutines.
type collector struct {
	mu        sync.Mutex
	ids       []string
	active    int
	maxActive int
	delay     time.Duration
}

func (c *collector) handle(sourceID string) {
	c.mu.Lock()
	c.active++
	if c.active > c.maxActive {
		c.maxActive = c.active
	}
	c.ids = append(c.ids, sourceID)
	delay := c.delay
	c.mu.Unlock()

	time.Sleep(delay)

	c.mu.Lock()
	c.active--
	c.mu.Unlock()
}

func (c *collector) snapshot() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.ids...)
}

func TestSourceIDFromPath(t *testing.T) {
	assert.Equal(t, "bmi_entry", sourceIDFromPath("/data/raw/bmi_entry.html"))
	assert.Equal(t, "page", sourceIDFromPath("page.HTML"))
}

func TestWatcher_TriggersOnHTMLWrite(t *testing.T) {
	dir := t.TempDir()
	c := &collector{}

	w := New(dir, c.handle)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher a moment to register before writing.
	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bmi_entry.html"), []byte("<html></html>"), 0o644))

	require.Eventually(t, func() bool {
		ids := c.snapshot()
		return len(ids) == 1 && ids[0] == "bmi_entry"
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcher_IgnoresNonHTML(t *testing.T) {
	dir := t.TempDir()
	c := &collector{}

	w := New(dir, c.handle)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	time.Sleep(300 * time.Millisecond)
	assert.Empty(t, c.snapshot())
}

func TestWatcher_SerializesHandlers(t *testing.T) {
	dir := t.TempDir()
	c := &collector{delay: 100 * time.Millisecond}

	w := New(dir, c.handle)
	w.debounce = 20 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(100 * time.Millisecond)
	// Two sources change inside one debounce window; their timers expire
	// together, but the handler rebuilds shared stores and must not run
	// for both at once.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page_a.html"), []byte("<html></html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "page_b.html"), []byte("<html></html>"), 0o644))

	require.Eventually(t, func() bool {
		ids := c.snapshot()
		return len(ids) == 2
	}, 3*time.Second, 10*time.Millisecond)
	assert.ElementsMatch(t, []string{"page_a", "page_b"}, c.snapshot())

	c.mu.Lock()
	maxActive := c.maxActive
	c.mu.Unlock()
	assert.Equal(t, 1, maxActive, "handler invocations must not overlap")
}

func TestWatcher_DebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	c := &collector{}

	w := New(dir, c.handle)
	w.debounce = 150 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	time.Sleep(100 * time.Millisecond)
	path := filepath.Join(dir, "page_a.html")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte("<html></html>"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool {
		return len(c.snapshot()) >= 1
	}, 2*time.Second, 10*time.Millisecond)

	// The burst collapses into a single invocation.
	time.Sleep(300 * time.Millisecond)
	assert.Len(t, c.snapshot(), 1)
}
