package uploads

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func writeAged(t *testing.T, d *Dir, name string, age time.Duration) {
	t.Helper()
	p := filepath.Join(d.Root(), name)
	require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	ts := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(p, ts, ts))
}

func refs(urls ...string) ReferencedFunc {
	return func(context.Context) (map[string]struct{}, error) {
		m := make(map[string]struct{}, len(urls))
		for _, u := range urls {
			m[u] = struct{}{}
		}
		return m, nil
	}
}

func TestSweep(t *testing.T) {
	d := newDir(t, 1<<20)
	writeAged(t, d, "old-orphan.jpg", 48*time.Hour)
	writeAged(t, d, "old-used.jpg", 48*time.Hour)
	writeAged(t, d, "fresh-orphan.jpg", time.Minute)

	removed, err := Sweep(context.Background(), d, time.Now().Add(-24*time.Hour), refs("/uploads/old-used.jpg"))
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	entries, err := os.ReadDir(d.Root())
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"old-used.jpg", "fresh-orphan.jpg"}, names)
}

func TestStartSweeper_RemovesOrphans(t *testing.T) {
	d := newDir(t, 1<<20)
	writeAged(t, d, "orphan.jpg", 2*time.Hour)

	core, logs := observer.New(zapcore.InfoLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	StartSweeper(ctx, d, 10*time.Millisecond, time.Hour, refs(), zap.New(core))

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("swept orphaned uploads").Len() > 0
	}, 2*time.Second, 10*time.Millisecond)

	_, err := os.Stat(filepath.Join(d.Root(), "orphan.jpg"))
	assert.True(t, os.IsNotExist(err))
}

func TestStartSweeper_ErrorLogged(t *testing.T) {
	d := newDir(t, 1<<20)
	core, logs := observer.New(zapcore.ErrorLevel)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	failing := func(context.Context) (map[string]struct{}, error) {
		return nil, errors.New("document unreadable")
	}
	StartSweeper(ctx, d, 10*time.Millisecond, time.Hour, failing, zap.New(core))

	assert.Eventually(t, func() bool {
		return logs.FilterMessage("failed to sweep orphaned uploads").Len() > 0
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStartSweeper_CancelBeforeTicker(t *testing.T) {
	d := newDir(t, 1<<20)
	writeAged(t, d, "orphan.jpg", 2*time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	StartSweeper(ctx, d, 100*time.Millisecond, time.Hour, refs(), zap.NewNop())
	cancel()

	time.Sleep(150 * time.Millisecond)

	_, err := os.Stat(filepath.Join(d.Root(), "orphan.jpg"))
	assert.NoError(t, err)
}
