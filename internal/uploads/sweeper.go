package uploads

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/fusedlens/studio/internal/metrics"
)

// ReferencedFunc returns the set of upload URLs still used by documents.
type ReferencedFunc func(ctx context.Context) (map[string]struct{}, error)

// StartSweeper removes uploaded files that no document references and that
// are older than retention, every interval, until ctx is canceled.
func StartSweeper(
	ctx context.Context,
	dir *Dir,
	interval time.Duration,
	retention time.Duration,
	referenced ReferencedFunc,
	log *zap.Logger,
) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := Sweep(ctx, dir, time.Now().Add(-retention), referenced)
				if err != nil {
					log.Error("failed to sweep orphaned uploads", zap.Error(err))
					continue
				}
				metrics.RecordSwept(removed)
				if removed > 0 {
					log.Info("swept orphaned uploads", zap.Int("removed", removed))
				}
			}
		}
	}()
}

// Sweep deletes unreferenced files last modified before cutoff and returns
// how many were removed.
func Sweep(ctx context.Context, dir *Dir, cutoff time.Time, referenced ReferencedFunc) (int, error) {
	refs, err := referenced(ctx)
	if err != nil {
		return 0, err
	}
	entries, err := os.ReadDir(dir.root)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if _, ok := refs[URLPrefix+e.Name()]; ok {
			continue
		}
		info, err := e.Info()
		if err != nil || !info.ModTime().Before(cutoff) {
			continue
		}
		if err := os.Remove(filepath.Join(dir.root, e.Name())); err == nil {
			removed++
		}
	}
	return removed, nil
}
