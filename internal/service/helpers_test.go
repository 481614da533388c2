package service

import (
	"errors"
	"testing"
	"time"

	"github.com/fusedlens/studio/internal/repository"
	"github.com/fusedlens/studio/internal/store"
)

func newDocs(t *testing.T) *repository.Documents {
	t.Helper()
	s, err := store.NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	return repository.New(s)
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func assertKind(t *testing.T, err, kind error, msg string) {
	t.Helper()
	if !errors.Is(err, kind) {
		t.Fatalf("error = %v; want kind %v", err, kind)
	}
	if msg != "" && err.Error() != msg {
		t.Errorf("message = %q; want %q", err.Error(), msg)
	}
}
