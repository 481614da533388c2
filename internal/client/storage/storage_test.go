package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestTokenStore_LoadMissing(t *testing.T) {
	s := NewTokenStore(filepath.Join(t.TempDir(), "token"))
	if _, err := s.Load(); !errors.Is(err, ErrNoSession) {
		t.Fatalf("Load = %v; want ErrNoSession", err)
	}
}

func TestTokenStore_SaveLoadClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".studioctl", "token")
	s := NewTokenStore(path)

	saved := Session{URL: "http://localhost:3001", Username: "admin", Token: "tok"}
	if err := s.Save(saved); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("token file mode = %o; want 600", perm)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Token != "tok" || got.Username != "admin" || got.URL != saved.URL {
		t.Errorf("Load = %+v", got)
	}
	if time.Since(got.SavedAt) > time.Minute {
		t.Errorf("SavedAt not stamped: %v", got.SavedAt)
	}

	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := s.Load(); !errors.Is(err, ErrNoSession) {
		t.Errorf("after Clear, Load = %v; want ErrNoSession", err)
	}
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}

func TestTokenStore_Corrupt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := NewTokenStore(path).Load(); err == nil || errors.Is(err, ErrNoSession) {
		t.Errorf("expected decode error, got %v", err)
	}
}
