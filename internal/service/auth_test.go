package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fusedlens/studio/internal/auth"
	"github.com/fusedlens/studio/internal/models"
	"github.com/fusedlens/studio/internal/repository"
)

func newAuth(t *testing.T) (*AuthService, *repository.Documents) {
	t.Helper()
	docs := newDocs(t)
	return NewAuthService(docs.Admin, auth.NewTokenManager("test-secret", time.Hour)), docs
}

func TestBootstrap_CreatesHashedAdmin(t *testing.T) {
	svc, docs := newAuth(t)
	ctx := context.Background()

	if err := svc.Bootstrap(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	rec, err := docs.Admin.Get(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Admin.Username != "admin" {
		t.Errorf("username = %q; want admin", rec.Admin.Username)
	}
	if !auth.IsHashed(rec.Admin.Password) || !auth.CheckPassword(rec.Admin.Password, "admin123") {
		t.Errorf("password not stored as bcrypt hash of default: %q", rec.Admin.Password)
	}
}

func TestBootstrap_HashesPlainTextAndKeepsExisting(t *testing.T) {
	svc, docs := newAuth(t)
	ctx := context.Background()
	_, err := docs.Admin.Update(ctx, func(r *models.AdminRecord) error {
		r.Admin = models.Admin{Username: "studio", Password: "plain-pass"}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := svc.Bootstrap(ctx, "admin", "admin123"); err != nil {
		t.Fatalf("Bootstrap returned error: %v", err)
	}
	rec, _ := docs.Admin.Get(ctx)
	if rec.Admin.Username != "studio" {
		t.Errorf("username = %q; want existing studio", rec.Admin.Username)
	}
	if !auth.CheckPassword(rec.Admin.Password, "plain-pass") {
		t.Error("stored plain-text password should be hashed in place")
	}

	hash := rec.Admin.Password
	if err := svc.Bootstrap(ctx, "admin", "admin123"); err != nil {
		t.Fatal(err)
	}
	rec, _ = docs.Admin.Get(ctx)
	if rec.Admin.Password != hash {
		t.Error("an existing hash must not be rehashed")
	}
}

func TestLogin(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()
	if err := svc.Bootstrap(ctx, "admin", "admin123"); err != nil {
		t.Fatal(err)
	}

	tok, err := svc.Login(ctx, "admin", "admin123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	claims, err := svc.Verify(tok)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if claims.Username != "admin" || claims.Role != "admin" {
		t.Errorf("claims = %+v", claims)
	}

	_, err = svc.Login(ctx, "admin", "wrong")
	assertKind(t, err, ErrInvalidCredentials, "Invalid credentials")

	_, err = svc.Login(ctx, "root", "admin123")
	assertKind(t, err, ErrInvalidCredentials, "Invalid credentials")

	_, err = svc.Login(ctx, "", "admin123")
	assertKind(t, err, ErrInvalidInput, "Username and password required")
}

func TestChangePassword(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()
	if err := svc.Bootstrap(ctx, "admin", "admin123"); err != nil {
		t.Fatal(err)
	}

	assertKind(t, svc.ChangePassword(ctx, "", "newpass1"), ErrInvalidInput, "Current and new password required")
	assertKind(t, svc.ChangePassword(ctx, "admin123", "short"), ErrInvalidInput, "")
	assertKind(t, svc.ChangePassword(ctx, "nope", "newpass1"), ErrInvalidCredentials, "Current password is incorrect")
	assertKind(t, svc.ChangePassword(ctx, "admin123", strings.Repeat("x", 80)), ErrInvalidInput, "New password must be at most 72 bytes")

	if err := svc.ChangePassword(ctx, "admin123", "newpass1"); err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if _, err := svc.Login(ctx, "admin", "admin123"); err == nil {
		t.Error("old password should no longer work")
	}
	if _, err := svc.Login(ctx, "admin", "newpass1"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestChangePassword_LengthLimit(t *testing.T) {
	svc, _ := newAuth(t)
	ctx := context.Background()
	if err := svc.Bootstrap(ctx, "admin", "admin123"); err != nil {
		t.Fatal(err)
	}

	// 37 two-byte runes are 74 bytes.
	assertKind(t, svc.ChangePassword(ctx, "admin123", strings.Repeat("é", 37)), ErrInvalidInput, "")

	longest := strings.Repeat("p", MaxPasswordLength)
	if err := svc.ChangePassword(ctx, "admin123", longest); err != nil {
		t.Fatalf("%d-byte password rejected: %v", MaxPasswordLength, err)
	}
	if _, err := svc.Login(ctx, "admin", longest); err != nil {
		t.Errorf("login with %d-byte password failed: %v", MaxPasswordLength, err)
	}
}
