package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fusedlens/studio/internal/auth"
	"github.com/fusedlens/studio/internal/models"
	"github.com/fusedlens/studio/internal/store"
)

// Password length bounds for password changes. bcrypt only accepts up to
// 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// TokenIssuer signs and verifies admin tokens.
type TokenIssuer interface {
	Issue(username string) (string, error)
	Verify(token string) (models.Claims, error)
}

// AuthService manages the single admin account.
type AuthService struct {
	doc    *store.Document[models.AdminRecord]
	tokens TokenIssuer
}

// NewAuthService constructs an AuthService over the admin document.
func NewAuthService(doc *store.Document[models.AdminRecord], tokens TokenIssuer) *AuthService {
	return &AuthService{doc: doc, tokens: tokens}
}

// Bootstrap creates the admin record with the given credentials when none
// exists, and hashes a stored plain-text password in place.
func (s *AuthService) Bootstrap(ctx context.Context, username, password string) error {
	_, err := s.doc.Update(ctx, func(rec *models.AdminRecord) error {
		if rec.Admin.Username == "" {
			rec.Admin.Username = username
			rec.Admin.Password = password
		}
		if auth.IsHashed(rec.Admin.Password) {
			return nil
		}
		hash, err := auth.HashPassword(rec.Admin.Password)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		rec.Admin.Password = hash
		return nil
	})
	return err
}

// Login checks the credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", invalid("Username and password required")
	}

	rec, err := s.doc.Get(ctx)
	if err != nil {
		return "", err
	}
	if rec.Admin.Username == "" || username != rec.Admin.Username {
		return "", badCredentials("Invalid credentials")
	}
	if !auth.CheckPassword(rec.Admin.Password, password) {
		return "", badCredentials("Invalid credentials")
	}
	return s.tokens.Issue(username)
}

// Verify returns the claims of a valid token.
func (s *AuthService) Verify(token string) (models.Claims, error) {
	return s.tokens.Verify(token)
}

// ChangePassword replaces the admin password after checking the current one.
func (s *AuthService) ChangePassword(ctx context.Context, current, next string) error {
	if current == "" || next == "" {
		return invalid("Current and new password required")
	}
	if len(next) < MinPasswordLength {
		return invalid("New password must be at least %d characters", MinPasswordLength)
	}
	if len(next) > MaxPasswordLength {
		return invalid("New password must be at most %d bytes", MaxPasswordLength)
	}

	_, err := s.doc.Update(ctx, func(rec *models.AdminRecord) error {
		if !auth.CheckPassword(rec.Admin.Password, current) {
			return badCredentials("Current password is incorrect")
		}
		hash, err := auth.HashPassword(next)
		if err != nil {
			return fmt.Errorf("hash admin password: %w", err)
		}
		rec.Admin.Password = hash
		return nil
	})
	return err
}
