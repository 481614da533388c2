// Package api is a typed client for the studio admin endpoints.
package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/fusedlens/studio/internal/models"
)

// Error is a non-2xx answer from the server.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err means the token is missing or no
// longer valid.
func IsUnauthorized(err error) bool {
	var e *Error
	return errors.As(err, &e) && (e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden)
}

// Client calls the studio API on behalf of a logged-in admin.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New returns a client for baseURL. token may be empty before login.
func New(baseURL string, hc *http.Client, token string) *Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, http: hc, token: token}
}

// NewHTTPClient returns an HTTP client that additionally trusts the PEM
// certificate in caFile, for servers using a self-signed certificate.
// An empty caFile uses the system roots.
func NewHTTPClient(caFile string) (*http.Client, error) {
	client := &http.Client{Timeout: 10 * time.Second}
	if caFile == "" {
		return client, nil
	}
	caCert, err := os.ReadFile(caFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read CA cert: %w", err)
	}
	caPool, err := x509.SystemCertPool()
	if err != nil {
		caPool = x509.NewCertPool()
	}
	if !caPool.AppendCertsFromPEM(caCert) {
		return nil, errors.New("failed to parse CA cert")
	}
	client.Transport = &http.Transport{
		TLSClientConfig: &tls.Config{RootCAs: caPool, MinVersion: tls.VersionTLS12},
	}
	return client, nil
}

// SetToken replaces the bearer token.
func (c *Client) SetToken(token string) { c.token = token }

// Login exchanges credentials for a token and keeps it for later calls.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var out struct {
		Token string `json:"token"`
	}
	in := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", in, &out); err != nil {
		return "", err
	}
	c.token = out.Token
	return out.Token, nil
}

// Verify checks the current token.
func (c *Client) Verify(ctx context.Context) (models.Claims, error) {
	var out struct {
		User models.Claims `json:"user"`
	}
	err := c.do(ctx, http.MethodGet, "/api/auth/verify", nil, &out)
	return out.User, err
}

// ChangePassword replaces the admin password.
func (c *Client) ChangePassword(ctx context.Context, current, next string) error {
	in := map[string]string{"currentPassword": current, "newPassword": next}
	return c.do(ctx, http.MethodPost, "/api/auth/change-password", in, nil)
}

// Contacts lists contact form submissions.
func (c *Client) Contacts(ctx context.Context) ([]models.Contact, error) {
	var out []models.Contact
	err := c.do(ctx, http.MethodGet, "/api/contact", nil, &out)
	return out, err
}

// SetContactStatus moves a submission to status.
func (c *Client) SetContactStatus(ctx context.Context, id, status string) (models.Contact, error) {
	var out models.Contact
	err := c.do(ctx, http.MethodPut, "/api/contact/"+url.PathEscape(id), map[string]string{"status": status}, &out)
	return out, err
}

// Comments lists every photo comment, approved or not.
func (c *Client) Comments(ctx context.Context) ([]models.Comment, error) {
	var out []models.Comment
	err := c.do(ctx, http.MethodGet, "/api/comments", nil, &out)
	return out, err
}

// SetApproved approves or hides a comment.
func (c *Client) SetApproved(ctx context.Context, id string, approved bool) (models.Comment, error) {
	var out models.Comment
	err := c.do(ctx, http.MethodPut, "/api/comments/"+url.PathEscape(id), map[string]bool{"approved": approved}, &out)
	return out, err
}

// DeleteComment removes a comment.
func (c *Client) DeleteComment(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/comments/"+url.PathEscape(id), nil, nil)
}

// Photos lists the photos of category in display order.
func (c *Client) Photos(ctx context.Context, category string) ([]models.Photo, error) {
	if category == "" {
		category = models.AllCategory
	}
	var out []models.Photo
	err := c.do(ctx, http.MethodGet, "/api/photos/category/"+url.PathEscape(category), nil, &out)
	return out, err
}

// Reorder moves the photos with ids to the front of the portfolio in the
// given order. The other photos keep their relative order behind them.
func (c *Client) Reorder(ctx context.Context, ids []string) ([]models.Photo, error) {
	current, err := c.Photos(ctx, models.AllCategory)
	if err != nil {
		return nil, err
	}
	order, err := frontOrder(current, ids)
	if err != nil {
		return nil, err
	}
	var out struct {
		Photos []models.Photo `json:"photos"`
	}
	err = c.do(ctx, http.MethodPut, "/api/photos/reorder/batch", map[string]any{"order": order}, &out)
	return out.Photos, err
}

// frontOrder numbers every photo of current 1..n with ids first.
func frontOrder(current []models.Photo, ids []string) ([]models.PhotoOrder, error) {
	known := make(map[string]bool, len(current))
	for _, p := range current {
		known[p.ID] = true
	}
	listed := make(map[string]bool, len(ids))
	order := make([]models.PhotoOrder, 0, len(current))
	for _, id := range ids {
		if !known[id] {
			return nil, fmt.Errorf("unknown photo %q", id)
		}
		if listed[id] {
			return nil, fmt.Errorf("photo %q listed twice", id)
		}
		listed[id] = true
		order = append(order, models.PhotoOrder{ID: id, Order: len(order) + 1})
	}
	for _, p := range current {
		if !listed[p.ID] {
			order = append(order, models.PhotoOrder{ID: p.ID, Order: len(order) + 1})
		}
	}
	return order, nil
}

func (c *Client) do(ctx context.Context, method, path string, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s failed: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
		var e struct {
			Error string `json:"error"`
		}
		msg := string(bytes.TrimSpace(data))
		if json.Unmarshal(data, &e) == nil && e.Error != "" {
			msg = e.Error
		}
		return &Error{Status: resp.StatusCode, Message: msg}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
