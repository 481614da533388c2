// Package uploads stores portfolio images on local disk and serves their
// public URLs under /uploads/.
package uploads

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/google/uuid"
)

// URLPrefix is the public path uploaded files are served from.
const URLPrefix = "/uploads/"

var (
	// ErrUnsupportedType is returned for files that are not JPEG, PNG or WebP.
	ErrUnsupportedType = errors.New("invalid file type. Only JPEG, PNG, and WebP allowed")
	// ErrTooLarge is returned for files above the configured limit.
	ErrTooLarge = errors.New("file too large")
)

// AllowedTypes are the accepted image MIME types.
var AllowedTypes = []string{"image/jpeg", "image/png", "image/webp"}

// Dir is an upload directory.
type Dir struct {
	root     string
	maxBytes int64
}

// New creates root if needed.
func New(root string, maxBytes int64) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Dir{root: root, maxBytes: maxBytes}, nil
}

// Root returns the directory path.
func (d *Dir) Root() string { return d.root }

// MaxBytes returns the per-file size limit.
func (d *Dir) MaxBytes() int64 { return d.maxBytes }

// Save writes r to a new file named <uuid><ext of originalName> and returns
// its public URL. Both the declared content type and the sniffed content
// must be an allowed image type.
func (d *Dir) Save(originalName, declaredType string, r io.Reader) (string, error) {
	if !allowed(declaredType) {
		return "", ErrUnsupportedType
	}

	br := bufio.NewReaderSize(r, 512)
	head, err := br.Peek(512)
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if !allowed(http.DetectContentType(head)) {
		return "", ErrUnsupportedType
	}

	name := uuid.NewString() + strings.ToLower(filepath.Ext(originalName))
	path := filepath.Join(d.root, name)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", fmt.Errorf("create upload: %w", err)
	}

	n, err := io.Copy(f, io.LimitReader(br, d.maxBytes+1))
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > d.maxBytes {
		err = ErrTooLarge
	}
	if err != nil {
		_ = os.Remove(path)
		if errors.Is(err, ErrTooLarge) {
			return "", err
		}
		return "", fmt.Errorf("write upload: %w", err)
	}
	return URLPrefix + name, nil
}

// IsLocal reports whether src points at a file in this directory.
func IsLocal(src string) bool {
	return strings.HasPrefix(src, URLPrefix) && len(src) > len(URLPrefix)
}

// Remove deletes the file behind a local src URL. Non-local and already
// missing files are ignored.
func (d *Dir) Remove(src string) error {
	if !IsLocal(src) {
		return nil
	}
	name := filepath.Base(strings.TrimPrefix(src, URLPrefix))
	if name == "." || name == "/" || name == ".." {
		return nil
	}
	err := os.Remove(filepath.Join(d.root, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove upload: %w", err)
	}
	return nil
}

// Handler serves the directory without listings.
func (d *Dir) Handler() http.Handler {
	fs := http.FileServer(http.Dir(d.root))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "" || strings.HasSuffix(r.URL.Path, "/") {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})
}

func allowed(contentType string) bool {
	mt := strings.TrimSpace(strings.ToLower(strings.Split(contentType, ";")[0]))
	return slices.Contains(AllowedTypes, mt)
}
