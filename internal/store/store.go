// Package store persists whole JSON documents by name. Every resource of the
// studio API lives in one document that is read, modified and written back
// as a unit.
package store

import (
	"context"
	"errors"
)

// ErrNotExist is returned by Load when the named document has never been saved.
var ErrNotExist = errors.New("document does not exist")

// UpdateFunc receives the current document body (nil when the document does
// not exist yet) and returns the body to store.
type UpdateFunc func(current []byte) ([]byte, error)

// Store is a named-document persistence backend.
type Store interface {
	// Load returns the raw body of the named document or ErrNotExist.
	Load(ctx context.Context, name string) ([]byte, error)
	// Save replaces the named document.
	Save(ctx context.Context, name string, data []byte) error
	// Update runs a read-modify-write cycle on the named document. Concurrent
	// Updates of the same document are serialized. When fn returns an error
	// nothing is written and the error is returned unchanged.
	Update(ctx context.Context, name string, fn UpdateFunc) error
}
