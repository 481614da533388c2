package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
)

// Document is a typed view of one named document. A missing document reads
// as the value returned by the seed function.
type Document[T any] struct {
	store Store
	name  string
	seed  func() T
}

// NewDocument binds name in s to the type T.
func NewDocument[T any](s Store, name string, seed func() T) *Document[T] {
	return &Document[T]{store: s, name: name, seed: seed}
}

// Name returns the document name.
func (d *Document[T]) Name() string { return d.name }

// Get decodes the current document.
func (d *Document[T]) Get(ctx context.Context) (T, error) {
	data, err := d.store.Load(ctx, d.name)
	if errors.Is(err, ErrNotExist) {
		return d.seed(), nil
	}
	if err != nil {
		var zero T
		return zero, err
	}
	return d.decode(data)
}

// Update decodes the current document, applies fn and writes the result
// back. It returns the value as written. If fn fails nothing is written.
func (d *Document[T]) Update(ctx context.Context, fn func(*T) error) (T, error) {
	var out T
	err := d.store.Update(ctx, d.name, func(current []byte) ([]byte, error) {
		v := d.seed()
		if current != nil {
			var err error
			if v, err = d.decode(current); err != nil {
				return nil, err
			}
		}
		if err := fn(&v); err != nil {
			return nil, err
		}
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", d.name, err)
		}
		out = v
		return data, nil
	})
	return out, err
}

func (d *Document[T]) decode(data []byte) (T, error) {
	v := d.seed()
	if err := json.Unmarshal(data, &v); err != nil {
		var zero T
		return zero, fmt.Errorf("decode %s: %w", d.name, err)
	}
	return v, nil
}
