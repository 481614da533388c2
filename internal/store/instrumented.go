package store

import (
	"context"
	"errors"
	"time"

	"github.com/fusedlens/studio/internal/metrics"
)

// Instrumented records the latency and failures of every operation on s.
// ErrNotExist and errors returned by an UpdateFunc are not failures of the
// backend and are not counted as errors.
func Instrumented(s Store) Store {
	return instrumented{next: s}
}

type instrumented struct {
	next Store
}

func (i instrumented) Load(ctx context.Context, name string) ([]byte, error) {
	start := time.Now()
	data, err := i.next.Load(ctx, name)
	recorded := err
	if errors.Is(err, ErrNotExist) {
		recorded = nil
	}
	metrics.RecordStoreOperation("load", name, time.Since(start), recorded)
	return data, err
}

func (i instrumented) Save(ctx context.Context, name string, data []byte) error {
	start := time.Now()
	err := i.next.Save(ctx, name, data)
	metrics.RecordStoreOperation("save", name, time.Since(start), err)
	return err
}

func (i instrumented) Update(ctx context.Context, name string, fn UpdateFunc) error {
	start := time.Now()
	var fnErr error
	err := i.next.Update(ctx, name, func(current []byte) ([]byte, error) {
		out, err := fn(current)
		fnErr = err
		return out, err
	})
	recorded := err
	if fnErr != nil && errors.Is(err, fnErr) {
		recorded = nil
	}
	metrics.RecordStoreOperation("update", name, time.Since(start), recorded)
	return err
}
