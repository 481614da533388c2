package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresStore keeps documents as JSONB rows of the documents table.
// The schema is created by db.InitPostgres.
type PostgresStore struct {
	// DB is the database handle for executing queries and transactions.
	DB *sql.DB
}

// NewPostgresStore returns a PostgresStore using db.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{DB: db}
}

// Load fetches the body of the named document.
func (s *PostgresStore) Load(ctx context.Context, name string) ([]byte, error) {
	var body []byte
	err := s.DB.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE name = $1`, name,
	).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}
	if body == nil {
		return nil, ErrNotExist
	}
	return body, nil
}

// Save upserts the named document. The body is sent as text so the driver
// does not encode it as bytea.
func (s *PostgresStore) Save(ctx context.Context, name string, data []byte) error {
	if _, err := s.DB.ExecContext(ctx, upsertDocument, name, string(data)); err != nil {
		return fmt.Errorf("save %s: %w", name, err)
	}
	return nil
}

// Update locks the document row for the duration of fn.
func (s *PostgresStore) Update(ctx context.Context, name string, fn UpdateFunc) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Make sure a row exists so FOR UPDATE has something to lock.
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO documents (name, body) VALUES ($1, NULL) ON CONFLICT (name) DO NOTHING`, name,
	); err != nil {
		return fmt.Errorf("update %s: %w", name, err)
	}

	var current []byte
	if err := tx.QueryRowContext(ctx,
		`SELECT body FROM documents WHERE name = $1 FOR UPDATE`, name,
	).Scan(&current); err != nil {
		return fmt.Errorf("update %s: %w", name, err)
	}

	next, err := fn(current)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, upsertDocument, name, string(next)); err != nil {
		return fmt.Errorf("update %s: %w", name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

const upsertDocument = `
	INSERT INTO documents (name, body, updated_at) VALUES ($1, $2, now())
	ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = now()
`
