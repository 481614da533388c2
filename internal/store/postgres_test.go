package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func setupMock(t *testing.T) (*PostgresStore, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock database: %v", err)
	}
	cleanup := func() {
		db.Close()
	}
	return NewPostgresStore(db), mock, cleanup
}

func TestPostgresLoad_Success(t *testing.T) {
	s, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT body FROM documents WHERE name = $1`)).
		WithArgs("content").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`{"mission":"m"}`)))

	body, err := s.Load(context.Background(), "content")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(body) != `{"mission":"m"}` {
		t.Errorf("body = %s", body)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresLoad_NotExist(t *testing.T) {
	s, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT body FROM documents WHERE name = $1`)).
		WithArgs("photos").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Load(context.Background(), "photos")
	if !errors.Is(err, ErrNotExist) {
		t.Errorf("expected ErrNotExist, got %v", err)
	}
}

func TestPostgresLoad_QueryError(t *testing.T) {
	s, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT body FROM documents WHERE name = $1`)).
		WithArgs("photos").
		WillReturnError(errors.New("conn reset"))

	_, err := s.Load(context.Background(), "photos")
	if err == nil || !regexp.MustCompile(`load photos`).MatchString(err.Error()) {
		t.Errorf("expected load photos error, got %v", err)
	}
}

func TestPostgresSave(t *testing.T) {
	s, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO documents (name, body, updated_at)`)).
		WithArgs("contacts", `[]`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := s.Save(context.Background(), "contacts", []byte(`[]`)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresUpdate_Commit(t *testing.T) {
	s, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO documents (name, body) VALUES ($1, NULL) ON CONFLICT (name) DO NOTHING`)).
		WithArgs("comments").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT body FROM documents WHERE name = $1 FOR UPDATE`)).
		WithArgs("comments").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow([]byte(`[]`)))
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO documents (name, body, updated_at)`)).
		WithArgs("comments", `["c1"]`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := s.Update(context.Background(), "comments", func(current []byte) ([]byte, error) {
		if string(current) != `[]` {
			t.Errorf("current = %s; want []", current)
		}
		return []byte(`["c1"]`), nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}

func TestPostgresUpdate_FuncErrorRollsBack(t *testing.T) {
	s, mock, cleanup := setupMock(t)
	defer cleanup()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO documents (name, body) VALUES ($1, NULL)`)).
		WithArgs("comments").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT body FROM documents WHERE name = $1 FOR UPDATE`)).
		WithArgs("comments").
		WillReturnRows(sqlmock.NewRows([]string{"body"}).AddRow(nil))
	mock.ExpectRollback()

	boom := errors.New("boom")
	err := s.Update(context.Background(), "comments", func(current []byte) ([]byte, error) {
		if current != nil {
			t.Errorf("current = %s; want nil for a fresh row", current)
		}
		return nil, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled expectations: %v", err)
	}
}
