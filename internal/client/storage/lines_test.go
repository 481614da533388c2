package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLineReader(t *testing.T) {
	r := NewLineReader(context.Background(), strings.NewReader("one\ntwo\n"))
	var got []string
	for r.Scan() {
		got = append(got, r.Text())
	}
	assert.Equal(t, []string{"one", "two"}, got)
	assert.NoError(t, r.Err())
}

func TestLineReader_ReadError(t *testing.T) {
	pr, pw := io.Pipe()
	r := NewLineReader(context.Background(), pr)
	pw.CloseWithError(errors.New("tty gone"))

	assert.False(t, r.Scan())
	assert.EqualError(t, r.Err(), "tty gone")
}

func TestLineReader_Cancel(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	ctx, cancel := context.WithCancel(context.Background())
	r := NewLineReader(ctx, pr)

	done := make(chan bool, 1)
	go func() { done <- r.Scan() }()
	cancel()

	select {
	case ok := <-done:
		assert.False(t, ok)
		assert.NoError(t, r.Err())
	case <-time.After(2 * time.Second):
		t.Fatal("Scan did not return after cancellation")
	}
}

func TestPromptCredentials_LineReader(t *testing.T) {
	r := NewLineReader(context.Background(), strings.NewReader("admin\nadmin123\n"))
	user, pass, err := PromptCredentials(r, io.Discard)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != "admin" || pass != "admin123" {
		t.Errorf("got %q/%q", user, pass)
	}
}
