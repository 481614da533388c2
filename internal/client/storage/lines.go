package storage

import (
	"bufio"
	"context"
	"io"
)

// LineReader is a LineScanner reading on a background goroutine, so Scan
// returns as soon as ctx is cancelled even while the read itself blocks.
// The goroutine stays parked on that read until the input is closed or the
// process exits.
type LineReader struct {
	ctx   context.Context
	lines <-chan string
	errc  <-chan error
	text  string
	err   error
}

// NewLineReader starts scanning in until EOF or ctx is done.
func NewLineReader(ctx context.Context, in io.Reader) *LineReader {
	lines := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(lines)
		s := bufio.NewScanner(in)
		for s.Scan() {
			select {
			case lines <- s.Text():
			case <-ctx.Done():
				errc <- nil
				return
			}
		}
		errc <- s.Err()
	}()
	return &LineReader{ctx: ctx, lines: lines, errc: errc}
}

// Scan waits for the next line. It returns false at end of input or once
// ctx is done.
func (r *LineReader) Scan() bool {
	select {
	case <-r.ctx.Done():
		return false
	case line, ok := <-r.lines:
		if !ok {
			r.err = <-r.errc
			return false
		}
		r.text = line
		return true
	}
}

// Text returns the line read by the last successful Scan.
func (r *LineReader) Text() string { return r.text }

// Err returns the read error that ended the input, if any.
func (r *LineReader) Err() error { return r.err }
