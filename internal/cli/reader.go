package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// LineReader hands out input lines one at a time to context-bound callers.
// One goroutine scans the source for the reader's lifetime, so a line that
// arrives after a canceled read is kept for the next one.
type LineReader struct {
	src   io.Reader
	lines chan string
	err   error
	once  sync.Once
}

// NewLineReader creates a LineReader over src.
func NewLineReader(src io.Reader) *LineReader {
	if src == nil {
		panic("reader cannot be nil")
	}
	return &LineReader{src: src, lines: make(chan string)}
}

func (r *LineReader) scan() {
	scanner := bufio.NewScanner(r.src)
	for scanner.Scan() {
		r.lines <- scanner.Text()
	}

	r.err = scanner.Err()
	if r.err == nil {
		r.err = io.EOF
	}
	close(r.lines)
}

// ReadLine returns the next trimmed line, or ErrInputCancelled if ctx ends
// first. After the source is exhausted every call returns io.EOF.
func (r *LineReader) ReadLine(ctx context.Context) (string, error) {
	if ctx.Err() != nil {
		return "", ErrInputCancelled
	}
	r.once.Do(func() { go r.scan() })

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case line, ok := <-r.lines:
		if !ok {
			return "", r.err
		}
		return strings.TrimSpace(line), nil
	}
}
