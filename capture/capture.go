// Package capture provides scoped redirection of the interpreter's textual
// output channels into in-memory buffers.
//
// The interpreter is constructed once with two [Stream] writers and keeps
// them for its whole lifetime. [Run] points both streams at fresh buffers
// for the duration of a single call and restores the previous destinations
// on every exit path.
package capture

import (
	"bytes"
	"io"
	"sync"
)

// Stream is a redirectable output channel.
//
// Contract:
// - Concurrency: Write is safe for concurrent use. Redirection is not and
//   must be serialized by the caller (one call in flight at a time).
// - Nil/zero: a Stream with no destination discards writes.
type Stream struct {
	mu  sync.Mutex
	dst io.Writer
}

// NewStream creates a Stream writing to dst. A nil dst discards output.
func NewStream(dst io.Writer) *Stream {
	return &Stream{dst: dst}
}

// Write forwards to the current destination.
func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	dst := s.dst
	s.mu.Unlock()
	if dst == nil {
		return len(p), nil
	}
	return dst.Write(p)
}

// swap replaces the destination and returns the previous one.
func (s *Stream) swap(dst io.Writer) io.Writer {
	s.mu.Lock()
	prev := s.dst
	s.dst = dst
	s.mu.Unlock()
	return prev
}

// Run redirects stdout and stderr into independent buffers while fn
// executes and returns whatever the buffers collected. The previous
// destinations are restored unconditionally: on success, on a returned
// error, and on a panic in fn (the panic propagates after restoration).
func Run(stdout, stderr *Stream, fn func() error) (outText, errText string, err error) {
	var outBuf, errBuf bytes.Buffer
	prevOut := stdout.swap(&outBuf)
	prevErr := stderr.swap(&errBuf)
	defer func() {
		stdout.swap(prevOut)
		stderr.swap(prevErr)
		outText = outBuf.String()
		errText = errBuf.String()
	}()
	err = fn()
	return
}
