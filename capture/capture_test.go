package capture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"testing"
)

func TestStream_ImplementsWriter(t *testing.T) {
	var _ io.Writer = (*Stream)(nil)
}

func TestRun_CapturesBothChannels(t *testing.T) {
	stdout := NewStream(nil)
	stderr := NewStream(nil)

	out, errs, err := Run(stdout, stderr, func() error {
		fmt.Fprint(stdout, "to stdout")
		fmt.Fprint(stderr, "to stderr")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "to stdout" {
		t.Errorf("stdout = %q, want %q", out, "to stdout")
	}
	if errs != "to stderr" {
		t.Errorf("stderr = %q, want %q", errs, "to stderr")
	}
}

func TestRun_BuffersAreIndependent(t *testing.T) {
	stdout := NewStream(nil)
	stderr := NewStream(nil)

	out, errs, _ := Run(stdout, stderr, func() error {
		fmt.Fprint(stdout, "only out")
		return nil
	})
	if out != "only out" {
		t.Errorf("stdout = %q, want %q", out, "only out")
	}
	if errs != "" {
		t.Errorf("stderr = %q, want empty", errs)
	}
}

func TestRun_RestoresOnSuccess(t *testing.T) {
	var sink bytes.Buffer
	stdout := NewStream(&sink)
	stderr := NewStream(nil)

	_, _, _ = Run(stdout, stderr, func() error {
		fmt.Fprint(stdout, "captured")
		return nil
	})

	fmt.Fprint(stdout, "after")
	if got := sink.String(); got != "after" {
		t.Errorf("sink = %q, want %q (captured text must not reach the sink)", got, "after")
	}
}

func TestRun_RestoresOnError(t *testing.T) {
	var sink bytes.Buffer
	stdout := NewStream(&sink)
	stderr := NewStream(nil)

	boom := errors.New("boom")
	out, _, err := Run(stdout, stderr, func() error {
		fmt.Fprint(stdout, "partial")
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
	if out != "partial" {
		t.Errorf("stdout = %q, want %q (output before the failure is kept)", out, "partial")
	}

	fmt.Fprint(stdout, "after")
	if got := sink.String(); got != "after" {
		t.Errorf("sink = %q, want %q", got, "after")
	}
}

func TestRun_RestoresOnPanic(t *testing.T) {
	var sink bytes.Buffer
	stdout := NewStream(&sink)
	stderr := NewStream(nil)

	func() {
		defer func() {
			if recover() == nil {
				t.Fatal("expected panic to propagate")
			}
		}()
		_, _, _ = Run(stdout, stderr, func() error {
			panic("uncaught")
		})
	}()

	fmt.Fprint(stdout, "after")
	if got := sink.String(); got != "after" {
		t.Errorf("sink = %q, want %q", got, "after")
	}
}

func TestStream_NilDestinationDiscards(t *testing.T) {
	s := NewStream(nil)
	n, err := s.Write([]byte("dropped"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 7 {
		t.Errorf("n = %d, want 7", n)
	}
}
