package engine

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jonwraymond/toolrepl/session"
)

type recordingLogger struct {
	messages []string
}

func (l *recordingLogger) Logf(format string, args ...any) {
	l.messages = append(l.messages, fmt.Sprintf(format, args...))
}

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	sess, err := session.New(session.Config{})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	return New(sess, nil)
}

func envelope(t *testing.T, resp Response) *Envelope {
	t.Helper()
	env, ok := resp.Document.(*Envelope)
	if !ok {
		t.Fatalf("Document = %T, want *Envelope", resp.Document)
	}
	return env
}

func TestExecute_MissingCodeIsProtocolError(t *testing.T) {
	e := newTestEngine(t)

	_, err := e.Execute(Request{})
	if !errors.Is(err, ErrMissingCode) {
		t.Fatalf("err = %v, want ErrMissingCode", err)
	}

	_, err = e.Execute(Request{Code: "   \n  "})
	if !errors.Is(err, ErrMissingCode) {
		t.Fatalf("err = %v, want ErrMissingCode for blank code", err)
	}
}

func TestExecute_BindingPersistence(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.Execute(Request{Code: "x := 5"}); err != nil {
		t.Fatalf("first call: %v", err)
	}
	resp, err := e.Execute(Request{Code: "x + 1"})
	if err != nil {
		t.Fatalf("second call: %v", err)
	}
	env := envelope(t, resp)
	if env.Error != "" {
		t.Fatalf("unexpected error envelope: %s", env.Error)
	}
	if env.Result != "6" {
		t.Errorf("Result = %v, want %q", env.Result, "6")
	}
}

func TestExecute_ResetShortCircuits(t *testing.T) {
	e := newTestEngine(t)

	if _, err := e.Execute(Request{Code: "x := 1"}); err != nil {
		t.Fatalf("seed call: %v", err)
	}

	resp, err := e.Execute(Request{Reset: true, Code: "y := 2"})
	if err != nil {
		t.Fatalf("reset call: %v", err)
	}
	if resp.Text != ResetConfirmation {
		t.Errorf("Text = %q, want the reset confirmation", resp.Text)
	}
	if resp.Document != nil {
		t.Error("reset response must carry prose only, not a document")
	}

	// Neither the old binding nor the code submitted alongside the reset
	// flag survives.
	for _, name := range []string{"x", "y"} {
		resp, err := e.Execute(Request{Code: name})
		if err != nil {
			t.Fatalf("lookup %s: %v", name, err)
		}
		if env := envelope(t, resp); env.Error == "" {
			t.Errorf("expected undefined-name error for %s after reset", name)
		}
	}
}

func TestExecute_CapturesOutput(t *testing.T) {
	e := newTestEngine(t)

	resp, err := e.Execute(Request{Code: "fmt.Println(\"hello\")\nx := 1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env := envelope(t, resp)
	if env.Output != "hello\n" {
		t.Errorf("Output = %q, want %q", env.Output, "hello\n")
	}
	if env.Result != nil {
		t.Errorf("Result = %v, want none (trailing line is an assignment)", env.Result)
	}
	if env.Error != "" {
		t.Errorf("unexpected error: %s", env.Error)
	}
}

func TestExecute_TrailingNonExpressionSucceedsWithoutResult(t *testing.T) {
	e := newTestEngine(t)

	// The last line is a compound-statement fragment, not a standalone
	// expression: the call succeeds with captured output and no result.
	resp, err := e.Execute(Request{Code: "if true {\n\tfmt.Println(\"in\")\n}"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env := envelope(t, resp)
	if env.Error != "" {
		t.Fatalf("unexpected error envelope: %s", env.Error)
	}
	if env.Output != "in\n" {
		t.Errorf("Output = %q, want %q", env.Output, "in\n")
	}
	if env.Result != nil {
		t.Errorf("Result = %v, want none", env.Result)
	}
}

func TestExecute_FailureBecomesErrorEnvelope(t *testing.T) {
	e := newTestEngine(t)

	resp, err := e.Execute(Request{Code: "undefinedName + 1"})
	if err != nil {
		t.Fatalf("execution failures are data, not protocol errors; got %v", err)
	}
	env := envelope(t, resp)
	if env.Error == "" {
		t.Fatal("expected an error envelope")
	}
	if !strings.HasPrefix(env.Error, "Error executing code:") {
		t.Errorf("Error = %q, want the formatted trace prefix", env.Error)
	}
	if env.Output != "" || env.Result != nil {
		t.Error("error envelopes carry the error alone")
	}
}

func TestExecute_DataFrameClassification(t *testing.T) {
	e := newTestEngine(t)

	code := `frame := df.New("name", "age")
frame.Append("ada", 36)
frame.Append("grace", 45)
frame`
	resp, err := e.Execute(Request{Code: code})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	frame, ok := resp.Document.(*DataFrame)
	if !ok {
		t.Fatalf("Document = %T, want *DataFrame", resp.Document)
	}
	if frame.Shape != [2]int{2, 2} {
		t.Errorf("Shape = %v, want [2 2]", frame.Shape)
	}
	if len(frame.Columns) != 2 || frame.Columns[0] != "name" || frame.Columns[1] != "age" {
		t.Errorf("Columns = %v, want [name age]", frame.Columns)
	}
	if len(frame.Data) != 2 {
		t.Fatalf("Data has %d records, want 2", len(frame.Data))
	}
	if frame.Data[0]["name"] != "ada" {
		t.Errorf("Data[0][name] = %v, want ada", frame.Data[0]["name"])
	}
}

func TestExecute_StructuredResultPassthrough(t *testing.T) {
	e := newTestEngine(t)

	resp, err := e.Execute(Request{Code: "xs := []int{1, 2, 3}\nxs"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	env := envelope(t, resp)
	xs, ok := env.Result.([]int)
	if !ok {
		t.Fatalf("Result = %T, want []int passed through structured", env.Result)
	}
	if len(xs) != 3 || xs[0] != 1 || xs[2] != 3 {
		t.Errorf("Result = %v, want [1 2 3]", xs)
	}
}

func TestExecute_LogsFailures(t *testing.T) {
	logger := &recordingLogger{}
	sess, err := session.New(session.Config{})
	if err != nil {
		t.Fatalf("session.New: %v", err)
	}
	e := New(sess, logger)

	if _, err := e.Execute(Request{Code: "undefinedName"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(logger.messages) == 0 {
		t.Error("expected the failure to be logged")
	}
}

func TestLastLine(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"x + 1", "x + 1"},
		{"x := 5\nx + 1", "x + 1"},
		{"x := 5\nx + 1\n\n", "x + 1"},
		{"  x  ", "x"},
	}
	for _, tt := range tests {
		if got := lastLine(tt.src); got != tt.want {
			t.Errorf("lastLine(%q) = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestIsExpression(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"x + 1", true},
		{"frame", true},
		{`df.New("a")`, true},
		{"x := 5", false},
		{"x = 5", false},
		{"if true {", false},
		{"}", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isExpression(tt.line); got != tt.want {
			t.Errorf("isExpression(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}
