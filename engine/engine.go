package engine

import (
	"fmt"
	"go/parser"
	"strings"

	"github.com/traefik/yaegi/interp"

	"github.com/jonwraymond/toolrepl/capture"
	"github.com/jonwraymond/toolrepl/session"
)

// ResetConfirmation is the prose returned when a reset request is served.
const ResetConfirmation = "Session reset. All variables cleared."

// Engine serves execution calls against one session.
//
// Contract:
// - Concurrency: not safe for concurrent use; callers hold the per-call
//   critical section (output redirection is interpreter-global).
// - Errors: execution failures become error envelopes; ErrMissingCode is
//   the only raising path besides a failed reset.
type Engine struct {
	sess   *session.Session
	logger Logger
}

// New creates an Engine over sess. logger may be nil.
func New(sess *session.Session, logger Logger) *Engine {
	return &Engine{sess: sess, logger: logger}
}

// Execute serves one call.
func (e *Engine) Execute(req Request) (Response, error) {
	if req.Reset {
		if err := e.sess.Reset(); err != nil {
			return Response{}, fmt.Errorf("resetting session: %w", err)
		}
		e.logf("session reset")
		return Response{Text: ResetConfirmation}, nil
	}
	if strings.TrimSpace(req.Code) == "" {
		return Response{}, ErrMissingCode
	}

	stdout, stderr := e.sess.Streams()
	outText, errText, runErr := capture.Run(stdout, stderr, func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic: %v", r)
			}
		}()
		_, err = e.sess.Eval(req.Code)
		return err
	})
	if runErr != nil {
		e.logf("execution failed: %v", runErr)
		return Response{Document: &Envelope{Error: formatTrace(req.Code, runErr)}}, nil
	}

	env := &Envelope{Output: outText, Errors: errText}

	// The trailing line is re-evaluated separately to obtain the call's
	// result value. Side effects on that line run twice.
	last := lastLine(req.Code)
	if !isExpression(last) {
		return Response{Document: env}, nil
	}
	val, err := e.sess.Eval(last)
	if err != nil {
		e.logf("trailing expression failed: %v", err)
		return Response{Document: &Envelope{Error: formatTrace(last, err)}}, nil
	}

	result, frame := classify(val)
	if frame != nil {
		return Response{Document: frame}, nil
	}
	env.Result = result
	return Response{Document: env}, nil
}

// lastLine returns the final non-empty line of src.
func lastLine(src string) string {
	lines := strings.Split(strings.TrimSpace(src), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// isExpression reports whether line parses as a standalone expression.
// Assignments, declarations, and compound-statement fragments do not.
func isExpression(line string) bool {
	if line == "" {
		return false
	}
	_, err := parser.ParseExpr(line)
	return err == nil
}

// formatTrace renders an execution failure with the code that produced it,
// including the interpreter's panic stack when one is available.
func formatTrace(src string, err error) string {
	var b strings.Builder
	b.WriteString("Error executing code:\n")
	b.WriteString(err.Error())
	if p, ok := err.(interp.Panic); ok && len(p.Stack) > 0 {
		b.WriteString("\n")
		b.Write(p.Stack)
	}
	b.WriteString("\n\nwhile executing:\n")
	b.WriteString(src)
	return b.String()
}

func (e *Engine) logf(format string, args ...any) {
	if e.logger != nil {
		e.logger.Logf(format, args...)
	}
}
