package session

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/jonwraymond/toolrepl/capture"
	"github.com/jonwraymond/toolrepl/dataframe"
)

// reservedPrefix marks bindings that are never surfaced by Variables.
const reservedPrefix = "_"

// The tabular-data package is injected into the interpreter and imported
// under a short alias, so snippets can write df.New(...) directly.
const (
	dataframeAlias      = "df"
	dataframeImportPath = "github.com/jonwraymond/toolrepl/dataframe"
)

// dataframeSymbols is the export surface handed to the interpreter.
var dataframeSymbols = interp.Exports{
	dataframeImportPath + "/dataframe": {
		"New":       reflect.ValueOf(dataframe.New),
		"DataFrame": reflect.ValueOf((*dataframe.DataFrame)(nil)),
	},
}

// Session is the mapping from names to values that persists across calls.
//
// Contract:
// - Concurrency: not safe for concurrent use; callers hold the per-call
//   critical section.
// - Errors: Eval and Import return interpreter errors verbatim; Reset fails
//   only when re-seeding fails, which indicates a broken installation.
type Session struct {
	cfg    Config
	interp *interp.Interpreter
	stdout *capture.Stream
	stderr *capture.Stream

	vars    map[string]struct{}
	imports map[string]string // alias -> import path
}

// New creates a seeded Session.
func New(cfg Config) (*Session, error) {
	cfg.applyDefaults()
	s := &Session{
		cfg:    cfg,
		stdout: capture.NewStream(cfg.Stdout),
		stderr: capture.NewStream(cfg.Stderr),
	}
	if err := s.seed(); err != nil {
		return nil, err
	}
	return s, nil
}

// seed replaces the interpreter with a fresh instance carrying the built-in
// capability set: the standard library symbols, the dataframe alias, and
// the configured seed imports.
func (s *Session) seed() error {
	i := interp.New(interp.Options{
		GoPath: s.cfg.GoPath,
		Stdout: s.stdout,
		Stderr: s.stderr,
	})
	if err := i.Use(stdlib.Symbols); err != nil {
		return fmt.Errorf("session: loading stdlib symbols: %w", err)
	}
	if err := i.Use(dataframeSymbols); err != nil {
		return fmt.Errorf("session: loading dataframe symbols: %w", err)
	}
	if _, err := i.Eval(fmt.Sprintf("import %s %q", dataframeAlias, dataframeImportPath)); err != nil {
		return fmt.Errorf("session: seeding dataframe alias: %w", err)
	}

	s.interp = i
	s.vars = make(map[string]struct{})
	s.imports = map[string]string{dataframeAlias: dataframeImportPath}

	for _, path := range s.cfg.SeedImports {
		if err := s.Import(path); err != nil {
			return fmt.Errorf("session: seeding import %q: %w", path, err)
		}
	}
	return nil
}

// Reset discards every binding and re-seeds the built-in capability set.
// The interpreter is replaced wholesale; nothing survives.
func (s *Session) Reset() error {
	return s.seed()
}

// Eval runs src against the namespace and returns the value of its final
// expression. New and changed top-level bindings persist for later calls;
// names starting with the reserved prefix are kept out of the listing.
func (s *Session) Eval(src string) (reflect.Value, error) {
	v, err := s.interp.Eval(src)
	if err != nil {
		return v, err
	}
	b := parseBindings(src)
	for _, name := range b.names {
		if strings.HasPrefix(name, reservedPrefix) {
			continue
		}
		s.vars[name] = struct{}{}
	}
	for alias, path := range b.imports {
		if strings.HasPrefix(alias, reservedPrefix) {
			continue
		}
		s.imports[alias] = path
	}
	return v, nil
}

// Import makes the package at path available in the namespace under its
// base name. This is the mutation the installer performs so newly installed
// packages become usable without a reset.
func (s *Session) Import(path string) error {
	if _, err := s.interp.Eval(fmt.Sprintf("import %q", path)); err != nil {
		return err
	}
	s.imports[baseName(path)] = path
	return nil
}

// Variables returns every visible binding mapped to its literal textual
// representation: user variables first, then imported package aliases. A
// representation that fails is skipped rather than failing the listing.
func (s *Session) Variables() map[string]string {
	out := make(map[string]string, len(s.vars)+len(s.imports))
	for name := range s.vars {
		if repr, ok := s.repr(name); ok {
			out[name] = repr
		}
	}
	for alias, path := range s.imports {
		out[alias] = fmt.Sprintf("<package %q>", path)
	}
	return out
}

// Streams returns the session's redirectable output channels for use with
// capture.Run.
func (s *Session) Streams() (stdout, stderr *capture.Stream) {
	return s.stdout, s.stderr
}

// repr evaluates a bound name and renders its literal representation,
// guarding against values whose formatting panics.
func (s *Session) repr(name string) (repr string, ok bool) {
	defer func() {
		if recover() != nil {
			repr, ok = "", false
		}
	}()
	v, err := s.interp.Eval(name)
	if err != nil || !v.IsValid() {
		return "", false
	}
	return fmt.Sprintf("%#v", v.Interface()), true
}

func baseName(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
