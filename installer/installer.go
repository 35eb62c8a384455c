// Package installer extends the session's importable package set at
// runtime by invoking the Go toolchain as an external package manager.
//
// An install is a four-step state transition: probe the toolchain, validate
// the identifier against an allow-list, fetch the package source into the
// session's GOPATH, and import the base path into the namespace so the
// package is usable in subsequent calls without a reset. Each step degrades
// independently to an error outcome naming what fired; Install never raises.
package installer

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// identifierPattern is the allow-list for package identifiers: letters,
// digits, dot, slash, underscore, hyphen, first character alphanumeric. It
// keeps shell metacharacters out of the package-manager invocation.
var identifierPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9./_-]*$`)

// ErrConfiguration indicates an invalid or incomplete configuration.
var ErrConfiguration = errors.New("installer: configuration error")

// Importer is the namespace mutation performed after a successful install.
type Importer interface {
	Import(path string) error
}

// CommandRunner executes one external command.
//
// Contract:
// - Context: implementations must honor cancellation.
// - Errors: a non-zero exit or a failure to start returns a non-nil error;
//   stderr carries whatever the command wrote either way.
type CommandRunner interface {
	Run(ctx context.Context, env []string, name string, args ...string) (stderr string, err error)
}

// Logger is an optional interface for observability.
type Logger interface {
	Logf(format string, args ...any)
}

// Outcome is the single-key result document of one install call.
type Outcome struct {
	Success string `json:"success,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Config configures an Installer.
type Config struct {
	// Session receives the import on success. Required.
	Session Importer

	// GoPath is the directory packages are fetched into. It must match the
	// session's GoPath so the interpreter can load the source. Required.
	GoPath string

	// GoBin is the package-manager binary. Defaults to "go".
	GoBin string

	// Runner executes external commands. Defaults to an os/exec runner.
	Runner CommandRunner

	// Logger is optional.
	Logger Logger
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	var missing []string
	if c.Session == nil {
		missing = append(missing, "Session")
	}
	if c.GoPath == "" {
		missing = append(missing, "GoPath")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.GoBin == "" {
		c.GoBin = "go"
	}
	if c.Runner == nil {
		c.Runner = execRunner{}
	}
}

// Installer performs package installs against one session.
type Installer struct {
	cfg Config
}

// New creates an Installer with the given configuration.
func New(cfg Config) (*Installer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &Installer{cfg: cfg}, nil
}

// Install performs the install state transition for pkg. The identifier may
// carry an extras suffix of the form name[extra]; the suffix is stripped
// before the import. Every failure is reported as an error outcome, never
// raised.
func (in *Installer) Install(ctx context.Context, pkg string) Outcome {
	// Toolchain probe first, identifier validation second: the probe argv
	// is fixed and carries no user input.
	if stderr, err := in.run(ctx, "version"); err != nil {
		return Outcome{Error: fmt.Sprintf("package manager unavailable: %v: %s", err, stderr)}
	}

	if !identifierPattern.MatchString(pkg) {
		in.logf("rejected package identifier %q", pkg)
		return Outcome{Error: fmt.Sprintf("invalid package name: %s", pkg)}
	}

	if stderr, err := in.run(ctx, "get", "-d", pkg); err != nil {
		return Outcome{Error: fmt.Sprintf("failed to install package:\n%s", stderr)}
	}

	base := pkg
	if i := strings.Index(base, "["); i >= 0 {
		base = base[:i]
	}
	if err := in.cfg.Session.Import(base); err != nil {
		return Outcome{Error: fmt.Sprintf("package installed but import failed: %v", err)}
	}

	in.logf("installed and imported %s", pkg)
	return Outcome{Success: fmt.Sprintf("Successfully installed and imported %s", pkg)}
}

// run invokes the package manager in GOPATH mode against the session's
// package directory.
func (in *Installer) run(ctx context.Context, args ...string) (string, error) {
	env := []string{"GO111MODULE=off", "GOPATH=" + in.cfg.GoPath}
	return in.cfg.Runner.Run(ctx, env, in.cfg.GoBin, args...)
}

func (in *Installer) logf(format string, args ...any) {
	if in.cfg.Logger != nil {
		in.cfg.Logger.Logf(format, args...)
	}
}
