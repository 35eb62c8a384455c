package server

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/toolrepl/engine"
	"github.com/jonwraymond/toolrepl/installer"
)

// Default identification reported to MCP clients.
const (
	serverName     = "toolrepl"
	DefaultVersion = "0.1.0"
)

// Sentinel errors for configuration and protocol failures.
var (
	// ErrConfiguration indicates an invalid or incomplete configuration.
	ErrConfiguration = errors.New("server: configuration error")

	// ErrMissingPackage indicates an install request without a package
	// identifier. Protocol-level: raised, never shaped as a document.
	ErrMissingPackage = errors.New("missing package parameter")
)

// Executor serves execution calls.
type Executor interface {
	Execute(req engine.Request) (engine.Response, error)
}

// PackageInstaller serves package-install calls.
type PackageInstaller interface {
	Install(ctx context.Context, pkg string) installer.Outcome
}

// VariableLister enumerates visible session bindings.
type VariableLister interface {
	Variables() map[string]string
}

// Logger is an optional interface for observability.
type Logger interface {
	Logf(format string, args ...any)
}

// Config configures a Server.
type Config struct {
	// Executor serves execute_go. Required.
	Executor Executor

	// Installer serves install_package. Required.
	Installer PackageInstaller

	// Variables serves list_variables. Required.
	Variables VariableLister

	// Version is reported to clients. Defaults to DefaultVersion.
	Version string

	// Logger is optional.
	Logger Logger
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	var missing []string
	if c.Executor == nil {
		missing = append(missing, "Executor")
	}
	if c.Installer == nil {
		missing = append(missing, "Installer")
	}
	if c.Variables == nil {
		missing = append(missing, "Variables")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s",
			ErrConfiguration, strings.Join(missing, ", "))
	}
	return nil
}

// applyDefaults sets default values for optional fields.
func (c *Config) applyDefaults() {
	if c.Version == "" {
		c.Version = DefaultVersion
	}
}

// Server is the MCP face of the execution session.
//
// Contract:
// - Concurrency: safe for concurrent transports; one mutex serializes all
//   tool calls against the session.
// - Errors: handler errors are protocol failures; domain failures are
//   returned as document content.
type Server struct {
	mu  sync.Mutex
	cfg Config
	id  string
	mcp *mcp.Server
}

// New creates a Server and registers the tool surface.
func New(cfg Config) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	s := &Server{cfg: cfg, id: uuid.NewString()}
	srv := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: cfg.Version,
	}, nil)
	registerTools(srv, s)
	s.mcp = srv

	s.logf("session %s ready", s.id)
	return s, nil
}

// ID returns the identifier of the logical session served by this process.
func (s *Server) ID() string {
	return s.id
}

// Run serves the stdio transport until ctx is done or the client closes
// the stream.
func (s *Server) Run(ctx context.Context) error {
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) logf(format string, args ...any) {
	if s.cfg.Logger != nil {
		s.cfg.Logger.Logf(format, args...)
	}
}
