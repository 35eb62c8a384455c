// Command toolrepl serves a persistent Go execution session over MCP stdio.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonwraymond/toolrepl/engine"
	"github.com/jonwraymond/toolrepl/installer"
	"github.com/jonwraymond/toolrepl/server"
	"github.com/jonwraymond/toolrepl/session"
)

var (
	configPath string
	goPath     string
	verbose    bool

	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "toolrepl",
	Short: "Stateful Go execution over MCP",
	Long: `toolrepl serves a single persistent Go session over MCP stdio.

Code submitted through the execute_go tool runs in an embedded interpreter
whose variables, functions, and imports survive between calls. Companion
tools list the session's bindings and install additional packages into it.

The protocol rides stdout, so all diagnostics go to stderr.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		// stdout belongs to the MCP transport.
		config.OutputPaths = []string{"stderr"}
		config.ErrorOutputPaths = []string{"stderr"}
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: serve,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&goPath, "gopath", "", "directory installed packages live in")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func serve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if goPath != "" {
		cfg.GoPath = goPath
	}
	if cfg.GoPath == "" {
		cfg.GoPath = defaultGoPath()
	}
	if err := os.MkdirAll(cfg.GoPath, 0o755); err != nil {
		return fmt.Errorf("failed to create install directory: %w", err)
	}

	sess, err := session.New(session.Config{
		GoPath:      cfg.GoPath,
		SeedImports: cfg.SeedImports,
	})
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}

	log := &zapLogger{sugar: logger.Sugar()}

	eng := engine.New(sess, log)

	inst, err := installer.New(installer.Config{
		Session: sess,
		GoPath:  cfg.GoPath,
		GoBin:   cfg.GoBin,
		Logger:  log,
	})
	if err != nil {
		return fmt.Errorf("failed to configure installer: %w", err)
	}

	srv, err := server.New(server.Config{
		Executor:  eng,
		Installer: inst,
		Variables: sess,
		Logger:    log,
	})
	if err != nil {
		return fmt.Errorf("failed to configure server: %w", err)
	}

	logger.Info("serving",
		zap.String("session", srv.ID()),
		zap.String("gopath", cfg.GoPath))
	return srv.Run(ctx)
}

// zapLogger adapts the zap sugared logger to the Logf interfaces the
// packages accept.
type zapLogger struct {
	sugar *zap.SugaredLogger
}

func (l *zapLogger) Logf(format string, args ...any) {
	l.sugar.Infof(format, args...)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
