package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/entrhq/notesbridge/pkg/applescript"
	"github.com/entrhq/notesbridge/pkg/config"
	"github.com/entrhq/notesbridge/pkg/logging"
	"github.com/entrhq/notesbridge/pkg/tools"
)

// version is overridden at build time with -ldflags "-X main.version=..."
var version = "0.1.0"

// app carries the state shared by every subcommand of one invocation.
type app struct {
	configPath string
	logLevel   string

	cfg    config.Config
	logger *logging.Logger

	// runner executes scripts; nil selects the osascript executor.
	runner applescript.Runner
	closed bool
}

// newRootCmd builds the command tree around a fresh app.
func newRootCmd(runner applescript.Runner) (*cobra.Command, *app) {
	a := &app{runner: runner, logger: logging.Nop()}

	rootCmd := &cobra.Command{
		Use:   "notesbridge",
		Short: "MCP server for Apple Notes",
		Long: `notesbridge exposes Apple Notes to MCP clients over stdio.
It offers three tools (create-note, search-notes and get-note-content) and
drives the Notes application through osascript.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "config file (.yaml, .yml or .toml; default ~/.notesbridge/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log.level (trace, debug, info, warn, error, disabled)")

	rootCmd.AddCommand(
		newServeCmd(a),
		newCallCmd(a),
		newScriptCmd(a),
		newToolsCmd(a),
		newVersionCmd(),
	)
	return rootCmd, a
}

// setup loads configuration and opens the logger before any subcommand runs.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		loaded.Log.Level = a.logLevel
		if err := loaded.Validate(); err != nil {
			return err
		}
	}
	a.cfg = loaded

	// A log file that cannot be opened is reported by the logger itself;
	// stderr logging still works.
	a.logger, _ = logging.New("notesbridge", logging.Options{
		Writer: os.Stderr,
		Level:  a.cfg.Log.Level,
		Format: a.cfg.Log.Format,
		File:   a.cfg.Log.File,
	})
	return nil
}

func (a *app) dispatcher() (*tools.Dispatcher, error) {
	return buildDispatcher(a.cfg, a.logger, a.runner)
}

// close releases the logger. cobra skips post-run hooks when a command
// fails, so this runs from execute instead.
func (a *app) close() {
	if a.logger != nil {
		a.logger.Close()
	}
	a.closed = true
}

// execute runs cmd and always closes the app afterwards.
func execute(cmd *cobra.Command, a *app) error {
	defer a.close()
	return cmd.Execute()
}

// run executes the command line args against runner, writing to stdout.
func run(args []string, stdout io.Writer, runner applescript.Runner) error {
	cmd, a := newRootCmd(runner)
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	return execute(cmd, a)
}

// Execute runs the notesbridge command line.
func Execute() error {
	return run(os.Args[1:], os.Stdout, nil)
}
