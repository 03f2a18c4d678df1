package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/fang"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/ikanago/toysh/pkg/editor"
	"github.com/ikanago/toysh/pkg/ioctx"
	"github.com/ikanago/toysh/pkg/shell"
	"github.com/ikanago/toysh/pkg/termui"
)

// Config holds the command-line configuration
type Config struct {
	Debug      bool
	LogFile    string
	ConfigPath string
	Command    string
	ExitOnEOF  bool
}

// exitError carries a script's non-zero exit status out of cobra.
type exitError struct {
	code int
}

func (e *exitError) Error() string {
	return fmt.Sprintf("exit status %d", e.code)
}

func main() {
	var cfg Config

	rootCmd := &cobra.Command{
		Use:   "toysh [flags]",
		Short: "A small interactive shell",
		Long: `toysh is an interactive command shell with a raw-mode line editor.
Lines are parsed as POSIX shell scripts when submitted.`,
		Example: `  # Start the interactive editor
  toysh

  # Check a single command and exit with its status
  toysh -c 'echo hello'

  # Debug logging to a file, so it does not mix with the editor
  toysh --debug --log-file /tmp/toysh.log`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("command") {
				return runCommand(cmd.Context(), cfg)
			}
			return runInteractive(cmd.Context(), cfg, cmd.Flags().Changed("exit-on-eof"))
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&cfg.Debug, "debug", "d", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&cfg.LogFile, "log-file", "", "Write logs to this file instead of stderr")
	rootCmd.Flags().StringVar(&cfg.ConfigPath, "config", "", "Path to config file (default $XDG_CONFIG_HOME/toysh/config.toml)")
	rootCmd.Flags().StringVarP(&cfg.Command, "command", "c", "", "Run a single command line and exit")
	rootCmd.Flags().BoolVar(&cfg.ExitOnEOF, "exit-on-eof", false, "Exit when Ctrl-D is pressed on an empty line")
	rootCmd.AddCommand(newKeysCommand(&cfg))

	ctx, stop := signalContext(context.Background())
	ctx = ioctx.WithStdout(ctx, os.Stdout)
	ctx = ioctx.WithStderr(ctx, os.Stderr)
	err := fang.Execute(ctx, rootCmd,
		fang.WithVersion("v0.1.0"),
		fang.WithCommit("dev"),
		fang.WithErrorHandler(func(w io.Writer, styles fang.Styles, err error) {
			var exitErr *exitError
			if errors.As(err, &exitErr) {
				return
			}
			_, _ = fmt.Fprintln(w, err.Error())
		}),
	)
	stop()
	if err != nil {
		os.Exit(exitCode(err))
	}
}

// shutdownSignals cancel the session's context so the terminal is restored
// on the way out. SIGINT only arrives from outside while raw mode is on, or
// from Ctrl-C while a submitted line runs in cooked mode.
var shutdownSignals = []os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGHUP}

func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, shutdownSignals...)
}

func exitCode(err error) int {
	var exitErr *exitError
	if errors.As(err, &exitErr) {
		return exitErr.code & 0xff
	}
	return 1
}

func runCommand(ctx context.Context, cfg Config) error {
	closeLog, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	status := shell.New().RunScript(ctx, cfg.Command)
	slog.DebugContext(ctx, "command finished", "status", status.Code)
	if !status.Success() {
		return &exitError{code: status.Code}
	}
	return nil
}

func runInteractive(ctx context.Context, cfg Config, exitOnEOFSet bool) error {
	closeLog, err := setupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog() //nolint:errcheck

	if !isatty.IsTerminal(os.Stdin.Fd()) {
		return errors.New("standard input is not a terminal; use -c to run a single command")
	}

	fileCfg, err := LoadConfig(cfg.ConfigPath)
	if err != nil {
		return err
	}
	opts := fileCfg.EditorOptions()
	if exitOnEOFSet {
		opts.ExitOnEOF = cfg.ExitOnEOF
	}

	session := editor.NewSession(termui.NewProcessTerminal(), shell.New(), opts)
	return session.Run(ctx)
}
