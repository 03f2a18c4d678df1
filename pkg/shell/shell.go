// Package shell runs lines submitted by the line editor.
package shell

import (
	"context"
	"fmt"
	"log/slog"

	"charm.land/lipgloss/v2"
	"github.com/kr/pretty"
	"github.com/pkg/errors"

	"github.com/ikanago/toysh/pkg/ioctx"
)

// Executor runs a submitted line and reports how it exited.
type Executor interface {
	RunScript(ctx context.Context, script string) ExitStatus
}

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

// Shell parses scripts. It does not execute commands yet: a script that
// parses exits with 0, one that does not exits with -1 after printing the
// diagnostic to the context's stderr.
type Shell struct{}

func New() *Shell {
	return &Shell{}
}

func (sh *Shell) RunScript(ctx context.Context, script string) ExitStatus {
	file, err := Parse(script)
	if err == nil {
		if slog.Default().Enabled(ctx, slog.LevelDebug) {
			slog.DebugContext(ctx, "parsed script", "ast", fmt.Sprintf("%# v", pretty.Formatter(file.Stmts)))
		}
		return ExitedWith(0)
	}

	if errors.Is(err, ErrEmpty) {
		return ExitedWith(0)
	}

	slog.DebugContext(ctx, "script rejected", "script", script, "error", err)
	fmt.Fprintln(ioctx.Stderr(ctx), errorStyle.Render("toysh: "+err.Error()))
	return ExitedWith(-1)
}
