package editor

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/pkg/errors"

	"github.com/ikanago/toysh/pkg/linebuf"
	"github.com/ikanago/toysh/pkg/shell"
	"github.com/ikanago/toysh/pkg/termui"
)

const DefaultPollInterval = 100 * time.Millisecond

// Options configures a Session.
type Options struct {
	// Prompt is printed before the input line.
	Prompt string
	// EOLMark is shown when the previous output did not end in a newline.
	EOLMark string
	// PollInterval bounds how long the loop waits for input before checking
	// the context again. Zero means DefaultPollInterval.
	PollInterval time.Duration
	// ExitOnEOF ends the session on Ctrl-D with an empty line. By default
	// it is ignored.
	ExitOnEOF bool
}

// Session is the interactive loop: it owns raw mode on the terminal, reads
// keys, and hands submitted lines to the executor.
type Session struct {
	term     termui.Terminal
	exec     shell.Executor
	opts     Options
	buf      *linebuf.Buffer
	renderer *termui.Renderer
	dispatch *Dispatcher
	input    *termui.Input
	raw      *termui.RawMode

	lastStatus shell.ExitStatus
	submitted  int
}

func NewSession(term termui.Terminal, exec shell.Executor, opts Options) *Session {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	buf := linebuf.New()
	renderer := termui.NewRenderer(term, termui.RenderOptions{
		Prompt:  opts.Prompt,
		EOLMark: opts.EOLMark,
	})
	return &Session{
		term:     term,
		exec:     exec,
		opts:     opts,
		buf:      buf,
		renderer: renderer,
		dispatch: NewDispatcher(buf, renderer),
		input:    termui.NewInput(term),
	}
}

// LastStatus returns the exit status of the most recently submitted line.
func (s *Session) LastStatus() shell.ExitStatus { return s.lastStatus }

// Submitted returns how many lines have been run.
func (s *Session) Submitted() int { return s.submitted }

// Buffer returns the line being edited.
func (s *Session) Buffer() *linebuf.Buffer { return s.buf }

// Run enters raw mode and processes input until Esc, end of input, or ctx is
// done. The terminal is restored on every return path, including panics.
//
// Each wait for input lasts at most the poll interval. Once a key arrives
// the loop keeps polling with a zero timeout, so a burst of buffered keys is
// handled before going back to waiting.
func (s *Session) Run(ctx context.Context) error {
	raw, err := termui.EnterRawMode(s.term)
	if err != nil {
		return err
	}
	defer raw.Release()
	s.raw = raw

	s.renderer.RenderPrompt()
	s.renderer.RedrawLine(s.buf)
	slog.DebugContext(ctx, "session started", "columns", s.renderer.Columns())

	for {
		if ctx.Err() != nil {
			slog.DebugContext(ctx, "session cancelled")
			return nil
		}

		ready, err := s.input.Poll(s.opts.PollInterval)
		for err == nil && ready {
			key, _ := s.input.Next()
			if s.handle(ctx, s.dispatch.Dispatch(key)) {
				s.input.Discard()
				return nil
			}
			ready, err = s.input.Poll(0)
		}
		if errors.Is(err, io.EOF) {
			slog.DebugContext(ctx, "input closed")
			return nil
		}
		if err != nil {
			return errors.Wrap(err, "read input")
		}
	}
}

// handle acts on a dispatched key and reports whether the session is done.
func (s *Session) handle(ctx context.Context, action Action) bool {
	switch action {
	case ActionQuit:
		slog.DebugContext(ctx, "quit requested")
		return true
	case ActionEndOfInput:
		slog.DebugContext(ctx, "end of input", "exit", s.opts.ExitOnEOF)
		return s.opts.ExitOnEOF
	case ActionSubmit:
		s.submit(ctx)
	}
	return false
}

func (s *Session) submit(ctx context.Context) {
	s.renderer.RedrawLine(s.buf)
	s.renderer.FinishLine()

	line := s.buf.String()
	if err := s.raw.Suspend(func() {
		s.lastStatus = s.exec.RunScript(ctx, line)
	}); err != nil {
		slog.WarnContext(ctx, "terminal left in cooked mode", "error", err)
	}
	s.submitted++
	slog.DebugContext(ctx, "line submitted", "line", line, "status", s.lastStatus.Code)

	s.buf.Clear()
	s.renderer.RenderPrompt()
	s.renderer.RedrawLine(s.buf)
}
