package termui

import (
	"log/slog"

	"github.com/pkg/errors"
)

// RawMode is the scoped raw-mode guard for a Terminal. It is acquired with
// EnterRawMode and must be released with Release, typically deferred, so the
// terminal is restored on every exit path.
type RawMode struct {
	term   Terminal
	active bool
}

// EnterRawMode puts term into raw mode and returns the guard that restores
// it.
func EnterRawMode(term Terminal) (*RawMode, error) {
	if err := term.MakeRaw(); err != nil {
		return nil, errors.Wrap(err, "enter raw mode")
	}
	return &RawMode{term: term, active: true}, nil
}

// Active reports whether the terminal is currently in raw mode.
func (m *RawMode) Active() bool { return m.active }

// Release restores the terminal. It is safe to call more than once.
func (m *RawMode) Release() {
	if !m.active {
		return
	}
	m.active = false
	if err := m.term.Restore(); err != nil {
		slog.Debug("restore terminal", "error", err)
	}
}

// Suspend restores the terminal's original mode for the duration of fn and
// re-enters raw mode afterwards, even if fn panics. The returned error
// reports a failure to re-enter raw mode.
func (m *RawMode) Suspend(fn func()) (err error) {
	if !m.active {
		fn()
		return nil
	}

	if rerr := m.term.Restore(); rerr != nil {
		slog.Debug("suspend raw mode", "error", rerr)
	}
	m.active = false

	defer func() {
		if rerr := m.term.MakeRaw(); rerr != nil {
			err = errors.Wrap(rerr, "resume raw mode")
			return
		}
		m.active = true
	}()

	fn()
	return nil
}
