// Package termui drives an ANSI terminal for a single-line editor on the
// normal scrollback buffer (no alternate screen). It owns raw mode, decodes
// key input, and redraws the prompt and input line with correct cursor
// placement when the input wraps across rows.
package termui

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

// Terminal abstracts terminal I/O so the editor can be tested with a fake
// terminal.
type Terminal interface {
	io.ReadWriter

	// MakeRaw saves the current terminal state the first time it is called
	// and puts the terminal into raw mode.
	MakeRaw() error

	// Restore returns the terminal to the state saved by MakeRaw.
	Restore() error

	// Size returns the current terminal dimensions.
	Size() (cols, rows int, err error)

	// Poll waits up to timeout for input to become readable. A zero timeout
	// returns immediately.
	Poll(timeout time.Duration) (bool, error)
}

// ProcessTerminal is a Terminal backed by the process's stdin and stdout.
type ProcessTerminal struct {
	in  *os.File
	out *os.File

	origTermios *unix.Termios
}

func NewProcessTerminal() *ProcessTerminal {
	return &ProcessTerminal{in: os.Stdin, out: os.Stdout}
}

func (t *ProcessTerminal) MakeRaw() error {
	fd := int(t.in.Fd())
	if t.origTermios == nil {
		orig, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
		if err != nil {
			return errors.Wrap(err, "get termios")
		}
		t.origTermios = orig
	}

	raw := *t.origTermios
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return errors.Wrap(err, "set raw")
	}
	return nil
}

func (t *ProcessTerminal) Restore() error {
	if t.origTermios == nil {
		return nil
	}
	if err := unix.IoctlSetTermios(int(t.in.Fd()), ioctlWriteTermios, t.origTermios); err != nil {
		return errors.Wrap(err, "restore termios")
	}
	return nil
}

func (t *ProcessTerminal) Size() (int, int, error) {
	ws, err := unix.IoctlGetWinsize(int(t.out.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, errors.Wrap(err, "get winsize")
	}
	return int(ws.Col), int(ws.Row), nil
}

func (t *ProcessTerminal) Poll(timeout time.Duration) (bool, error) {
	fds := []unix.PollFd{{Fd: int32(t.in.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, int(timeout.Milliseconds()))
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return false, nil
		}
		return false, errors.Wrap(err, "poll stdin")
	}
	if n == 0 {
		return false, nil
	}
	// POLLHUP without POLLIN still needs a Read to observe EOF.
	return fds[0].Revents&(unix.POLLIN|unix.POLLHUP|unix.POLLERR) != 0, nil
}

func (t *ProcessTerminal) Read(p []byte) (int, error) {
	return t.in.Read(p)
}

func (t *ProcessTerminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}
