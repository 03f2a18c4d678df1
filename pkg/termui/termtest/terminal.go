// Package termtest provides an in-memory terminal and a minimal VT screen
// model for testing code that drives a termui.Terminal.
package termtest

import (
	"bytes"
	"io"
	"time"
)

// Terminal is a scripted termui.Terminal. Input chunks are returned one per
// Read; output is recorded.
type Terminal struct {
	Cols, Rows int
	SizeErr    error
	WriteErr   error
	MakeRawErr error

	Raw          bool
	MakeRawCalls int
	RestoreCalls int

	written bytes.Buffer
	input   [][]byte
	eof     bool
	screen  *Screen
}

// New returns a terminal of the given size with a Screen attached to its
// output.
func New(cols, rows int) *Terminal {
	return &Terminal{Cols: cols, Rows: rows, screen: NewScreen(cols)}
}

// Feed queues input. Each chunk is delivered by a separate Read.
func (t *Terminal) Feed(chunks ...string) {
	for _, c := range chunks {
		t.input = append(t.input, []byte(c))
	}
}

// CloseInput makes Read return io.EOF once queued input is consumed.
func (t *Terminal) CloseInput() { t.eof = true }

// Output returns everything written so far.
func (t *Terminal) Output() string { return t.written.String() }

// Reset discards recorded output. The screen keeps its contents.
func (t *Terminal) Reset() { t.written.Reset() }

// Screen returns the screen model fed by every Write.
func (t *Terminal) Screen() *Screen { return t.screen }

func (t *Terminal) MakeRaw() error {
	t.MakeRawCalls++
	if t.MakeRawErr != nil {
		return t.MakeRawErr
	}
	t.Raw = true
	return nil
}

func (t *Terminal) Restore() error {
	t.RestoreCalls++
	t.Raw = false
	return nil
}

func (t *Terminal) Size() (int, int, error) {
	if t.SizeErr != nil {
		return 0, 0, t.SizeErr
	}
	return t.Cols, t.Rows, nil
}

func (t *Terminal) Poll(time.Duration) (bool, error) {
	return len(t.input) > 0 || t.eof, nil
}

func (t *Terminal) Read(p []byte) (int, error) {
	if len(t.input) == 0 {
		if t.eof {
			return 0, io.EOF
		}
		return 0, nil
	}
	n := copy(p, t.input[0])
	if n < len(t.input[0]) {
		t.input[0] = t.input[0][n:]
	} else {
		t.input = t.input[1:]
	}
	return n, nil
}

func (t *Terminal) Write(p []byte) (int, error) {
	if t.WriteErr != nil {
		return 0, t.WriteErr
	}
	t.written.Write(p)
	_, _ = t.screen.Write(p)
	return len(p), nil
}
