// Package editor is the interactive line editor: it maps key presses to
// edits of the line buffer and runs the session loop that submits lines to
// a shell.
package editor

import (
	uv "github.com/charmbracelet/ultraviolet"

	"github.com/ikanago/toysh/pkg/linebuf"
	"github.com/ikanago/toysh/pkg/termui"
)

// Action is what a key press asks of the session.
type Action int

const (
	// ActionNone means the key is not bound.
	ActionNone Action = iota
	// ActionEdit means the buffer or cursor may have changed.
	ActionEdit
	// ActionInterrupt means the line was abandoned and a fresh prompt drawn.
	ActionInterrupt
	// ActionEndOfInput is Ctrl-D with nothing left to delete.
	ActionEndOfInput
	// ActionSubmit asks the session to run the buffer.
	ActionSubmit
	// ActionQuit asks the session to end immediately.
	ActionQuit
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionEdit:
		return "edit"
	case ActionInterrupt:
		return "interrupt"
	case ActionEndOfInput:
		return "end-of-input"
	case ActionSubmit:
		return "submit"
	case ActionQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Dispatcher applies key presses to a line buffer. It has no modes: the
// same key always does the same thing. Every key except Enter and Esc ends
// with a redraw.
type Dispatcher struct {
	buf      *linebuf.Buffer
	renderer *termui.Renderer
}

func NewDispatcher(buf *linebuf.Buffer, renderer *termui.Renderer) *Dispatcher {
	return &Dispatcher{buf: buf, renderer: renderer}
}

func (d *Dispatcher) Dispatch(key uv.Key) Action {
	action := d.apply(key)
	switch action {
	case ActionSubmit, ActionQuit:
	default:
		d.renderer.RedrawLine(d.buf)
	}
	return action
}

func (d *Dispatcher) apply(key uv.Key) Action {
	switch {
	case key.Code == 'c' && key.Mod == uv.ModCtrl:
		d.renderer.FinishLine()
		d.renderer.RenderPrompt()
		d.buf.Clear()
		return ActionInterrupt

	case key.Code == 'd' && key.Mod == uv.ModCtrl:
		if d.buf.IsEmpty() {
			return ActionEndOfInput
		}
		d.buf.Delete()
		return ActionEdit

	case key.Code == uv.KeyLeft && key.Mod == 0:
		d.buf.MoveBy(-1)
		return ActionEdit

	case key.Code == uv.KeyRight && key.Mod == 0:
		d.buf.MoveBy(1)
		return ActionEdit

	case key.Code == uv.KeyBackspace && key.Mod == 0:
		d.buf.Backspace()
		return ActionEdit

	case key.Code == uv.KeyEnter && key.Mod == 0:
		return ActionSubmit

	case key.Code == uv.KeyEscape && key.Mod == 0:
		return ActionQuit

	case isPrintable(key):
		for _, r := range key.Text {
			d.buf.Insert(r)
		}
		return ActionEdit
	}

	return ActionNone
}

// isPrintable reports whether key types text. Shift only changes which
// character is typed.
func isPrintable(key uv.Key) bool {
	if key.Text == "" || key.Mod&^uv.ModShift != 0 {
		return false
	}
	for _, r := range key.Text {
		if r < 0x20 || r == 0x7f {
			return false
		}
	}
	return true
}
