package editor

import (
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikanago/toysh/pkg/linebuf"
	"github.com/ikanago/toysh/pkg/termui"
	"github.com/ikanago/toysh/pkg/termui/termtest"
)

var (
	keyCtrlC     = uv.Key{Code: 'c', Mod: uv.ModCtrl}
	keyCtrlD     = uv.Key{Code: 'd', Mod: uv.ModCtrl}
	keyLeft      = uv.Key{Code: uv.KeyLeft}
	keyRight     = uv.Key{Code: uv.KeyRight}
	keyBackspace = uv.Key{Code: uv.KeyBackspace}
	keyEnter     = uv.Key{Code: uv.KeyEnter}
	keyEscape    = uv.Key{Code: uv.KeyEscape}
)

func newTestDispatcher(cols int) (*termtest.Terminal, *linebuf.Buffer, *Dispatcher) {
	term := termtest.New(cols, 24)
	buf := linebuf.New()
	r := termui.NewRenderer(term, termui.RenderOptions{Prompt: " $ ", EOLMark: "$"})
	r.RenderPrompt()
	return term, buf, NewDispatcher(buf, r)
}

func typeText(t *testing.T, d *Dispatcher, s string) {
	t.Helper()
	for _, r := range s {
		require.Equal(t, ActionEdit, d.Dispatch(uv.Key{Code: r, Text: string(r)}))
	}
}

func TestDispatchTyping(t *testing.T) {
	term, buf, d := newTestDispatcher(40)
	typeText(t, d, "echo hi")

	assert.Equal(t, "echo hi", buf.String())
	assert.Equal(t, []string{" $ echo hi"}, term.Screen().Lines())
	row, col := term.Screen().Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 10, col)
}

func TestDispatchShiftedText(t *testing.T) {
	_, buf, d := newTestDispatcher(40)
	action := d.Dispatch(uv.Key{Code: 'a', ShiftedCode: 'A', Mod: uv.ModShift, Text: "A"})

	assert.Equal(t, ActionEdit, action)
	assert.Equal(t, "A", buf.String())
}

func TestDispatchCursorMovement(t *testing.T) {
	term, buf, d := newTestDispatcher(40)
	typeText(t, d, "ac")

	assert.Equal(t, ActionEdit, d.Dispatch(keyLeft))
	typeText(t, d, "b")
	assert.Equal(t, "abc", buf.String())
	assert.Equal(t, 2, buf.Cursor())

	for range 5 {
		d.Dispatch(keyLeft)
	}
	assert.Equal(t, 0, buf.Cursor())
	for range 5 {
		d.Dispatch(keyRight)
	}
	assert.Equal(t, 3, buf.Cursor())

	d.Dispatch(keyLeft)
	_, col := term.Screen().Cursor()
	assert.Equal(t, 5, col)
}

func TestDispatchModifiedArrowsAreIgnored(t *testing.T) {
	_, buf, d := newTestDispatcher(40)
	typeText(t, d, "ab")

	assert.Equal(t, ActionNone, d.Dispatch(uv.Key{Code: uv.KeyLeft, Mod: uv.ModShift}))
	assert.Equal(t, ActionNone, d.Dispatch(uv.Key{Code: uv.KeyLeft, Mod: uv.ModCtrl}))
	assert.Equal(t, 2, buf.Cursor())
}

func TestDispatchBackspace(t *testing.T) {
	_, buf, d := newTestDispatcher(40)
	typeText(t, d, "lsx")

	assert.Equal(t, ActionEdit, d.Dispatch(keyBackspace))
	assert.Equal(t, "ls", buf.String())

	d.Dispatch(keyLeft)
	d.Dispatch(keyLeft)
	assert.Equal(t, ActionEdit, d.Dispatch(keyBackspace))
	assert.Equal(t, "ls", buf.String())
}

func TestDispatchCtrlD(t *testing.T) {
	t.Run("deletes under the cursor", func(t *testing.T) {
		_, buf, d := newTestDispatcher(40)
		typeText(t, d, "cat")
		d.Dispatch(keyLeft)
		d.Dispatch(keyLeft)

		assert.Equal(t, ActionEdit, d.Dispatch(keyCtrlD))
		assert.Equal(t, "ct", buf.String())
		assert.Equal(t, 1, buf.Cursor())
	})

	t.Run("at the end of a non-empty line", func(t *testing.T) {
		_, buf, d := newTestDispatcher(40)
		typeText(t, d, "cat")

		assert.Equal(t, ActionEdit, d.Dispatch(keyCtrlD))
		assert.Equal(t, "cat", buf.String())
	})

	t.Run("on an empty line is end of input", func(t *testing.T) {
		term, buf, d := newTestDispatcher(40)
		term.Reset()

		var action Action
		assert.NotPanics(t, func() { action = d.Dispatch(keyCtrlD) })
		assert.Equal(t, ActionEndOfInput, action)
		assert.True(t, buf.IsEmpty())
		assert.NotEmpty(t, term.Output(), "expected a redraw")
	})
}

func TestDispatchCtrlC(t *testing.T) {
	term, buf, d := newTestDispatcher(40)
	typeText(t, d, "abc")
	d.Dispatch(keyLeft)

	assert.Equal(t, ActionInterrupt, d.Dispatch(keyCtrlC))
	assert.True(t, buf.IsEmpty())
	assert.Equal(t, 0, buf.Cursor())
	assert.Equal(t, []string{" $ abc", " $"}, term.Screen().Lines())
	row, col := term.Screen().Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 3, col)
}

func TestDispatchSubmitAndQuitDoNotRedraw(t *testing.T) {
	term, buf, d := newTestDispatcher(40)
	typeText(t, d, "ls")
	term.Reset()

	assert.Equal(t, ActionSubmit, d.Dispatch(keyEnter))
	assert.Equal(t, ActionQuit, d.Dispatch(keyEscape))
	assert.Empty(t, term.Output())
	assert.Equal(t, "ls", buf.String())
}

func TestDispatchUnboundKeys(t *testing.T) {
	for _, key := range []uv.Key{
		{Code: 'a', Mod: uv.ModCtrl},
		{Code: 'x', Mod: uv.ModAlt, Text: "x"},
		{Code: uv.KeyUp},
		{Code: uv.KeyTab},
		{Code: uv.KeyEnter, Mod: uv.ModShift},
		{Code: uv.KeyEscape, Mod: uv.ModAlt},
	} {
		term, buf, d := newTestDispatcher(40)
		typeText(t, d, "ls")
		term.Reset()

		assert.Equal(t, ActionNone, d.Dispatch(key), "key %+v", key)
		assert.Equal(t, "ls", buf.String())
		assert.NotEmpty(t, term.Output(), "unbound keys still redraw")
	}
}

func TestDispatchControlTextIsNotInserted(t *testing.T) {
	for _, text := range []string{"\n", "\r", "a\tb", "\x1b", "\x7f", "x\ny"} {
		term, buf, d := newTestDispatcher(40)
		typeText(t, d, "ls")

		assert.Equal(t, ActionNone, d.Dispatch(uv.Key{Code: 'x', Text: text}), "text %q", text)
		assert.Equal(t, "ls", buf.String())
		assert.Equal(t, []string{" $ ls"}, term.Screen().Lines())
	}
}

func TestDispatchWrappedInputKeepsCursorInPlace(t *testing.T) {
	term, _, d := newTestDispatcher(10)
	typeText(t, d, "abcdefgh")

	row, col := term.Screen().Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, 1, col)

	d.Dispatch(keyLeft)
	d.Dispatch(keyLeft)
	row, col = term.Screen().Cursor()
	assert.Equal(t, 0, row)
	assert.Equal(t, 9, col)
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "end-of-input", ActionEndOfInput.String())
	assert.Equal(t, "submit", ActionSubmit.String())
	assert.Equal(t, "unknown", Action(99).String())
}
