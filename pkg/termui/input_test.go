package termui

import (
	"io"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ikanago/toysh/pkg/termui/termtest"
)

func drain(t *testing.T, in *Input) []uv.Key {
	t.Helper()
	var keys []uv.Key
	for {
		ready, err := in.Poll(0)
		require.NoError(t, err)
		if !ready {
			return keys
		}
		key, ok := in.Next()
		require.True(t, ok)
		keys = append(keys, key)
	}
}

func TestInputDecodesBurst(t *testing.T) {
	term := termtest.New(80, 24)
	term.Feed("ls" + KeyLeft + KeyBackspace + KeyEnter)
	in := NewInput(term)

	keys := drain(t, in)
	require.Len(t, keys, 5)
	assert.Equal(t, "l", keys[0].Text)
	assert.Equal(t, "s", keys[1].Text)
	assert.Equal(t, uv.KeyLeft, keys[2].Code)
	assert.Equal(t, uv.KeyBackspace, keys[3].Code)
	assert.Equal(t, uv.KeyEnter, keys[4].Code)
}

func TestInputControlKeys(t *testing.T) {
	term := termtest.New(80, 24)
	term.Feed(KeyCtrlC, KeyCtrlD, KeyRight, KeyEscape)
	in := NewInput(term)

	keys := drain(t, in)
	require.Len(t, keys, 4)
	assert.Equal(t, 'c', keys[0].Code)
	assert.Equal(t, uv.ModCtrl, keys[0].Mod)
	assert.Equal(t, 'd', keys[1].Code)
	assert.Equal(t, uv.ModCtrl, keys[1].Mod)
	assert.Equal(t, uv.KeyRight, keys[2].Code)
	assert.Equal(t, uv.KeyEscape, keys[3].Code)
}

func TestInputMultibyteText(t *testing.T) {
	term := termtest.New(80, 24)
	term.Feed("é日")
	in := NewInput(term)

	keys := drain(t, in)
	require.Len(t, keys, 2)
	assert.Equal(t, "é", keys[0].Text)
	assert.Equal(t, "日", keys[1].Text)
}

func TestInputEOF(t *testing.T) {
	term := termtest.New(80, 24)
	term.Feed("a")
	term.CloseInput()
	in := NewInput(term)

	ready, err := in.Poll(0)
	require.NoError(t, err)
	require.True(t, ready)
	key, ok := in.Next()
	require.True(t, ok)
	assert.Equal(t, "a", key.Text)

	ready, err = in.Poll(0)
	assert.False(t, ready)
	assert.ErrorIs(t, err, io.EOF)
}

func TestInputDiscard(t *testing.T) {
	term := termtest.New(80, 24)
	term.Feed("abc")
	in := NewInput(term)

	ready, err := in.Poll(0)
	require.NoError(t, err)
	require.True(t, ready)

	in.Discard()
	_, ok := in.Next()
	assert.False(t, ok)

	ready, err = in.Poll(0)
	require.NoError(t, err)
	assert.False(t, ready)
}

func TestInputSequenceSplitAcrossReads(t *testing.T) {
	term := termtest.New(80, 24)
	term.Feed("a\x1b[", "Cb")
	in := NewInput(term)

	keys := drain(t, in)
	require.Len(t, keys, 3)
	assert.Equal(t, "a", keys[0].Text)
	assert.Equal(t, uv.KeyRight, keys[1].Code)
	assert.Zero(t, keys[1].Mod)
	assert.Equal(t, "b", keys[2].Text)
}

func TestInputSequenceHeldUntilNextRead(t *testing.T) {
	term := termtest.New(80, 24)
	term.Feed("\x1b[")
	in := NewInput(term)

	ready, err := in.Poll(0)
	require.NoError(t, err)
	assert.False(t, ready)

	term.Feed("D")
	keys := drain(t, in)
	require.Len(t, keys, 1)
	assert.Equal(t, uv.KeyLeft, keys[0].Code)
}

func TestInputRuneSplitAcrossReads(t *testing.T) {
	term := termtest.New(80, 24)
	term.Feed("x\xe6\x97", "\xa5")
	in := NewInput(term)

	keys := drain(t, in)
	require.Len(t, keys, 2)
	assert.Equal(t, "x", keys[0].Text)
	assert.Equal(t, "日", keys[1].Text)
}

func TestInputHeldBytesFlushedAtEOF(t *testing.T) {
	term := termtest.New(80, 24)
	term.Feed("\x1b[")
	term.CloseInput()
	in := NewInput(term)

	var err error
	for range 5 {
		var ready bool
		ready, err = in.Poll(0)
		if err != nil {
			break
		}
		if ready {
			in.Next()
		}
	}
	assert.ErrorIs(t, err, io.EOF)
	assert.Empty(t, in.held)
}

func TestIncompleteTail(t *testing.T) {
	for _, tc := range []struct {
		data string
		want int
	}{
		{"abc", 3},
		{"\x1b", 1},
		{"a\x1b[", 1},
		{"a\x1b[1;5", 1},
		{"a\x1b[C", 4},
		{"\x1bO", 0},
		{"\x1bOA", 3},
		{"x\xe6\x97", 1},
		{"x\xe6\x97\xa5", 4},
		{"\xc3", 0},
		{"\xff", 1},
	} {
		assert.Equal(t, tc.want, incompleteTail([]byte(tc.data)), "%q", tc.data)
	}
}
