package termui

import (
	"bytes"
	"time"
	"unicode/utf8"

	uv "github.com/charmbracelet/ultraviolet"
)

// Input turns raw bytes read from a Terminal into key presses. Bytes that
// arrive together are decoded together, so a burst of buffered keystrokes
// becomes a queue of keys that can be drained without touching the terminal.
type Input struct {
	term    Terminal
	decoder uv.EventDecoder
	buf     []byte
	held    []byte
	pending []uv.Key
	err     error
}

func NewInput(term Terminal) *Input {
	return &Input{
		term: term,
		buf:  make([]byte, 4096),
	}
}

// Poll reports whether a key is available, waiting up to timeout for the
// terminal to become readable when none is queued. Read errors, including
// io.EOF, are returned once the queue is empty.
func (in *Input) Poll(timeout time.Duration) (bool, error) {
	if len(in.pending) > 0 {
		return true, nil
	}
	if in.err != nil {
		err := in.err
		in.err = nil
		return false, err
	}

	ready, err := in.term.Poll(timeout)
	if err != nil || !ready {
		return false, err
	}

	n, err := in.term.Read(in.buf)
	if n > 0 {
		in.feed(in.buf[:n])
	}
	if err != nil {
		in.flush()
		if len(in.pending) > 0 {
			in.err = err
			return true, nil
		}
		return false, err
	}
	return len(in.pending) > 0, nil
}

// Next pops the oldest queued key.
func (in *Input) Next() (uv.Key, bool) {
	if len(in.pending) == 0 {
		return uv.Key{}, false
	}
	key := in.pending[0]
	in.pending = in.pending[1:]
	return key, true
}

// Discard drops every queued key, along with any partial sequence waiting
// for the rest of its bytes.
func (in *Input) Discard() {
	in.pending = in.pending[:0]
	in.held = nil
}

// feed decodes data after any bytes held back from the previous read. An
// escape sequence or UTF-8 rune cut off at the end of data is held until the
// next read completes it.
func (in *Input) feed(data []byte) {
	if len(in.held) > 0 {
		data = append(in.held, data...)
		in.held = nil
	}
	cut := incompleteTail(data)
	in.decode(data[:cut])
	if cut < len(data) {
		in.held = append([]byte(nil), data[cut:]...)
	}
}

// flush decodes held bytes as they are; no more input will complete them.
func (in *Input) flush() {
	if len(in.held) > 0 {
		held := in.held
		in.held = nil
		in.decode(held)
	}
}

func (in *Input) decode(data []byte) {
	buf := data
	for len(buf) > 0 {
		n, ev := in.decoder.Decode(buf)
		if n == 0 {
			break
		}
		buf = buf[n:]
		if ev == nil {
			continue
		}
		if kp, ok := ev.(uv.KeyPressEvent); ok {
			in.pending = append(in.pending, uv.Key(kp))
		}
	}
}

// maxHeldSequence bounds how long an unterminated CSI may grow before it is
// handed to the decoder anyway.
const maxHeldSequence = 64

// incompleteTail returns the offset at which data ends in a cut-off CSI or
// SS3 sequence or UTF-8 rune, or len(data) if it ends cleanly. A lone ESC
// is complete: it is the Escape key.
func incompleteTail(data []byte) int {
	if i := bytes.LastIndexByte(data, 0x1b); i >= 0 && len(data)-i <= maxHeldSequence {
		seq := data[i:]
		switch {
		case len(seq) == 2 && seq[1] == 'O':
			return i
		case len(seq) >= 2 && seq[1] == '[' && csiUnterminated(seq[2:]):
			return i
		}
	}
	for back := 1; back < utf8.UTFMax && back <= len(data); back++ {
		start := len(data) - back
		if !utf8.RuneStart(data[start]) {
			continue
		}
		if data[start] >= utf8.RuneSelf && !utf8.FullRune(data[start:]) {
			return start
		}
		break
	}
	return len(data)
}

// csiUnterminated reports whether params holds only CSI parameter and
// intermediate bytes, so the final byte has yet to arrive.
func csiUnterminated(params []byte) bool {
	for _, c := range params {
		if c < 0x20 || c > 0x3f {
			return false
		}
	}
	return true
}
