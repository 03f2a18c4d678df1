package termtest

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Screen models just enough of a VT terminal to check cursor placement:
// printable text with deferred autowrap, CR, LF, cursor up/down/forward/back,
// erase line/display below, and cursor visibility. SGR and other sequences
// are ignored. The screen grows downward and never scrolls.
type Screen struct {
	cols          int
	grid          [][]rune
	row, col      int
	wrapPending   bool
	cursorVisible bool
}

func NewScreen(cols int) *Screen {
	return &Screen{cols: max(cols, 1), grid: [][]rune{nil}, cursorVisible: true}
}

func (s *Screen) Write(p []byte) (int, error) {
	s.feed(string(p))
	return len(p), nil
}

// Cursor returns the cursor row and column.
func (s *Screen) Cursor() (int, int) { return s.row, s.col }

func (s *Screen) CursorVisible() bool { return s.cursorVisible }

// Lines returns every row with trailing blanks trimmed.
func (s *Screen) Lines() []string {
	lines := make([]string, len(s.grid))
	for i, row := range s.grid {
		lines[i] = strings.TrimRight(string(row), " ")
	}
	return lines
}

// Text returns rows first through last joined as one string, each row
// padded to the screen width, with trailing blanks trimmed. It reads back
// text that was printed across wrapped rows.
func (s *Screen) Text(first, last int) string {
	var b strings.Builder
	for i := first; i <= last && i < len(s.grid); i++ {
		row := s.grid[i]
		b.WriteString(string(row))
		b.WriteString(strings.Repeat(" ", s.cols-len(row)))
	}
	return strings.TrimRight(b.String(), " ")
}

func (s *Screen) feed(data string) {
	for i := 0; i < len(data); {
		c := data[i]
		switch {
		case c == '\x1b':
			i += s.escape(data[i:])
			continue
		case c == '\r':
			s.col = 0
			s.wrapPending = false
		case c == '\n':
			s.moveRow(s.row + 1)
		case c < 0x20 || c == 0x7f:
		default:
			r, size := utf8.DecodeRuneInString(data[i:])
			s.print(r)
			i += size
			continue
		}
		i++
	}
}

func (s *Screen) print(r rune) {
	if s.wrapPending {
		s.moveRow(s.row + 1)
		s.col = 0
	}
	row := s.grid[s.row]
	for len(row) <= s.col {
		row = append(row, ' ')
	}
	row[s.col] = r
	s.grid[s.row] = row
	if s.col == s.cols-1 {
		s.wrapPending = true
	} else {
		s.col++
	}
}

func (s *Screen) moveRow(row int) {
	s.row = max(row, 0)
	for len(s.grid) <= s.row {
		s.grid = append(s.grid, nil)
	}
	s.wrapPending = false
}

// escape handles the sequence at the start of data and returns its length.
func (s *Screen) escape(data string) int {
	if len(data) < 2 {
		return len(data)
	}
	switch data[1] {
	case '[':
	case ']':
		for j := 2; j < len(data); j++ {
			if data[j] == '\x07' {
				return j + 1
			}
			if data[j] == '\x1b' && j+1 < len(data) && data[j+1] == '\\' {
				return j + 2
			}
		}
		return len(data)
	default:
		return 2
	}

	end := 2
	for end < len(data) && (data[end] < 0x40 || data[end] > 0x7e) {
		end++
	}
	if end == len(data) {
		return len(data)
	}
	params, final := data[2:end], data[end]
	s.csi(params, final)
	return end + 1
}

func (s *Screen) csi(params string, final byte) {
	private := strings.HasPrefix(params, "?")
	params = strings.TrimPrefix(params, "?")
	n, err := strconv.Atoi(params)
	if err != nil {
		n = 0
	}
	count := max(n, 1)

	switch final {
	case 'A':
		s.moveRow(s.row - count)
	case 'B':
		s.moveRow(s.row + count)
	case 'C':
		s.col = min(s.col+count, s.cols-1)
		s.wrapPending = false
	case 'D':
		s.col = max(s.col-count, 0)
		s.wrapPending = false
	case 'K':
		if n == 0 {
			s.eraseRight()
		}
	case 'J':
		if n == 0 {
			s.eraseRight()
			s.grid = s.grid[:s.row+1]
		}
	case 'h', 'l':
		if private && n == 25 {
			s.cursorVisible = final == 'h'
		}
	}
}

func (s *Screen) eraseRight() {
	row := s.grid[s.row]
	if s.col < len(row) {
		s.grid[s.row] = row[:s.col]
	}
}
