package termui

import (
	"io"
	"log/slog"
	"strings"

	"github.com/charmbracelet/x/ansi"
)

const (
	defaultColumns = 80
	defaultRows    = 24
)

// Screen is the part of a Terminal the renderer draws on.
type Screen interface {
	io.Writer
	Size() (cols, rows int, err error)
}

// Line is the read-only view of the edit buffer that gets drawn after the
// prompt. Len and Cursor count characters, one display column each.
type Line interface {
	String() string
	Len() int
	Cursor() int
}

// RenderOptions configures what the renderer prints.
type RenderOptions struct {
	// Prompt is printed before the input. It may contain ANSI codes and
	// newlines; only its last line shares a row with the input.
	Prompt string

	// EOLMark is shown, reverse-video, when the previous output did not end
	// in a newline. Empty disables it.
	EOLMark string
}

// Renderer draws the prompt and the input line. Rows are counted from the
// row on which the prompt's last line starts.
type Renderer struct {
	screen Screen
	opts   RenderOptions

	columns     int
	rows        int
	promptWidth int

	rowsAboveCursor int
	rowsBelowCursor int
	// boundary is set when the input ended exactly on a column boundary and
	// an explicit line break left the last row empty.
	boundary bool
}

func NewRenderer(screen Screen, opts RenderOptions) *Renderer {
	return &Renderer{
		screen:  screen,
		opts:    opts,
		columns: defaultColumns,
		rows:    defaultRows,
	}
}

func (r *Renderer) Columns() int         { return r.columns }
func (r *Renderer) Rows() int            { return r.rows }
func (r *Renderer) PromptWidth() int     { return r.promptWidth }
func (r *Renderer) RowsAboveCursor() int { return r.rowsAboveCursor }
func (r *Renderer) RowsBelowCursor() int { return r.rowsBelowCursor }

// RenderPrompt refreshes the terminal size, draws the end-of-line mark and
// prints the prompt on a fresh row. It must be called again whenever the
// terminal may have been resized, since later redraws reuse its layout.
func (r *Renderer) RenderPrompt() {
	r.refreshSize()

	var b strings.Builder
	if r.opts.EOLMark != "" {
		// The mark plus padding fills exactly one row. When the cursor was
		// already at column 0 the carriage return lands back on the same
		// row and the prompt overwrites the mark; otherwise the padding
		// wraps and the mark stays behind on the unterminated line.
		b.WriteString(eolMarkStyle.Render(r.opts.EOLMark))
		if pad := r.columns - VisibleWidth(r.opts.EOLMark); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
		b.WriteByte('\r')
	}
	b.WriteString(strings.ReplaceAll(r.opts.Prompt, "\n", "\r\n"))

	r.promptWidth = lastLineWidth(r.opts.Prompt)
	if r.promptWidth > 0 && r.promptWidth%r.columns == 0 {
		b.WriteString("\r\n")
	}

	r.rowsAboveCursor = r.promptWidth / r.columns
	r.rowsBelowCursor = 0
	r.boundary = false

	r.flush(b.String())
}

// RedrawLine repaints the input after the prompt and leaves the hardware
// cursor on the line's logical cursor.
func (r *Renderer) RedrawLine(line Line) {
	var b strings.Builder
	b.WriteString(ansi.HideCursor)

	// Return to the input anchor, just past the prompt.
	if r.rowsAboveCursor > 0 {
		b.WriteString(ansi.CursorUp(r.rowsAboveCursor))
	}
	b.WriteByte('\r')
	if down := r.promptWidth / r.columns; down > 0 {
		b.WriteString(ansi.CursorDown(down))
	}
	if col := r.promptWidth % r.columns; col > 0 {
		b.WriteString(ansi.CursorForward(col))
	}
	b.WriteString(ansi.EraseScreenBelow)

	b.WriteString(line.String())

	l := ComputeLayout(r.promptWidth, line.Len(), line.Cursor(), r.columns)
	if l.Boundary {
		b.WriteString("\r\n")
	}
	if up := l.LastRow - l.CursorRow; up > 0 {
		b.WriteString(ansi.CursorUp(up))
	}
	b.WriteByte('\r')
	if l.CursorCol > 0 {
		b.WriteString(ansi.CursorForward(l.CursorCol))
	}
	b.WriteString(ansi.ShowCursor)

	r.rowsAboveCursor = l.CursorRow
	r.rowsBelowCursor = l.LastRow - l.CursorRow
	r.boundary = l.Boundary

	r.flush(b.String())
}

// FinishLine moves below the drawn input and starts a new row, so whatever
// is printed next does not land inside wrapped input.
func (r *Renderer) FinishLine() {
	var b strings.Builder
	if r.rowsBelowCursor > 0 {
		b.WriteString(ansi.CursorDown(r.rowsBelowCursor))
	}
	if r.boundary {
		b.WriteByte('\r')
	} else {
		b.WriteString("\r\n")
	}

	r.rowsAboveCursor = 0
	r.rowsBelowCursor = 0
	r.boundary = false

	r.flush(b.String())
}

func (r *Renderer) refreshSize() {
	cols, rows, err := r.screen.Size()
	if err != nil {
		slog.Debug("query terminal size", "error", err, "columns", r.columns)
		return
	}
	if cols > 0 {
		r.columns = cols
	}
	if rows > 0 {
		r.rows = rows
	}
	slog.Debug("terminal size", "columns", r.columns, "rows", r.rows)
}

// flush writes one frame. Rendering is best-effort: a dropped frame is
// repaired by the next redraw.
func (r *Renderer) flush(frame string) {
	if _, err := io.WriteString(r.screen, frame); err != nil {
		slog.Debug("write frame", "error", err)
	}
}

// Layout is where a line of input lands on screen, in rows counted from the
// prompt row and columns within a row.
type Layout struct {
	// CurrentColumn is the column just past the last character, as if the
	// terminal were infinitely wide.
	CurrentColumn int
	LastRow       int
	CursorRow     int
	CursorCol     int
	// Boundary is set when the input ends exactly at the right margin and
	// needs an explicit line break.
	Boundary bool
}

// ComputeLayout places length characters after a prompt of promptWidth
// columns on a terminal of the given width, with the cursor before the
// character at index cursor. Every character is one column wide.
func ComputeLayout(promptWidth, length, cursor, columns int) Layout {
	columns = max(columns, 1)
	current := promptWidth + length
	pos := promptWidth + cursor
	return Layout{
		CurrentColumn: current,
		LastRow:       current / columns,
		CursorRow:     pos / columns,
		CursorCol:     pos % columns,
		Boundary:      length > 0 && current%columns == 0,
	}
}
