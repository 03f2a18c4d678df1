package termui

// Raw bytes a terminal in raw mode sends for the keys the editor binds.
const (
	KeyCtrlC     = "\x03"
	KeyCtrlD     = "\x04"
	KeyEnter     = "\x0d" // CR
	KeyEscape    = "\x1b"
	KeyBackspace = "\x7f"

	// Arrow keys
	KeyUp    = "\x1b[A"
	KeyDown  = "\x1b[B"
	KeyRight = "\x1b[C"
	KeyLeft  = "\x1b[D"
)
