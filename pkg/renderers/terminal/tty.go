package terminal

import (
	"os"

	"golang.org/x/term"
)

// Detect reports the glamour style and wrap width suited to f. Files that are
// not terminals get the plain "notty" style at DefaultWidth.
func Detect(f *os.File) (style string, width int) {
	if f == nil {
		return "notty", DefaultWidth
	}
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return "notty", DefaultWidth
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		width = DefaultWidth
	}
	return "auto", width
}
