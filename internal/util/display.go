package util

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// DefaultTerminalWidth is used when stdout is not a terminal.
const DefaultTerminalWidth = 100

// GetDisplayWidth calculates the actual display width of a string, accounting for emojis
func GetDisplayWidth(text string) int {
	return runewidth.StringWidth(text)
}

// PadString pads s with spaces to the given display width.
func PadString(s string, width int, leftAlign bool) string {
	actual := GetDisplayWidth(s)
	if actual >= width {
		return s
	}
	padding := strings.Repeat(" ", width-actual)
	if leftAlign {
		return s + padding
	}
	return padding + s
}

// TruncateToWidth shortens s to at most width display cells, ending in "…"
// when cut.
func TruncateToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	return runewidth.Truncate(s, width, "…")
}

// TerminalWidth returns the width of the terminal behind fd, or
// DefaultTerminalWidth when fd is not a terminal.
func TerminalWidth(fd uintptr) int {
	if !term.IsTerminal(int(fd)) {
		return DefaultTerminalWidth
	}
	width, _, err := term.GetSize(int(fd))
	if err != nil || width <= 0 {
		return DefaultTerminalWidth
	}
	return width
}

// WriterWidth returns the terminal width when w is a terminal and 0
// (unlimited) otherwise.
func WriterWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	return TerminalWidth(f.Fd())
}
