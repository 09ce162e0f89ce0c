package common

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Truncate shortens text to width cells, ending with an ellipsis when cut.
func Truncate(text string, width int) string {
	text = strings.TrimSpace(text)
	if width <= 0 || ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return "…"
	}
	return ansi.Truncate(text, width, "…")
}
