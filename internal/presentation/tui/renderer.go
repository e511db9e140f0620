package tui

import (
	"os"

	"github.com/charmbracelet/glamour"
	"golang.org/x/term"
)

// DefaultWordWrap is the markdown wrap width.
const DefaultWordWrap = 80

// NewRenderer returns a function that renders markdown using glamour.
// If the renderer cannot be built, markdown is returned unchanged.
func NewRenderer(wordWrap int) func(string) (string, error) {
	if wordWrap <= 0 {
		wordWrap = DefaultWordWrap
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return func(markdown string) (string, error) {
			return markdown, nil
		}
	}
	return func(markdown string) (string, error) {
		return r.Render(markdown)
	}
}

// IsInteractive reports whether f is attached to a terminal.
func IsInteractive(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
