package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// NewRenderer returns a function that renders markdown replies for a TTY.
// Rendering failures fall back to the raw text.
func NewRenderer() func(string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
	)

	return func(markdown string) string {
		if err != nil || r == nil {
			return markdown
		}
		rendered, renderErr := r.Render(markdown)
		if renderErr != nil {
			return markdown
		}
		return strings.TrimRight(rendered, "\n")
	}
}
