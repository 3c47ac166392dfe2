package components

import (
	"github.com/charmbracelet/glamour"
)

// NewMarkdown returns a glamour renderer wrapping at width columns. style is a
// glamour standard style name ("dark", "light", "notty", ...).
func NewMarkdown(style string, width int) (Markdown, error) {
	if style == "" {
		style = "dark"
	}
	return glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(clampWidth(width, 20, 0)),
		glamour.WithEmoji(),
	)
}
