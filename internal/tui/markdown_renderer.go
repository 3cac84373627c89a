package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// minMarkdownWidth keeps narrow overlays readable.
const minMarkdownWidth = 24

// markdownRenderer renders item descriptions and caches one glamour renderer
// per wrap width.
type markdownRenderer struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
}

// render returns description as styled terminal text. Renderer failures fall
// back to the raw text.
func (r *markdownRenderer) render(description string, width int) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return ""
	}
	width = max(width, minMarkdownWidth)

	if r.renderer == nil || r.width != width {
		style := r.style
		if style == "" {
			style = "dark"
		}
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return description
		}
		r.renderer = renderer
		r.width = width
	}

	out, err := r.renderer.Render(description)
	if err != nil {
		return description
	}
	return strings.Trim(out, "\n")
}
