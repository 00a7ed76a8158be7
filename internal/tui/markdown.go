package tui

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/muesli/reflow/wordwrap"
)

// markdownRenderer renders assistant replies with glamour, rebuilding the
// renderer only when the wrap width changes.
type markdownRenderer struct {
	width    int
	renderer *glamour.TermRenderer
	cache    map[string]string
}

func newMarkdownRenderer() *markdownRenderer {
	return &markdownRenderer{cache: map[string]string{}}
}

func (r *markdownRenderer) Render(text string, width int) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	if width <= 0 {
		width = 80
	}
	if r.renderer == nil || r.width != width {
		renderer, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle("dark"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return wordwrap.String(text, width)
		}
		r.renderer = renderer
		r.width = width
		r.cache = map[string]string{}
	}
	if out, ok := r.cache[text]; ok {
		return out
	}
	out, err := r.renderer.Render(text)
	if err != nil {
		return wordwrap.String(text, width)
	}
	out = strings.Trim(out, "\n")
	r.cache[text] = out
	return out
}
