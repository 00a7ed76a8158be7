package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"

	"github.com/csheth/notebook/internal/layout"
)

// renderBody lays the panels out for the current descriptor: side-by-side
// columns on desktop, a tab strip plus the focused panel on mobile.
func (m *model) renderBody(width, height int) string {
	desc := m.coord.Layout()
	if desc.Viewport == layout.Mobile {
		return m.renderMobile(width, height)
	}

	gap := m.config.Gap
	cols := desc.Distribution.Columns(width, gap)
	parts := make([]string, 0, 2*len(layout.Panels))
	for _, p := range layout.Panels {
		w := layout.Width(cols, p)
		if w == 0 {
			continue
		}
		if len(parts) > 0 && gap > 0 {
			parts = append(parts, strings.Repeat(" ", gap))
		}
		parts = append(parts, m.renderPanel(p, w, height, desc, true))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m *model) renderMobile(width, height int) string {
	titles := make([]string, 0, len(layout.Panels))
	active := 0
	for i, p := range layout.Panels {
		titles = append(titles, p.Title())
		if p == m.focus {
			active = i
		}
	}
	strip := fitBlock(m.tabStrip(titles, active), width, 1)
	panel := m.renderPanel(m.focus, width, max(height-1, 3), m.coord.Layout(), false)
	return strip + "\n" + panel
}

// minFramedWidth is the narrowest column that fits a border around one
// cell of content.
const minFramedWidth = 3

// renderPanel frames one region at exactly width x height cells. Columns too
// narrow for a frame show only the panel title.
func (m *model) renderPanel(p layout.PanelID, width, height int, desc layout.Descriptor, affordances bool) string {
	focused := p == m.focus
	if width < minFramedWidth || height < minFramedWidth {
		style := helperStyle
		if focused {
			style = sectionHeaderStyle
		}
		return padBlock(style.Render(p.Title()), width, height)
	}
	innerWidth := width - 2
	innerHeight := height - 2

	title := panelTitleBar(p, innerWidth, desc.State, affordances)
	contentHeight := max(innerHeight-1, 1)
	var content string
	switch p {
	case layout.Source:
		content = m.sourceView(innerWidth, contentHeight, focused)
	case layout.Chat:
		content = m.chatView(innerWidth, contentHeight, focused)
	case layout.Studio:
		content = m.studioView(innerWidth, contentHeight, focused)
	}
	body := fitBlock(title+"\n"+content, innerWidth, innerHeight)

	style := panelStyle
	if focused {
		style = focusedPanelStyle
	}
	return style.Width(innerWidth).Height(innerHeight).Render(body)
}

// panelTitleBar shows the panel name and, on desktop, the keys that collapse
// or maximize it.
func panelTitleBar(p layout.PanelID, width int, state layout.State, affordances bool) string {
	title := p.Title()
	if !affordances {
		return sectionHeaderStyle.Render(runewidth.Truncate(title, width, "…"))
	}
	var hints []string
	if in, ok := layout.CollapseIntent(p); ok {
		hints = append(hints, affordanceKey(in)+" collapse")
	}
	if in, ok := layout.MaximizeIntent(p); ok {
		verb := "maximize"
		if state.Maximized == p {
			verb = "restore"
		}
		hints = append(hints, affordanceKey(in)+" "+verb)
	}
	hint := strings.Join(hints, "  ")
	titleWidth := runewidth.StringWidth(title)
	room := width - titleWidth - 1
	if room < 4 {
		return sectionHeaderStyle.Render(runewidth.Truncate(title, width, "…"))
	}
	hint = runewidth.Truncate(hint, room, "…")
	pad := width - titleWidth - runewidth.StringWidth(hint)
	return sectionHeaderStyle.Render(title) + strings.Repeat(" ", max(pad, 1)) + affordanceStyle.Render(hint)
}

func affordanceKey(in layout.Intent) string {
	switch in {
	case layout.ToggleSourceCollapse:
		return "^b"
	case layout.ToggleStudioCollapse:
		return "^t"
	case layout.ToggleMaximizeSource:
		return "M-1"
	case layout.ToggleMaximizeChat:
		return "M-2"
	case layout.ToggleMaximizeStudio:
		return "M-3"
	default:
		return ""
	}
}

func (m *model) tabStrip(titles []string, active int) string {
	cells := make([]string, 0, len(titles))
	for i, title := range titles {
		if i == active {
			cells = append(cells, activeTabStyle.Render(title))
			continue
		}
		cells = append(cells, inactiveTabStyle.Render(title))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

// fitBlock truncates every line to width cells and keeps at most height
// lines so a region never pushes its neighbours around.
func fitBlock(content string, width, height int) string {
	lines := strings.Split(content, "\n")
	if len(lines) > height {
		lines = lines[:height]
	}
	for i, line := range lines {
		if lipgloss.Width(line) > width {
			lines[i] = truncate.String(line, uint(width))
		}
	}
	return strings.Join(lines, "\n")
}

// padBlock is fitBlock that also pads to exactly width x height cells.
func padBlock(content string, width, height int) string {
	lines := strings.Split(fitBlock(content, width, height), "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i, line := range lines {
		if gap := width - lipgloss.Width(line); gap > 0 {
			lines[i] = line + strings.Repeat(" ", gap)
		}
	}
	return strings.Join(lines, "\n")
}
