package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/csheth/notebook/internal/layout"
)

func (m *model) View() string {
	width, height := m.width, m.height
	if width <= 0 || height <= 0 {
		width, height = fallbackWidth, fallbackHeight
	}

	header := fitBlock(m.headerView(), width, 1)
	status := fitBlock(m.statusView(), width, 1)
	helpView := m.help.View(m.keys)
	helpView = fitBlock(helpView, width, lipgloss.Height(helpView))
	bodyHeight := height - lipgloss.Height(header) - lipgloss.Height(status) - lipgloss.Height(helpView)
	body := m.renderBody(width, max(bodyHeight, 3))
	return lipgloss.JoinVertical(lipgloss.Left, header, body, status, helpView)
}

func (m *model) headerView() string {
	desc := m.coord.Layout()
	meta := fmt.Sprintf("%s %s", desc.Viewport, desc.Distribution)
	if desc.Viewport == layout.Mobile {
		meta = fmt.Sprintf("%s · tab to switch panels", desc.Viewport)
	}
	return joinInline(appTitleStyle.Render("Notebook"), helperStyle.Render(meta))
}

func (m *model) statusView() string {
	var parts []string
	if badges := m.jobs.Badges(); len(badges) > 0 {
		parts = append(parts, jobBadgeStyle.Render(m.spinner.View()+" "+strings.Join(badges, " ")))
	}
	switch {
	case m.errorMessage != "":
		parts = append(parts, errorStyle.Render(m.errorMessage))
	case m.infoMessage != "":
		parts = append(parts, statusBarStyle.Render(m.infoMessage))
	}
	return joinInline(parts...)
}

func joinInline(parts ...string) string {
	filtered := make([]string, 0, len(parts))
	for _, part := range parts {
		if strings.TrimSpace(part) == "" {
			continue
		}
		filtered = append(filtered, part)
	}
	return strings.Join(filtered, "  ")
}
