package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/notebook/internal/sources"
)

type sourcePrompt int

const (
	promptNone sourcePrompt = iota
	promptPath
	promptURL
)

const (
	promptPathPlaceholder = "Path to a .pdf, .txt, .md, .doc or .docx file…"
	promptURLPlaceholder  = "https://example.com/paper.pdf"
)

var errFetchDisabled = errors.New("url import is unavailable without a download cache")

type sourcePanel struct {
	library    *sources.Library
	search     textinput.Model
	searching  bool
	prompt     textinput.Model
	promptMode sourcePrompt
	tab        sources.Tab
	cursor     int
}

func newSourcePanel(library *sources.Library) sourcePanel {
	search := textinput.New()
	search.Placeholder = "Search sources..."
	search.Prompt = "/ "
	search.CharLimit = 80

	prompt := textinput.New()
	prompt.CharLimit = 512

	return sourcePanel{library: library, search: search, prompt: prompt}
}

func (p *sourcePanel) visible() []sources.Document {
	return p.library.Filter(p.search.Value(), p.tab)
}

func (p *sourcePanel) clampCursor() {
	n := len(p.visible())
	if p.cursor >= n {
		p.cursor = n - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *sourcePanel) current() (sources.Document, bool) {
	docs := p.visible()
	if p.cursor < 0 || p.cursor >= len(docs) {
		return sources.Document{}, false
	}
	return docs[p.cursor], true
}

func (p *sourcePanel) blur() {
	p.searching = false
	p.search.Blur()
	p.closePrompt()
}

func (p *sourcePanel) openPrompt(mode sourcePrompt) tea.Cmd {
	p.promptMode = mode
	p.prompt.SetValue("")
	if mode == promptURL {
		p.prompt.Placeholder = promptURLPlaceholder
		p.prompt.Prompt = "url> "
	} else {
		p.prompt.Placeholder = promptPathPlaceholder
		p.prompt.Prompt = "file> "
	}
	return p.prompt.Focus()
}

func (p *sourcePanel) closePrompt() {
	p.promptMode = promptNone
	p.prompt.SetValue("")
	p.prompt.Blur()
}

func (p *sourcePanel) setTab(tab sources.Tab) {
	p.tab = tab
	p.cursor = 0
}

func (m *model) updateSources(msg tea.KeyMsg) tea.Cmd {
	p := &m.source
	switch {
	case p.searching:
		if key.Matches(msg, m.keys.Back) || msg.Type == tea.KeyEnter {
			p.searching = false
			p.search.Blur()
			return nil
		}
		var cmd tea.Cmd
		p.search, cmd = p.search.Update(msg)
		p.clampCursor()
		return cmd
	case p.promptMode != promptNone:
		return m.updateSourcePrompt(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Search):
		p.searching = true
		return p.search.Focus()
	case key.Matches(msg, m.keys.TabAll):
		p.setTab(sources.TabAll)
	case key.Matches(msg, m.keys.TabPDFs):
		p.setTab(sources.TabPDFs)
	case key.Matches(msg, m.keys.TabDocs):
		p.setTab(sources.TabDocs)
	case key.Matches(msg, m.keys.TabLeft):
		p.setTab(sources.Tabs[(int(p.tab)+len(sources.Tabs)-1)%len(sources.Tabs)])
	case key.Matches(msg, m.keys.TabRight):
		p.setTab(sources.Tabs[(int(p.tab)+1)%len(sources.Tabs)])
	case key.Matches(msg, m.keys.NavUp):
		p.cursor--
		p.clampCursor()
	case key.Matches(msg, m.keys.NavDown):
		p.cursor++
		p.clampCursor()
	case key.Matches(msg, m.keys.Select):
		if doc, ok := p.current(); ok {
			p.library.Select(doc.ID)
			m.infoMessage = fmt.Sprintf("Previewing %s.", doc.Title)
		}
	case key.Matches(msg, m.keys.Delete):
		if doc, ok := p.current(); ok {
			p.library.Remove(doc.ID)
			p.clampCursor()
			m.infoMessage = fmt.Sprintf("Removed %s.", doc.Title)
		}
	case key.Matches(msg, m.keys.ImportPath):
		return p.openPrompt(promptPath)
	case key.Matches(msg, m.keys.ImportURL):
		if m.config.Fetcher == nil {
			m.reportError("import", errFetchDisabled)
			return nil
		}
		return p.openPrompt(promptURL)
	}
	return nil
}

func (m *model) updateSourcePrompt(msg tea.KeyMsg) tea.Cmd {
	p := &m.source
	if key.Matches(msg, m.keys.Back) {
		p.closePrompt()
		return nil
	}
	if msg.Type != tea.KeyEnter {
		var cmd tea.Cmd
		p.prompt, cmd = p.prompt.Update(msg)
		return cmd
	}
	value := strings.TrimSpace(p.prompt.Value())
	mode := p.promptMode
	p.closePrompt()
	if value == "" {
		return nil
	}
	m.errorMessage = ""
	if mode == promptURL {
		m.infoMessage = fmt.Sprintf("Fetching %s…", value)
		return m.jobs.Start(jobKindFetch, fetchURLJob(m.config.Fetcher, value))
	}
	path := expandUserPath(value)
	m.infoMessage = fmt.Sprintf("Importing %s…", path)
	return m.jobs.Start(jobKindImport, importFileJob(path))
}

func (m *model) sourceView(width, height int, focused bool) string {
	p := &m.source
	lines := []string{m.tabStrip(sourceTabTitles(), int(p.tab))}

	switch {
	case p.searching || p.search.Value() != "":
		p.search.Width = max(width-4, 1)
		lines = append(lines, p.search.View())
	default:
		lines = append(lines, helperStyle.Render("/ search · o import file · u import url"))
	}

	docs := p.visible()
	selected, hasSelection := p.library.Selected()
	preview := ""
	if hasSelection {
		preview = previewCard(selected, width)
	}
	listHeight := height - len(lines) - lipgloss.Height(preview)
	if p.promptMode != promptNone {
		listHeight--
	}

	if len(docs) == 0 {
		lines = append(lines, helperStyle.Render("No documents found"))
	}
	start := 0
	if listHeight > 0 && p.cursor >= listHeight {
		start = p.cursor - listHeight + 1
	}
	for i := start; i < len(docs) && i-start < max(listHeight, 0); i++ {
		doc := docs[i]
		row := fmt.Sprintf("%s  %s · %s", doc.Title, doc.Type, doc.Date)
		row = runewidth.Truncate(row, max(width-2, 1), "…")
		switch {
		case focused && i == p.cursor:
			row = currentLineStyle.Render("▸ " + row)
		case hasSelection && doc.ID == selected.ID:
			row = selectedItemStyle.Render("• " + row)
		default:
			row = "  " + row
		}
		lines = append(lines, row)
	}

	if p.promptMode != promptNone {
		p.prompt.Width = max(width-8, 1)
		lines = append(lines, p.prompt.View())
	}
	if preview != "" {
		lines = append(lines, preview)
	}
	return strings.Join(lines, "\n")
}

func sourceTabTitles() []string {
	titles := make([]string, 0, len(sources.Tabs))
	for _, tab := range sources.Tabs {
		titles = append(titles, tab.Title())
	}
	return titles
}

func previewCard(doc sources.Document, width int) string {
	inner := max(width-4, 1)
	body := []string{
		sectionHeaderStyle.Render(runewidth.Truncate(doc.Title, inner, "…")),
		helperStyle.Render(fmt.Sprintf("%s · %s", strings.ToUpper(doc.Type), doc.Date)),
		wordwrap.String(sources.Preview(doc), inner),
	}
	return previewCardStyle.Width(max(width-2, 1)).Render(strings.Join(body, "\n"))
}
