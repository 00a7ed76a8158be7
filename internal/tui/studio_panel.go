package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-runewidth"

	"github.com/csheth/notebook/internal/audio"
	"github.com/csheth/notebook/internal/notes"
)

type studioTab int

const (
	studioTabNotes studioTab = iota
	studioTabAudio
)

type editorField int

const (
	fieldTitle editorField = iota
	fieldBody
)

type studioPanel struct {
	notebook *notes.Notebook
	deck     *audio.Deck
	tab      studioTab

	noteCursor int
	clipCursor int

	field editorField
	title textinput.Model
	body  textarea.Model
}

func newStudioPanel(notebook *notes.Notebook, deck *audio.Deck) studioPanel {
	title := textinput.New()
	title.Placeholder = "Note title"
	title.Prompt = ""
	title.CharLimit = 120

	body := textarea.New()
	body.Placeholder = "Write your note here..."
	body.ShowLineNumbers = false
	body.CharLimit = 0

	return studioPanel{notebook: notebook, deck: deck, title: title, body: body}
}

func (p *studioPanel) editing() bool {
	_, ok := p.notebook.Active()
	return ok
}

func (p *studioPanel) blur() {
	p.title.Blur()
	p.body.Blur()
}

// refocus restores the editor field focus when the panel regains focus.
func (p *studioPanel) refocus() tea.Cmd {
	if !p.editing() {
		return nil
	}
	if p.field == fieldBody {
		return p.body.Focus()
	}
	return p.title.Focus()
}

func (p *studioPanel) openEditor(note notes.Note) tea.Cmd {
	p.title.SetValue(note.Title)
	p.body.SetValue(note.Content)
	p.field = fieldTitle
	p.body.Blur()
	return p.title.Focus()
}

func (p *studioPanel) closeEditor() {
	p.notebook.Close()
	p.blur()
}

func clampIndex(idx, n int) int {
	if idx >= n {
		idx = n - 1
	}
	if idx < 0 {
		idx = 0
	}
	return idx
}

func (m *model) updateStudio(msg tea.KeyMsg) tea.Cmd {
	p := &m.studio
	if p.editing() {
		return m.updateNoteEditor(msg)
	}

	switch {
	case key.Matches(msg, m.keys.NotesTab):
		p.tab = studioTabNotes
		return nil
	case key.Matches(msg, m.keys.AudioTab):
		p.tab = studioTabAudio
		return nil
	}
	if p.tab == studioTabAudio {
		return m.updateAudio(msg)
	}

	notesList := p.notebook.Notes()
	switch {
	case key.Matches(msg, m.keys.NewNote):
		note := p.notebook.New()
		p.noteCursor = p.notebook.Len() - 1
		m.infoMessage = "Created a new note."
		return p.openEditor(note)
	case key.Matches(msg, m.keys.NavUp):
		p.noteCursor = clampIndex(p.noteCursor-1, len(notesList))
	case key.Matches(msg, m.keys.NavDown):
		p.noteCursor = clampIndex(p.noteCursor+1, len(notesList))
	case key.Matches(msg, m.keys.Select):
		if p.noteCursor < len(notesList) {
			note := notesList[p.noteCursor]
			p.notebook.Activate(note.ID)
			return p.openEditor(note)
		}
	case key.Matches(msg, m.keys.Delete):
		if p.noteCursor < len(notesList) {
			note := notesList[p.noteCursor]
			p.notebook.Delete(note.ID)
			p.noteCursor = clampIndex(p.noteCursor, p.notebook.Len())
			m.infoMessage = fmt.Sprintf("Deleted %s.", note.Title)
		}
	}
	return nil
}

func (m *model) updateNoteEditor(msg tea.KeyMsg) tea.Cmd {
	p := &m.studio
	switch {
	case key.Matches(msg, m.keys.SaveNote):
		if note, ok := p.notebook.SaveActive(p.title.Value(), p.body.Value()); ok {
			m.errorMessage = ""
			m.infoMessage = fmt.Sprintf("Saved %s.", note.Title)
		}
		return nil
	case key.Matches(msg, m.keys.Back):
		p.closeEditor()
		m.infoMessage = "Closed the note editor."
		return nil
	case p.field == fieldTitle && key.Matches(msg, m.keys.EditorNextField):
		p.field = fieldBody
		p.title.Blur()
		return p.body.Focus()
	}

	var cmd tea.Cmd
	if p.field == fieldTitle {
		p.title, cmd = p.title.Update(msg)
	} else {
		p.body, cmd = p.body.Update(msg)
	}
	return cmd
}

func (m *model) updateAudio(msg tea.KeyMsg) tea.Cmd {
	p := &m.studio
	clips := p.deck.Clips()
	switch {
	case key.Matches(msg, m.keys.Record):
		if p.deck.ToggleRecording() {
			m.infoMessage = "Recording in progress..."
			return recordingDoneCmd(m.recordingDelay)
		}
		m.infoMessage = "Recording stopped."
	case key.Matches(msg, m.keys.PlayPause):
		if p.clipCursor < len(clips) {
			p.deck.TogglePlayback(clips[p.clipCursor].ID)
		}
	case key.Matches(msg, m.keys.NavUp):
		p.clipCursor = clampIndex(p.clipCursor-1, len(clips))
	case key.Matches(msg, m.keys.NavDown):
		p.clipCursor = clampIndex(p.clipCursor+1, len(clips))
	}
	return nil
}

func (m *model) studioView(width, height int, focused bool) string {
	p := &m.studio
	strip := m.tabStrip([]string{"Notes", "Audio"}, int(p.tab))
	var body string
	switch {
	case p.tab == studioTabAudio:
		body = m.audioView(width, focused)
	case p.editing():
		body = m.noteEditorView(width, height-1)
	default:
		body = m.notesView(width, focused)
	}
	return strip + "\n" + body
}

func (m *model) notesView(width int, focused bool) string {
	p := &m.studio
	lines := []string{helperStyle.Render("c new note · enter edit · d delete")}
	notesList := p.notebook.Notes()
	if len(notesList) == 0 {
		lines = append(lines, helperStyle.Render("No notes yet"))
	}
	for i, note := range notesList {
		title := runewidth.Truncate(note.Title, max(width-2, 1), "…")
		if focused && i == p.noteCursor {
			lines = append(lines, currentLineStyle.Render("▸ "+title))
		} else {
			lines = append(lines, "  "+title)
		}
		snippet := note.Content
		if snippet == "" {
			snippet = "Empty note"
		}
		lines = append(lines, helperStyle.Render("  "+runewidth.Truncate(snippet, max(width-4, 1), "…")))
		lines = append(lines, helperStyle.Render("  "+note.Date))
	}
	return strings.Join(lines, "\n")
}

func (m *model) noteEditorView(width, height int) string {
	p := &m.studio
	p.title.Width = max(width-2, 1)
	p.body.SetWidth(max(width, 1))
	p.body.SetHeight(max(height-4, 1))
	return strings.Join([]string{
		sectionHeaderStyle.Render("Edit Note"),
		p.title.View(),
		p.body.View(),
		helperStyle.Render("ctrl+s save · esc close"),
	}, "\n")
}

func (m *model) audioView(width int, focused bool) string {
	p := &m.studio
	var lines []string
	if p.deck.Recording() {
		lines = append(lines, recordingStyle.Render("● Recording in progress... (r to stop)"))
	} else {
		lines = append(lines, helperStyle.Render("r start recording · space play/pause"))
	}

	for i, clip := range p.deck.Clips() {
		row := runewidth.Truncate(fmt.Sprintf("%s  %s • %s", clip.Title, clip.Duration, clip.Date), max(width-2, 1), "…")
		if focused && i == p.clipCursor {
			lines = append(lines, currentLineStyle.Render("▸ "+row))
		} else {
			lines = append(lines, "  "+row)
		}
	}

	if current, ok := p.deck.Current(); ok {
		progress := p.deck.Progress()
		state := "Paused"
		if p.deck.Playing() {
			state = "Playing"
		}
		lines = append(lines,
			"",
			sectionHeaderStyle.Render(runewidth.Truncate(current.Title, max(width, 1), "…")),
			helperStyle.Render(state),
			progressBar(progress.Percent, max(min(width-6, 30), 4)),
			helperStyle.Render(fmt.Sprintf("%s / %s", progress.Elapsed, current.Duration)),
		)
	}
	return strings.Join(lines, "\n")
}

func progressBar(percent, width int) string {
	filled := width * percent / 100
	return fmt.Sprintf("%s%s %d%%", strings.Repeat("█", filled), strings.Repeat("░", width-filled), percent)
}
