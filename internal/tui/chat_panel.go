package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/csheth/notebook/internal/chat"
)

type chatTab int

const (
	chatTabConversation chatTab = iota
	chatTabHistory
)

const composerPlaceholder = "Ask a question about your documents..."

type chatPanel struct {
	transcript *chat.Transcript
	composer   textinput.Model
	viewport   viewport.Model
	tab        chatTab
	// follow keeps the transcript pinned to the newest message.
	follow bool
}

func newChatPanel(transcript *chat.Transcript) chatPanel {
	composer := textinput.New()
	composer.Placeholder = composerPlaceholder
	composer.Prompt = "› "
	composer.CharLimit = 500

	vp := viewport.New(40, 10)
	vp.MouseWheelEnabled = true

	return chatPanel{transcript: transcript, composer: composer, viewport: vp, follow: true}
}

func (m *model) updateChat(msg tea.KeyMsg) tea.Cmd {
	p := &m.chat
	if p.composer.Focused() {
		switch {
		case key.Matches(msg, m.keys.Back):
			p.composer.Blur()
			return nil
		case msg.Type == tea.KeyEnter:
			return m.sendQuestion()
		}
		var cmd tea.Cmd
		p.composer, cmd = p.composer.Update(msg)
		return cmd
	}

	switch {
	case key.Matches(msg, m.keys.ChatHistory):
		if p.tab == chatTabConversation {
			p.tab = chatTabHistory
			return nil
		}
		p.tab = chatTabConversation
	case key.Matches(msg, m.keys.CopyReply):
		m.copyLastReply()
	case key.Matches(msg, m.keys.NavUp):
		p.viewport.LineUp(1)
		p.follow = false
	case key.Matches(msg, m.keys.NavDown):
		p.viewport.LineDown(1)
		p.follow = p.viewport.AtBottom()
	case key.Matches(msg, m.keys.FocusComposer):
		if p.tab == chatTabConversation {
			return p.composer.Focus()
		}
	}
	return nil
}

func (m *model) sendQuestion() tea.Cmd {
	p := &m.chat
	question := p.composer.Value()
	if _, err := p.transcript.Send(question); err != nil {
		if errors.Is(err, chat.ErrPending) {
			m.infoMessage = "The assistant is still answering."
		}
		return nil
	}
	p.composer.SetValue("")
	p.follow = true
	m.errorMessage = ""
	m.infoMessage = "Thinking..."
	titles := make([]string, 0, m.config.Library.Len())
	for _, doc := range m.config.Library.Documents() {
		titles = append(titles, doc.Title)
	}
	return tea.Batch(
		m.jobs.Start(jobKindAnswer, answerJob(m.config.LLM, question, titles)),
		m.spinner.Tick,
	)
}

func (m *model) copyLastReply() {
	last, ok := m.chat.transcript.LastAssistant()
	if !ok {
		return
	}
	if err := m.config.CopyText(last.Content); err != nil {
		m.reportError("copy", err)
		return
	}
	m.errorMessage = ""
	m.infoMessage = "Copied the last reply to the clipboard."
}

func (m *model) chatView(width, height int, focused bool) string {
	p := &m.chat
	strip := m.tabStrip([]string{"Chat", "History"}, int(p.tab))
	if p.tab == chatTabHistory {
		lines := []string{strip}
		for _, session := range chat.History() {
			lines = append(lines, sectionHeaderStyle.Render(session.Title), helperStyle.Render("  "+session.When))
		}
		return strings.Join(lines, "\n")
	}

	p.composer.Width = max(width-4, 1)
	composer := p.composer.View()
	if !focused || !p.composer.Focused() {
		composer = helperStyle.Render(composerPlaceholder)
	}

	p.viewport.Width = max(width, 1)
	p.viewport.Height = max(height-2, 1)
	p.viewport.SetContent(m.transcriptContent(width))
	if p.follow {
		p.viewport.GotoBottom()
	}
	return strings.Join([]string{strip, p.viewport.View(), composer}, "\n")
}

func (m *model) transcriptContent(width int) string {
	wrap := max(width-2, 10)
	var b strings.Builder
	for i, msg := range m.chat.transcript.Messages() {
		if i > 0 {
			b.WriteString("\n\n")
		}
		stamp := chat.FormatTime(msg.Timestamp)
		if msg.Role == chat.RoleUser {
			b.WriteString(helperStyle.Render(fmt.Sprintf("You · %s", stamp)))
			b.WriteRune('\n')
			b.WriteString(userMessageStyle.Render(wordwrap.String(msg.Content, wrap)))
			continue
		}
		b.WriteString(helperStyle.Render(fmt.Sprintf("Assistant · %s", stamp)))
		b.WriteRune('\n')
		b.WriteString(m.markdown.Render(msg.Content, wrap))
	}
	if m.chat.transcript.Pending() {
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("%s Thinking...", m.spinner.View()))
	}
	return b.String()
}
