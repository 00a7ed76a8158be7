package tui

import (
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/notebook/internal/audio"
	"github.com/csheth/notebook/internal/chat"
	"github.com/csheth/notebook/internal/layout"
	"github.com/csheth/notebook/internal/llm"
	"github.com/csheth/notebook/internal/notes"
	"github.com/csheth/notebook/internal/sources"
)

// Config wires runtime options into the TUI program. Nil fields fall back
// to the demo content and default timings; a zero RecordingDelay finishes
// recordings at once.
type Config struct {
	Layout         layout.Classifier
	Gap            int
	LLM            llm.Client
	Library        *sources.Library
	Notebook       *notes.Notebook
	Deck           *audio.Deck
	Fetcher        *sources.Fetcher
	Drops          <-chan string
	RecordingDelay *time.Duration
	CopyText       func(string) error
}

const (
	fallbackWidth  = 100
	fallbackHeight = 30
)

type model struct {
	config Config
	keys   keyMap
	help   help.Model

	recordingDelay time.Duration

	coord    *layout.Coordinator
	jobs     *jobBus
	spinner  spinner.Model
	markdown *markdownRenderer

	width  int
	height int
	focus  layout.PanelID

	source sourcePanel
	chat   chatPanel
	studio studioPanel

	infoMessage  string
	errorMessage string
}

// New returns a tea.Model ready to be mounted into a Program.
func New(config Config) tea.Model {
	if config.LLM == nil {
		config.LLM = llm.New(llm.Config{})
	}
	if config.Library == nil {
		config.Library = sources.NewLibrary(true)
	}
	if config.Notebook == nil {
		config.Notebook = notes.NewNotebook(true)
	}
	if config.Deck == nil {
		config.Deck = audio.NewDeck(true)
	}
	recordingDelay := audio.RecordingDelay
	if config.RecordingDelay != nil {
		recordingDelay = max(*config.RecordingDelay, 0)
	}
	if config.Gap < 0 {
		config.Gap = 0
	}
	if config.CopyText == nil {
		config.CopyText = clipboard.WriteAll
	}

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	m := &model{
		config:         config,
		recordingDelay: recordingDelay,
		keys:           newKeyMap(),
		help:           help.New(),
		coord:          layout.NewCoordinator(config.Layout),
		jobs:           newJobBus(),
		spinner:        spin,
		markdown:       newMarkdownRenderer(),
		focus:          layout.Chat,
		source:         newSourcePanel(config.Library),
		chat:           newChatPanel(chat.NewTranscript()),
		studio:         newStudioPanel(config.Notebook, config.Deck),
		infoMessage:    "Ask a question about your documents.",
	}
	m.chat.composer.Focus()
	return m
}

func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForDrop(m.config.Drops))
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.coord.Resize(msg.Width)
		return m, m.ensureFocusVisible()
	case spinner.TickMsg:
		if m.jobs.Busy() || m.chat.transcript.Pending() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	case jobSignalMsg:
		m.jobs.Track(msg.Snapshot)
		return m, m.spinner.Tick
	case jobResultEnvelope:
		m.jobs.Track(msg.Snapshot)
		if msg.Payload == nil {
			return m, nil
		}
		return m.Update(msg.Payload)
	case answerResultMsg:
		if msg.err != nil {
			m.chat.transcript.Fail()
			m.errorMessage = fmt.Sprintf("assistant error: %v", msg.err)
			return m, nil
		}
		m.chat.transcript.Resolve(msg.answer)
		m.chat.follow = true
		m.errorMessage = ""
		m.infoMessage = "Assistant replied."
		return m, nil
	case importResultMsg:
		if msg.err != nil {
			m.errorMessage = fmt.Sprintf("import %s: %v", msg.origin, msg.err)
			return m, nil
		}
		doc := m.config.Library.Add(msg.doc)
		m.errorMessage = ""
		m.infoMessage = fmt.Sprintf("Imported %s.", doc.Title)
		return m, nil
	case droppedFileMsg:
		m.infoMessage = fmt.Sprintf("Importing dropped file %s…", msg.path)
		return m, tea.Batch(
			m.jobs.Start(jobKindImport, importFileJob(msg.path)),
			waitForDrop(m.config.Drops),
		)
	case recordingDoneMsg:
		clip := m.config.Deck.FinishRecording()
		m.infoMessage = fmt.Sprintf("%s added to Audio.", clip.Title)
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.CollapseSource):
		return m, m.toggleCollapse(layout.Source)
	case key.Matches(msg, m.keys.CollapseStudio):
		return m, m.toggleCollapse(layout.Studio)
	case key.Matches(msg, m.keys.MaximizeSource):
		return m, m.toggleMaximize(layout.Source)
	case key.Matches(msg, m.keys.MaximizeChat):
		return m, m.toggleMaximize(layout.Chat)
	case key.Matches(msg, m.keys.MaximizeStudio):
		return m, m.toggleMaximize(layout.Studio)
	case key.Matches(msg, m.keys.NextPanel):
		return m, m.cycleFocus(1)
	case key.Matches(msg, m.keys.PrevPanel):
		return m, m.cycleFocus(-1)
	}

	switch m.focus {
	case layout.Source:
		return m, m.updateSources(msg)
	case layout.Chat:
		return m, m.updateChat(msg)
	case layout.Studio:
		return m, m.updateStudio(msg)
	}
	return m, nil
}

func (m *model) toggleCollapse(p layout.PanelID) tea.Cmd {
	if !m.coord.ToggleCollapse(p) {
		return nil
	}
	m.reportLayout()
	return m.ensureFocusVisible()
}

func (m *model) toggleMaximize(p layout.PanelID) tea.Cmd {
	if !m.coord.ToggleMaximize(p) {
		return nil
	}
	m.reportLayout()
	if m.coord.State().Maximized == p && m.coord.Viewport() == layout.Desktop {
		return m.setFocus(p)
	}
	return m.ensureFocusVisible()
}

func (m *model) reportLayout() {
	desc := m.coord.Layout()
	m.errorMessage = ""
	if desc.Viewport == layout.Mobile {
		m.infoMessage = fmt.Sprintf("Layout %s applies on wider terminals.", desc.State.Distribution(layout.Desktop))
		return
	}
	m.infoMessage = fmt.Sprintf("Layout %s.", desc.Distribution)
}

// focusOrder lists the panels focus can move between: every tab on mobile,
// the visible columns on desktop.
func (m *model) focusOrder() []layout.PanelID {
	if m.coord.Viewport() == layout.Mobile {
		return layout.Panels[:]
	}
	return m.coord.Distribution().VisiblePanels()
}

func (m *model) cycleFocus(delta int) tea.Cmd {
	order := m.focusOrder()
	if len(order) == 0 {
		return nil
	}
	idx := 0
	for i, p := range order {
		if p == m.focus {
			idx = i
			break
		}
	}
	next := (idx + delta + len(order)) % len(order)
	return m.setFocus(order[next])
}

// ensureFocusVisible moves focus off a panel that the layout just hid.
func (m *model) ensureFocusVisible() tea.Cmd {
	if m.coord.Viewport() == layout.Mobile {
		return nil
	}
	dist := m.coord.Distribution()
	if dist.Visible(m.focus) {
		return nil
	}
	target := layout.Chat
	if maximized := m.coord.State().Maximized; maximized != layout.NoPanel {
		target = maximized
	}
	return m.setFocus(target)
}

func (m *model) setFocus(p layout.PanelID) tea.Cmd {
	if p == m.focus {
		return nil
	}
	switch m.focus {
	case layout.Source:
		m.source.blur()
	case layout.Chat:
		m.chat.composer.Blur()
	case layout.Studio:
		m.studio.blur()
	}
	m.focus = p
	switch p {
	case layout.Chat:
		if m.chat.tab == chatTabConversation {
			return m.chat.composer.Focus()
		}
	case layout.Studio:
		return m.studio.refocus()
	}
	return nil
}

func (m *model) reportError(prefix string, err error) {
	if err == nil {
		return
	}
	m.errorMessage = fmt.Sprintf("%s: %v", prefix, err)
}
