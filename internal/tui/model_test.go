package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/notebook/internal/chat"
	"github.com/csheth/notebook/internal/layout"
	"github.com/csheth/notebook/internal/sources"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func altKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}, Alt: true}
}

func press(m *model, keys ...tea.KeyMsg) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = m.Update(k)
	}
	return cmd
}

func typeText(m *model, text string) {
	for _, r := range text {
		m.Update(runes(string(r)))
	}
}

func resize(m *model, width, height int) {
	m.Update(tea.WindowSizeMsg{Width: width, Height: height})
}

func TestComposerStartsFocused(t *testing.T) {
	m := newTestModel(t)
	if m.focus != layout.Chat {
		t.Fatalf("chat should start focused, got %s", m.focus)
	}
	if !m.chat.composer.Focused() {
		t.Fatal("composer should be focused while chat has focus")
	}
}

func TestSendQuestionStartsAnswerJob(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "what changed?")

	cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("sending should start the answer job")
	}
	if !m.chat.transcript.Pending() {
		t.Fatal("transcript should be pending after send")
	}
	if got := m.chat.composer.Value(); got != "" {
		t.Fatalf("composer should clear after send, got %q", got)
	}

	typeText(m, "again")
	if cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatal("second send while pending should be ignored")
	}
	if len(m.chat.transcript.Messages()) != 2 {
		t.Fatalf("expected greeting plus one question, got %d", len(m.chat.transcript.Messages()))
	}
	if m.infoMessage != "The assistant is still answering." {
		t.Fatalf("unexpected info %q", m.infoMessage)
	}

	m.Update(answerResultMsg{answer: "here you go"})
	if m.chat.transcript.Pending() {
		t.Fatal("reply should clear pending")
	}
	last, _ := m.chat.transcript.LastAssistant()
	if last.Content != "here you go" {
		t.Fatalf("unexpected reply %q", last.Content)
	}
}

func TestBlankQuestionIsIgnored(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "   ")
	if cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter}); cmd != nil {
		t.Fatal("blank question should not start a job")
	}
	if m.chat.transcript.Pending() || len(m.chat.transcript.Messages()) != 1 {
		t.Fatal("blank question should leave the transcript untouched")
	}
}

func TestAnswerErrorClearsPending(t *testing.T) {
	m := newTestModel(t)
	typeText(m, "q")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	m.Update(answerResultMsg{err: errors.New("offline")})
	if m.chat.transcript.Pending() {
		t.Fatal("failed answer should clear pending")
	}
	if !strings.Contains(m.errorMessage, "offline") {
		t.Fatalf("expected error in status, got %q", m.errorMessage)
	}
}

func TestEscLeavesComposerAndEnablesChatKeys(t *testing.T) {
	m := newTestModel(t)
	spy := &clipboardSpy{}
	m.config.CopyText = spy.write

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.chat.composer.Focused() {
		t.Fatal("esc should blur the composer")
	}

	press(m, runes("y"))
	if len(spy.copied) != 1 || spy.copied[0] != chat.Greeting {
		t.Fatalf("expected greeting to be copied, got %v", spy.copied)
	}

	press(m, runes("h"))
	if m.chat.tab != chatTabHistory {
		t.Fatal("h should open the history tab")
	}
	if view := m.View(); !strings.Contains(view, "Meeting Preparation") {
		t.Fatal("history tab should list past sessions")
	}
	press(m, runes("h"), runes("i"))
	if m.chat.tab != chatTabConversation || !m.chat.composer.Focused() {
		t.Fatal("i should refocus the composer on the chat tab")
	}
}

func TestCopyFailureIsReported(t *testing.T) {
	m := newTestModel(t)
	spy := &clipboardSpy{err: errors.New("no display")}
	m.config.CopyText = spy.write
	press(m, tea.KeyMsg{Type: tea.KeyEsc}, runes("y"))
	if !strings.Contains(m.errorMessage, "no display") {
		t.Fatalf("expected copy error, got %q", m.errorMessage)
	}
}

func TestSourcesSearchSelectAndDelete(t *testing.T) {
	m := newTestModel(t)
	m.setFocus(layout.Source)

	press(m, runes("/"))
	typeText(m, "research")
	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.source.searching {
		t.Fatal("enter should leave the search input")
	}
	docs := m.source.visible()
	if len(docs) != 1 || docs[0].Title != "Research Paper" {
		t.Fatalf("unexpected filter result %+v", docs)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	selected, ok := m.config.Library.Selected()
	if !ok || selected.Title != "Research Paper" {
		t.Fatalf("enter should select the document, got %+v", selected)
	}
	if m.infoMessage != "Previewing Research Paper." {
		t.Fatalf("unexpected info %q", m.infoMessage)
	}

	press(m, runes("d"))
	if m.config.Library.Len() != 2 {
		t.Fatalf("expected document removed, have %d", m.config.Library.Len())
	}
	if _, ok := m.config.Library.Selected(); ok {
		t.Fatal("removing the selected document should clear the preview")
	}
}

func TestSourceTabsCycle(t *testing.T) {
	m := newTestModel(t)
	m.setFocus(layout.Source)

	press(m, runes("2"))
	if m.source.tab != sources.TabPDFs {
		t.Fatalf("expected PDFs tab, got %v", m.source.tab)
	}
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.source.tab != sources.TabDocs {
		t.Fatalf("expected Docs tab, got %v", m.source.tab)
	}
	press(m, tea.KeyMsg{Type: tea.KeyRight})
	if m.source.tab != sources.TabAll {
		t.Fatalf("expected wrap to All, got %v", m.source.tab)
	}
	press(m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.source.tab != sources.TabDocs {
		t.Fatalf("expected wrap back to Docs, got %v", m.source.tab)
	}
}

func TestImportPromptStartsJob(t *testing.T) {
	m := newTestModel(t)
	m.setFocus(layout.Source)

	press(m, runes("o"))
	if m.source.promptMode != promptPath {
		t.Fatal("o should open the path prompt")
	}
	typeText(m, "/tmp/agenda.txt")
	cmd := press(m, tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("submitting a path should start an import job")
	}
	if m.source.promptMode != promptNone {
		t.Fatal("prompt should close after submit")
	}
	if !strings.Contains(m.infoMessage, "/tmp/agenda.txt") {
		t.Fatalf("unexpected info %q", m.infoMessage)
	}
}

func TestURLPromptNeedsFetcher(t *testing.T) {
	m := newTestModel(t)
	m.setFocus(layout.Source)
	press(m, runes("u"))
	if m.source.promptMode != promptNone {
		t.Fatal("url prompt should stay closed without a fetcher")
	}
	if !strings.Contains(m.errorMessage, "unavailable") {
		t.Fatalf("expected fetcher error, got %q", m.errorMessage)
	}
}

func TestJobEnvelopeDeliversImport(t *testing.T) {
	m := newTestModel(t)
	running := jobSnapshot{ID: "import-1", Kind: jobKindImport, Status: jobStatusRunning}
	m.Update(jobSignalMsg{Snapshot: running})
	if !m.jobs.Busy() {
		t.Fatal("running job should be tracked")
	}

	done := running
	done.Status = jobStatusSucceeded
	m.Update(jobResultEnvelope{
		Snapshot: done,
		Payload:  importResultMsg{origin: "brief.md", doc: sources.Document{Title: "brief.md", Type: "md", Content: "# Brief"}},
	})
	if m.jobs.Busy() {
		t.Fatal("finished job should be cleared")
	}
	if m.config.Library.Len() != 4 {
		t.Fatalf("expected imported document, have %d", m.config.Library.Len())
	}
	if m.infoMessage != "Imported brief.md." {
		t.Fatalf("unexpected info %q", m.infoMessage)
	}

	m.Update(importResultMsg{origin: "x.exe", err: sources.ErrUnsupportedType})
	if !strings.Contains(m.errorMessage, "unsupported") {
		t.Fatalf("expected import error, got %q", m.errorMessage)
	}
}

func TestDroppedFileStartsImport(t *testing.T) {
	m := newTestModel(t)
	drops := make(chan string)
	m.config.Drops = drops
	_, cmd := m.Update(droppedFileMsg{path: "/drop/a.txt"})
	if cmd == nil {
		t.Fatal("dropped file should start an import and keep listening")
	}
}

func TestStudioNoteLifecycle(t *testing.T) {
	m := newTestModel(t)
	m.setFocus(layout.Studio)

	press(m, runes("c"))
	if !m.studio.editing() {
		t.Fatal("c should open a new note in the editor")
	}
	if m.studio.title.Value() != "New Note" {
		t.Fatalf("unexpected draft title %q", m.studio.title.Value())
	}

	press(m, tea.KeyMsg{Type: tea.KeyEnter})
	typeText(m, "draft body")
	press(m, tea.KeyMsg{Type: tea.KeyCtrlS})
	saved := m.config.Notebook.Notes()[2]
	if saved.Content != "draft body" {
		t.Fatalf("save should store the body, got %q", saved.Content)
	}

	press(m, tea.KeyMsg{Type: tea.KeyEsc})
	if m.studio.editing() {
		t.Fatal("esc should close the editor")
	}

	press(m, runes("d"))
	if m.config.Notebook.Len() != 2 {
		t.Fatalf("d should delete the note under the cursor, have %d", m.config.Notebook.Len())
	}
}

func TestStudioRecordingAndPlayback(t *testing.T) {
	m := newTestModel(t)
	resize(m, 160, 40)
	m.setFocus(layout.Studio)
	press(m, runes("a"))

	cmd := press(m, runes("r"))
	if cmd == nil || !m.config.Deck.Recording() {
		t.Fatal("r should start recording and schedule the clip")
	}
	m.Update(recordingDoneMsg{})
	if len(m.config.Deck.Clips()) != 3 {
		t.Fatalf("expected new clip, have %d", len(m.config.Deck.Clips()))
	}
	press(m, runes("r"))
	if m.config.Deck.Recording() {
		t.Fatal("second r should stop recording")
	}

	press(m, tea.KeyMsg{Type: tea.KeySpace})
	if !m.config.Deck.Playing() {
		t.Fatal("space should start playback")
	}
	if view := m.View(); !strings.Contains(view, "45%") {
		t.Fatal("player should show fixed progress while playing")
	}
}

func TestZeroRecordingDelayFinishesAtOnce(t *testing.T) {
	instant := time.Duration(0)
	m := New(Config{LLM: fakeLLM{}, RecordingDelay: &instant, CopyText: (&clipboardSpy{}).write}).(*model)
	if m.recordingDelay != 0 {
		t.Fatalf("configured zero delay was replaced with %s", m.recordingDelay)
	}
	m.setFocus(layout.Studio)
	press(m, runes("a"))
	cmd := press(m, runes("r"))
	if cmd == nil {
		t.Fatal("recording should schedule its clip")
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	select {
	case msg := <-done:
		if _, ok := msg.(recordingDoneMsg); !ok {
			t.Fatalf("unexpected message %#v", msg)
		}
	case <-time.After(200 * time.Millisecond):
		t.Fatal("zero delay should not wait for the default timer")
	}
}

func TestMaximizeFocusesPanelAndRestores(t *testing.T) {
	m := newTestModel(t)
	resize(m, 120, 30)

	press(m, altKey('3'))
	if m.focus != layout.Studio {
		t.Fatalf("maximized panel should take focus, got %s", m.focus)
	}
	if got := m.coord.Distribution(); got != (layout.Distribution{Studio: 100}) {
		t.Fatalf("unexpected distribution %s", got)
	}

	press(m, altKey('3'))
	if got := m.coord.Distribution(); got != (layout.Distribution{Source: 25, Chat: 50, Studio: 25}) {
		t.Fatalf("restore should bring back three columns, got %s", got)
	}
	if m.focus != layout.Studio {
		t.Fatal("focus should stay on the restored panel")
	}
}

func TestCollapseMovesFocusOffHiddenPanel(t *testing.T) {
	m := newTestModel(t)
	resize(m, 120, 30)
	m.setFocus(layout.Source)

	press(m, tea.KeyMsg{Type: tea.KeyCtrlB})
	if m.focus != layout.Chat {
		t.Fatalf("focus should move to chat, got %s", m.focus)
	}
	if got := m.coord.Distribution(); got != (layout.Distribution{Chat: 75, Studio: 25}) {
		t.Fatalf("unexpected distribution %s", got)
	}
	if !m.chat.composer.Focused() {
		t.Fatal("composer should follow chat focus")
	}
}

func TestCollapseWhileMaximizedOnlyRestores(t *testing.T) {
	m := newTestModel(t)
	resize(m, 120, 30)
	press(m, altKey('2'))
	press(m, tea.KeyMsg{Type: tea.KeyCtrlT})

	state := m.coord.State()
	if state.IsMaximized() || state.StudioCollapsed {
		t.Fatalf("collapse while maximized should only clear maximize, got %+v", state)
	}
}

func TestTabCyclesVisiblePanels(t *testing.T) {
	m := newTestModel(t)
	resize(m, 120, 30)
	press(m, tea.KeyMsg{Type: tea.KeyCtrlT})

	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != layout.Source {
		t.Fatalf("tab should wrap past the collapsed studio, got %s", m.focus)
	}
	press(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.focus != layout.Chat {
		t.Fatalf("tab should return to chat, got %s", m.focus)
	}
	press(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.focus != layout.Source {
		t.Fatalf("shift+tab should go back to sources, got %s", m.focus)
	}
}

func TestMobileTabsReachEveryPanel(t *testing.T) {
	m := newTestModel(t)
	resize(m, 80, 24)
	if m.coord.Viewport() != layout.Mobile {
		t.Fatal("80 columns should be mobile")
	}
	press(m, tea.KeyMsg{Type: tea.KeyCtrlB})
	if !strings.Contains(m.infoMessage, "wider") {
		t.Fatalf("mobile layout change should be deferred, got %q", m.infoMessage)
	}

	seen := map[layout.PanelID]bool{}
	for i := 0; i < 3; i++ {
		press(m, tea.KeyMsg{Type: tea.KeyTab})
		seen[m.focus] = true
	}
	if len(seen) != 3 {
		t.Fatalf("tab should visit all three tabs, saw %v", seen)
	}

	resize(m, 120, 30)
	if got := m.coord.Distribution(); got != (layout.Distribution{Chat: 75, Studio: 25}) {
		t.Fatalf("collapse issued on mobile should apply after widening, got %s", got)
	}
	if m.focus == layout.Source {
		t.Fatal("focus should leave the collapsed sources panel")
	}
}

func TestHelpToggle(t *testing.T) {
	m := newTestModel(t)
	press(m, tea.KeyMsg{Type: tea.KeyF1})
	if !m.help.ShowAll {
		t.Fatal("f1 should expand the help")
	}
	if view := m.View(); !strings.Contains(view, "maximize studio") {
		t.Fatal("full help should list the maximize bindings")
	}
}

func TestQuitKey(t *testing.T) {
	m := newTestModel(t)
	cmd := press(m, tea.KeyMsg{Type: tea.KeyCtrlC})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected quit message")
	}
}
