package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the shell-wide bindings. Panel-local keys are listed in the
// full help only.
type keyMap struct {
	Quit            key.Binding
	Help            key.Binding
	NextPanel       key.Binding
	PrevPanel       key.Binding
	CollapseSource  key.Binding
	CollapseStudio  key.Binding
	MaximizeSource  key.Binding
	MaximizeChat    key.Binding
	MaximizeStudio  key.Binding
	Back            key.Binding
	NavUp           key.Binding
	NavDown         key.Binding
	Select          key.Binding
	Delete          key.Binding
	Search          key.Binding
	ImportPath      key.Binding
	ImportURL       key.Binding
	SourceTabs      key.Binding
	ChatHistory     key.Binding
	CopyReply       key.Binding
	NotesTab        key.Binding
	AudioTab        key.Binding
	NewNote         key.Binding
	SaveNote        key.Binding
	Record          key.Binding
	PlayPause       key.Binding
	TabLeft         key.Binding
	TabRight        key.Binding
	TabAll          key.Binding
	TabPDFs         key.Binding
	TabDocs         key.Binding
	FocusComposer   key.Binding
	EditorNextField key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		NextPanel: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next panel"),
		),
		PrevPanel: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev panel"),
		),
		CollapseSource: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "collapse sources"),
		),
		CollapseStudio: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "collapse studio"),
		),
		MaximizeSource: key.NewBinding(
			key.WithKeys("alt+1"),
			key.WithHelp("alt+1", "maximize sources"),
		),
		MaximizeChat: key.NewBinding(
			key.WithKeys("alt+2"),
			key.WithHelp("alt+2", "maximize chat"),
		),
		MaximizeStudio: key.NewBinding(
			key.WithKeys("alt+3"),
			key.WithHelp("alt+3", "maximize studio"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "leave input"),
		),
		NavUp: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "up"),
		),
		NavDown: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search sources"),
		),
		ImportPath: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "import file"),
		),
		ImportURL: key.NewBinding(
			key.WithKeys("u"),
			key.WithHelp("u", "import url"),
		),
		SourceTabs: key.NewBinding(
			key.WithKeys("1", "2", "3", "left", "right"),
			key.WithHelp("1-3/←→", "source tabs"),
		),
		ChatHistory: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "chat/history"),
		),
		CopyReply: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy reply"),
		),
		NotesTab: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notes"),
		),
		AudioTab: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "audio"),
		),
		NewNote: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "new note"),
		),
		SaveNote: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save note"),
		),
		Record: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "record"),
		),
		PlayPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "play/pause"),
		),
		TabLeft: key.NewBinding(
			key.WithKeys("left"),
		),
		TabRight: key.NewBinding(
			key.WithKeys("right"),
		),
		TabAll: key.NewBinding(
			key.WithKeys("1"),
		),
		TabPDFs: key.NewBinding(
			key.WithKeys("2"),
		),
		TabDocs: key.NewBinding(
			key.WithKeys("3"),
		),
		FocusComposer: key.NewBinding(
			key.WithKeys("enter", "i"),
			key.WithHelp("i", "write"),
		),
		EditorNextField: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit body"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextPanel, k.CollapseSource, k.CollapseStudio, k.MaximizeChat, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPanel, k.PrevPanel, k.CollapseSource, k.CollapseStudio, k.MaximizeSource, k.MaximizeChat, k.MaximizeStudio},
		{k.Search, k.SourceTabs, k.NavUp, k.NavDown, k.Select, k.Delete, k.ImportPath, k.ImportURL},
		{k.FocusComposer, k.Back, k.ChatHistory, k.CopyReply},
		{k.NotesTab, k.AudioTab, k.NewNote, k.SaveNote, k.Record, k.PlayPause},
		{k.Help, k.Quit},
	}
}
