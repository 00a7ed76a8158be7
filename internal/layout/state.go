package layout

// Intent is a user request against the panel state. The set is closed: any
// value outside the constants below is ignored by Apply.
type Intent int

const (
	ToggleSourceCollapse Intent = iota + 1
	ToggleStudioCollapse
	ToggleMaximizeSource
	ToggleMaximizeChat
	ToggleMaximizeStudio
)

func (i Intent) String() string {
	switch i {
	case ToggleSourceCollapse:
		return "toggle-collapse(source)"
	case ToggleStudioCollapse:
		return "toggle-collapse(studio)"
	case ToggleMaximizeSource:
		return "toggle-maximize(source)"
	case ToggleMaximizeChat:
		return "toggle-maximize(chat)"
	case ToggleMaximizeStudio:
		return "toggle-maximize(studio)"
	default:
		return "unknown"
	}
}

// CollapseIntent returns the collapse toggle for p. Only Source and Studio
// can collapse.
func CollapseIntent(p PanelID) (Intent, bool) {
	switch p {
	case Source:
		return ToggleSourceCollapse, true
	case Studio:
		return ToggleStudioCollapse, true
	default:
		return 0, false
	}
}

// MaximizeIntent returns the maximize toggle for p.
func MaximizeIntent(p PanelID) (Intent, bool) {
	switch p {
	case Source:
		return ToggleMaximizeSource, true
	case Chat:
		return ToggleMaximizeChat, true
	case Studio:
		return ToggleMaximizeStudio, true
	default:
		return 0, false
	}
}

// State is the panel visibility state owned by the coordinator. The zero
// value is the mount default: nothing collapsed, nothing maximized.
type State struct {
	SourceCollapsed bool
	StudioCollapsed bool
	// Maximized is NoPanel when no panel is maximized.
	Maximized PanelID
}

// Collapsed reports the collapse flag for p. Chat is never collapsed.
func (s State) Collapsed(p PanelID) bool {
	switch p {
	case Source:
		return s.SourceCollapsed
	case Studio:
		return s.StudioCollapsed
	default:
		return false
	}
}

// IsMaximized reports whether any panel is maximized.
func (s State) IsMaximized() bool {
	return s.Maximized != NoPanel
}

// Apply returns the state after in. Leaving maximize takes priority over a
// collapse toggle, and maximize never touches the collapse flags, so
// restoring brings back exactly the layout the flags describe.
func (s State) Apply(in Intent) State {
	switch in {
	case ToggleSourceCollapse:
		if s.IsMaximized() {
			s.Maximized = NoPanel
			return s
		}
		s.SourceCollapsed = !s.SourceCollapsed
	case ToggleStudioCollapse:
		if s.IsMaximized() {
			s.Maximized = NoPanel
			return s
		}
		s.StudioCollapsed = !s.StudioCollapsed
	case ToggleMaximizeSource:
		s.Maximized = toggleMaximized(s.Maximized, Source)
	case ToggleMaximizeChat:
		s.Maximized = toggleMaximized(s.Maximized, Chat)
	case ToggleMaximizeStudio:
		s.Maximized = toggleMaximized(s.Maximized, Studio)
	}
	return s
}

func toggleMaximized(current, target PanelID) PanelID {
	if current == target {
		return NoPanel
	}
	return target
}

// Distribution derives the size split for the given viewport.
func (s State) Distribution(viewport ViewportClass) Distribution {
	return Derive(viewport, s.SourceCollapsed, s.StudioCollapsed, s.Maximized)
}
