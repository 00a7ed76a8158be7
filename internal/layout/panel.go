package layout

// ViewportClass says whether panels are laid out side by side or behind tabs.
type ViewportClass int

const (
	Desktop ViewportClass = iota
	Mobile
)

func (v ViewportClass) String() string {
	switch v {
	case Desktop:
		return "desktop"
	case Mobile:
		return "mobile"
	default:
		return "unknown"
	}
}

// PanelID names one of the three notebook regions. The zero value, NoPanel,
// only appears as an empty maximized selection.
type PanelID int

const (
	NoPanel PanelID = iota
	Source
	Chat
	Studio
)

// Panels lists the regions in left-to-right order.
var Panels = [...]PanelID{Source, Chat, Studio}

func (p PanelID) String() string {
	switch p {
	case Source:
		return "source"
	case Chat:
		return "chat"
	case Studio:
		return "studio"
	case NoPanel:
		return "none"
	default:
		return "unknown"
	}
}

// Title is the label shown in panel headers and tab strips.
func (p PanelID) Title() string {
	switch p {
	case Source:
		return "Sources"
	case Chat:
		return "Chat"
	case Studio:
		return "Studio"
	default:
		return ""
	}
}

// Valid reports whether p names a real panel.
func (p PanelID) Valid() bool {
	return p == Source || p == Chat || p == Studio
}

// Collapsible reports whether p has a collapse control. Chat always takes the
// remaining space.
func (p PanelID) Collapsible() bool {
	return p == Source || p == Studio
}
