package layout

import "log"

// DefaultBreakpoint is the terminal width, in columns, below which the
// notebook switches to the tabbed layout.
const DefaultBreakpoint = 100

// Classifier maps a terminal width to a viewport class.
type Classifier struct {
	Breakpoint int
}

// Classify returns Mobile for widths strictly below the breakpoint.
func (c Classifier) Classify(width int) ViewportClass {
	breakpoint := c.Breakpoint
	if breakpoint <= 0 {
		breakpoint = DefaultBreakpoint
	}
	if width < breakpoint {
		return Mobile
	}
	return Desktop
}

// Descriptor is the read-only layout handed to the renderers.
type Descriptor struct {
	Viewport     ViewportClass
	State        State
	Distribution Distribution
}

// Coordinator owns the viewport class and panel state. It is not safe for
// concurrent use; the Bubble Tea update loop is its only caller.
type Coordinator struct {
	classifier Classifier
	viewport   ViewportClass
	state      State
	width      int
}

// NewCoordinator returns a coordinator with mount defaults: desktop
// viewport, nothing collapsed, nothing maximized.
func NewCoordinator(classifier Classifier) *Coordinator {
	return &Coordinator{classifier: classifier, viewport: Desktop}
}

// Resize records a new terminal width and reports whether the viewport
// class changed.
func (c *Coordinator) Resize(width int) bool {
	c.width = width
	return c.SetViewport(c.classifier.Classify(width))
}

// SetViewport overrides the viewport class and reports whether it changed.
func (c *Coordinator) SetViewport(viewport ViewportClass) bool {
	if viewport == c.viewport {
		return false
	}
	log.Printf("[layout] viewport %s -> %s (width=%d)", c.viewport, viewport, c.width)
	c.viewport = viewport
	return true
}

// Dispatch applies in and reports whether the state changed.
func (c *Coordinator) Dispatch(in Intent) bool {
	next := c.state.Apply(in)
	if next == c.state {
		return false
	}
	log.Printf("[layout] %s: %s -> %s", in, c.state.Distribution(c.viewport), next.Distribution(c.viewport))
	c.state = next
	return true
}

// ToggleCollapse collapses or expands p. It returns false for panels
// without a collapse control.
func (c *Coordinator) ToggleCollapse(p PanelID) bool {
	in, ok := CollapseIntent(p)
	if !ok {
		return false
	}
	return c.Dispatch(in)
}

// ToggleMaximize maximizes p, or restores the layout when p is already
// maximized.
func (c *Coordinator) ToggleMaximize(p PanelID) bool {
	in, ok := MaximizeIntent(p)
	if !ok {
		return false
	}
	return c.Dispatch(in)
}

func (c *Coordinator) State() State {
	return c.state
}

func (c *Coordinator) Viewport() ViewportClass {
	return c.viewport
}

func (c *Coordinator) Width() int {
	return c.width
}

func (c *Coordinator) Distribution() Distribution {
	return c.state.Distribution(c.viewport)
}

// Layout snapshots the current layout.
func (c *Coordinator) Layout() Descriptor {
	return Descriptor{
		Viewport:     c.viewport,
		State:        c.state,
		Distribution: c.Distribution(),
	}
}
