package layout

import "fmt"

// Distribution is the percentage of width given to each panel. The three
// shares always add up to 100.
type Distribution struct {
	Source int
	Chat   int
	Studio int
}

var (
	chatOnly     = Distribution{Source: 0, Chat: 100, Studio: 0}
	sourceOnly   = Distribution{Source: 100, Chat: 0, Studio: 0}
	studioOnly   = Distribution{Source: 0, Chat: 0, Studio: 100}
	noSource     = Distribution{Source: 0, Chat: 75, Studio: 25}
	noStudio     = Distribution{Source: 25, Chat: 75, Studio: 0}
	threeColumns = Distribution{Source: 25, Chat: 50, Studio: 25}
)

// Derive computes the distribution. Mobile always shows chat alone, a
// maximized panel overrides the collapse flags, and otherwise the flags pick
// one of four fixed splits.
func Derive(viewport ViewportClass, sourceCollapsed, studioCollapsed bool, maximized PanelID) Distribution {
	if viewport == Mobile {
		return chatOnly
	}
	switch maximized {
	case Source:
		return sourceOnly
	case Chat:
		return chatOnly
	case Studio:
		return studioOnly
	}
	switch {
	case sourceCollapsed && studioCollapsed:
		return chatOnly
	case sourceCollapsed:
		return noSource
	case studioCollapsed:
		return noStudio
	default:
		return threeColumns
	}
}

// Share returns the percentage for p, or 0 for an unknown panel.
func (d Distribution) Share(p PanelID) int {
	switch p {
	case Source:
		return d.Source
	case Chat:
		return d.Chat
	case Studio:
		return d.Studio
	default:
		return 0
	}
}

// Total is the sum of the three shares.
func (d Distribution) Total() int {
	return d.Source + d.Chat + d.Studio
}

// Visible reports whether p gets any space.
func (d Distribution) Visible(p PanelID) bool {
	return d.Share(p) > 0
}

// VisiblePanels lists the panels with a non-zero share, left to right.
func (d Distribution) VisiblePanels() []PanelID {
	out := make([]PanelID, 0, len(Panels))
	for _, p := range Panels {
		if d.Visible(p) {
			out = append(out, p)
		}
	}
	return out
}

func (d Distribution) String() string {
	return fmt.Sprintf("(%d, %d, %d)", d.Source, d.Chat, d.Studio)
}

// Columns converts the percentages to cell widths for a row of the given
// width, leaving gap cells between adjacent visible panels. Hidden panels
// get zero cells. Rounding leftovers go to the largest fractional parts,
// earlier panels first on ties.
func (d Distribution) Columns(width, gap int) [3]int {
	var cols [3]int
	visible := d.VisiblePanels()
	if len(visible) == 0 || width <= 0 {
		return cols
	}
	if gap < 0 {
		gap = 0
	}
	available := width - gap*(len(visible)-1)
	if available <= 0 {
		return cols
	}
	total := d.Total()
	if total <= 0 {
		return cols
	}

	remainders := [3]int{}
	assigned := 0
	for i, p := range Panels {
		share := d.Share(p)
		if share <= 0 {
			continue
		}
		cols[i] = available * share / total
		remainders[i] = available * share % total
		assigned += cols[i]
	}
	for left := available - assigned; left > 0; left-- {
		best := -1
		for i, p := range Panels {
			if !d.Visible(p) || remainders[i] < 0 {
				continue
			}
			if best == -1 || remainders[i] > remainders[best] {
				best = i
			}
		}
		if best == -1 {
			break
		}
		cols[best]++
		remainders[best] = -1
	}
	return cols
}

// Width returns the column width for p from a Columns result.
func Width(cols [3]int, p PanelID) int {
	for i, candidate := range Panels {
		if candidate == p {
			return cols[i]
		}
	}
	return 0
}
