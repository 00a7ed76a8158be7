package tuitest

import (
	"regexp"
	"strings"
)

// Frame is one screen redraw with escape sequences stripped from Plain.
type Frame struct {
	Index int
	ANSI  string
	Plain string
}

var (
	// clearScreen separates redraws.
	clearScreen = regexp.MustCompile(`\x1b\[[0-9;]*J`)
	csiPattern  = regexp.MustCompile(`\x1b\[[0-9;?]*[A-Za-z]`)
	oscPattern  = regexp.MustCompile(`\x1b\][^\x07]*(\x07|\x1b\\)`)
)

func parseFrames(raw []byte) []Frame {
	stream := strings.ReplaceAll(string(raw), "\r", "")
	var frames []Frame
	for _, chunk := range clearScreen.Split(stream, -1) {
		chunk = strings.TrimPrefix(strings.Trim(chunk, "\x00"), "\x1b[H")
		plain := normalizeLines(stripANSI(chunk))
		if plain == "" {
			continue
		}
		frames = append(frames, Frame{Index: len(frames), ANSI: chunk, Plain: plain})
	}
	if len(frames) == 0 && stream != "" {
		frames = append(frames, Frame{ANSI: stream, Plain: normalizeLines(stripANSI(stream))})
	}
	return frames
}

// FinalFrame returns the last redraw, or false when nothing was drawn.
func (r *Recording) FinalFrame() (Frame, bool) {
	if r == nil || len(r.Frames) == 0 {
		return Frame{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}

// Contains reports whether any frame shows text.
func (r *Recording) Contains(text string) bool {
	_, ok := r.FirstFrameWith(text)
	return ok
}

// FirstFrameWith returns the earliest frame showing text.
func (r *Recording) FirstFrameWith(text string) (Frame, bool) {
	if r == nil {
		return Frame{}, false
	}
	for _, frame := range r.Frames {
		if strings.Contains(frame.Plain, text) {
			return frame, true
		}
	}
	return Frame{}, false
}

var shiftCodes = strings.NewReplacer("\x0e", "", "\x0f", "")

func stripANSI(s string) string {
	s = oscPattern.ReplaceAllString(s, "")
	s = csiPattern.ReplaceAllString(s, "")
	return shiftCodes.Replace(s)
}

// normalizeLines drops trailing blanks per line and trailing empty lines.
func normalizeLines(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " ")
	}
	return strings.TrimRight(strings.Join(lines, "\n"), "\n")
}
