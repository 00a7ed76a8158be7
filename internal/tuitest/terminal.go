package tuitest

import (
	"bytes"
	"io"
)

// terminalResponder answers the cursor and colour queries Bubble Tea and
// lipgloss send at startup so the program never blocks waiting for a real
// terminal.
type terminalResponder struct {
	w   io.Writer
	buf []byte
}

func newTerminalResponder(w io.Writer) *terminalResponder {
	return &terminalResponder{w: w, buf: make([]byte, 0, 128)}
}

func (tr *terminalResponder) Process(chunk []byte) {
	tr.buf = append(tr.buf, chunk...)
	tr.scan()
	// queries can straddle two reads
	if len(tr.buf) > 256 {
		tr.buf = tr.buf[len(tr.buf)-64:]
	}
}

var terminalReplies = []struct{ query, reply string }{
	{"\x1b[6n", "\x1b[1;1R"},
	{"\x1b]10;?\x07", "\x1b]10;rgb:cccc/cccc/cccc\x07"},
	{"\x1b]10;?\x1b\\", "\x1b]10;rgb:cccc/cccc/cccc\x1b\\"},
	{"\x1b]11;?\x07", "\x1b]11;rgb:0000/0000/0000\x07"},
	{"\x1b]11;?\x1b\\", "\x1b]11;rgb:0000/0000/0000\x1b\\"},
}

func (tr *terminalResponder) scan() {
	for {
		answered := false
		for _, r := range terminalReplies {
			if tr.consume([]byte(r.query), []byte(r.reply)) {
				answered = true
			}
		}
		if !answered {
			return
		}
	}
}

func (tr *terminalResponder) consume(pattern, response []byte) bool {
	idx := bytes.Index(tr.buf, pattern)
	if idx < 0 {
		return false
	}
	tr.buf = tr.buf[idx+len(pattern):]
	_, _ = tr.w.Write(response)
	return true
}
