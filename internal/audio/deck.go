package audio

import (
	"time"

	"github.com/google/uuid"
)

// RecordingDelay is how long after a recording starts its clip appears.
const RecordingDelay = 500 * time.Millisecond

const dateLayout = "2006-01-02"

// Clip is a recorded audio entry. Nothing is actually captured or played.
type Clip struct {
	ID       string
	Title    string
	Duration string
	Date     string
}

// Progress is the playback position shown under the player.
type Progress struct {
	Percent int
	Elapsed string
}

// Deck tracks the clip list together with recording and playback flags.
type Deck struct {
	clips     []Clip
	current   string
	recording bool
	playing   bool
}

// NewDeck returns an empty deck, or the demo clips when seed is set.
func NewDeck(seed bool) *Deck {
	d := &Deck{}
	if seed {
		d.clips = []Clip{
			{ID: "1", Title: "Project Summary", Duration: "1:24", Date: "2023-04-15"},
			{ID: "2", Title: "Meeting Recap", Duration: "2:37", Date: "2023-04-10"},
		}
	}
	return d
}

// ToggleRecording flips the recording flag and reports whether a recording
// just started. The caller finishes it with FinishRecording.
func (d *Deck) ToggleRecording() bool {
	d.recording = !d.recording
	return d.recording
}

// FinishRecording appends a fresh clip and makes it current.
func (d *Deck) FinishRecording() Clip {
	clip := Clip{
		ID:       uuid.NewString(),
		Title:    "New Recording",
		Duration: "0:00",
		Date:     time.Now().Format(dateLayout),
	}
	d.clips = append(d.clips, clip)
	d.current = clip.ID
	return clip
}

// TogglePlayback flips the shared playing flag and makes id current.
func (d *Deck) TogglePlayback(id string) bool {
	if _, ok := d.find(id); !ok {
		return false
	}
	d.playing = !d.playing
	d.current = id
	return true
}

func (d *Deck) Recording() bool {
	return d.recording
}

func (d *Deck) Playing() bool {
	return d.playing
}

// Current returns the clip loaded in the player.
func (d *Deck) Current() (Clip, bool) {
	if d.current == "" {
		return Clip{}, false
	}
	return d.find(d.current)
}

// Progress reports the fixed playback position of the player.
func (d *Deck) Progress() Progress {
	if d.playing {
		return Progress{Percent: 45, Elapsed: "0:45"}
	}
	return Progress{Percent: 0, Elapsed: "0:00"}
}

// Clips returns a copy of the clips in order.
func (d *Deck) Clips() []Clip {
	return append([]Clip(nil), d.clips...)
}

func (d *Deck) find(id string) (Clip, bool) {
	for _, clip := range d.clips {
		if clip.ID == id {
			return clip, true
		}
	}
	return Clip{}, false
}
