package notes

import (
	"time"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// Note is a free-form entry in the Studio panel.
type Note struct {
	ID      string
	Title   string
	Content string
	Date    string
}

// Notebook holds the notes in creation order and the one open for editing.
type Notebook struct {
	notes  []Note
	active string
}

// NewNotebook returns an empty notebook, or the demo notes when seed is set.
func NewNotebook(seed bool) *Notebook {
	n := &Notebook{}
	if seed {
		n.notes = []Note{
			{ID: "1", Title: "Meeting Notes", Content: "Discussed project timeline and resource allocation...", Date: "2023-04-15"},
			{ID: "2", Title: "Research Ideas", Content: "Potential research directions for the next quarter...", Date: "2023-04-10"},
		}
	}
	return n
}

// New appends an empty "New Note" and opens it.
func (n *Notebook) New() Note {
	note := Note{
		ID:    uuid.NewString(),
		Title: "New Note",
		Date:  time.Now().Format(dateLayout),
	}
	n.notes = append(n.notes, note)
	n.active = note.ID
	return note
}

// Activate opens id for editing.
func (n *Notebook) Activate(id string) bool {
	if _, ok := n.find(id); !ok {
		return false
	}
	n.active = id
	return true
}

// Close leaves the editor without saving.
func (n *Notebook) Close() {
	n.active = ""
}

// Active returns the note open for editing.
func (n *Notebook) Active() (Note, bool) {
	if n.active == "" {
		return Note{}, false
	}
	return n.find(n.active)
}

// SaveActive replaces the open note's title and content with the draft.
func (n *Notebook) SaveActive(title, content string) (Note, bool) {
	for i := range n.notes {
		if n.notes[i].ID != n.active || n.active == "" {
			continue
		}
		n.notes[i].Title = title
		n.notes[i].Content = content
		return n.notes[i], true
	}
	return Note{}, false
}

// Delete removes id, closing the editor when it held that note.
func (n *Notebook) Delete(id string) bool {
	for i, note := range n.notes {
		if note.ID != id {
			continue
		}
		n.notes = append(n.notes[:i:i], n.notes[i+1:]...)
		if n.active == id {
			n.active = ""
		}
		return true
	}
	return false
}

// Notes returns a copy of the notes in order.
func (n *Notebook) Notes() []Note {
	return append([]Note(nil), n.notes...)
}

func (n *Notebook) Len() int {
	return len(n.notes)
}

func (n *Notebook) find(id string) (Note, bool) {
	for _, note := range n.notes {
		if note.ID == id {
			return note, true
		}
	}
	return Note{}, false
}
