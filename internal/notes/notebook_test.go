package notes

import (
	"testing"
	"time"
)

func TestNewNoteIsAppendedAndActive(t *testing.T) {
	t.Parallel()

	nb := NewNotebook(true)
	note := nb.New()

	if nb.Len() != 3 {
		t.Fatalf("expected three notes, got %d", nb.Len())
	}
	if note.Title != "New Note" || note.Content != "" {
		t.Fatalf("unexpected new note %+v", note)
	}
	if note.Date != time.Now().Format(dateLayout) {
		t.Fatalf("expected today's date, got %q", note.Date)
	}
	active, ok := nb.Active()
	if !ok || active.ID != note.ID {
		t.Fatalf("expected new note to be active, got %+v", active)
	}
}

func TestSaveActiveReplacesDraft(t *testing.T) {
	t.Parallel()

	nb := NewNotebook(true)
	if !nb.Activate("2") {
		t.Fatal("expected seeded note to activate")
	}
	saved, ok := nb.SaveActive("Roadmap", "Q3 directions")
	if !ok {
		t.Fatal("expected save to succeed")
	}
	if saved.ID != "2" || saved.Date != "2023-04-10" {
		t.Fatalf("save should keep identity and date, got %+v", saved)
	}
	if got := nb.Notes()[1]; got.Title != "Roadmap" || got.Content != "Q3 directions" {
		t.Fatalf("note not updated in place: %+v", got)
	}
}

func TestSaveWithoutActiveNote(t *testing.T) {
	t.Parallel()

	nb := NewNotebook(true)
	if _, ok := nb.SaveActive("x", "y"); ok {
		t.Fatal("expected save without active note to fail")
	}
}

func TestDeleteActiveClosesEditor(t *testing.T) {
	t.Parallel()

	nb := NewNotebook(true)
	nb.Activate("1")
	if !nb.Delete("1") {
		t.Fatal("expected delete to succeed")
	}
	if _, ok := nb.Active(); ok {
		t.Fatal("expected editor to close after deleting the active note")
	}
	if nb.Delete("1") {
		t.Fatal("second delete should report missing note")
	}
}

func TestDeleteOtherKeepsEditor(t *testing.T) {
	t.Parallel()

	nb := NewNotebook(true)
	nb.Activate("1")
	nb.Delete("2")
	if active, ok := nb.Active(); !ok || active.ID != "1" {
		t.Fatalf("expected note 1 to stay active, got %+v %v", active, ok)
	}
}
