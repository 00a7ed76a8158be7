package sources

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	dateLayout   = "2006-01-02"
	previewLimit = 100
)

// Document is one source in the notebook library.
type Document struct {
	ID      string
	Title   string
	Type    string
	Content string
	Date    string
}

// Tab selects which document types the library view lists.
type Tab int

const (
	TabAll Tab = iota
	TabPDFs
	TabDocs
)

// Tabs lists the library tabs in display order.
var Tabs = [...]Tab{TabAll, TabPDFs, TabDocs}

func (t Tab) Title() string {
	switch t {
	case TabPDFs:
		return "PDFs"
	case TabDocs:
		return "Docs"
	default:
		return "All"
	}
}

func (t Tab) matches(doc Document) bool {
	switch t {
	case TabPDFs:
		return doc.Type == "pdf"
	case TabDocs:
		return doc.Type == "doc" || doc.Type == "docx"
	default:
		return true
	}
}

// Library is the in-memory document store backing the Sources panel.
type Library struct {
	docs     []Document
	selected string
}

// NewLibrary returns an empty library, or one holding the demo documents
// when seed is set.
func NewLibrary(seed bool) *Library {
	l := &Library{}
	if seed {
		l.docs = SeedDocuments()
	}
	return l
}

// SeedDocuments returns the demo documents shown on first launch.
func SeedDocuments() []Document {
	return []Document{
		{
			ID:      "1",
			Title:   "Project Requirements",
			Type:    "pdf",
			Content: "This document outlines the requirements for the project...",
			Date:    "2023-04-15",
		},
		{
			ID:      "2",
			Title:   "Meeting Notes",
			Type:    "doc",
			Content: "Notes from the team meeting on April 10th...",
			Date:    "2023-04-10",
		},
		{
			ID:      "3",
			Title:   "Research Paper",
			Type:    "pdf",
			Content: "Abstract: This research explores the impact of...",
			Date:    "2023-03-22",
		},
	}
}

// Add appends doc, filling in an ID and date when missing, and returns the
// stored copy.
func (l *Library) Add(doc Document) Document {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	if doc.Date == "" {
		doc.Date = time.Now().Format(dateLayout)
	}
	if doc.Type == "" {
		doc.Type = "unknown"
	}
	l.docs = append(l.docs, doc)
	return doc
}

// Remove deletes the document with id. Removing the selected document
// clears the selection.
func (l *Library) Remove(id string) bool {
	for i, doc := range l.docs {
		if doc.ID != id {
			continue
		}
		l.docs = append(l.docs[:i:i], l.docs[i+1:]...)
		if l.selected == id {
			l.selected = ""
		}
		return true
	}
	return false
}

// Select marks id as the previewed document.
func (l *Library) Select(id string) bool {
	if _, ok := l.find(id); !ok {
		return false
	}
	l.selected = id
	return true
}

// Selected returns the previewed document, if any.
func (l *Library) Selected() (Document, bool) {
	if l.selected == "" {
		return Document{}, false
	}
	return l.find(l.selected)
}

// Documents returns a copy of every stored document.
func (l *Library) Documents() []Document {
	return append([]Document(nil), l.docs...)
}

func (l *Library) Len() int {
	return len(l.docs)
}

// Filter returns the documents on tab whose title contains query,
// ignoring case.
func (l *Library) Filter(query string, tab Tab) []Document {
	query = strings.ToLower(strings.TrimSpace(query))
	out := make([]Document, 0, len(l.docs))
	for _, doc := range l.docs {
		if !tab.matches(doc) {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(doc.Title), query) {
			continue
		}
		out = append(out, doc)
	}
	return out
}

func (l *Library) find(id string) (Document, bool) {
	for _, doc := range l.docs {
		if doc.ID == id {
			return doc, true
		}
	}
	return Document{}, false
}

// Preview returns the first hundred characters of the document followed by
// an ellipsis.
func Preview(doc Document) string {
	runes := []rune(doc.Content)
	if len(runes) > previewLimit {
		runes = runes[:previewLimit]
	}
	return string(runes) + "..."
}
