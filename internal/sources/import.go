package sources

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedType is returned for files the library cannot read.
var ErrUnsupportedType = errors.New("unsupported document type")

const (
	placeholderContent = "Content would be extracted from the file..."
	partialSuffix      = ".part"
)

var (
	acceptedTypes = map[string]bool{
		"pdf":  true,
		"txt":  true,
		"md":   true,
		"doc":  true,
		"docx": true,
	}
	extraneousWhitespace = regexp.MustCompile(`\s+`)
)

// DocumentType returns the lower-cased extension of name without the dot,
// or "unknown".
func DocumentType(name string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(name)), ".")
	if ext == "" {
		return "unknown"
	}
	return ext
}

// Accepts reports whether name has an extension the library can import.
func Accepts(name string) bool {
	base := filepath.Base(name)
	if strings.HasPrefix(base, ".") || strings.HasSuffix(base, partialSuffix) {
		return false
	}
	return acceptedTypes[DocumentType(name)]
}

// Import reads a local file into a Document.
func Import(path string) (Document, error) {
	if !Accepts(path) {
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedType, filepath.Base(path))
	}
	info, err := os.Stat(path)
	if err != nil {
		return Document{}, err
	}
	if info.IsDir() {
		return Document{}, fmt.Errorf("%s is a directory", path)
	}
	return importFile(path, filepath.Base(path))
}

func importFile(path, title string) (Document, error) {
	kind := DocumentType(title)
	var content string
	switch kind {
	case "pdf":
		text, err := extractPDFText(path)
		if err != nil {
			return Document{}, err
		}
		content = text
	case "txt", "md":
		data, err := os.ReadFile(path)
		if err != nil {
			return Document{}, err
		}
		content = strings.TrimSpace(string(data))
	case "doc", "docx":
		content = placeholderContent
	default:
		return Document{}, fmt.Errorf("%w: %s", ErrUnsupportedType, title)
	}
	return Document{
		Title:   title,
		Type:    kind,
		Content: content,
		Date:    time.Now().Format(dateLayout),
	}, nil
}

func extractPDFText(path string) (string, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}
	defer file.Close()

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("failed to extract pdf text: %w", err)
	}

	var builder strings.Builder
	if _, err := io.Copy(&builder, content); err != nil {
		return "", err
	}

	fullText := extraneousWhitespace.ReplaceAllString(builder.String(), " ")
	return strings.TrimSpace(fullText), nil
}
