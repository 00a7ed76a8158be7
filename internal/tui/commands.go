package tui

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/notebook/internal/llm"
	"github.com/csheth/notebook/internal/sources"
)

type answerResultMsg struct {
	answer string
	err    error
}

type importResultMsg struct {
	origin string
	doc    sources.Document
	err    error
}

type recordingDoneMsg struct{}

type droppedFileMsg struct {
	path string
}

func answerJob(client llm.Client, question string, titles []string) jobRunner {
	docs := append([]string(nil), titles...)
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, 2*time.Minute)
		defer cancel()
		answer, err := client.Answer(ctx, question, docs)
		return answerResultMsg{answer: answer, err: err}, err
	}
}

func importFileJob(path string) jobRunner {
	return func(context.Context) (tea.Msg, error) {
		doc, err := sources.Import(path)
		return importResultMsg{origin: filepath.Base(path), doc: doc, err: err}, err
	}
}

func fetchURLJob(fetcher *sources.Fetcher, rawURL string) jobRunner {
	return func(parent context.Context) (tea.Msg, error) {
		ctx, cancel := context.WithTimeout(parent, 2*time.Minute)
		defer cancel()
		doc, err := fetcher.Fetch(ctx, rawURL)
		return importResultMsg{origin: rawURL, doc: doc, err: err}, err
	}
}

func recordingDoneCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(time.Time) tea.Msg {
		return recordingDoneMsg{}
	})
}

// waitForDrop blocks on the drop-folder channel until a file settles.
func waitForDrop(drops <-chan string) tea.Cmd {
	if drops == nil {
		return nil
	}
	return func() tea.Msg {
		path, ok := <-drops
		if !ok {
			return nil
		}
		return droppedFileMsg{path: path}
	}
}

// expandUserPath resolves a leading ~ in paths typed into the prompt.
func expandUserPath(path string) string {
	path = strings.TrimSpace(path)
	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, strings.TrimPrefix(path, "~"))
		}
	}
	return path
}
