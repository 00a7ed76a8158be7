package main

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/csheth/notebook/internal/tuitest"
)

const testConfig = `layout:
  breakpoint: 100
chat:
  response_delay: 50ms
studio:
  recording_delay: 50ms
`

func TestNotebookDesktopChat(t *testing.T) {
	t.Parallel()

	binary, configPath := buildBinary(t), writeConfig(t)
	steps := []tuitest.Step{{Delay: time.Second}}
	steps = append(steps, tuitest.Type("hello there", 20*time.Millisecond)...)
	steps = append(steps,
		tuitest.Step{Input: tuitest.KeyEnter},
		tuitest.Step{Delay: time.Second, Input: tuitest.Alt('2')},
		tuitest.Step{Delay: 500 * time.Millisecond, Input: tuitest.KeyCtrlC},
	)
	rec := runNotebook(t, binary, configPath, 120, steps)

	for _, want := range []string{"Project Requirements", "Research Ideas", "desktop (25, 50, 25)", "hello there", "analyzed your documents", "(0, 100, 0)"} {
		if !rec.Contains(want) {
			t.Fatalf("no frame showed %q", want)
		}
	}
}

func TestNotebookMobileTabs(t *testing.T) {
	t.Parallel()

	binary, configPath := buildBinary(t), writeConfig(t)
	rec := runNotebook(t, binary, configPath, 80, []tuitest.Step{
		{Delay: time.Second, Input: tuitest.KeyTab},
		{Delay: 500 * time.Millisecond, Input: tuitest.KeyCtrlC},
	})

	if !rec.Contains("tab to switch panels") {
		t.Fatal("narrow terminal should start in the tabbed layout")
	}
	if !rec.Contains("Research Ideas") {
		t.Fatal("tab should move from chat to the studio tab")
	}
}

func runNotebook(t *testing.T, binary, configPath string, width int, steps []tuitest.Step) *tuitest.Recording {
	t.Helper()
	rec, err := tuitest.Run(context.Background(), tuitest.Config{
		Command:        []string{binary, "--no-alt-screen", "--config", configPath},
		Dir:            t.TempDir(),
		Env:            []string{"NOTEBOOK_CACHE_DIR=" + t.TempDir()},
		Width:          width,
		Height:         32,
		Steps:          steps,
		Timeout:        10 * time.Second,
		AllowInterrupt: true,
	})
	if err != nil {
		t.Fatalf("run CLI: %v", err)
	}
	return rec
}

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(testConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func buildBinary(t *testing.T) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	name := "notebook-integration"
	if runtime.GOOS == "windows" {
		name += ".exe"
	}
	binPath := filepath.Join(t.TempDir(), name)
	cmd := exec.Command("go", "build", "-o", binPath, ".")
	cmd.Dir = filepath.Dir(file)
	if output, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("build CLI: %v\n%s", err, output)
	}
	return binPath
}
