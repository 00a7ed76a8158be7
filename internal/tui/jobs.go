package tui

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

type jobKind string

type jobStatus string

const (
	jobKindAnswer jobKind = "answer"
	jobKindImport jobKind = "import"
	jobKindFetch  jobKind = "fetch"
)

const (
	jobStatusRunning   jobStatus = "running"
	jobStatusSucceeded jobStatus = "succeeded"
	jobStatusFailed    jobStatus = "failed"
)

type jobSnapshot struct {
	ID      string
	Kind    jobKind
	Status  jobStatus
	Started time.Time
	Err     string
}

type jobSignalMsg struct {
	Snapshot jobSnapshot
}

type jobResultEnvelope struct {
	Snapshot jobSnapshot
	Payload  tea.Msg
}

type jobRunner func(context.Context) (tea.Msg, error)

// jobBus runs background work off the update loop. Each job reports a
// running snapshot first and a result envelope when it finishes.
type jobBus struct {
	counter int64
	running map[string]jobSnapshot
}

func newJobBus() *jobBus {
	return &jobBus{running: map[string]jobSnapshot{}}
}

func (b *jobBus) nextID(kind jobKind) string {
	idx := atomic.AddInt64(&b.counter, 1)
	return fmt.Sprintf("%s-%d", kind, idx)
}

func (b *jobBus) Start(kind jobKind, runner jobRunner) tea.Cmd {
	running := jobSnapshot{ID: b.nextID(kind), Kind: kind, Status: jobStatusRunning, Started: time.Now()}
	announce := func() tea.Msg {
		return jobSignalMsg{Snapshot: running}
	}
	run := func() tea.Msg {
		payload, err := runner(context.Background())
		done := running
		done.Status = jobStatusSucceeded
		if err != nil {
			done.Status = jobStatusFailed
			done.Err = err.Error()
		}
		log.Printf("[jobs] %s %s (duration=%s, err=%v)", done.ID, done.Status, time.Since(done.Started).Round(time.Millisecond), err)
		return jobResultEnvelope{Snapshot: done, Payload: payload}
	}
	return tea.Sequence(announce, run)
}

// Track records a snapshot and reports whether any job is still running.
func (b *jobBus) Track(snapshot jobSnapshot) bool {
	if snapshot.Status == jobStatusRunning {
		b.running[snapshot.ID] = snapshot
	} else {
		delete(b.running, snapshot.ID)
	}
	return len(b.running) > 0
}

func (b *jobBus) Busy() bool {
	return len(b.running) > 0
}

// Badges summarizes running jobs per kind, in a stable order.
func (b *jobBus) Badges() []string {
	counts := map[jobKind]int{}
	for _, snap := range b.running {
		counts[snap.Kind]++
	}
	kinds := make([]string, 0, len(counts))
	for kind := range counts {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	badges := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		n := counts[jobKind(kind)]
		if n == 1 {
			badges = append(badges, kind+"…")
			continue
		}
		badges = append(badges, fmt.Sprintf("%s×%d…", kind, n))
	}
	return badges
}
