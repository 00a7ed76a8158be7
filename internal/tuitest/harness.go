package tuitest

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"slices"
	"strings"
	"time"

	"github.com/creack/pty"
)

const (
	defaultWidth   = 120
	defaultHeight  = 32
	defaultTimeout = 5 * time.Second
)

// Step is one scripted keystroke batch. Delay is waited before Input is
// written.
type Step struct {
	Delay time.Duration
	Input []byte
}

// Config describes the program to spawn and the terminal it runs in.
type Config struct {
	Command []string
	Dir     string
	Env     []string
	Width   int
	Height  int
	Steps   []Step
	Timeout time.Duration
	// AllowedExitCodes lists non-zero exit codes that still count as success.
	AllowedExitCodes []int
	// AllowInterrupt accepts termination by SIGINT, which ctrl+c can raise
	// before the program puts the terminal in raw mode.
	AllowInterrupt bool
}

func (c Config) withDefaults() Config {
	if c.Width <= 0 {
		c.Width = defaultWidth
	}
	if c.Height <= 0 {
		c.Height = defaultHeight
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	return c
}

// Recording contains the raw terminal stream plus parsed frames.
type Recording struct {
	Raw      []byte
	Frames   []Frame
	Duration time.Duration
}

// session is one running program attached to a PTY.
type session struct {
	cmd    *exec.Cmd
	ptmx   *os.File
	output bytes.Buffer
	done   chan struct{}
}

// Run starts cfg.Command in a PTY sized Width x Height, replays Steps and
// records everything the program draws until it exits.
func Run(ctx context.Context, cfg Config) (*Recording, error) {
	if len(cfg.Command) == 0 {
		return nil, errors.New("tuitest: command is required")
	}
	cfg = cfg.withDefaults()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()

	s, err := start(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.ptmx.Close() }()

	began := time.Now()
	if err := s.replay(ctx, cfg.Steps); err != nil {
		return nil, err
	}
	if err := s.wait(ctx, cfg); err != nil {
		return nil, err
	}

	_ = s.ptmx.Close()
	<-s.done
	raw := s.output.Bytes()
	return &Recording{Raw: raw, Frames: parseFrames(raw), Duration: time.Since(began)}, nil
}

func start(ctx context.Context, cfg Config) (*session, error) {
	cmd := exec.CommandContext(ctx, cfg.Command[0], cfg.Command[1:]...)
	cmd.Dir = cfg.Dir
	cmd.Env = buildEnv(cfg.Env)

	ptmx, err := pty.StartWithSize(cmd, &pty.Winsize{Rows: uint16(cfg.Height), Cols: uint16(cfg.Width)})
	if err != nil {
		return nil, fmt.Errorf("tuitest: start program: %w", err)
	}
	s := &session{cmd: cmd, ptmx: ptmx, done: make(chan struct{})}
	go s.capture()
	return s, nil
}

// capture copies the program output until the PTY closes, answering
// terminal queries on the way.
func (s *session) capture() {
	defer close(s.done)
	responder := newTerminalResponder(s.ptmx)
	buf := make([]byte, 4096)
	for {
		n, err := s.ptmx.Read(buf)
		if n > 0 {
			responder.Process(buf[:n])
			_, _ = s.output.Write(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

func (s *session) replay(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		if step.Delay > 0 {
			timer := time.NewTimer(step.Delay)
			select {
			case <-ctx.Done():
				timer.Stop()
				return fmt.Errorf("tuitest: script interrupted: %w", ctx.Err())
			case <-timer.C:
			}
		}
		if len(step.Input) == 0 {
			continue
		}
		if _, err := s.ptmx.Write(step.Input); err != nil {
			return fmt.Errorf("tuitest: write input: %w", err)
		}
	}
	return nil
}

func (s *session) wait(ctx context.Context, cfg Config) error {
	exited := make(chan error, 1)
	go func() { exited <- s.cmd.Wait() }()

	select {
	case <-ctx.Done():
		return fmt.Errorf("tuitest: timeout waiting for program exit: %w", ctx.Err())
	case err := <-exited:
		if err == nil || acceptableExit(err, cfg) {
			return nil
		}
		return fmt.Errorf("tuitest: program exited with error: %w", err)
	}
}

func acceptableExit(err error, cfg Config) bool {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && slices.Contains(cfg.AllowedExitCodes, exitErr.ExitCode()) {
		return true
	}
	return cfg.AllowInterrupt && strings.Contains(err.Error(), "signal: interrupt")
}

func buildEnv(extra []string) []string {
	env := append(os.Environ(), extra...)
	hasTerm := slices.ContainsFunc(env, func(entry string) bool {
		return strings.HasPrefix(entry, "TERM=")
	})
	if !hasTerm {
		env = append(env, "TERM=xterm-256color")
	}
	return env
}

// Keys understood by the notebook shell. Alt combinations are sent as an
// escape prefix, the way most terminals encode them.
var (
	KeyEnter    = []byte{'\r'}
	KeyTab      = []byte{'\t'}
	KeyShiftTab = []byte("\x1b[Z")
	KeyEsc      = []byte{27}
	KeyCtrlB    = []byte{2}
	KeyCtrlC    = []byte{3}
	KeyCtrlT    = []byte{20}
)

// Alt returns the byte sequence for alt+r.
func Alt(r rune) []byte {
	return append([]byte{27}, []byte(string(r))...)
}

// Type returns a step per rune of text so each keystroke arrives as its own
// key message.
func Type(text string, delay time.Duration) []Step {
	steps := make([]Step, 0, len(text))
	for _, r := range text {
		steps = append(steps, Step{Delay: delay, Input: []byte(string(r))})
	}
	return steps
}
