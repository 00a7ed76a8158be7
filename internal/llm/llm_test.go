package llm

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPickDelayHonorsCustomValue(t *testing.T) {
	t.Setenv(delayEnvVar, "20ms")
	custom := 42 * time.Millisecond
	if got := pickDelay(&custom); got != custom {
		t.Fatalf("expected custom delay, got %s", got)
	}
	instant := time.Duration(0)
	if got := pickDelay(&instant); got != 0 {
		t.Fatalf("zero should reply at once, got %s", got)
	}
}

func TestZeroDelayAnswersImmediately(t *testing.T) {
	client := New(Fixed(0))
	start := time.Now()
	if _, err := client.Answer(context.Background(), "now?", nil); err != nil {
		t.Fatalf("answer: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 100*time.Millisecond {
		t.Fatalf("zero delay took %s", elapsed)
	}
}

func TestPickDelayReadsEnvironment(t *testing.T) {
	t.Setenv(delayEnvVar, "20ms")
	if got := pickDelay(nil); got != 20*time.Millisecond {
		t.Fatalf("expected env delay, got %s", got)
	}
	t.Setenv(delayEnvVar, "soon")
	if got := pickDelay(nil); got != DefaultResponseDelay {
		t.Fatalf("expected default delay for bad env, got %s", got)
	}
}

func TestAnswerEchoesQuestion(t *testing.T) {
	client := New(Fixed(time.Millisecond))
	got, err := client.Answer(context.Background(), "timeline risks", []string{"Project Requirements"})
	if err != nil {
		t.Fatalf("answer: %v", err)
	}
	want := `I've analyzed your documents and found some relevant information about "timeline risks". Would you like me to elaborate on any specific aspect?`
	if got != want {
		t.Fatalf("unexpected reply:\n got %q\nwant %q", got, want)
	}
}

func TestAnswerRejectsBlankQuestion(t *testing.T) {
	client := New(Fixed(time.Millisecond))
	if _, err := client.Answer(context.Background(), "   ", nil); !errors.Is(err, ErrEmptyQuestion) {
		t.Fatalf("expected ErrEmptyQuestion, got %v", err)
	}
}

func TestAnswerStopsOnCancel(t *testing.T) {
	client := New(Fixed(time.Hour))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.Answer(ctx, "anything", nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}
