package llm

import (
	"context"
	"os"
	"time"
)

// DefaultResponseDelay mirrors the pause before the assistant replies.
const DefaultResponseDelay = 1500 * time.Millisecond

const delayEnvVar = "NOTEBOOK_RESPONSE_DELAY"

// Config describes how to build an LLM client.
type Config struct {
	// Delay before an answer is returned; zero answers at once. Nil uses
	// $NOTEBOOK_RESPONSE_DELAY, then DefaultResponseDelay.
	Delay *time.Duration
}

// Client answers questions about the notebook's sources.
type Client interface {
	Answer(ctx context.Context, question string, sources []string) (string, error)
	Name() string
}

// New builds the assistant client for cfg.
func New(cfg Config) Client {
	return &cannedClient{delay: pickDelay(cfg.Delay)}
}

// Fixed returns a Config that replies after exactly d.
func Fixed(d time.Duration) Config {
	return Config{Delay: &d}
}

func pickDelay(custom *time.Duration) time.Duration {
	if custom != nil {
		return max(*custom, 0)
	}
	if env := os.Getenv(delayEnvVar); env != "" {
		if parsed, err := time.ParseDuration(env); err == nil && parsed >= 0 {
			return parsed
		}
	}
	return DefaultResponseDelay
}
