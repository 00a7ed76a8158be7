package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrEmptyQuestion is returned when the question is blank.
var ErrEmptyQuestion = errors.New("question cannot be empty")

// cannedClient stands in for a model. It waits out its delay and echoes the
// question back in a fixed reply.
type cannedClient struct {
	delay time.Duration
}

func (c *cannedClient) Name() string {
	return fmt.Sprintf("Canned assistant (%s delay)", c.delay)
}

func (c *cannedClient) Answer(ctx context.Context, question string, sources []string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", ErrEmptyQuestion
	}
	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return "", err
	}
	return Reply(question), nil
}

// Reply formats the assistant's answer to question.
func Reply(question string) string {
	return fmt.Sprintf("I've analyzed your documents and found some relevant information about \"%s\". Would you like me to elaborate on any specific aspect?", question)
}
