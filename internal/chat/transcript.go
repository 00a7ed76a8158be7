package chat

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Greeting opens every transcript.
const Greeting = "Hello! I'm your AI assistant. I can help you analyze your documents and answer questions. How can I help you today?"

var (
	// ErrEmptyMessage is returned when the composer holds only whitespace.
	ErrEmptyMessage = errors.New("message is empty")
	// ErrPending is returned while an earlier question awaits its answer.
	ErrPending = errors.New("waiting for the assistant to reply")
)

// Role identifies who wrote a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one transcript entry.
type Message struct {
	ID        string
	Role      Role
	Content   string
	Timestamp time.Time
}

// Transcript is the ordered conversation shown in the Chat panel. At most one
// question is in flight at a time.
type Transcript struct {
	messages []Message
	pending  bool
	now      func() time.Time
}

// NewTranscript returns a transcript holding the assistant greeting.
func NewTranscript() *Transcript {
	t := &Transcript{now: time.Now}
	t.messages = append(t.messages, t.message(RoleAssistant, Greeting))
	return t
}

func (t *Transcript) message(role Role, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		Role:      role,
		Content:   content,
		Timestamp: t.now(),
	}
}

// Send records a user question and marks the transcript pending. The text is
// stored as typed; only the emptiness check trims it.
func (t *Transcript) Send(text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}
	if t.pending {
		return Message{}, ErrPending
	}
	msg := t.message(RoleUser, text)
	t.messages = append(t.messages, msg)
	t.pending = true
	return msg, nil
}

// Resolve appends the assistant reply and clears the pending state.
func (t *Transcript) Resolve(content string) Message {
	msg := t.message(RoleAssistant, content)
	t.messages = append(t.messages, msg)
	t.pending = false
	return msg
}

// Fail clears the pending state without a reply.
func (t *Transcript) Fail() {
	t.pending = false
}

func (t *Transcript) Pending() bool {
	return t.pending
}

// Messages returns a copy of the conversation in order.
func (t *Transcript) Messages() []Message {
	return append([]Message(nil), t.messages...)
}

// LastAssistant returns the most recent assistant message.
func (t *Transcript) LastAssistant() (Message, bool) {
	for i := len(t.messages) - 1; i >= 0; i-- {
		if t.messages[i].Role == RoleAssistant {
			return t.messages[i], true
		}
	}
	return Message{}, false
}

// FormatTime renders a message timestamp as a 24-hour clock.
func FormatTime(ts time.Time) string {
	return ts.Format("15:04")
}
