package coaching

import (
	"fmt"
	"sync"
)

// Sender identifies who produced a conversation turn.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
)

// Citation is an opaque structured reference returned by the answering
// service. It is passed through to the display layer uninterpreted.
type Citation map[string]any

// Turn is a single conversation entry. Turns are immutable once
// appended.
type Turn struct {
	Sender   Sender
	Text     string
	Sources  []Citation
	Metadata map[string]any
}

// Conversation is the append-only, insertion-ordered turn log for one
// visit. Insertion order is the display order; appending is the only
// mutation apart from display-level removal of a user turn.
type Conversation struct {
	mu    sync.Mutex
	turns []Turn
}

// NewConversation creates an empty conversation log.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Append adds a turn at the end of the log.
func (c *Conversation) Append(t Turn) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.turns = append(c.turns, t)
}

// All returns a snapshot of the log in insertion order.
func (c *Conversation) All() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.turns))
	copy(out, c.turns)
	return out
}

// Len returns the number of turns.
func (c *Conversation) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.turns)
}

// RemoveUserTurn deletes the user turn at index from the display log.
// It affects display only — quota is untouched. Removing an assistant
// turn or an out-of-range index is rejected.
func (c *Conversation) RemoveUserTurn(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if index < 0 || index >= len(c.turns) {
		return fmt.Errorf("turn index %d out of range", index)
	}
	if c.turns[index].Sender != SenderUser {
		return fmt.Errorf("turn %d is not a user turn", index)
	}
	c.turns = append(c.turns[:index], c.turns[index+1:]...)
	return nil
}
