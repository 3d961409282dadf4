package llm

import (
	"context"
	"errors"
)

// Role tags a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Request is one chat-completion call. An empty Model lets the backend use
// its configured default.
type Request struct {
	Model       string
	Messages    []Message
	Temperature float32
}

// ChatClient is the single capability every backend provides: turn a
// message history into the next assistant message.
type ChatClient interface {
	Name() string
	Complete(ctx context.Context, req Request) (string, error)
	Close() error
}

var ErrEmptyResponse = errors.New("llm: empty response from model")

// System, User and Assistant build messages.
func System(content string) Message    { return Message{Role: RoleSystem, Content: content} }
func User(content string) Message      { return Message{Role: RoleUser, Content: content} }
func Assistant(content string) Message { return Message{Role: RoleAssistant, Content: content} }
