package email

import (
	"context"
	"fmt"
)

// Sender is satisfied by *Client. Services depend on it so tests can
// capture outgoing mail.
type Sender interface {
	Send(ctx context.Context, m Message) error
}

type Message struct {
	To       []string
	CC       []string
	Subject  string
	TextBody string
	HTMLBody string
	Headers  map[string]string
}

type ErrDisabled struct{}

func (ErrDisabled) Error() string { return "email is disabled" }

type ErrInvalidMessage struct{ Reason string }

func (e ErrInvalidMessage) Error() string { return "invalid email message: " + e.Reason }

type ErrSend struct {
	Err error
}

func (e ErrSend) Error() string { return fmt.Sprintf("smtp send failed: %v", e.Err) }
func (e ErrSend) Unwrap() error { return e.Err }
