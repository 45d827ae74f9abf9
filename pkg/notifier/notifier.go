package notifier

import (
	"context"
	"fmt"
	"regexp"
)

// Message is a rendered notification ready for delivery.
type Message struct {
	To      string `json:"to"`               // Delivery address, e.g. the user's email
	Subject string `json:"subject"`          // Subject line
	Body    string `json:"body"`             // Plain text body
	Locale  string `json:"locale,omitempty"` // BCP 47 language tag the body was rendered in
}

// Notifier delivers a message to a user over some channel.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Validate checks the message carries the fields every channel needs.
func (m Message) Validate() error {
	if m.To == "" {
		return fmt.Errorf("%w: recipient is required", ErrInvalidMessage)
	}
	if m.Subject == "" {
		return fmt.Errorf("%w: subject is required", ErrInvalidMessage)
	}
	if m.Body == "" {
		return fmt.Errorf("%w: body is required", ErrInvalidMessage)
	}
	return nil
}
