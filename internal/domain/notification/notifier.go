package notification

import "context"

// Message is an outbound HTML email.
type Message struct {
	To      string
	Subject string
	HTML    string
}

// Notifier delivers messages to users. Send does not retry.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}
