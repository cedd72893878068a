package mail

import "context"

// Message is a single outbound email with a rendered HTML body.
type Message struct {
	ToName  string
	ToAddr  string
	Subject string
	HTML    string
}

// Sender delivers one message per call. Implementations must be safe for
// concurrent use; the dispatcher fans out one goroutine per recipient.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}
