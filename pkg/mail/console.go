package mail

import (
	"context"
	"sync"

	"go.uber.org/zap"
)

// ConsoleSender logs messages instead of delivering them. It is the default
// backend for development and keeps every message for test assertions.
type ConsoleSender struct {
	logger *zap.Logger

	mu   sync.Mutex
	sent []Message
}

var _ Sender = (*ConsoleSender)(nil)

// NewConsoleSender builds a console backend.
func NewConsoleSender(logger *zap.Logger) *ConsoleSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ConsoleSender{logger: logger}
}

// Send records the message and writes it to the log.
func (s *ConsoleSender) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.sent = append(s.sent, msg)
	s.mu.Unlock()

	s.logger.Info("console email",
		zap.String("to", msg.ToAddr),
		zap.String("subject", msg.Subject),
		zap.Int("body_bytes", len(msg.HTML)),
	)
	return nil
}

// Sent returns a copy of every message handed to the sender.
func (s *ConsoleSender) Sent() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.sent))
	copy(out, s.sent)
	return out
}
