package test

import (
	"context"
	"sync"

	"github.com/polkiloo/storefront/internal/domain/model"
)

// NotifierStub records enqueued messages.
type NotifierStub struct {
	Err error

	mu       sync.Mutex
	messages []model.Message
}

// Enqueue stores msg unless Err is set.
func (n *NotifierStub) Enqueue(msg model.Message) error {
	if n.Err != nil {
		return n.Err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, msg)
	return nil
}

// Messages returns a snapshot of enqueued messages.
func (n *NotifierStub) Messages() []model.Message {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]model.Message, len(n.messages))
	copy(out, n.messages)
	return out
}

// ComposerStub produces minimal messages without templates.
type ComposerStub struct {
	Err error
}

// Confirmation addresses the customer.
func (c ComposerStub) Confirmation(order *model.Order) (model.Message, error) {
	if c.Err != nil {
		return model.Message{}, c.Err
	}
	return model.Message{Kind: model.NotificationConfirmation, Reference: order.Reference, To: order.Customer.Email, Subject: "confirmation"}, nil
}

// AdminAlert addresses a fixed operator mailbox.
func (c ComposerStub) AdminAlert(order *model.Order) (model.Message, error) {
	if c.Err != nil {
		return model.Message{}, c.Err
	}
	return model.Message{Kind: model.NotificationAdminAlert, Reference: order.Reference, To: "admin@example.com", Subject: "alert"}, nil
}

// Reply keeps subject, message and attachments as given.
func (c ComposerStub) Reply(order *model.Order, subject, message string, attachments []model.Attachment) (model.Message, error) {
	if c.Err != nil {
		return model.Message{}, c.Err
	}
	return model.Message{
		Kind:        model.NotificationReply,
		Reference:   order.Reference,
		To:          order.Customer.Email,
		Subject:     subject,
		HTML:        message,
		Attachments: attachments,
	}, nil
}

// SenderStub records delivered messages and can fail on demand.
type SenderStub struct {
	SendFn func(context.Context, model.Message) error

	mu   sync.Mutex
	sent []model.Message
}

// Send delegates to SendFn and records successful deliveries.
func (s *SenderStub) Send(ctx context.Context, msg model.Message) error {
	if s.SendFn != nil {
		if err := s.SendFn(ctx, msg); err != nil {
			return err
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, msg)
	return nil
}

// Sent returns a snapshot of delivered messages.
func (s *SenderStub) Sent() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Message, len(s.sent))
	copy(out, s.sent)
	return out
}
