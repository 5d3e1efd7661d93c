package mailer

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/wneessen/go-mail"

	"github.com/polkiloo/storefront/internal/config"
	"github.com/polkiloo/storefront/internal/domain/model"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestSender(t *testing.T) *SMTPSender {
	t.Helper()
	s, err := NewSMTPSender(Options{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "shop@example.com",
		Password: "secret",
		FromName: "Joanna's Reborns",
		FromAddr: "shop@example.com",
	}, testLogger())
	if err != nil {
		t.Fatalf("NewSMTPSender: %v", err)
	}
	return s
}

func TestNewSMTPSenderValidatesOptions(t *testing.T) {
	if _, err := NewSMTPSender(Options{FromAddr: "a@example.com"}, testLogger()); err == nil {
		t.Fatal("expected error for missing host")
	}
	if _, err := NewSMTPSender(Options{Host: "smtp.example.com"}, testLogger()); err == nil {
		t.Fatal("expected error for missing sender")
	}

	s, err := NewSMTPSender(Options{Host: "smtp.example.com", FromAddr: "a@example.com"}, testLogger())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.port != implicitTLSPort {
		t.Fatalf("expected default port %d, got %d", implicitTLSPort, s.port)
	}
}

func TestSendBuildsMessage(t *testing.T) {
	s := newTestSender(t)

	var got *mail.Msg
	s.deliver = func(_ context.Context, m *mail.Msg) error {
		got = m
		return nil
	}

	err := s.Send(context.Background(), model.Message{
		Kind:      model.NotificationReply,
		Reference: "RB202405170007",
		To:        "jane@example.com",
		Subject:   "Payment details",
		HTML:      "<p>Hello</p>",
		Attachments: []model.Attachment{
			{Filename: "invoice.pdf", ContentType: "application/pdf", Content: []byte("%PDF")},
			{Filename: "notes.txt", Content: []byte("plain")},
		},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil {
		t.Fatal("expected message to be delivered")
	}

	rcpts, err := got.GetRecipients()
	if err != nil || len(rcpts) != 1 || rcpts[0] != "jane@example.com" {
		t.Fatalf("unexpected recipients %v (%v)", rcpts, err)
	}
	if subject := got.GetGenHeader(mail.HeaderSubject); len(subject) != 1 || subject[0] != "Payment details" {
		t.Fatalf("unexpected subject %v", subject)
	}
	from := got.GetFromString()
	if len(from) != 1 || !strings.Contains(from[0], "shop@example.com") || !strings.Contains(from[0], "Reborns") {
		t.Fatalf("unexpected from %v", from)
	}
	attachments := got.GetAttachments()
	if len(attachments) != 2 || attachments[0].Name != "invoice.pdf" || attachments[1].Name != "notes.txt" {
		t.Fatalf("unexpected attachments %+v", attachments)
	}
}

func TestSendRejectsBadRecipient(t *testing.T) {
	s := newTestSender(t)
	s.deliver = func(context.Context, *mail.Msg) error {
		t.Fatal("deliver must not be called for invalid messages")
		return nil
	}

	if err := s.Send(context.Background(), model.Message{To: "not an address"}); err == nil {
		t.Fatal("expected recipient error")
	}
}

func TestSendWrapsTransportError(t *testing.T) {
	s := newTestSender(t)
	boom := errors.New("connection refused")
	s.deliver = func(context.Context, *mail.Msg) error { return boom }

	err := s.Send(context.Background(), model.Message{To: "jane@example.com", Subject: "s", HTML: "b"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected transport error, got %v", err)
	}
}

func TestNewSenderUsesConfig(t *testing.T) {
	cfg := &config.Config{
		SMTPHost:     "smtp.example.com",
		SMTPPort:     465,
		SMTPUser:     "shop@example.com",
		MailFrom:     "shop@example.com",
		MailFromName: "Shop",
	}
	sender, err := newSender(senderParams{Config: cfg, Logger: testLogger()})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	smtp, ok := sender.(*SMTPSender)
	if !ok {
		t.Fatalf("expected *SMTPSender, got %T", sender)
	}
	if smtp.host != "smtp.example.com" || smtp.port != 465 || smtp.fromName != "Shop" {
		t.Fatalf("unexpected sender %+v", smtp)
	}
}
