package mailer

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/wneessen/go-mail"

	"github.com/polkiloo/storefront/internal/domain/model"
)

const implicitTLSPort = 465

// Sender delivers composed messages to a mail transport.
type Sender interface {
	Send(ctx context.Context, msg model.Message) error
}

// SMTPSender implements Sender over SMTP.
type SMTPSender struct {
	host     string
	port     int
	username string
	password string
	fromName string
	fromAddr string
	logger   *slog.Logger

	deliver func(ctx context.Context, m *mail.Msg) error
}

// Options configure SMTPSender.
type Options struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
	FromAddr string
}

// NewSMTPSender validates options. No connection is made until Send.
func NewSMTPSender(opts Options, logger *slog.Logger) (*SMTPSender, error) {
	if opts.Host == "" {
		return nil, errors.New("smtp host is required")
	}
	if opts.FromAddr == "" {
		return nil, errors.New("sender address is required")
	}
	if opts.Port <= 0 {
		opts.Port = implicitTLSPort
	}

	s := &SMTPSender{
		host:     opts.Host,
		port:     opts.Port,
		username: opts.Username,
		password: opts.Password,
		fromName: opts.FromName,
		fromAddr: opts.FromAddr,
		logger:   logger,
	}
	s.deliver = s.dialAndSend
	return s, nil
}

// Send builds a MIME message from msg and delivers it.
func (s *SMTPSender) Send(ctx context.Context, msg model.Message) error {
	m, err := s.buildMessage(msg)
	if err != nil {
		return err
	}
	if err := s.deliver(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	s.logger.Debug("mail delivered",
		slog.String("kind", string(msg.Kind)),
		slog.String("reference", msg.Reference),
	)
	return nil
}

func (s *SMTPSender) buildMessage(msg model.Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.FromFormat(s.fromName, s.fromAddr); err != nil {
		return nil, fmt.Errorf("set from: %w", err)
	}
	if err := m.To(msg.To); err != nil {
		return nil, fmt.Errorf("set recipient: %w", err)
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextHTML, msg.HTML)

	for _, a := range msg.Attachments {
		var opts []mail.FileOption
		if a.ContentType != "" {
			opts = append(opts, mail.WithFileContentType(mail.ContentType(a.ContentType)))
		}
		if err := m.AttachReader(a.Filename, bytes.NewReader(a.Content), opts...); err != nil {
			return nil, fmt.Errorf("attach %s: %w", a.Filename, err)
		}
	}
	return m, nil
}

func (s *SMTPSender) dialAndSend(ctx context.Context, m *mail.Msg) error {
	opts := []mail.Option{mail.WithPort(s.port)}
	if s.port == implicitTLSPort {
		opts = append(opts, mail.WithSSLPort(false))
	} else {
		opts = append(opts, mail.WithTLSPortPolicy(mail.TLSMandatory))
	}
	if s.username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.username),
			mail.WithPassword(s.password),
		)
	}

	client, err := mail.NewClient(s.host, opts...)
	if err != nil {
		return err
	}
	return client.DialAndSendWithContext(ctx, m)
}
