package mailer

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/polkiloo/storefront/internal/config"
)

// Module exposes the SMTP sender to the fx graph.
var Module = fx.Provide(newSender)

type senderParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger
}

func newSender(p senderParams) (Sender, error) {
	return NewSMTPSender(Options{
		Host:     p.Config.SMTPHost,
		Port:     p.Config.SMTPPort,
		Username: p.Config.SMTPUser,
		Password: p.Config.SMTPPassword,
		FromName: p.Config.MailFromName,
		FromAddr: p.Config.MailFrom,
	}, p.Logger)
}
