package mailer

import (
	"context"
	"fmt"
	"time"

	mail "github.com/wneessen/go-mail"

	"github.com/hwdelite/notesvc/internal/server/config"
)

// SMTPSender sends passcode mails through a plain SMTP relay using
// opportunistic STARTTLS on the configured port.
type SMTPSender struct {
	client *mail.Client
	from   string
}

var _ Sender = (*SMTPSender)(nil)

// NewSMTPSender builds a Sender from the server config. The client is
// created once; each send dials its own connection.
func NewSMTPSender(cfg *config.Config) (*SMTPSender, error) {
	client, err := mail.NewClient(cfg.SMTPHost,
		mail.WithPort(cfg.SMTPPort),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(cfg.SMTPUser),
		mail.WithPassword(cfg.SMTPPassword),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return nil, fmt.Errorf("smtp client error: %w", err)
	}

	return &SMTPSender{client: client, from: cfg.MailFrom}, nil
}

func (s *SMTPSender) SendOTP(ctx context.Context, toEmail, toName, code string, validity time.Duration) error {
	msg := mail.NewMsg()
	if err := msg.From(s.from); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	var err error
	if toName != "" {
		err = msg.AddToFormat(toName, toEmail)
	} else {
		err = msg.To(toEmail)
	}
	if err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}

	msg.Subject(otpSubject)
	msg.SetBodyString(mail.TypeTextHTML, otpHTMLBody(toName, code, validity))
	msg.AddAlternativeString(mail.TypeTextPlain, otpTextBody(toName, code, validity))

	if err := s.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("mail send error: %w", err)
	}

	return nil
}
