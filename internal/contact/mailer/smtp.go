package mailer

import (
	"context"
	"fmt"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/portfolio-website/portfolio-server/internal/contact/domain"
)

// Options mirrors the MAIL_* settings.
type Options struct {
	Host     string
	Port     int
	UseTLS   bool
	Username string
	Password string
	Timeout  time.Duration
}

// SMTPSender submits mail through one configured SMTP server. The client is
// built once and reused; each Send dials its own connection.
type SMTPSender struct {
	client *mail.Client
}

// NewSMTPSender creates a sender. Port 465 uses implicit TLS, otherwise
// UseTLS requires STARTTLS.
func NewSMTPSender(opts Options) (*SMTPSender, error) {
	if opts.Host == "" {
		return nil, fmt.Errorf("MAIL_SERVER is required")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}

	clientOpts := []mail.Option{
		mail.WithPort(opts.Port),
		mail.WithTimeout(opts.Timeout),
	}

	switch {
	case opts.Port == 465:
		clientOpts = append(clientOpts, mail.WithSSL())
	case opts.UseTLS:
		clientOpts = append(clientOpts, mail.WithTLSPolicy(mail.TLSMandatory))
	default:
		clientOpts = append(clientOpts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if opts.Username != "" {
		clientOpts = append(clientOpts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(opts.Username),
			mail.WithPassword(opts.Password),
		)
	}

	client, err := mail.NewClient(opts.Host, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return &SMTPSender{client: client}, nil
}

// Send delivers msg in a single attempt.
func (s *SMTPSender) Send(ctx context.Context, msg domain.Message) error {
	m, err := NewMailMessage(msg)
	if err != nil {
		return err
	}

	if err := s.client.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp send: %w", err)
	}
	return nil
}

// NewMailMessage converts msg to a go-mail message, validating addresses.
func NewMailMessage(msg domain.Message) (*mail.Msg, error) {
	m := mail.NewMsg()
	if err := m.From(msg.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", msg.From, err)
	}
	if err := m.To(msg.To...); err != nil {
		return nil, fmt.Errorf("invalid recipient: %w", err)
	}
	if msg.ReplyTo != "" {
		if err := m.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("invalid reply-to %q: %w", msg.ReplyTo, err)
		}
	}
	m.Subject(msg.Subject)
	m.SetBodyString(mail.TypeTextPlain, msg.Body)
	return m, nil
}
