package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/portfolio-website/portfolio-server/internal/contact/domain"
	"github.com/portfolio-website/portfolio-server/internal/logging"
)

// Sender delivers a single message. Implementations are shared across
// requests and must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg domain.Message) error
}

// Limiter decides whether a client may submit another message.
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// Outcome observes every relay attempt; used for metrics.
type Outcome func(result string)

// RelayService forwards contact submissions to the site owner. It sends
// once; failures are reported, never retried or stored.
type RelayService struct {
	sender    Sender
	limiter   Limiter
	from      string
	recipient string
	observe   Outcome
}

type RelayOptions struct {
	Sender    Sender
	Limiter   Limiter
	From      string
	Recipient string
	Observe   Outcome
}

// NewRelayService creates a new RelayService. A nil Sender is allowed and
// makes every submission fail with ErrMailNotConfigured.
func NewRelayService(opts RelayOptions) *RelayService {
	observe := opts.Observe
	if observe == nil {
		observe = func(string) {}
	}
	return &RelayService{
		sender:    opts.Sender,
		limiter:   opts.Limiter,
		from:      opts.From,
		recipient: opts.Recipient,
		observe:   observe,
	}
}

// Relay sends sub on behalf of the client identified by clientKey.
func (s *RelayService) Relay(ctx context.Context, clientKey string, sub domain.Submission) error {
	if s.sender == nil || s.from == "" || s.recipient == "" {
		s.observe("not_configured")
		return domain.ErrMailNotConfigured
	}

	if s.limiter != nil {
		allowed, err := s.limiter.Allow(ctx, clientKey)
		if err != nil {
			// a broken limiter backend must not block the contact form
			logging.NewLogger(ctx).LogWarn("contact.ratelimit", "limiter unavailable", "error", err)
		} else if !allowed {
			s.observe("rate_limited")
			return domain.ErrRateLimited
		}
	}

	if err := s.sender.Send(ctx, BuildMessage(s.from, s.recipient, sub)); err != nil {
		s.observe("failed")
		return fmt.Errorf("%w: %v", domain.ErrMailDeliveryFailed, err)
	}

	s.observe("sent")
	return nil
}

// BuildMessage lays out the mail sent to the owner. The visitor address only
// goes into Reply-To and the body; the sender is always the configured one.
func BuildMessage(from, recipient string, sub domain.Submission) domain.Message {
	name := singleLine(sub.Name)
	email := singleLine(sub.Email)

	return domain.Message{
		From:    from,
		To:      []string{recipient},
		ReplyTo: email,
		Subject: "New message from " + name,
		Body:    fmt.Sprintf("From: %s <%s>\n\n%s", name, email, sub.Message),
	}
}

func singleLine(s string) string {
	s = strings.NewReplacer("\r", " ", "\n", " ").Replace(s)
	return strings.TrimSpace(s)
}
