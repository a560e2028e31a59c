package domain

import "errors"

var (
	ErrMailNotConfigured  = errors.New("mail transport not configured")
	ErrMailDeliveryFailed = errors.New("mail delivery failed")
	ErrRateLimited        = errors.New("too many contact submissions")
)

// Submission is a contact form post. Binding tags do the presence and
// email-shape checks before the relay sees it.
type Submission struct {
	Name    string `form:"name" json:"name" binding:"required,max=100"`
	Email   string `form:"email" json:"email" binding:"required,email,max=254"`
	Message string `form:"message" json:"message" binding:"required,max=5000"`
}

// Message is one outbound mail.
type Message struct {
	From    string
	To      []string
	ReplyTo string
	Subject string
	Body    string
}
