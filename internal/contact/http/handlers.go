package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/portfolio-website/portfolio-server/internal/api/http/flash"
	"github.com/portfolio-website/portfolio-server/internal/api/http/view"
	"github.com/portfolio-website/portfolio-server/internal/contact/domain"
	"github.com/portfolio-website/portfolio-server/internal/logging"
)

const (
	msgSent        = "Your message has been sent!"
	msgFailed      = "There was an error sending your message."
	msgRateLimited = "You have sent several messages already. Please try again later."
	msgCSRF        = "Your form expired. Please try again."
)

// Relay is what the handler needs from the relay service.
type Relay interface {
	Relay(ctx context.Context, clientKey string, sub domain.Submission) error
}

// TokenFunc returns the CSRF token to embed in the form.
type TokenFunc func(c *gin.Context) string

type Handler struct {
	relay Relay
	token TokenFunc
}

func New(relay Relay, token TokenFunc) *Handler {
	if token == nil {
		token = func(*gin.Context) string { return "" }
	}
	return &Handler{relay: relay, token: token}
}

// Register attaches the contact routes; mw runs in front of both, which is
// where CSRF protection goes.
func (h *Handler) Register(r gin.IRouter, mw ...gin.HandlerFunc) {
	g := r.Group("/contact", mw...)
	g.GET("", h.form)
	g.POST("", h.submit)
}

func (h *Handler) form(c *gin.Context) {
	h.renderForm(c, http.StatusOK, domain.Submission{}, map[string]string{})
}

func (h *Handler) submit(c *gin.Context) {
	var sub domain.Submission
	if err := c.ShouldBind(&sub); err != nil {
		sub.Name = c.PostForm("name")
		sub.Email = c.PostForm("email")
		sub.Message = c.PostForm("message")
		h.renderForm(c, http.StatusBadRequest, sub, fieldErrors(err))
		return
	}

	log := logging.NewLogger(c.Request.Context())
	err := h.relay.Relay(c.Request.Context(), c.ClientIP(), sub)
	switch {
	case err == nil:
		log.LogInfo("contact.relay", "email sent successfully")
		flash.Add(c, flash.Success, msgSent)
	case errors.Is(err, domain.ErrRateLimited):
		log.LogWarn("contact.relay", "submission rate limited", "client_ip", c.ClientIP())
		flash.Add(c, flash.Warning, msgRateLimited)
	default:
		log.LogError("contact.relay", err)
		flash.Add(c, flash.Danger, msgFailed)
	}

	c.Redirect(http.StatusFound, "/contact")
}

// CSRFFailure is the error handler for the CSRF middleware.
func CSRFFailure(c *gin.Context) {
	flash.Add(c, flash.Warning, msgCSRF)
	c.Redirect(http.StatusFound, "/contact")
	c.Abort()
}

func (h *Handler) renderForm(c *gin.Context, status int, sub domain.Submission, errs map[string]string) {
	view.Render(c, status, view.Contact, gin.H{
		"Title":     "Contact",
		"Form":      sub,
		"Errors":    errs,
		"CSRFToken": h.token(c),
	})
}

// fieldErrors maps binding failures to one message per form field.
func fieldErrors(err error) map[string]string {
	out := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out["message"] = "The form could not be read."
		return out
	}

	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		if _, seen := out[field]; seen {
			continue
		}
		switch fe.Tag() {
		case "required":
			out[field] = "This field is required."
		case "email":
			out[field] = "Please enter a valid email address."
		case "max":
			out[field] = "This field is too long (maximum " + fe.Param() + " characters)."
		default:
			out[field] = "This value is not valid."
		}
	}
	return out
}
