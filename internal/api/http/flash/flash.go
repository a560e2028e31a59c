// Package flash carries one-shot notices across a redirect in the signed
// session cookie, plus notices meant for the page being rendered now.
package flash

import (
	"encoding/gob"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/portfolio-website/portfolio-server/internal/logging"
)

const (
	Success = "success"
	Info    = "info"
	Warning = "warning"
	Danger  = "danger"
)

const nowKey = "flash_now"

// Message is a single notice; Category maps to a CSS alert class.
type Message struct {
	Category string
	Text     string
}

func init() {
	gob.Register(Message{})
}

func session(c *gin.Context) sessions.Session {
	if _, ok := c.Get(sessions.DefaultKey); !ok {
		return nil
	}
	return sessions.Default(c)
}

// Add queues a notice for the next page the visitor loads. It must run
// before the response headers are written.
func Add(c *gin.Context, category, text string) {
	s := session(c)
	if s == nil {
		Now(c, category, text)
		return
	}
	s.AddFlash(Message{Category: category, Text: text})
	if err := s.Save(); err != nil {
		logging.NewLogger(c.Request.Context()).LogError("flash.save", err)
	}
}

// Now attaches a notice to the current response only.
func Now(c *gin.Context, category, text string) {
	var list []Message
	if v, ok := c.Get(nowKey); ok {
		list, _ = v.([]Message)
	}
	c.Set(nowKey, append(list, Message{Category: category, Text: text}))
}

// Collect drains queued notices followed by the ones added with Now.
func Collect(c *gin.Context) []Message {
	var out []Message

	if s := session(c); s != nil {
		if pending := s.Flashes(); len(pending) > 0 {
			for _, f := range pending {
				if m, ok := f.(Message); ok {
					out = append(out, m)
				}
			}
			if err := s.Save(); err != nil {
				logging.NewLogger(c.Request.Context()).LogError("flash.save", err)
			}
		}
	}

	if v, ok := c.Get(nowKey); ok {
		if list, ok := v.([]Message); ok {
			out = append(out, list...)
		}
	}
	return out
}
