// Package markdown turns operator-authored Markdown into an HTML fragment that
// is safe to embed in a page as is.
//
// Rendering runs three steps in a fixed order: convert (goldmark, raw HTML
// passed through), sanitize (bluemonday allow-list), linkify (bare URLs and
// email addresses). Linkify runs last so the anchors it creates survive.
package markdown

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Renderer is safe for concurrent use; build one at startup and share it.
type Renderer struct {
	conv   *converter
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	return &Renderer{
		conv:   newConverter(),
		policy: newPolicy(),
	}
}

// Render never fails. Invalid UTF-8 is replaced with U+FFFD. If conversion
// breaks down the source is shown as escaped text, and that text still goes
// through the sanitizer and linkify.
func (r *Renderer) Render(source string) string {
	if strings.TrimSpace(source) == "" {
		return ""
	}

	source = strings.ToValidUTF8(source, "\uFFFD")

	raw, err := r.conv.toHTML(source)
	if err != nil {
		raw = "<p>" + html.EscapeString(source) + "</p>"
	}

	return strings.TrimSpace(linkify(r.Sanitize(raw)))
}

// Sanitize applies the allow-list to an HTML fragment.
func (r *Renderer) Sanitize(fragment string) string {
	return r.policy.Sanitize(fragment)
}
