package markdown

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

// proseElements is the generic safe set for inline prose.
var proseElements = []string{
	"a", "abbr", "acronym", "b", "br", "code", "del", "em", "i", "strong", "span", "sup",
}

// structuralElements covers what the enabled Markdown extensions emit.
var structuralElements = []string{
	"p", "pre", "code", "blockquote", "hr",
	"h1", "h2", "h3", "h4", "h5", "h6",
	"table", "thead", "tbody", "tr", "th", "td",
	"ul", "ol", "li", "strong", "em", "a",
	"dl", "dt", "dd",
}

var (
	classPattern  = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)
	targetPattern = regexp.MustCompile(`^_(blank|self|parent|top)$`)
)

// newPolicy builds the allow-list. Disallowed tags are stripped with their
// text kept; script and style bodies are dropped entirely.
func newPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()

	p.AllowElements(proseElements...)
	p.AllowElements(structuralElements...)

	p.AllowAttrs("href", "title", "rel").OnElements("a")
	p.AllowAttrs("target").Matching(targetPattern).OnElements("a")
	p.AllowAttrs("title").OnElements("abbr", "acronym")
	p.AllowAttrs("class").Matching(classPattern).OnElements("pre", "code", "span")

	p.AllowURLSchemes("http", "https", "mailto")
	p.AllowRelativeURLs(true)
	p.RequireParseableURLs(true)

	return p
}
