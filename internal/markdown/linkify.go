package markdown

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"mvdan.cc/xurls/v2"
)

var (
	urlPattern    = xurls.Relaxed()
	schemePattern = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9+.-]*:`)
)

// linkify wraps bare URLs and email addresses found in text nodes with
// anchors. Text already inside an <a> is left alone.
//
// The fragment is parsed into a tree and serialized again, so tags the
// sanitizer left open come out closed and nothing leaks into the page
// around it.
func linkify(fragment string) string {
	if fragment == "" {
		return ""
	}

	parent := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), parent)
	if err != nil {
		return html.EscapeString(fragment)
	}

	var b strings.Builder
	b.Grow(len(fragment))
	for _, n := range nodes {
		out := []*html.Node{n}
		if n.Type == html.TextNode {
			if linked := linkTextNodes(n.Data); linked != nil {
				out = linked
			}
		} else {
			linkifyChildren(n)
		}

		for _, o := range out {
			var nb strings.Builder
			if err := html.Render(&nb, o); err != nil {
				return html.EscapeString(fragment)
			}
			b.WriteString(nb.String())
		}
	}
	return b.String()
}

func linkifyChildren(n *html.Node) {
	if n.Type == html.ElementNode && n.DataAtom == atom.A {
		return
	}

	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.TextNode:
			if linked := linkTextNodes(c.Data); linked != nil {
				for _, l := range linked {
					n.InsertBefore(l, c)
				}
				n.RemoveChild(c)
			}
		case html.ElementNode:
			linkifyChildren(c)
		}
		c = next
	}
}

// linkTextNodes splits text into text and anchor nodes. It returns nil when
// there is nothing to link.
func linkTextNodes(text string) []*html.Node {
	matches := urlPattern.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return nil
	}

	var out []*html.Node
	last := 0
	for _, m := range matches {
		candidate := text[m[0]:m[1]]
		href, ok := hrefFor(candidate)
		if !ok {
			continue
		}
		if m[0] > last {
			out = append(out, &html.Node{Type: html.TextNode, Data: text[last:m[0]]})
		}
		a := &html.Node{
			Type:     html.ElementNode,
			Data:     "a",
			DataAtom: atom.A,
			Attr: []html.Attribute{
				{Key: "href", Val: href},
				{Key: "rel", Val: "nofollow"},
			},
		}
		a.AppendChild(&html.Node{Type: html.TextNode, Data: candidate})
		out = append(out, a)
		last = m[1]
	}
	if out == nil {
		return nil
	}
	if last < len(text) {
		out = append(out, &html.Node{Type: html.TextNode, Data: text[last:]})
	}
	return out
}

// hrefFor decides whether a match is worth linking and what it points at.
// Bare host names without "www." are skipped; too many file names look like
// domains.
func hrefFor(candidate string) (string, bool) {
	lower := strings.ToLower(candidate)
	switch {
	case strings.HasPrefix(lower, "www."):
		return "http://" + candidate, true
	case schemePattern.MatchString(candidate):
		for _, scheme := range []string{"http://", "https://", "mailto:"} {
			if strings.HasPrefix(lower, scheme) {
				return candidate, true
			}
		}
		return "", false
	case strings.Contains(candidate, "@") && !strings.Contains(candidate, "/"):
		return "mailto:" + candidate, true
	}
	return "", false
}
