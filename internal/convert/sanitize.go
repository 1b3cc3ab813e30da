package convert

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultAllowedTags are the content tags kept by default. Everything the
// rule text actually uses survives; layout scaffolding does not.
func DefaultAllowedTags() []string {
	return []string{
		"p", "br", "hr",
		"h1", "h2", "h3", "h4", "h5", "h6",
		"ul", "ol", "li",
		"table", "thead", "tbody", "tr", "th", "td",
		"strong", "em", "b", "i", "u", "sup", "sub",
		"a", "blockquote", "pre", "code",
	}
}

// DefaultAllowedAttributes maps tag names to the attributes kept on them.
func DefaultAllowedAttributes() map[string][]string {
	return map[string][]string{
		"a":  {"href"},
		"th": {"colspan", "rowspan"},
		"td": {"colspan", "rowspan"},
	}
}

// droppedTags are removed together with their entire subtree. A disallowed
// tag not listed here is merely unwrapped, keeping its children.
var droppedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"iframe":   true,
	"noscript": true,
	"object":   true,
	"embed":    true,
	"form":     true,
}

// voidTags render without a closing tag.
var voidTags = map[string]bool{
	"br": true,
	"hr": true,
}

// Sanitizer reduces an HTML fragment to an allowlisted subset.
type Sanitizer struct {
	allowedTags  map[string]bool
	allowedAttrs map[string]map[string]bool
}

// NewSanitizer creates a Sanitizer keeping the given tags and per-tag
// attributes. Nil arguments select the defaults.
func NewSanitizer(tags []string, attrs map[string][]string) *Sanitizer {
	if tags == nil {
		tags = DefaultAllowedTags()
	}
	if attrs == nil {
		attrs = DefaultAllowedAttributes()
	}

	s := &Sanitizer{
		allowedTags:  make(map[string]bool, len(tags)),
		allowedAttrs: make(map[string]map[string]bool, len(attrs)),
	}
	for _, tag := range tags {
		s.allowedTags[strings.ToLower(tag)] = true
	}
	for tag, names := range attrs {
		set := make(map[string]bool, len(names))
		for _, name := range names {
			set[strings.ToLower(name)] = true
		}
		s.allowedAttrs[strings.ToLower(tag)] = set
	}
	return s
}

// Sanitize parses the fragment and re-renders it with only allowed tags
// and attributes. Disallowed elements are unwrapped (their children are
// kept); script-like elements are dropped entirely; comments are dropped.
func (s *Sanitizer) Sanitize(fragment string) (string, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", fmt.Errorf("parse html fragment: %w", err)
	}

	var sb strings.Builder
	for _, n := range nodes {
		s.render(&sb, n)
	}
	return sb.String(), nil
}

func (s *Sanitizer) render(sb *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		sb.WriteString(html.EscapeString(n.Data))
		return
	case html.ElementNode:
		// handled below
	default:
		// Comments, doctypes and the rest carry no content worth keeping.
		return
	}

	tag := strings.ToLower(n.Data)
	if droppedTags[tag] {
		return
	}

	if !s.allowedTags[tag] {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			s.render(sb, c)
		}
		return
	}

	sb.WriteString("<")
	sb.WriteString(tag)
	for _, attr := range n.Attr {
		if allowed := s.allowedAttrs[tag]; allowed != nil && allowed[strings.ToLower(attr.Key)] {
			sb.WriteString(" ")
			sb.WriteString(strings.ToLower(attr.Key))
			sb.WriteString(`="`)
			sb.WriteString(html.EscapeString(attr.Val))
			sb.WriteString(`"`)
		}
	}
	sb.WriteString(">")

	if voidTags[tag] {
		return
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		s.render(sb, c)
	}

	sb.WriteString("</")
	sb.WriteString(tag)
	sb.WriteString(">")
}
