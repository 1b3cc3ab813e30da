package extract

import (
	"regexp"
	"strings"

	"github.com/n1ru4l/dsa-wiki-crawler/internal/ident"
)

// Link is one inline markdown link found in a document body.
// It is immutable once created: the crawl scheduler consumes it as a
// frontier entry and the page processor consumes it for rewriting.
type Link struct {
	// Text is the display text between the square brackets.
	Text string

	// RawTarget is the link target exactly as the page declared it.
	RawTarget string

	// NormalizedTarget is RawTarget after host-prefix stripping.
	NormalizedTarget string

	// Start and End are the byte offsets of the full "[text](target)"
	// span within the source text. End is exclusive.
	Start int
	End   int
}

// inlineLink matches a single-level inline markdown link.
// The text span forbids nested brackets and the target span forbids
// parentheses and whitespace, so a malformed or partial link simply
// fails to match instead of producing a garbled capture.
var inlineLink = regexp.MustCompile(`\[([^\[\]]+)\]\(([^()\s]+)\)`)

// Extractor finds inline links in markdown text.
type Extractor struct {
	norm *ident.Normalizer
}

// NewExtractor creates an Extractor that normalizes targets with the
// given Normalizer.
func NewExtractor(norm *ident.Normalizer) *Extractor {
	return &Extractor{norm: norm}
}

// Links returns every inline link in the text in order of first
// appearance. Image references ("![alt](src)") are not links and are
// skipped, as are spans the matcher rejects as malformed.
func (e *Extractor) Links(text string) []Link {
	matches := inlineLink.FindAllStringSubmatchIndex(text, -1)
	if matches == nil {
		return nil
	}

	links := make([]Link, 0, len(matches))
	for _, m := range matches {
		start, end := m[0], m[1]
		if start > 0 && text[start-1] == '!' {
			continue
		}

		raw := text[m[4]:m[5]]
		links = append(links, Link{
			Text:             text[m[2]:m[3]],
			RawTarget:        raw,
			NormalizedTarget: e.norm.NormalizeLink(raw),
			Start:            start,
			End:              end,
		})
	}
	return links
}

// Rewrite returns text with each link's target replaced by the value the
// callback supplies. The callback returns the replacement target and
// whether the link should be rewritten at all; links it declines are
// copied through untouched.
//
// Links must come from Links on the same text, in the order returned
// there. Rewriting is span-based, so all occurrences are rewritten and
// overlapping or repeated target strings elsewhere in the body are never
// touched.
func Rewrite(text string, links []Link, target func(Link) (string, bool)) string {
	if len(links) == 0 {
		return text
	}

	var sb strings.Builder
	sb.Grow(len(text))

	cursor := 0
	for _, link := range links {
		newTarget, ok := target(link)
		if !ok {
			continue
		}
		sb.WriteString(text[cursor:link.Start])
		sb.WriteString("[")
		sb.WriteString(link.Text)
		sb.WriteString("](")
		sb.WriteString(newTarget)
		sb.WriteString(")")
		cursor = link.End
	}
	sb.WriteString(text[cursor:])
	return sb.String()
}
